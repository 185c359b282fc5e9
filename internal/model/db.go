package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Address      string    `gorm:"size:255" json:"address"`
	Gender       string    `gorm:"size:32" json:"gender"`
	ProfileImage string    `json:"profileImage,omitempty"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

type PersonalInfo struct {
	FirstName string `gorm:"size:64" json:"firstName"`
	LastName  string `gorm:"size:64" json:"lastName"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:32" json:"phone"`
}

type DeliveryAddress struct {
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:64" json:"city"`
	ZipCode string `gorm:"size:16" json:"zipCode"`
}

// PaymentCard keeps only what the storefront displays. Card numbers are
// reduced to the last four digits before persisting; nothing is ever
// charged against a processor.
type PaymentCard struct {
	CardName string `gorm:"size:128" json:"cardName"`
	LastFour string `gorm:"size:4" json:"lastFour"`
	Expiry   string `gorm:"size:8" json:"expiry"`
}

type Order struct {
	ID     string      `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string      `gorm:"size:64;index;not null" json:"userId"`
	Status OrderStatus `gorm:"size:32;index;not null" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	PersonalInfo    PersonalInfo    `gorm:"embedded;embeddedPrefix:personal_" json:"personalInfo"`
	DeliveryAddress DeliveryAddress `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress"`
	PaymentCard     PaymentCard     `gorm:"embedded;embeddedPrefix:card_" json:"paymentInfo"`

	TotalAmount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	OrderDate           time.Time       `gorm:"not null" json:"orderDate"`
	DeliveryDate        *time.Time      `json:"deliveryDate,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`

	// bumped on every status change, checked on conditional updates
	Version   int64     `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   string          `gorm:"size:64;index;not null" json:"-"`
	ProductID string          `gorm:"size:64;not null" json:"productId"`
	Name      string          `gorm:"size:128;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  int32           `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `json:"-"`
}

type Subscription struct {
	ID     string             `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string             `gorm:"size:64;index;not null" json:"userId"`
	Type   SubscriptionType   `gorm:"size:16;not null" json:"subscriptionType"`
	Status SubscriptionStatus `gorm:"size:16;index;not null" json:"status"`

	ColorTheme string    `gorm:"size:64;not null" json:"colorTheme"`
	StartDate  time.Time `gorm:"not null" json:"startDate"`
	EndDate    time.Time `gorm:"not null" json:"endDate"`

	// derived rows, rewritten wholesale whenever the schedule is recomputed
	Deliveries []SubscriptionDelivery `gorm:"foreignKey:SubscriptionID" json:"deliveryDates"`

	ReceiverName        string `gorm:"size:128;not null" json:"receiverName"`
	Phone               string `gorm:"size:32;not null" json:"phone"`
	Address             string `gorm:"size:255;not null" json:"address"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`

	Version   int64     `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SubscriptionDelivery struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	SubscriptionID string    `gorm:"size:64;index;not null" json:"-"`
	Sequence       int       `gorm:"not null" json:"-"`
	DeliverOn      time.Time `gorm:"not null" json:"deliverOn"`
}
