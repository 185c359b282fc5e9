package dto

import "github.com/shopspring/decimal"

// -------- users --------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Gender   string `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Gender  string `json:"gender"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	Gender       *string `json:"gender"`
	ProfileImage *string `json:"profileImage"`
}

type SetRoleRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

// -------- orders --------

type OrderItemRequest struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
}

type PersonalInfoRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type DeliveryAddressRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// PaymentInfoRequest carries the raw checkout form. Only the card holder
// name, expiry and the last four digits survive into storage.
type PaymentInfoRequest struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

type CreateOrderRequest struct {
	Items               []OrderItemRequest     `json:"items"`
	PersonalInfo        PersonalInfoRequest    `json:"personalInfo"`
	DeliveryAddress     DeliveryAddressRequest `json:"deliveryAddress"`
	PaymentInfo         PaymentInfoRequest     `json:"paymentInfo"`
	TotalAmount         decimal.Decimal        `json:"totalAmount"`
	SpecialInstructions string                 `json:"specialInstructions"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// -------- subscriptions --------

type CreateSubscriptionRequest struct {
	SubscriptionType    string `json:"subscriptionType"`
	ColorTheme          string `json:"colorTheme"`
	StartDate           string `json:"startDate"` // YYYY-MM-DD
	ReceiverName        string `json:"receiverName"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	SpecialInstructions string `json:"specialInstructions"`
}

type UpdateSubscriptionRequest struct {
	SubscriptionType    *string `json:"subscriptionType"`
	ColorTheme          *string `json:"colorTheme"`
	StartDate           *string `json:"startDate"`
	ReceiverName        *string `json:"receiverName"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	SpecialInstructions *string `json:"specialInstructions"`
}
