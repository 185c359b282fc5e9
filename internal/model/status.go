package model

// OrderStatus is the delivery lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions is the forward-only order lifecycle. Cancellation is a
// side-exit from every non-terminal state; delivered and cancelled are
// terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	_, ok := orderTransitions[status]
	return status, ok
}

// CanTransition reports whether the order may move from its current status
// to the target.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SubscriptionStatus is binary: active until cancelled, never reactivated.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionType selects the delivery cadence. Fixed set, immutable once
// derived schedules depend on it unless the schedule is recomputed.
type SubscriptionType string

const (
	SubscriptionTypeWeekly  SubscriptionType = "weekly"
	SubscriptionTypeMonthly SubscriptionType = "monthly"
)

func ParseSubscriptionType(s string) (SubscriptionType, bool) {
	switch SubscriptionType(s) {
	case SubscriptionTypeWeekly:
		return SubscriptionTypeWeekly, true
	case SubscriptionTypeMonthly:
		return SubscriptionTypeMonthly, true
	}
	return "", false
}
