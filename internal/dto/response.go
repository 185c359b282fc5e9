package dto

import "flowershop-api/internal/model"

// OwnerSummary is the slice of a user shown next to their records in the
// admin back-office.
type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SubscriptionWithOwner struct {
	*model.Subscription
	Owner OwnerSummary `json:"owner"`
}
