package service

import (
	"context"
	"strings"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/dto"
	"flowershop-api/internal/model"
	"flowershop-api/internal/repository"
	"flowershop-api/internal/schedule"

	"github.com/google/uuid"
)

type SubscriptionService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSubscriptionRequest) (*model.Subscription, error)
	Update(ctx context.Context, actor model.Actor, subscriptionID string, req *dto.UpdateSubscriptionRequest) (*model.Subscription, error)
	Cancel(ctx context.Context, actor model.Actor, subscriptionID string) (*model.Subscription, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Subscription, error)
	ListAll(ctx context.Context) ([]*dto.SubscriptionWithOwner, error)
}

type subscriptionServiceImpl struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) SubscriptionService {
	return &subscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

func (s *subscriptionServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateSubscriptionRequest) (*model.Subscription, error) {
	missing := missingFields(map[string]string{
		"subscriptionType": req.SubscriptionType,
		"colorTheme":       req.ColorTheme,
		"startDate":        req.StartDate,
		"receiverName":     req.ReceiverName,
		"phone":            req.Phone,
		"address":          req.Address,
	})
	if len(missing) > 0 {
		return nil, apperror.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}

	subType, ok := model.ParseSubscriptionType(req.SubscriptionType)
	if !ok {
		return nil, apperror.Validation("unknown subscription type %q", req.SubscriptionType)
	}

	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	plan, err := schedule.Derive(subType, start)
	if err != nil {
		return nil, err
	}

	sub := &model.Subscription{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Type:                subType,
		Status:              model.SubscriptionStatusActive,
		ColorTheme:          req.ColorTheme,
		StartDate:           start,
		EndDate:             plan.EndDate,
		Deliveries:          deliveryRows(plan),
		ReceiverName:        req.ReceiverName,
		Phone:               req.Phone,
		Address:             req.Address,
		SpecialInstructions: req.SpecialInstructions,
		Version:             1,
	}

	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, apperror.Persistence(err)
	}

	return sub, nil
}

func (s *subscriptionServiceImpl) Update(ctx context.Context, actor model.Actor, subscriptionID string, req *dto.UpdateSubscriptionRequest) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, wrapDBErr(err, "subscription")
	}

	if !actor.CanAccess(sub.UserID) {
		return nil, apperror.Forbidden("not allowed to modify this subscription")
	}

	rederive := false
	if req.SubscriptionType != nil {
		subType, ok := model.ParseSubscriptionType(*req.SubscriptionType)
		if !ok {
			return nil, apperror.Validation("unknown subscription type %q", *req.SubscriptionType)
		}
		if subType != sub.Type {
			sub.Type = subType
			rederive = true
		}
	}
	if req.StartDate != nil {
		start, err := schedule.ParseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		if !start.Equal(sub.StartDate) {
			sub.StartDate = start
			rederive = true
		}
	}
	if req.ColorTheme != nil {
		sub.ColorTheme = *req.ColorTheme
	}
	if req.ReceiverName != nil {
		sub.ReceiverName = *req.ReceiverName
	}
	if req.Phone != nil {
		sub.Phone = *req.Phone
	}
	if req.Address != nil {
		sub.Address = *req.Address
	}
	if req.SpecialInstructions != nil {
		sub.SpecialInstructions = *req.SpecialInstructions
	}

	// delivery dates are always recomputed server-side, never patched in
	if rederive {
		plan, err := schedule.Derive(sub.Type, sub.StartDate)
		if err != nil {
			return nil, err
		}
		sub.EndDate = plan.EndDate
		sub.Deliveries = deliveryRows(plan)
	}

	ok, err := s.subscriptionRepo.Update(ctx, sub, rederive)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if !ok {
		return nil, apperror.Conflict("subscription was modified concurrently")
	}

	return s.refresh(ctx, subscriptionID)
}

func (s *subscriptionServiceImpl) Cancel(ctx context.Context, actor model.Actor, subscriptionID string) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, wrapDBErr(err, "subscription")
	}

	if !actor.CanAccess(sub.UserID) {
		return nil, apperror.Forbidden("not allowed to cancel this subscription")
	}

	// cancelling twice is a no-op
	if sub.Status == model.SubscriptionStatusCancelled {
		return sub, nil
	}

	ok, err := s.subscriptionRepo.Cancel(ctx, subscriptionID, sub.Version)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if !ok {
		// lost the race; if the other writer cancelled it the result stands
		current, err := s.refresh(ctx, subscriptionID)
		if err != nil {
			return nil, err
		}
		if current.Status == model.SubscriptionStatusCancelled {
			return current, nil
		}
		return nil, apperror.Conflict("subscription was modified concurrently")
	}

	sub.Status = model.SubscriptionStatusCancelled
	sub.Version++
	return sub, nil
}

func (s *subscriptionServiceImpl) ListForUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	subs, err := s.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return subs, nil
}

// ListAll resolves owners with a single batched user fetch.
func (s *subscriptionServiceImpl) ListAll(ctx context.Context) ([]*dto.SubscriptionWithOwner, error) {
	subs, err := s.subscriptionRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	seen := make(map[string]bool, len(subs))
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		if !seen[sub.UserID] {
			seen[sub.UserID] = true
			ids = append(ids, sub.UserID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	owners := make(map[string]*model.User, len(users))
	for _, u := range users {
		owners[u.ID] = u
	}

	result := make([]*dto.SubscriptionWithOwner, 0, len(subs))
	for _, sub := range subs {
		entry := &dto.SubscriptionWithOwner{Subscription: sub}
		if owner, ok := owners[sub.UserID]; ok {
			entry.Owner = dto.OwnerSummary{
				ID:    owner.ID,
				Name:  owner.Name,
				Email: owner.Email,
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *subscriptionServiceImpl) refresh(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, wrapDBErr(err, "subscription")
	}
	return sub, nil
}

func deliveryRows(plan schedule.Schedule) []model.SubscriptionDelivery {
	rows := make([]model.SubscriptionDelivery, 0, len(plan.DeliveryDates))
	for i, date := range plan.DeliveryDates {
		rows = append(rows, model.SubscriptionDelivery{
			Sequence:  i,
			DeliverOn: date,
		})
	}
	return rows
}
