package service

import (
	"context"
	"strings"
	"time"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/dto"
	"flowershop-api/internal/model"
	"flowershop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	GetByID(ctx context.Context, actor model.Actor, orderID string) (*model.Order, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	SetStatus(ctx context.Context, orderID string, status string) (*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperror.Validation("order must contain at least one item")
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	computed := decimal.Zero
	for i, it := range req.Items {
		if it.ProductID == "" {
			return nil, apperror.Validation("item %d: productId is required", i)
		}
		if it.Quantity <= 0 {
			return nil, apperror.Validation("item %d: quantity must be positive", i)
		}
		if it.Price.IsNegative() {
			return nil, apperror.Validation("item %d: price must not be negative", i)
		}

		computed = computed.Add(it.Price.Mul(decimal.NewFromInt32(it.Quantity)))
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}

	if !req.TotalAmount.IsPositive() {
		return nil, apperror.Validation("totalAmount must be positive")
	}
	// the client-sent total is never trusted
	if !req.TotalAmount.Equal(computed) {
		return nil, apperror.Validation(
			"totalAmount %s does not match item total %s",
			req.TotalAmount.String(), computed.String(),
		)
	}

	order := &model.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: model.OrderStatusPending,
		Items:  items,
		PersonalInfo: model.PersonalInfo{
			FirstName: req.PersonalInfo.FirstName,
			LastName:  req.PersonalInfo.LastName,
			Email:     req.PersonalInfo.Email,
			Phone:     req.PersonalInfo.Phone,
		},
		DeliveryAddress: model.DeliveryAddress{
			Address: req.DeliveryAddress.Address,
			City:    req.DeliveryAddress.City,
			ZipCode: req.DeliveryAddress.ZipCode,
		},
		PaymentCard: model.PaymentCard{
			CardName: req.PaymentInfo.CardName,
			LastFour: cardLastFour(req.PaymentInfo.CardNumber),
			Expiry:   req.PaymentInfo.ExpiryDate,
		},
		TotalAmount:         computed,
		OrderDate:           time.Now().UTC(),
		SpecialInstructions: req.SpecialInstructions,
		Version:             1,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperror.Persistence(err)
	}

	return order, nil
}

func (s *orderServiceImpl) GetByID(ctx context.Context, actor model.Actor, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrapDBErr(err, "order")
	}

	// non-owners get the same answer as a missing order
	if !actor.CanAccess(order.UserID) {
		return nil, apperror.NotFound("order")
	}

	return order, nil
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, userID string) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return orders, nil
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return orders, nil
}

func (s *orderServiceImpl) SetStatus(ctx context.Context, orderID string, status string) (*model.Order, error) {
	next, ok := model.ParseOrderStatus(status)
	if !ok {
		return nil, apperror.Validation("unknown order status %q", status)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrapDBErr(err, "order")
	}

	if !order.Status.CanTransition(next) {
		return nil, apperror.Validation(
			"cannot transition order from %s to %s",
			order.Status, next,
		)
	}

	ok, err = s.orderRepo.UpdateStatus(ctx, orderID, next, order.Version)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if !ok {
		return nil, apperror.Conflict("order was modified concurrently")
	}

	order.Status = next
	order.Version++
	return order, nil
}

// cardLastFour reduces a checkout card number to its displayable tail.
func cardLastFour(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
