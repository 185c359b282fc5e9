package service

import (
	"context"
	"testing"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/dto"
	"flowershop-api/internal/model"
	"flowershop-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (OrderService, repository.OrderRepository, *model.User) {
	t.Helper()

	db := newTestDB(t)
	repo := repository.NewOrderRepository(db)
	owner := seedUser(t, db, "Daisy", false)
	return NewOrderService(repo), repo, owner
}

func twoItemRequest(total string) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "rose-bouquet", Name: "Rose Bouquet", Price: decimal.NewFromInt(50), Quantity: 2},
			{ProductID: "tulip-vase", Name: "Tulip Vase", Price: decimal.NewFromInt(30), Quantity: 1},
		},
		PersonalInfo: dto.PersonalInfoRequest{
			FirstName: "Daisy", LastName: "Bloom",
			Email: "daisy@example.com", Phone: "555-0100",
		},
		DeliveryAddress: dto.DeliveryAddressRequest{
			Address: "1 Flower St", City: "Petalville", ZipCode: "12345",
		},
		PaymentInfo: dto.PaymentInfoRequest{
			CardNumber: "4111 1111 1111 1234",
			CardName:   "Daisy Bloom",
			ExpiryDate: "12/27",
			CVV:        "123",
		},
		TotalAmount: decimal.RequireFromString(total),
	}
}

func TestCreateOrder(t *testing.T) {
	svc, _, owner := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, owner.ID, twoItemRequest("130"))
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, owner.ID, order.UserID)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(130)))
	assert.Len(t, order.Items, 2)
	assert.False(t, order.OrderDate.IsZero())

	// only the displayable tail of the card number survives
	assert.Equal(t, "1234", order.PaymentCard.LastFour)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	svc, _, owner := newOrderService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.CreateOrderRequest
	}{
		{"empty items", &dto.CreateOrderRequest{TotalAmount: decimal.NewFromInt(10)}},
		{"total mismatch", twoItemRequest("999")},
		{"zero total", func() *dto.CreateOrderRequest {
			r := twoItemRequest("130")
			r.Items = []dto.OrderItemRequest{{ProductID: "p", Quantity: 1, Price: decimal.Zero}}
			r.TotalAmount = decimal.Zero
			return r
		}()},
		{"non-positive quantity", func() *dto.CreateOrderRequest {
			r := twoItemRequest("130")
			r.Items[0].Quantity = 0
			return r
		}()},
		{"missing product id", func() *dto.CreateOrderRequest {
			r := twoItemRequest("130")
			r.Items[0].ProductID = ""
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner.ID, tt.req)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestGetOrderOwnership(t *testing.T) {
	svc, _, owner := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, owner.ID, twoItemRequest("130"))
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, model.Actor{UserID: owner.ID}, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	got, err = svc.GetByID(ctx, model.Actor{UserID: "someone-else", IsAdmin: true}, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// a stranger sees the same 404 as for a missing order
	_, err = svc.GetByID(ctx, model.Actor{UserID: "someone-else"}, order.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = svc.GetByID(ctx, model.Actor{UserID: owner.ID}, "no-such-order")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSetStatusFollowsTransitionTable(t *testing.T) {
	svc, _, owner := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, owner.ID, twoItemRequest("130"))
	require.NoError(t, err)

	// skipping straight to shipped is rejected
	_, err = svc.SetStatus(ctx, order.ID, "shipped")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	updated, err := svc.SetStatus(ctx, order.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)

	updated, err = svc.SetStatus(ctx, order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	updated, err = svc.SetStatus(ctx, order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)

	// delivered is terminal
	_, err = svc.SetStatus(ctx, order.ID, "cancelled")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, owner := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, owner.ID, twoItemRequest("130"))
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, order.ID, "refunded")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.SetStatus(ctx, "no-such-order", "confirmed")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSetStatusDetectsConcurrentWrite(t *testing.T) {
	svc, repo, owner := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, owner.ID, twoItemRequest("130"))
	require.NoError(t, err)

	// another admin moved the order first
	ok, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusConfirmed, order.Version)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled, order.Version)
	require.NoError(t, err)
	assert.False(t, ok, "stale version must not win")
}

func TestListForUser(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewOrderRepository(db)
	svc := NewOrderService(repo)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", false)
	bob := seedUser(t, db, "Bob", false)

	_, err := svc.Create(ctx, alice.ID, twoItemRequest("130"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, twoItemRequest("130"))
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
