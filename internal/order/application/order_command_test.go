package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}, nextID: 1}
}

func (f *fakeOrderRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeOrderRepo) Save(_ context.Context, order *domain.Order) error {
	if order.ID == 0 {
		order.ID = f.nextID
		f.nextID++
	}
	clone := *order
	f.orders[order.OrderNo] = &clone
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uint) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetByOrderNo(_ context.Context, orderNo string) (*domain.Order, error) {
	o, ok := f.orders[orderNo]
	if !ok {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID uint, _, _ int) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

type fakeCartGateway struct {
	lines   []domain.CartLine
	cleared bool
}

func (f *fakeCartGateway) GetCart(_ context.Context, userID uint) (*domain.CartSnapshot, error) {
	return &domain.CartSnapshot{CartID: 1, UserID: userID, Lines: f.lines}, nil
}

func (f *fakeCartGateway) Clear(_ context.Context, _ uint, _ string) error {
	f.cleared = true
	return nil
}

type capturingPublisher struct {
	topics []string
	events []any
}

func (p *capturingPublisher) Publish(_ context.Context, topic, _ string, event any) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) PublishInTx(_ context.Context, _ any, topic, _ string, event any) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func cartLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: 1, VariationID: 11, ProductName: "Trucker Cap", Color: "Black", Size: "M",
			UnitPrice: decimal.RequireFromString("29.90"), Quantity: 3},
		{ProductID: 2, VariationID: 22, ProductName: "Linen Shirt", Color: "White", Size: "L",
			UnitPrice: decimal.RequireFromString("45.50"), Quantity: 2},
	}
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	repo := newFakeOrderRepo()
	cart := &fakeCartGateway{lines: cartLines()}
	pub := &capturingPublisher{}
	svc := NewOrderCommandService(repo, cart, nil, pub)

	dto, err := svc.Checkout(context.Background(), CheckoutCommand{UserID: 1, ShippingAddress: "12 Harbour St"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, dto.Status)
	assert.Equal(t, "180.70", dto.TotalAmount)
	assert.NotEmpty(t, dto.OrderNo)
	assert.Len(t, dto.Items, 2)
	assert.True(t, cart.cleared)

	require.Contains(t, pub.topics, domain.OrderPlacedEventType)
	placed, ok := pub.events[0].(domain.OrderPlacedEvent)
	require.True(t, ok)
	assert.Len(t, placed.Items, 2)
	assert.Equal(t, uint(11), placed.Items[0].VariationID)
	assert.Equal(t, 3, placed.Items[0].Quantity)
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderCommandService(repo, &fakeCartGateway{}, nil, nil)

	_, err := svc.Checkout(context.Background(), CheckoutCommand{UserID: 1})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestOrderStatusTransitions(t *testing.T) {
	repo := newFakeOrderRepo()
	cart := &fakeCartGateway{lines: cartLines()}
	pub := &capturingPublisher{}
	svc := NewOrderCommandService(repo, cart, nil, pub)
	ctx := context.Background()

	dto, err := svc.Checkout(ctx, CheckoutCommand{UserID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(ctx, dto.OrderNo))
	require.NoError(t, svc.Ship(ctx, dto.OrderNo))
	require.NoError(t, svc.Deliver(ctx, dto.OrderNo))

	qry := NewOrderQueryService(repo, nil)
	got, err := qry.GetByOrderNo(ctx, dto.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)

	assert.Contains(t, pub.topics, domain.OrderPaidEventType)
	assert.Contains(t, pub.topics, domain.OrderShippedEventType)
	assert.Contains(t, pub.topics, domain.OrderDeliveredEventType)

	// 已送达后不能取消
	require.ErrorIs(t, svc.Cancel(ctx, dto.OrderNo), domain.ErrInvalidTransition)
	require.ErrorIs(t, svc.MarkPaid(ctx, "SO-missing"), domain.ErrOrderNotFound)
}

func TestCancelPendingOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	cart := &fakeCartGateway{lines: cartLines()}
	svc := NewOrderCommandService(repo, cart, nil, nil)
	ctx := context.Background()

	dto, err := svc.Checkout(ctx, CheckoutCommand{UserID: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, dto.OrderNo))

	got, err := repo.GetByOrderNo(ctx, dto.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}
