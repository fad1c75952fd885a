package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: 1, VariationID: 11, ProductName: "Trucker Cap", UnitPrice: decimal.RequireFromString("29.90"), Quantity: 3},
		{ProductID: 2, VariationID: 22, ProductName: "Linen Shirt", UnitPrice: decimal.RequireFromString("45.50"), Quantity: 2},
	}
}

func TestNewOrderComputesTotal(t *testing.T) {
	order, err := NewOrder("SO20260829001", 1, "12 Harbour St", testItems())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	// 3*29.90 + 2*45.50 = 180.70
	assert.Equal(t, "180.70", order.TotalAmount.StringFixed(2))
	assert.Len(t, order.Items, 2)
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder("SO1", 1, "", nil)
	require.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NewOrder("SO1", 1, "", []OrderItem{{UnitPrice: decimal.Zero, Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestOrderLifecycle(t *testing.T) {
	order, err := NewOrder("SO1", 1, "", testItems())
	require.NoError(t, err)
	now := time.Now()

	require.NoError(t, order.MarkPaid(now))
	assert.Equal(t, StatusPaid, order.Status)
	require.NotNil(t, order.PaidAt)

	require.NoError(t, order.Ship(now))
	require.NoError(t, order.Deliver(now))
	assert.Equal(t, StatusDelivered, order.Status)
}

func TestOrderInvalidTransitions(t *testing.T) {
	order, err := NewOrder("SO1", 1, "", testItems())
	require.NoError(t, err)
	now := time.Now()

	// 未支付不能发货或签收
	require.ErrorIs(t, order.Ship(now), ErrInvalidTransition)
	require.ErrorIs(t, order.Deliver(now), ErrInvalidTransition)

	require.NoError(t, order.MarkPaid(now))
	require.ErrorIs(t, order.MarkPaid(now), ErrInvalidTransition)
}

func TestOrderCancel(t *testing.T) {
	now := time.Now()

	pending, err := NewOrder("SO1", 1, "", testItems())
	require.NoError(t, err)
	require.NoError(t, pending.Cancel(now))
	assert.Equal(t, StatusCancelled, pending.Status)

	paid, err := NewOrder("SO2", 1, "", testItems())
	require.NoError(t, err)
	require.NoError(t, paid.MarkPaid(now))
	require.NoError(t, paid.Cancel(now))

	// 发货后不允许取消
	shipped, err := NewOrder("SO3", 1, "", testItems())
	require.NoError(t, err)
	require.NoError(t, shipped.MarkPaid(now))
	require.NoError(t, shipped.Ship(now))
	require.ErrorIs(t, shipped.Cancel(now), ErrInvalidTransition)
}
