package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

type fakeCartRepo struct {
	carts  map[uint]*domain.Cart
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[uint]*domain.Cart{}, nextID: 1}
}

func (f *fakeCartRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeCartRepo) GetByUserID(_ context.Context, userID uint) (*domain.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, nil
	}
	clone := *cart
	clone.Items = append([]domain.CartItem(nil), cart.Items...)
	return &clone, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	if cart.ID == 0 {
		cart.ID = f.nextID
		f.nextID++
	}
	clone := *cart
	clone.Items = append([]domain.CartItem(nil), cart.Items...)
	f.carts[cart.UserID] = &clone
	return nil
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, cartID, variationID uint) error {
	for _, cart := range f.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if cart.Items[i].VariationID == variationID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID uint) error {
	if cart, ok := f.carts[userID]; ok {
		cart.Items = nil
	}
	return nil
}

// fakeCatalogGateway 固定库存与报价的目录桩
type fakeCatalogGateway struct {
	stock    int
	price    string
	failures bool
}

func (f *fakeCatalogGateway) quote(quantity int) *domain.VariationQuote {
	return &domain.VariationQuote{
		ProductID:   1,
		VariationID: 11,
		ProductName: "Trucker Cap",
		Color:       "Black",
		Size:        "M",
		SKU:         "CAP-BLK-M",
		Stock:       f.stock,
		UnitPrice:   decimal.RequireFromString(f.price),
	}
}

func (f *fakeCatalogGateway) QuoteSelection(_ context.Context, _ uint, _, _ string, quantity int) (*domain.VariationQuote, error) {
	if f.failures {
		return nil, assert.AnError
	}
	return f.quote(quantity), nil
}

func (f *fakeCatalogGateway) QuoteVariation(_ context.Context, _ uint, quantity int) (*domain.VariationQuote, error) {
	if f.failures {
		return nil, assert.AnError
	}
	return f.quote(quantity), nil
}

func TestAddItemMergesAndClamps(t *testing.T) {
	repo := newFakeCartRepo()
	gw := &fakeCatalogGateway{stock: 6, price: "29.90"}
	cmd := NewCartCommandService(repo, gw, nil)
	ctx := context.Background()

	result, err := cmd.AddItem(ctx, AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 4})
	require.NoError(t, err)
	assert.False(t, result.Clamped)
	assert.Equal(t, 4, result.Quantity)

	// 再加 4 件，库存只有 6：合并后收敛到 6 并置位 clamped
	result, err = cmd.AddItem(ctx, AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 4})
	require.NoError(t, err)
	assert.True(t, result.Clamped)
	assert.Equal(t, 6, result.Quantity)

	cart, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 6, cart.Items[0].Quantity)
}

func TestAddItemOutOfStock(t *testing.T) {
	repo := newFakeCartRepo()
	gw := &fakeCatalogGateway{stock: 0, price: "29.90"}
	cmd := NewCartCommandService(repo, gw, nil)

	_, err := cmd.AddItem(context.Background(), AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestUpdateQuantityClamps(t *testing.T) {
	repo := newFakeCartRepo()
	gw := &fakeCatalogGateway{stock: 10, price: "29.90"}
	cmd := NewCartCommandService(repo, gw, nil)
	ctx := context.Background()

	_, err := cmd.AddItem(ctx, AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 2})
	require.NoError(t, err)

	result, err := cmd.UpdateQuantity(ctx, UpdateItemCommand{UserID: 1, VariationID: 11, Quantity: 50})
	require.NoError(t, err)
	assert.True(t, result.Clamped)
	assert.Equal(t, 10, result.Quantity)

	_, err = cmd.UpdateQuantity(ctx, UpdateItemCommand{UserID: 1, VariationID: 99, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRemoveItemAndClear(t *testing.T) {
	repo := newFakeCartRepo()
	gw := &fakeCatalogGateway{stock: 10, price: "29.90"}
	cmd := NewCartCommandService(repo, gw, nil)
	ctx := context.Background()

	_, err := cmd.AddItem(ctx, AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, cmd.RemoveItem(ctx, RemoveItemCommand{UserID: 1, VariationID: 11}))
	err = cmd.RemoveItem(ctx, RemoveItemCommand{UserID: 1, VariationID: 11})
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = cmd.AddItem(ctx, AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, cmd.ClearCart(ctx, 1, "checkout"))

	cart, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGetCartRequotesTotals(t *testing.T) {
	repo := newFakeCartRepo()
	gw := &fakeCatalogGateway{stock: 10, price: "29.90"}
	cmd := NewCartCommandService(repo, gw, nil)
	qry := NewCartQueryService(repo, gw)
	ctx := context.Background()

	_, err := cmd.AddItem(ctx, AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 3})
	require.NoError(t, err)

	// 目录价格变动后，视图合计按当前价计算
	gw.price = "24.90"
	dto, err := qry.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, "24.90", dto.Items[0].UnitPrice)
	assert.Equal(t, "29.90", dto.Items[0].SnapshotPrice)
	assert.Equal(t, "74.70", dto.Subtotal)
	assert.Equal(t, 3, dto.ItemCount)
}

func TestGetCartFallsBackToSnapshotPrice(t *testing.T) {
	repo := newFakeCartRepo()
	gw := &fakeCatalogGateway{stock: 10, price: "29.90"}
	cmd := NewCartCommandService(repo, gw, nil)
	qry := NewCartQueryService(repo, gw)
	ctx := context.Background()

	_, err := cmd.AddItem(ctx, AddItemCommand{UserID: 1, ProductID: 1, Color: "Black", Size: "M", Quantity: 2})
	require.NoError(t, err)

	gw.failures = true
	dto, err := qry.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "29.90", dto.Items[0].UnitPrice)
	assert.Equal(t, "59.80", dto.Subtotal)
}

func TestGetCartEmpty(t *testing.T) {
	repo := newFakeCartRepo()
	qry := NewCartQueryService(repo, &fakeCatalogGateway{stock: 1, price: "1.00"})

	dto, err := qry.GetCart(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
	assert.Equal(t, "0.00", dto.Subtotal)
	assert.Equal(t, 0, dto.ItemCount)
}
