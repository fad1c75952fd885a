package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// fakeProductRepo 内存实现，事务直接透传。
type fakeProductRepo struct {
	products   map[uint]*domain.Product
	nextID     uint
	nextItemID uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]*domain.Product{}, nextID: 1, nextItemID: 1}
}

func (f *fakeProductRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeProductRepo) Save(_ context.Context, product *domain.Product) error {
	if product.ID == 0 {
		product.ID = f.nextID
		f.nextID++
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) List(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	var out []*domain.Product
	for _, p := range f.products {
		if filter.OnlyPublished && !p.Published {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) SaveVariation(_ context.Context, variation *domain.Variation) error {
	if variation.ID == 0 {
		variation.ID = f.nextItemID
		f.nextItemID++
	}
	p, ok := f.products[variation.ProductID]
	if !ok {
		return nil
	}
	for i := range p.Variations {
		if p.Variations[i].ID == variation.ID {
			p.Variations[i] = *variation
			return nil
		}
	}
	p.Variations = append(p.Variations, *variation)
	return nil
}

func (f *fakeProductRepo) GetVariation(_ context.Context, id uint) (*domain.Variation, error) {
	for _, p := range f.products {
		for i := range p.Variations {
			if p.Variations[i].ID == id {
				clone := p.Variations[i]
				return &clone, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) UpdateVariationStock(_ context.Context, id uint, quantity int) error {
	for _, p := range f.products {
		for i := range p.Variations {
			if p.Variations[i].ID == id {
				p.Variations[i].Quantity = quantity
				return nil
			}
		}
	}
	return nil
}

func (f *fakeProductRepo) SaveTier(_ context.Context, tier *domain.PricingTier) error {
	if tier.ID == 0 {
		tier.ID = f.nextItemID
		f.nextItemID++
	}
	p, ok := f.products[tier.ProductID]
	if !ok {
		return nil
	}
	p.Tiers = append(p.Tiers, *tier)
	return nil
}

// fakePublisher 记录所有发布过的事件主题。
type fakePublisher struct {
	topics []string
}

func (f *fakePublisher) Publish(_ context.Context, topic, _ string, _ any) error {
	f.topics = append(f.topics, topic)
	return nil
}

func (f *fakePublisher) PublishInTx(_ context.Context, _ any, topic, _ string, _ any) error {
	f.topics = append(f.topics, topic)
	return nil
}

func newTestServices() (*CatalogCommandService, *CatalogQueryService, *fakeProductRepo, *fakePublisher) {
	repo := newFakeProductRepo()
	pub := &fakePublisher{}
	cmd := NewCatalogCommandService(repo, nil, nil, pub)
	qry := NewCatalogQueryService(repo, nil, nil)
	return cmd, qry, repo, pub
}

func seedProduct(t *testing.T, cmd *CatalogCommandService) uint {
	t.Helper()
	id, err := cmd.CreateProduct(context.Background(), CreateProductCommand{
		VendorID:  7,
		Name:      "Trucker Cap",
		Category:  "caps",
		BasePrice: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	require.NoError(t, cmd.SetPublished(context.Background(), id, true))
	return id
}

func TestCreateProductPublishesEvent(t *testing.T) {
	cmd, qry, _, pub := newTestServices()
	id := seedProduct(t, cmd)

	dto, err := qry.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Trucker Cap", dto.Name)
	assert.Equal(t, "100.00", dto.BasePrice)
	assert.Contains(t, pub.topics, domain.ProductCreatedEventType)
	assert.Contains(t, pub.topics, domain.ProductPublishedEventType)
}

func TestAddVariationRejectsDuplicatePair(t *testing.T) {
	cmd, _, _, _ := newTestServices()
	id := seedProduct(t, cmd)
	ctx := context.Background()

	_, err := cmd.AddVariation(ctx, AddVariationCommand{
		ProductID: id, Color: "Black", Size: "M", SKU: "CAP-BLK-M", Quantity: 10,
	})
	require.NoError(t, err)

	_, err = cmd.AddVariation(ctx, AddVariationCommand{
		ProductID: id, Color: "black", Size: "m", SKU: "CAP-BLK-M-2", Quantity: 3,
	})
	require.ErrorIs(t, err, domain.ErrVariationExists)
}

func TestQuoteSelectionAppliesTier(t *testing.T) {
	cmd, qry, _, _ := newTestServices()
	id := seedProduct(t, cmd)
	ctx := context.Background()

	_, err := cmd.AddVariation(ctx, AddVariationCommand{
		ProductID: id, Color: "Black", Size: "M", SKU: "CAP-BLK-M", Quantity: 25,
	})
	require.NoError(t, err)
	_, err = cmd.AddTier(ctx, AddTierCommand{
		ProductID: id, Type: domain.TierQuantity,
		FromQuantity: 10, ToQuantity: 50,
		Amount: decimal.RequireFromString("80.00"),
	})
	require.NoError(t, err)

	quote, err := qry.QuoteSelection(ctx, id, "Black", "M", 20)
	require.NoError(t, err)
	assert.Equal(t, "80.00", quote.UnitPrice)
	assert.Equal(t, "100.00", quote.BasePrice)
	assert.Equal(t, 25, quote.Stock)

	quote, err = qry.QuoteSelection(ctx, id, "Black", "M", 5)
	require.NoError(t, err)
	assert.Equal(t, "100.00", quote.UnitPrice)
}

func TestQuoteSelectionErrors(t *testing.T) {
	cmd, qry, _, _ := newTestServices()
	id := seedProduct(t, cmd)
	ctx := context.Background()

	_, err := qry.QuoteSelection(ctx, id, "Black", "M", 0)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = qry.QuoteSelection(ctx, id, "Black", "M", 1)
	require.ErrorIs(t, err, domain.ErrVariationNotFound)

	_, err = qry.QuoteSelection(ctx, id+100, "Black", "M", 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	require.NoError(t, cmd.SetPublished(ctx, id, false))
	_, err = qry.QuoteSelection(ctx, id, "Black", "M", 1)
	require.ErrorIs(t, err, domain.ErrProductUnpublished)
}

func TestAddTierRejectsMalformedRange(t *testing.T) {
	cmd, _, _, _ := newTestServices()
	id := seedProduct(t, cmd)

	_, err := cmd.AddTier(context.Background(), AddTierCommand{
		ProductID: id, Type: domain.TierQuantity,
		FromQuantity: 50, ToQuantity: 10,
		Amount: decimal.RequireFromString("80.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidTierRange)
}

func TestAddTierRejectsInvertedDateWindow(t *testing.T) {
	cmd, _, _, _ := newTestServices()
	id := seedProduct(t, cmd)
	now := time.Now()

	_, err := cmd.AddTier(context.Background(), AddTierCommand{
		ProductID: id, Type: domain.TierDate,
		StartsAt: now, EndsAt: now.Add(-time.Hour),
		Amount: decimal.RequireFromString("80.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidTierRange)
}

func TestAdjustStockCannotGoNegative(t *testing.T) {
	cmd, _, _, pub := newTestServices()
	id := seedProduct(t, cmd)
	ctx := context.Background()

	vid, err := cmd.AddVariation(ctx, AddVariationCommand{
		ProductID: id, Color: "Black", Size: "M", Quantity: 5,
	})
	require.NoError(t, err)

	err = cmd.AdjustStock(ctx, AdjustStockCommand{VariationID: vid, Delta: -6, Reason: "damage"})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, cmd.AdjustStock(ctx, AdjustStockCommand{VariationID: vid, Delta: -5, Reason: "damage"}))
	assert.Contains(t, strings.Join(pub.topics, ","), domain.StockChangedEventType)
}

func TestDeductStockForOrderClampsToZero(t *testing.T) {
	cmd, qry, _, _ := newTestServices()
	id := seedProduct(t, cmd)
	ctx := context.Background()

	vid, err := cmd.AddVariation(ctx, AddVariationCommand{
		ProductID: id, Color: "Black", Size: "M", Quantity: 3,
	})
	require.NoError(t, err)

	require.NoError(t, cmd.DeductStockForOrder(ctx, vid, 10))

	quote, err := qry.QuoteVariation(ctx, vid, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, quote.Stock)
}
