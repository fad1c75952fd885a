package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qtyTier(from, to int, amount string) PricingTier {
	return PricingTier{
		Type:         TierQuantity,
		FromQuantity: from,
		ToQuantity:   to,
		Amount:       decimal.RequireFromString(amount),
	}
}

func dateTier(starts, ends time.Time, amount string) PricingTier {
	return PricingTier{
		Type:     TierDate,
		StartsAt: starts,
		EndsAt:   ends,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestResolvePriceQuantityBreak(t *testing.T) {
	base := decimal.RequireFromString("100.00")
	tiers := []PricingTier{qtyTier(10, 50, "80.00")}

	cases := []struct {
		name string
		qty  int
		want string
	}{
		{"inside tier", 20, "80.00"},
		{"below tier", 5, "100.00"},
		{"lower bound inclusive", 10, "80.00"},
		{"upper bound inclusive", 50, "80.00"},
		{"above tier", 51, "100.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolvePrice(base, tiers, PriceContext{Quantity: tc.qty})
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"got %s, want %s", got, tc.want)
		})
	}
}

func TestResolvePriceNoTiersFallsBack(t *testing.T) {
	base := decimal.RequireFromString("19.90")
	got := ResolvePrice(base, nil, PriceContext{Quantity: 3})
	assert.True(t, got.Equal(base))
}

func TestResolvePriceNarrowestRangeWins(t *testing.T) {
	base := decimal.RequireFromString("100.00")
	tiers := []PricingTier{
		qtyTier(1, 100, "90.00"),
		qtyTier(10, 20, "75.00"),
	}
	got := ResolvePrice(base, tiers, PriceContext{Quantity: 15})
	assert.Equal(t, "75.00", got.StringFixed(2))

	// 宽度相等时保留持久化顺序靠前的一条
	equal := []PricingTier{
		qtyTier(10, 20, "70.00"),
		qtyTier(12, 22, "60.00"),
	}
	got = ResolvePrice(base, equal, PriceContext{Quantity: 15})
	assert.Equal(t, "70.00", got.StringFixed(2))
}

func TestResolvePriceQuantityBeatsDate(t *testing.T) {
	base := decimal.RequireFromString("50.00")
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	tiers := []PricingTier{
		dateTier(now.Add(-24*time.Hour), now.Add(24*time.Hour), "45.00"),
		qtyTier(5, 10, "40.00"),
	}
	got := ResolvePrice(base, tiers, PriceContext{Quantity: 6, At: now})
	assert.Equal(t, "40.00", got.StringFixed(2))

	// 数量不命中时日期规则照常生效
	got = ResolvePrice(base, tiers, PriceContext{Quantity: 2, At: now})
	assert.Equal(t, "45.00", got.StringFixed(2))
}

func TestResolvePriceDateWindow(t *testing.T) {
	base := decimal.RequireFromString("25.00")
	starts := time.Date(2026, 11, 27, 0, 0, 0, 0, time.UTC)
	ends := time.Date(2026, 11, 30, 23, 59, 59, 0, time.UTC)
	tiers := []PricingTier{dateTier(starts, ends, "17.50")}

	inside := ResolvePrice(base, tiers, PriceContext{At: starts.Add(36 * time.Hour)})
	assert.Equal(t, "17.50", inside.StringFixed(2))

	before := ResolvePrice(base, tiers, PriceContext{At: starts.Add(-time.Second)})
	assert.True(t, before.Equal(base))

	// 没有时间上下文时日期规则不生效
	zero := ResolvePrice(base, tiers, PriceContext{Quantity: 1})
	assert.True(t, zero.Equal(base))
}

func TestResolvePriceIdempotent(t *testing.T) {
	base := decimal.RequireFromString("100.00")
	tiers := []PricingTier{qtyTier(10, 50, "80.00"), qtyTier(51, 100, "70.00")}
	ctx := PriceContext{Quantity: 60}

	first := ResolvePrice(base, tiers, ctx)
	second := ResolvePrice(base, tiers, ctx)
	assert.True(t, first.Equal(second))
}

func TestTierValidate(t *testing.T) {
	bad := qtyTier(50, 10, "5.00")
	require.ErrorIs(t, bad.Validate(), ErrInvalidTierRange)

	badDate := dateTier(time.Now(), time.Now().Add(-time.Hour), "5.00")
	require.ErrorIs(t, badDate.Validate(), ErrInvalidTierRange)

	negative := qtyTier(1, 10, "-1.00")
	require.ErrorIs(t, negative.Validate(), ErrInvalidTierRange)

	unknown := PricingTier{Type: TierType("WEIGHT"), Amount: decimal.Zero}
	require.ErrorIs(t, unknown.Validate(), ErrInvalidTierRange)

	ok := qtyTier(10, 50, "80.00")
	require.NoError(t, ok.Validate())
}
