package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVariations() []Variation {
	return []Variation{
		{Color: "Black", Size: "M", SKU: "CAP-BLK-M", Quantity: 10},
		{Color: "Black", Size: "L", SKU: "CAP-BLK-L", Quantity: 0},
		{Color: "Navy", Size: "M", SKU: "CAP-NVY-M", Quantity: 4},
	}
}

func TestSelectVariationBothDimensions(t *testing.T) {
	v, err := SelectVariation(testVariations(), "Navy", "M")
	require.NoError(t, err)
	assert.Equal(t, "CAP-NVY-M", v.SKU)

	// 大小写不敏感
	v, err = SelectVariation(testVariations(), "black", "l")
	require.NoError(t, err)
	assert.Equal(t, "CAP-BLK-L", v.SKU)

	_, err = SelectVariation(testVariations(), "Red", "M")
	require.ErrorIs(t, err, ErrVariationNotFound)
}

func TestSelectVariationSingleDimension(t *testing.T) {
	// 只给颜色时按颜色过滤，返回输入顺序的第一个命中
	v, err := SelectVariation(testVariations(), "Black", "")
	require.NoError(t, err)
	assert.Equal(t, "CAP-BLK-M", v.SKU)

	v, err = SelectVariation(testVariations(), "", "M")
	require.NoError(t, err)
	assert.Equal(t, "CAP-BLK-M", v.SKU)
}

func TestSelectVariationDuplicatePairFirstWins(t *testing.T) {
	// 遗留数据可能违反 (color,size) 唯一性，此时行为是确定性的首个命中
	dups := []Variation{
		{Color: "Black", Size: "M", SKU: "FIRST", Quantity: 1},
		{Color: "Black", Size: "M", SKU: "SECOND", Quantity: 9},
	}
	v, err := SelectVariation(dups, "Black", "M")
	require.NoError(t, err)
	assert.Equal(t, "FIRST", v.SKU)
}

func TestSelectVariationEmptyList(t *testing.T) {
	_, err := SelectVariation(nil, "Black", "M")
	require.ErrorIs(t, err, ErrVariationNotFound)
}

func TestFilterVariations(t *testing.T) {
	got := FilterVariations(testVariations(), "Black", "")
	require.Len(t, got, 2)
	assert.Equal(t, "CAP-BLK-M", got[0].SKU)
	assert.Equal(t, "CAP-BLK-L", got[1].SKU)

	assert.Empty(t, FilterVariations(testVariations(), "Red", ""))
}

func TestProductAddVariationEnforcesUniquePair(t *testing.T) {
	p := &Product{Name: "Trucker Cap", BasePrice: decimal.RequireFromString("29.90")}
	require.NoError(t, p.AddVariation(Variation{Color: "Black", Size: "M", Quantity: 5}))

	err := p.AddVariation(Variation{Color: "black", Size: "m", Quantity: 3})
	require.ErrorIs(t, err, ErrVariationExists)
	assert.Len(t, p.Variations, 1)

	err = p.AddVariation(Variation{Color: "Black", Size: "L", Quantity: -1})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestProductEffectivePrice(t *testing.T) {
	p := &Product{
		BasePrice: decimal.RequireFromString("100.00"),
		Tiers:     []PricingTier{qtyTier(10, 50, "80.00")},
	}
	assert.Equal(t, "80.00", p.EffectivePrice(PriceContext{Quantity: 20}).StringFixed(2))
	assert.Equal(t, "100.00", p.EffectivePrice(PriceContext{Quantity: 5}).StringFixed(2))
}

func TestProductTagList(t *testing.T) {
	p := &Product{Tags: "caps, summer,  new "}
	assert.Equal(t, []string{"caps", "summer", "new"}, p.TagList())
	assert.Nil(t, (&Product{}).TagList())
}
