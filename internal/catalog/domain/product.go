package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品聚合根
// 一个商品独占其下的所有款式（Variation）和动态定价规则（PricingTier）。
type Product struct {
	gorm.Model
	VendorID      uint            `gorm:"column:vendor_id;index;not null" json:"vendor_id"`
	Name          string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"column:description;type:text" json:"description"`
	Category      string          `gorm:"column:category;type:varchar(100);index" json:"category"`
	Tags          string          `gorm:"column:tags;type:varchar(500)" json:"tags"`
	BasePrice     decimal.Decimal `gorm:"column:base_price;type:decimal(12,2);not null" json:"base_price"`
	Published     bool            `gorm:"column:published;default:false;index" json:"published"`
	FeaturedImage string          `gorm:"column:featured_image;type:varchar(500)" json:"featured_image"`
	Variations    []Variation     `gorm:"foreignKey:ProductID" json:"variations"`
	Tiers         []PricingTier   `gorm:"foreignKey:ProductID" json:"tiers"`
}

func (Product) TableName() string { return "products" }

// TagList 将逗号分隔的标签列拆为集合
func (p *Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// EffectivePrice 返回给定上下文下的有效单价
func (p *Product) EffectivePrice(ctx PriceContext) decimal.Decimal {
	return ResolvePrice(p.BasePrice, p.Tiers, ctx)
}

// AddVariation 向商品追加一个款式。
// 同一商品下 (color, size) 必须唯一，重复时返回 ErrVariationExists。
func (p *Product) AddVariation(v Variation) error {
	if v.Quantity < 0 {
		return ErrInvalidQuantity
	}
	for i := range p.Variations {
		if p.Variations[i].SameDimensions(v.Color, v.Size) {
			return ErrVariationExists
		}
	}
	v.ProductID = p.ID
	p.Variations = append(p.Variations, v)
	return nil
}

// AddTier 向商品追加一条定价规则，边界非法时返回 ErrInvalidTierRange。
func (p *Product) AddTier(t PricingTier) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.ProductID = p.ID
	p.Tiers = append(p.Tiers, t)
	return nil
}
