package application

import (
	"time"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// 金额在 DTO 边界统一格式化为两位小数，中间计算不做舍入。

// ProductDTO 商品视图
type ProductDTO struct {
	ID            uint           `json:"id"`
	VendorID      uint           `json:"vendor_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	Tags          []string       `json:"tags"`
	BasePrice     string         `json:"base_price"`
	Published     bool           `json:"published"`
	FeaturedImage string         `json:"featured_image,omitempty"`
	Variations    []VariationDTO `json:"variations,omitempty"`
	Tiers         []TierDTO      `json:"tiers,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// VariationDTO 款式视图
type VariationDTO struct {
	ID       uint   `json:"id"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	SKU      string `json:"sku"`
	Barcode  string `json:"barcode,omitempty"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url,omitempty"`
	InStock  bool   `json:"in_stock"`
}

// TierDTO 定价规则视图
type TierDTO struct {
	ID           uint            `json:"id"`
	Type         domain.TierType `json:"type"`
	FromQuantity int             `json:"from_quantity,omitempty"`
	ToQuantity   int             `json:"to_quantity,omitempty"`
	StartsAt     *time.Time      `json:"starts_at,omitempty"`
	EndsAt       *time.Time      `json:"ends_at,omitempty"`
	Amount       string          `json:"amount"`
}

// SelectionQuote 针对一次买家选择的报价结果，供购物车/订单服务消费。
type SelectionQuote struct {
	ProductID   uint   `json:"product_id"`
	VariationID uint   `json:"variation_id"`
	ProductName string `json:"product_name"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	BasePrice   string `json:"base_price"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

func toProductDTO(p *domain.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:            p.ID,
		VendorID:      p.VendorID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Tags:          p.TagList(),
		BasePrice:     p.BasePrice.StringFixed(2),
		Published:     p.Published,
		FeaturedImage: p.FeaturedImage,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for i := range p.Variations {
		dto.Variations = append(dto.Variations, toVariationDTO(&p.Variations[i]))
	}
	for i := range p.Tiers {
		dto.Tiers = append(dto.Tiers, toTierDTO(&p.Tiers[i]))
	}
	return dto
}

func toVariationDTO(v *domain.Variation) VariationDTO {
	return VariationDTO{
		ID:       v.ID,
		Color:    v.Color,
		Size:     v.Size,
		SKU:      v.SKU,
		Barcode:  v.Barcode,
		Quantity: v.Quantity,
		ImageURL: v.ImageURL,
		InStock:  v.InStock(),
	}
}

func toTierDTO(t *domain.PricingTier) TierDTO {
	dto := TierDTO{
		ID:     t.ID,
		Type:   t.Type,
		Amount: t.Amount.StringFixed(2),
	}
	switch t.Type {
	case domain.TierQuantity:
		dto.FromQuantity = t.FromQuantity
		dto.ToQuantity = t.ToQuantity
	case domain.TierDate:
		starts, ends := t.StartsAt, t.EndsAt
		dto.StartsAt = &starts
		dto.EndsAt = &ends
	}
	return dto
}
