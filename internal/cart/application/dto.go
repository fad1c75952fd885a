package application

import (
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartItemDTO 购物车条目视图。
// SnapshotPrice 是加入时的价格，UnitPrice 是目录服务当前报价，
// 报价不可用时两者相同。
type CartItemDTO struct {
	ProductID     uint   `json:"product_id"`
	VariationID   uint   `json:"variation_id"`
	ProductName   string `json:"product_name"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	SKU           string `json:"sku"`
	SnapshotPrice string `json:"snapshot_price"`
	UnitPrice     string `json:"unit_price"`
	LineTotal     string `json:"line_total"`
	Quantity      int    `json:"quantity"`
	Stock         int    `json:"stock,omitempty"`
}

// CartDTO 购物车视图
type CartDTO struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Items     []CartItemDTO `json:"items"`
	Subtotal  string        `json:"subtotal"`
	ItemCount int           `json:"item_count"`
}

// AddItemResult 加入购物车的结果。
// Clamped 表示请求数量超过库存，已被收敛。
type AddItemResult struct {
	CartID      uint `json:"cart_id"`
	VariationID uint `json:"variation_id"`
	Quantity    int  `json:"quantity"`
	Clamped     bool `json:"clamped"`
}

func toCartItemDTO(item *domain.CartItem) CartItemDTO {
	return CartItemDTO{
		ProductID:     item.ProductID,
		VariationID:   item.VariationID,
		ProductName:   item.ProductName,
		Color:         item.Color,
		Size:          item.Size,
		SKU:           item.SKU,
		SnapshotPrice: item.UnitPrice.StringFixed(2),
		UnitPrice:     item.UnitPrice.StringFixed(2),
		LineTotal:     item.LineTotal().StringFixed(2),
		Quantity:      item.Quantity,
	}
}
