package application

import (
	"time"

	"github.com/wyfcoding/storefront/internal/order/domain"
)

// OrderItemDTO 订单行视图
type OrderItemDTO struct {
	ProductID   uint   `json:"product_id"`
	VariationID uint   `json:"variation_id"`
	ProductName string `json:"product_name"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	SKU         string `json:"sku"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
	Quantity    int    `json:"quantity"`
}

// OrderDTO 订单视图
type OrderDTO struct {
	ID              uint               `json:"id"`
	OrderNo         string             `json:"order_no"`
	UserID          uint               `json:"user_id"`
	Status          domain.OrderStatus `json:"status"`
	TotalAmount     string             `json:"total_amount"`
	ShippingAddress string             `json:"shipping_address,omitempty"`
	Items           []OrderItemDTO     `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	ShippedAt       *time.Time         `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time         `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time         `json:"cancelled_at,omitempty"`
}

func toOrderDTO(o *domain.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount.StringFixed(2),
		ShippingAddress: o.ShippingAddress,
		Items:           make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		PaidAt:          o.PaidAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			SKU:         item.SKU,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal().StringFixed(2),
			Quantity:    item.Quantity,
		})
	}
	return dto
}
