package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order 订单聚合根
type Order struct {
	gorm.Model
	OrderNo         string          `gorm:"column:order_no;type:varchar(32);uniqueIndex;not null" json:"order_no"`
	UserID          uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	Status          OrderStatus     `gorm:"column:status;type:varchar(16);index;default:'PENDING'" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"column:shipping_address;type:varchar(500)" json:"shipping_address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	PaidAt          *time.Time      `gorm:"column:paid_at" json:"paid_at,omitempty"`
	ShippedAt       *time.Time      `gorm:"column:shipped_at" json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `gorm:"column:delivered_at" json:"delivered_at,omitempty"`
	CancelledAt     *time.Time      `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单行，下单时的款式与价格快照。
type OrderItem struct {
	gorm.Model
	OrderID     uint            `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID   uint            `gorm:"column:product_id;not null" json:"product_id"`
	VariationID uint            `gorm:"column:variation_id;index;not null" json:"variation_id"`
	ProductName string          `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	Color       string          `gorm:"column:color;type:varchar(50)" json:"color"`
	Size        string          `gorm:"column:size;type:varchar(50)" json:"size"`
	SKU         string          `gorm:"column:sku;type:varchar(64)" json:"sku"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal 行小计
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 从结算行构造待支付订单，总额为各行小计之和。
func NewOrder(orderNo string, userID uint, address string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	total := decimal.Zero
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		total = total.Add(items[i].LineTotal())
	}
	return &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Status:          StatusPending,
		TotalAmount:     total,
		ShippingAddress: address,
		Items:           items,
	}, nil
}

// MarkPaid 待支付 → 已支付
func (o *Order) MarkPaid(at time.Time) error {
	if o.Status != StatusPending {
		return ErrInvalidTransition
	}
	o.Status = StatusPaid
	o.PaidAt = &at
	return nil
}

// Ship 已支付 → 已发货
func (o *Order) Ship(at time.Time) error {
	if o.Status != StatusPaid {
		return ErrInvalidTransition
	}
	o.Status = StatusShipped
	o.ShippedAt = &at
	return nil
}

// Deliver 已发货 → 已送达
func (o *Order) Deliver(at time.Time) error {
	if o.Status != StatusShipped {
		return ErrInvalidTransition
	}
	o.Status = StatusDelivered
	o.DeliveredAt = &at
	return nil
}

// Cancel 取消订单。发货后不允许取消。
func (o *Order) Cancel(at time.Time) error {
	if o.Status != StatusPending && o.Status != StatusPaid {
		return ErrInvalidTransition
	}
	o.Status = StatusCancelled
	o.CancelledAt = &at
	return nil
}
