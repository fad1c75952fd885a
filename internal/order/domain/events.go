package domain

import "time"

// 订单事件主题
const (
	OrderPlacedEventType    = "order.placed"
	OrderPaidEventType      = "order.paid"
	OrderShippedEventType   = "order.shipped"
	OrderDeliveredEventType = "order.delivered"
	OrderCancelledEventType = "order.cancelled"
)

// OrderPlacedItem 下单事件中的行摘要，目录服务按此扣减库存。
type OrderPlacedItem struct {
	VariationID uint `json:"variation_id"`
	Quantity    int  `json:"quantity"`
}

// OrderPlacedEvent 下单事件
type OrderPlacedEvent struct {
	OrderID     uint              `json:"order_id"`
	OrderNo     string            `json:"order_no"`
	UserID      uint              `json:"user_id"`
	TotalAmount string            `json:"total_amount"`
	Items       []OrderPlacedItem `json:"items"`
	Timestamp   time.Time         `json:"timestamp"`
}

// OrderStatusChangedEvent 订单状态变更事件，
// paid/shipped/delivered/cancelled 共用一个载荷。
type OrderStatusChangedEvent struct {
	OrderID   uint        `json:"order_id"`
	OrderNo   string      `json:"order_no"`
	UserID    uint        `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}
