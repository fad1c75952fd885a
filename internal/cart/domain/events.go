package domain

import "time"

// 购物车事件主题
const (
	CartItemAddedEventType   = "cart.item.added"
	CartItemRemovedEventType = "cart.item.removed"
	CartClearedEventType     = "cart.cleared"
)

// CartItemAddedEvent 购物车添加款式事件
type CartItemAddedEvent struct {
	CartID      uint      `json:"cart_id"`
	UserID      uint      `json:"user_id"`
	ProductID   uint      `json:"product_id"`
	VariationID uint      `json:"variation_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Clamped     bool      `json:"clamped"`
	Timestamp   time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 购物车移除款式事件
type CartItemRemovedEvent struct {
	CartID      uint      `json:"cart_id"`
	UserID      uint      `json:"user_id"`
	VariationID uint      `json:"variation_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	CartID    uint      `json:"cart_id"`
	UserID    uint      `json:"user_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
