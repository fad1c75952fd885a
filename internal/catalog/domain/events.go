package domain

import "time"

// 事件主题
const (
	ProductCreatedEventType   = "catalog.product.created"
	ProductUpdatedEventType   = "catalog.product.updated"
	ProductPublishedEventType = "catalog.product.published"
	VariationAddedEventType   = "catalog.variation.added"
	StockChangedEventType     = "catalog.stock.changed"
	TierAddedEventType        = "catalog.tier.added"
)

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID uint      `json:"product_id"`
	VendorID  uint      `json:"vendor_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	BasePrice string    `json:"base_price"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductUpdatedEvent 商品更新事件
type ProductUpdatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	BasePrice string    `json:"base_price"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductPublishedEvent 商品上架/下架事件
type ProductPublishedEvent struct {
	ProductID uint      `json:"product_id"`
	Published bool      `json:"published"`
	Timestamp time.Time `json:"timestamp"`
}

// VariationAddedEvent 款式新增事件
type VariationAddedEvent struct {
	ProductID   uint      `json:"product_id"`
	VariationID uint      `json:"variation_id"`
	Color       string    `json:"color"`
	Size        string    `json:"size"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// StockChangedEvent 库存变更事件
type StockChangedEvent struct {
	ProductID   uint      `json:"product_id"`
	VariationID uint      `json:"variation_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
}

// TierAddedEvent 定价规则新增事件
type TierAddedEvent struct {
	ProductID uint      `json:"product_id"`
	TierID    uint      `json:"tier_id"`
	Type      TierType  `json:"type"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
