package domain

import "context"

// OrderRepository 订单仓储接口
type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, order *Order) error
	// GetByID 返回带订单行的完整聚合，未找到时返回 (nil, nil)。
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*Order, int64, error)
}

// OrderSearchRepository 订单搜索仓储接口
type OrderSearchRepository interface {
	Index(ctx context.Context, order *Order) error
	Search(ctx context.Context, userID uint, status OrderStatus, keyword string, limit int) ([]*Order, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
