package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, user *User) error
	// GetByEmail 未找到时返回 (nil, nil)。
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	ListPendingVendors(ctx context.Context, offset, limit int) ([]*User, int64, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
