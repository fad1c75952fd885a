package domain

import "context"

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// Publish 发布一个普通事件（非事务内）
	Publish(ctx context.Context, topic string, key string, event any) error
	// PublishInTx 在数据库事务内通过 Outbox 发布事件
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
