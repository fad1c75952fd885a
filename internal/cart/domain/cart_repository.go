package domain

import "context"

// CartRepository 购物车仓储接口
type CartRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// GetByUserID 返回带条目的完整购物车，未找到时返回 (nil, nil)。
	GetByUserID(ctx context.Context, userID uint) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	DeleteItem(ctx context.Context, cartID, variationID uint) error
	Clear(ctx context.Context, userID uint) error
}
