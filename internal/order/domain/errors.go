package domain

import "errors"

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyOrder 结算时购物车为空
	ErrEmptyOrder = errors.New("order has no items")
	// ErrInvalidQuantity 订单行数量必须为正
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidTransition 当前状态不允许该操作
	ErrInvalidTransition = errors.New("invalid order status transition")
)
