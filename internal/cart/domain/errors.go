package domain

import "errors"

var (
	// ErrInvalidQuantity 数量必须为正
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrOutOfStock 款式当前没有库存
	ErrOutOfStock = errors.New("variation out of stock")
	// ErrItemNotFound 购物车中没有该款式
	ErrItemNotFound = errors.New("cart item not found")
	// ErrSelectionNotFound 目录服务无法解析该商品/颜色/尺码组合
	ErrSelectionNotFound = errors.New("selection not found")
	// ErrSelectionUnavailable 商品存在但当前不可售（如未上架）
	ErrSelectionUnavailable = errors.New("selection unavailable")
)
