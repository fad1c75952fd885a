package domain

import "errors"

// 目录域错误都是返回值，调用方按哨兵分支处理，没有任何一种是致命的。
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnpublished = errors.New("product not published")
	ErrVariationNotFound  = errors.New("variation not found")
	ErrVariationExists    = errors.New("variation with same color and size already exists")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidTierRange   = errors.New("pricing tier range is invalid")
	ErrInsufficientStock  = errors.New("insufficient stock")
)
