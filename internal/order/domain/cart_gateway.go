package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CartLine 购物车服务返回的一行结算内容
type CartLine struct {
	ProductID   uint
	VariationID uint
	ProductName string
	Color       string
	Size        string
	SKU         string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// CartSnapshot 结算时的购物车快照
type CartSnapshot struct {
	CartID uint
	UserID uint
	Lines  []CartLine
}

// CartGateway 购物车服务防腐层。
// Clear 在下单成功后调用，失败只记录不回滚订单。
type CartGateway interface {
	GetCart(ctx context.Context, userID uint) (*CartSnapshot, error)
	Clear(ctx context.Context, userID uint, reason string) error
}
