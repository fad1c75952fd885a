package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// VariationQuote 目录服务对一个款式在给定数量下的报价
type VariationQuote struct {
	ProductID   uint
	VariationID uint
	ProductName string
	Color       string
	Size        string
	SKU         string
	Stock       int
	UnitPrice   decimal.Decimal
}

// CatalogGateway 目录服务防腐层。
// 报价失败不应让购物车读路径整体失败，调用方自行降级到快照价。
type CatalogGateway interface {
	QuoteSelection(ctx context.Context, productID uint, color, size string, quantity int) (*VariationQuote, error)
	QuoteVariation(ctx context.Context, variationID uint, quantity int) (*VariationQuote, error)
}
