package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartQueryService 购物车查询服务
type CartQueryService struct {
	repo    domain.CartRepository
	catalog domain.CatalogGateway
}

// NewCartQueryService 创建购物车查询服务实例
func NewCartQueryService(repo domain.CartRepository, catalog domain.CatalogGateway) *CartQueryService {
	return &CartQueryService{repo: repo, catalog: catalog}
}

// GetCart 返回购物车视图。
// 每个条目向目录服务取当前报价，合计按当前价计算；
// 目录服务不可用时降级到加入时的快照价。
func (s *CartQueryService) GetCart(ctx context.Context, userID uint) (*CartDTO, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartDTO{UserID: userID, Items: []CartItemDTO{}, Subtotal: "0.00"}, nil
	}

	dto := &CartDTO{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]CartItemDTO, 0, len(cart.Items)),
	}
	subtotal := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		itemDTO := toCartItemDTO(item)

		unitPrice := item.UnitPrice
		if s.catalog != nil {
			quote, err := s.catalog.QuoteVariation(ctx, item.VariationID, item.Quantity)
			if err != nil {
				logging.Warn(ctx, "failed to re-quote cart item, falling back to snapshot price",
					"variation_id", item.VariationID, "error", err)
			} else {
				unitPrice = quote.UnitPrice
				itemDTO.UnitPrice = quote.UnitPrice.StringFixed(2)
				itemDTO.Stock = quote.Stock
			}
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemDTO.LineTotal = lineTotal.StringFixed(2)
		subtotal = subtotal.Add(lineTotal)

		dto.Items = append(dto.Items, itemDTO)
		dto.ItemCount += item.Quantity
	}
	dto.Subtotal = subtotal.StringFixed(2)
	return dto, nil
}
