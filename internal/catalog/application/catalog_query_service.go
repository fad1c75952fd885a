package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

func keyFor(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// CatalogQueryService 目录查询服务
type CatalogQueryService struct {
	repo   domain.ProductRepository
	cache  domain.ProductCache
	search domain.ProductSearchRepository
}

// NewCatalogQueryService 创建目录查询服务实例
func NewCatalogQueryService(
	repo domain.ProductRepository,
	cache domain.ProductCache,
	search domain.ProductSearchRepository,
) *CatalogQueryService {
	return &CatalogQueryService{repo: repo, cache: cache, search: search}
}

// GetProduct 获取商品详情，缓存读穿透。
func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

// ListProducts 分页列出商品
func (s *CatalogQueryService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*ProductDTO, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	return dtos, total, nil
}

// SearchProducts 全文搜索商品
func (s *CatalogQueryService) SearchProducts(ctx context.Context, query string, limit int) ([]*ProductDTO, error) {
	if s.search == nil || query == "" {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	products, err := s.search.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]*ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	return dtos, nil
}

// QuoteSelection 解析买家的颜色/尺码选择并给出该数量下的有效单价。
// 这是款式选择器和价格解析器对外的组合入口。
func (s *CatalogQueryService) QuoteSelection(ctx context.Context, productID uint, color, size string, quantity int) (*SelectionQuote, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Published {
		return nil, domain.ErrProductUnpublished
	}
	variation, err := domain.SelectVariation(product.Variations, color, size)
	if err != nil {
		return nil, err
	}
	return s.quote(product, variation, quantity), nil
}

// QuoteVariation 按款式 ID 直接报价，供购物车改量等已知款式的调用方使用。
func (s *CatalogQueryService) QuoteVariation(ctx context.Context, variationID uint, quantity int) (*SelectionQuote, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	variation, err := s.repo.GetVariation(ctx, variationID)
	if err != nil {
		return nil, err
	}
	if variation == nil {
		return nil, domain.ErrVariationNotFound
	}
	product, err := s.loadProduct(ctx, variation.ProductID)
	if err != nil {
		return nil, err
	}
	return s.quote(product, variation, quantity), nil
}

func (s *CatalogQueryService) quote(product *domain.Product, variation *domain.Variation, quantity int) *SelectionQuote {
	unit := product.EffectivePrice(domain.PriceContext{Quantity: quantity, At: time.Now()})
	return &SelectionQuote{
		ProductID:   product.ID,
		VariationID: variation.ID,
		ProductName: product.Name,
		Color:       variation.Color,
		Size:        variation.Size,
		SKU:         variation.SKU,
		Stock:       variation.Quantity,
		BasePrice:   product.BasePrice.StringFixed(2),
		UnitPrice:   unit.StringFixed(2),
		Quantity:    quantity,
	}
}

func (s *CatalogQueryService) loadProduct(ctx context.Context, id uint) (*domain.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			logging.Warn(ctx, "failed to cache product", "product_id", id, "error", err)
		}
	}
	return product, nil
}
