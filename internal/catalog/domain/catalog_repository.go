package domain

import "context"

// ProductFilter 列表查询条件
type ProductFilter struct {
	Category      string
	VendorID      uint
	OnlyPublished bool
	Offset        int
	Limit         int
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, product *Product) error
	// GetByID 返回带款式与定价规则的完整聚合，未找到时返回 (nil, nil)。
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
	SaveVariation(ctx context.Context, v *Variation) error
	GetVariation(ctx context.Context, id uint) (*Variation, error)
	UpdateVariationStock(ctx context.Context, id uint, quantity int) error
	SaveTier(ctx context.Context, t *PricingTier) error
}

// ProductCache 商品详情缓存接口
type ProductCache interface {
	Get(ctx context.Context, id uint) (*Product, error)
	Set(ctx context.Context, product *Product) error
	Invalidate(ctx context.Context, id uint) error
}

// ProductSearchRepository 商品搜索仓储接口
type ProductSearchRepository interface {
	Index(ctx context.Context, product *Product) error
	Search(ctx context.Context, query string, limit int) ([]*Product, error)
}
