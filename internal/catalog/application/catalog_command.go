package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	VendorID      uint
	Name          string
	Description   string
	Category      string
	Tags          string
	BasePrice     decimal.Decimal
	FeaturedImage string
}

// UpdateProductCommand 更新商品命令
type UpdateProductCommand struct {
	ProductID     uint
	Name          string
	Description   string
	Category      string
	Tags          string
	BasePrice     decimal.Decimal
	FeaturedImage string
}

// AddVariationCommand 新增款式命令
type AddVariationCommand struct {
	ProductID uint
	Color     string
	Size      string
	SKU       string
	Barcode   string
	Quantity  int
	ImageURL  string
}

// AddTierCommand 新增定价规则命令
type AddTierCommand struct {
	ProductID    uint
	Type         domain.TierType
	FromQuantity int
	ToQuantity   int
	StartsAt     time.Time
	EndsAt       time.Time
	Amount       decimal.Decimal
}

// AdjustStockCommand 调整款式库存命令，Delta 可为负。
type AdjustStockCommand struct {
	VariationID uint
	Delta       int
	Reason      string
}

// CatalogCommandService 目录命令服务
type CatalogCommandService struct {
	repo      domain.ProductRepository
	cache     domain.ProductCache
	search    domain.ProductSearchRepository
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建目录命令服务实例
func NewCatalogCommandService(
	repo domain.ProductRepository,
	cache domain.ProductCache,
	search domain.ProductSearchRepository,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		cache:     cache,
		search:    search,
		publisher: publisher,
	}
}

// CreateProduct 处理创建商品
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	if cmd.BasePrice.IsNegative() {
		return 0, domain.ErrInvalidTierRange
	}
	product := &domain.Product{
		VendorID:      cmd.VendorID,
		Name:          cmd.Name,
		Description:   cmd.Description,
		Category:      cmd.Category,
		Tags:          cmd.Tags,
		BasePrice:     cmd.BasePrice,
		FeaturedImage: cmd.FeaturedImage,
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, product); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.ProductCreatedEvent{
			ProductID: product.ID,
			VendorID:  product.VendorID,
			Name:      product.Name,
			Category:  product.Category,
			BasePrice: product.BasePrice.StringFixed(2),
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.ProductCreatedEventType, keyFor(product.ID), event)
	})
	if err != nil {
		return 0, err
	}

	s.syncProjections(ctx, product.ID)
	return product.ID, nil
}

// UpdateProduct 处理更新商品
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetByID(txCtx, cmd.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		product.Name = cmd.Name
		product.Description = cmd.Description
		product.Category = cmd.Category
		product.Tags = cmd.Tags
		product.BasePrice = cmd.BasePrice
		product.FeaturedImage = cmd.FeaturedImage
		if err := s.repo.Save(txCtx, product); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.ProductUpdatedEvent{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			BasePrice: product.BasePrice.StringFixed(2),
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.ProductUpdatedEventType, keyFor(product.ID), event)
	})
	if err != nil {
		return err
	}

	s.syncProjections(ctx, cmd.ProductID)
	return nil
}

// SetPublished 处理商品上架/下架
func (s *CatalogCommandService) SetPublished(ctx context.Context, productID uint, published bool) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetByID(txCtx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		product.Published = published
		if err := s.repo.Save(txCtx, product); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.ProductPublishedEvent{
			ProductID: product.ID,
			Published: published,
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.ProductPublishedEventType, keyFor(product.ID), event)
	})
	if err != nil {
		return err
	}

	s.syncProjections(ctx, productID)
	return nil
}

// AddVariation 处理新增款式，(color,size) 在写入时强制唯一。
func (s *CatalogCommandService) AddVariation(ctx context.Context, cmd AddVariationCommand) (uint, error) {
	variation := domain.Variation{
		Color:    cmd.Color,
		Size:     cmd.Size,
		SKU:      cmd.SKU,
		Barcode:  cmd.Barcode,
		Quantity: cmd.Quantity,
		ImageURL: cmd.ImageURL,
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetByID(txCtx, cmd.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if err := product.AddVariation(variation); err != nil {
			return err
		}
		added := &product.Variations[len(product.Variations)-1]
		if err := s.repo.SaveVariation(txCtx, added); err != nil {
			return err
		}
		variation = *added
		if s.publisher == nil {
			return nil
		}
		event := domain.VariationAddedEvent{
			ProductID:   product.ID,
			VariationID: added.ID,
			Color:       added.Color,
			Size:        added.Size,
			SKU:         added.SKU,
			Quantity:    added.Quantity,
			Timestamp:   time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.VariationAddedEventType, keyFor(product.ID), event)
	})
	if err != nil {
		return 0, err
	}

	s.syncProjections(ctx, cmd.ProductID)
	return variation.ID, nil
}

// AddTier 处理新增定价规则，from > to 在录入边界被拒绝。
func (s *CatalogCommandService) AddTier(ctx context.Context, cmd AddTierCommand) (uint, error) {
	tier := domain.PricingTier{
		Type:         cmd.Type,
		FromQuantity: cmd.FromQuantity,
		ToQuantity:   cmd.ToQuantity,
		StartsAt:     cmd.StartsAt,
		EndsAt:       cmd.EndsAt,
		Amount:       cmd.Amount,
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetByID(txCtx, cmd.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if err := product.AddTier(tier); err != nil {
			return err
		}
		added := &product.Tiers[len(product.Tiers)-1]
		if err := s.repo.SaveTier(txCtx, added); err != nil {
			return err
		}
		tier = *added
		if s.publisher == nil {
			return nil
		}
		event := domain.TierAddedEvent{
			ProductID: product.ID,
			TierID:    added.ID,
			Type:      added.Type,
			Amount:    added.Amount.StringFixed(2),
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.TierAddedEventType, keyFor(product.ID), event)
	})
	if err != nil {
		return 0, err
	}

	s.syncProjections(ctx, cmd.ProductID)
	return tier.ID, nil
}

// AdjustStock 处理库存调整，库存不允许降到 0 以下。
func (s *CatalogCommandService) AdjustStock(ctx context.Context, cmd AdjustStockCommand) error {
	var productID uint
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		variation, err := s.repo.GetVariation(txCtx, cmd.VariationID)
		if err != nil {
			return err
		}
		if variation == nil {
			return domain.ErrVariationNotFound
		}
		newQty := variation.Quantity + cmd.Delta
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		oldQty := variation.Quantity
		productID = variation.ProductID
		if err := s.repo.UpdateVariationStock(txCtx, variation.ID, newQty); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.StockChangedEvent{
			ProductID:   variation.ProductID,
			VariationID: variation.ID,
			OldQuantity: oldQty,
			NewQuantity: newQty,
			Reason:      cmd.Reason,
			Timestamp:   time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.StockChangedEventType, keyFor(variation.ProductID), event)
	})
	if err != nil {
		return err
	}

	s.syncProjections(ctx, productID)
	return nil
}

// DeductStockForOrder 消费订单事件扣减库存。
// 超卖（事件数量大于剩余库存）降级为清零并告警，不让投影停摆。
func (s *CatalogCommandService) DeductStockForOrder(ctx context.Context, variationID uint, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	var productID uint
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		variation, err := s.repo.GetVariation(txCtx, variationID)
		if err != nil {
			return err
		}
		if variation == nil {
			return domain.ErrVariationNotFound
		}
		newQty := variation.Quantity - quantity
		if newQty < 0 {
			logging.Warn(ctx, "order deduction exceeds stock, clamping to zero",
				"variation_id", variationID,
				"stock", variation.Quantity,
				"requested", quantity,
			)
			newQty = 0
		}
		productID = variation.ProductID
		return s.repo.UpdateVariationStock(txCtx, variation.ID, newQty)
	})
	if err != nil {
		return err
	}

	s.syncProjections(ctx, productID)
	return nil
}

// syncProjections 事务提交后同步缓存与搜索索引，尽力而为。
func (s *CatalogCommandService) syncProjections(ctx context.Context, productID uint) {
	if productID == 0 {
		return
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, productID); err != nil {
			logging.Warn(ctx, "failed to invalidate product cache", "product_id", productID, "error", err)
		}
	}
	if s.search == nil {
		return
	}
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil || product == nil {
		return
	}
	if err := s.search.Index(ctx, product); err != nil {
		logging.Warn(ctx, "failed to index product", "product_id", productID, "error", err)
	}
}
