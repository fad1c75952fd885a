package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextx.WithTx(ctx, tx)
		return fn(txCtx)
	})
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	db := r.getDB(ctx)
	if product.ID == 0 {
		return db.WithContext(ctx).Omit("Variations", "Tiers").Create(product).Error
	}
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":           product.Name,
			"description":    product.Description,
			"category":       product.Category,
			"tags":           product.Tags,
			"base_price":     product.BasePrice,
			"published":      product.Published,
			"featured_image": product.FeaturedImage,
		}).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.getDB(ctx).WithContext(ctx).
		Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	var total int64

	q := r.getDB(ctx).WithContext(ctx).Model(&domain.Product{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.VendorID != 0 {
		q = q.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.OnlyPublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&products).Error
	return products, total, err
}

func (r *productRepository) SaveVariation(ctx context.Context, v *domain.Variation) error {
	return r.getDB(ctx).WithContext(ctx).Save(v).Error
}

func (r *productRepository) GetVariation(ctx context.Context, id uint) (*domain.Variation, error) {
	var v domain.Variation
	err := r.getDB(ctx).WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *productRepository) UpdateVariationStock(ctx context.Context, id uint, quantity int) error {
	return r.getDB(ctx).WithContext(ctx).
		Model(&domain.Variation{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *productRepository) SaveTier(ctx context.Context, t *domain.PricingTier) error {
	return r.getDB(ctx).WithContext(ctx).Save(t).Error
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
