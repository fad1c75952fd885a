package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// AddItemCommand 按颜色/尺码选择把款式加入购物车
type AddItemCommand struct {
	UserID    uint
	ProductID uint
	Color     string
	Size      string
	Quantity  int
}

// UpdateItemCommand 修改购物车中某款式的数量
type UpdateItemCommand struct {
	UserID      uint
	VariationID uint
	Quantity    int
}

// RemoveItemCommand 从购物车移除款式
type RemoveItemCommand struct {
	UserID      uint
	VariationID uint
}

// CartCommandService 购物车命令服务
type CartCommandService struct {
	repo      domain.CartRepository
	catalog   domain.CatalogGateway
	publisher domain.EventPublisher
}

// NewCartCommandService 创建购物车命令服务实例
func NewCartCommandService(
	repo domain.CartRepository,
	catalog domain.CatalogGateway,
	publisher domain.EventPublisher,
) *CartCommandService {
	return &CartCommandService{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
	}
}

// AddItem 处理加入购物车。
// 先向目录服务解析款式并取报价与库存，再合并入购物车。
func (s *CartCommandService) AddItem(ctx context.Context, cmd AddItemCommand) (*AddItemResult, error) {
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	quote, err := s.catalog.QuoteSelection(ctx, cmd.ProductID, cmd.Color, cmd.Size, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	item := domain.CartItem{
		ProductID:   quote.ProductID,
		VariationID: quote.VariationID,
		ProductName: quote.ProductName,
		Color:       quote.Color,
		Size:        quote.Size,
		SKU:         quote.SKU,
		UnitPrice:   quote.UnitPrice,
		Quantity:    cmd.Quantity,
	}

	var result AddItemResult
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.repo.GetByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &domain.Cart{UserID: cmd.UserID}
		}

		clamped, err := cart.AddItem(item, quote.Stock)
		if err != nil {
			return err
		}
		if err := s.repo.Save(txCtx, cart); err != nil {
			return err
		}

		quantity := item.Quantity
		for i := range cart.Items {
			if cart.Items[i].VariationID == item.VariationID {
				quantity = cart.Items[i].Quantity
			}
		}
		result = AddItemResult{
			CartID:      cart.ID,
			VariationID: item.VariationID,
			Quantity:    quantity,
			Clamped:     clamped,
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.CartItemAddedEvent{
			CartID:      cart.ID,
			UserID:      cart.UserID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Clamped:     clamped,
			Timestamp:   time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.CartItemAddedEventType, userKey(cmd.UserID), event)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateQuantity 处理改量，同样以目录服务的实时库存收敛。
func (s *CartCommandService) UpdateQuantity(ctx context.Context, cmd UpdateItemCommand) (*AddItemResult, error) {
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	quote, err := s.catalog.QuoteVariation(ctx, cmd.VariationID, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	var result AddItemResult
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.repo.GetByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrItemNotFound
		}

		clamped, err := cart.UpdateQuantity(cmd.VariationID, cmd.Quantity, quote.Stock)
		if err != nil {
			return err
		}
		if err := s.repo.Save(txCtx, cart); err != nil {
			return err
		}

		quantity := cmd.Quantity
		for i := range cart.Items {
			if cart.Items[i].VariationID == cmd.VariationID {
				quantity = cart.Items[i].Quantity
			}
		}
		result = AddItemResult{
			CartID:      cart.ID,
			VariationID: cmd.VariationID,
			Quantity:    quantity,
			Clamped:     clamped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveItem 处理移除款式
func (s *CartCommandService) RemoveItem(ctx context.Context, cmd RemoveItemCommand) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.repo.GetByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrItemNotFound
		}
		if err := cart.RemoveItem(cmd.VariationID); err != nil {
			return err
		}
		if err := s.repo.DeleteItem(txCtx, cart.ID, cmd.VariationID); err != nil {
			return err
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.CartItemRemovedEvent{
			CartID:      cart.ID,
			UserID:      cart.UserID,
			VariationID: cmd.VariationID,
			Timestamp:   time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.CartItemRemovedEventType, userKey(cmd.UserID), event)
	})
}

// ClearCart 处理清空购物车，下单成功后由订单服务调用。
func (s *CartCommandService) ClearCart(ctx context.Context, userID uint, reason string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.repo.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return nil
		}
		if err := s.repo.Clear(txCtx, userID); err != nil {
			return err
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.CartClearedEvent{
			CartID:    cart.ID,
			UserID:    cart.UserID,
			Reason:    reason,
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.CartClearedEventType, userKey(userID), event)
	})
}

func userKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
