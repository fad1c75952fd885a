package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

// CheckoutCommand 从购物车结算下单命令
type CheckoutCommand struct {
	UserID          uint
	ShippingAddress string
}

// OrderCommandService 订单命令服务
type OrderCommandService struct {
	repo      domain.OrderRepository
	cart      domain.CartGateway
	search    domain.OrderSearchRepository
	publisher domain.EventPublisher
}

// NewOrderCommandService 创建订单命令服务实例
func NewOrderCommandService(
	repo domain.OrderRepository,
	cart domain.CartGateway,
	search domain.OrderSearchRepository,
	publisher domain.EventPublisher,
) *OrderCommandService {
	return &OrderCommandService{
		repo:      repo,
		cart:      cart,
		search:    search,
		publisher: publisher,
	}
}

// Checkout 处理结算下单。
// 取购物车快照生成订单并在同一事务内写入 order.placed 事件；
// 提交后清空购物车，清空失败只告警。
func (s *OrderCommandService) Checkout(ctx context.Context, cmd CheckoutCommand) (*OrderDTO, error) {
	snapshot, err := s.cart.GetCart(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil || len(snapshot.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, domain.OrderItem{
			ProductID:   line.ProductID,
			VariationID: line.VariationID,
			ProductName: line.ProductName,
			Color:       line.Color,
			Size:        line.Size,
			SKU:         line.SKU,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}

	orderNo := fmt.Sprintf("SO%s", idgen.GenShortID(16))
	order, err := domain.NewOrder(orderNo, cmd.UserID, cmd.ShippingAddress, items)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.OrderPlacedEvent{
			OrderID:     order.ID,
			OrderNo:     order.OrderNo,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount.StringFixed(2),
			Items:       make([]domain.OrderPlacedItem, 0, len(order.Items)),
			Timestamp:   time.Now(),
		}
		for i := range order.Items {
			event.Items = append(event.Items, domain.OrderPlacedItem{
				VariationID: order.Items[i].VariationID,
				Quantity:    order.Items[i].Quantity,
			})
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.OrderPlacedEventType, order.OrderNo, event)
	})
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, cmd.UserID, "checkout"); err != nil {
		logging.Warn(ctx, "failed to clear cart after checkout",
			"user_id", cmd.UserID, "order_no", order.OrderNo, "error", err)
	}
	s.indexOrder(ctx, order)

	return toOrderDTO(order), nil
}

// MarkPaid 标记支付完成
func (s *OrderCommandService) MarkPaid(ctx context.Context, orderNo string) error {
	return s.transition(ctx, orderNo, domain.OrderPaidEventType, func(o *domain.Order) error {
		return o.MarkPaid(time.Now())
	})
}

// Ship 标记发货
func (s *OrderCommandService) Ship(ctx context.Context, orderNo string) error {
	return s.transition(ctx, orderNo, domain.OrderShippedEventType, func(o *domain.Order) error {
		return o.Ship(time.Now())
	})
}

// Deliver 标记送达
func (s *OrderCommandService) Deliver(ctx context.Context, orderNo string) error {
	return s.transition(ctx, orderNo, domain.OrderDeliveredEventType, func(o *domain.Order) error {
		return o.Deliver(time.Now())
	})
}

// Cancel 取消订单
func (s *OrderCommandService) Cancel(ctx context.Context, orderNo string) error {
	return s.transition(ctx, orderNo, domain.OrderCancelledEventType, func(o *domain.Order) error {
		return o.Cancel(time.Now())
	})
}

func (s *OrderCommandService) transition(ctx context.Context, orderNo, topic string, apply func(*domain.Order) error) error {
	var order *domain.Order
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.repo.GetByOrderNo(txCtx, orderNo)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if err := apply(order); err != nil {
			return err
		}
		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.OrderStatusChangedEvent{
			OrderID:   order.ID,
			OrderNo:   order.OrderNo,
			UserID:    order.UserID,
			Status:    order.Status,
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), topic, order.OrderNo, event)
	})
	if err != nil {
		return err
	}

	s.indexOrder(ctx, order)
	return nil
}

// indexOrder 同步搜索索引，尽力而为。
func (s *OrderCommandService) indexOrder(ctx context.Context, order *domain.Order) {
	if s.search == nil || order == nil {
		return
	}
	if err := s.search.Index(ctx, order); err != nil {
		logging.Warn(ctx, "failed to index order", "order_no", order.OrderNo, "error", err)
	}
}
