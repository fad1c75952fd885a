package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/order/domain"
)

// OrderQueryService 订单查询服务
type OrderQueryService struct {
	repo   domain.OrderRepository
	search domain.OrderSearchRepository
}

// NewOrderQueryService 创建订单查询服务实例
func NewOrderQueryService(repo domain.OrderRepository, search domain.OrderSearchRepository) *OrderQueryService {
	return &OrderQueryService{repo: repo, search: search}
}

// GetOrder 按 ID 获取订单
func (s *OrderQueryService) GetOrder(ctx context.Context, id uint) (*OrderDTO, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderDTO(order), nil
}

// GetByOrderNo 按订单号获取订单
func (s *OrderQueryService) GetByOrderNo(ctx context.Context, orderNo string) (*OrderDTO, error) {
	order, err := s.repo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderDTO(order), nil
}

// ListUserOrders 分页列出用户订单
func (s *OrderQueryService) ListUserOrders(ctx context.Context, userID uint, offset, limit int) ([]*OrderDTO, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	orders, total, err := s.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toOrderDTO(o)
	}
	return dtos, total, nil
}

// SearchOrders 按状态/关键字搜索订单
func (s *OrderQueryService) SearchOrders(ctx context.Context, userID uint, status domain.OrderStatus, keyword string, limit int) ([]*OrderDTO, error) {
	if s.search == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	orders, err := s.search.Search(ctx, userID, status, keyword, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]*OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toOrderDTO(o)
	}
	return dtos, nil
}
