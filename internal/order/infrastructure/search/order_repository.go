package search

import (
	"context"
	"encoding/json"
	"strconv"

	search_pkg "github.com/wyfcoding/pkg/search"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

type orderSearchRepository struct {
	client *search_pkg.Client
	index  string
}

// esSearchResponse ES 搜索响应结构
type esSearchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func NewOrderSearchRepository(client *search_pkg.Client, index string) domain.OrderSearchRepository {
	if client == nil {
		return nil
	}
	if index == "" {
		index = "orders"
	}
	return &orderSearchRepository{client: client, index: index}
}

func (r *orderSearchRepository) Index(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ID == 0 {
		return nil
	}
	return r.client.Index(ctx, r.index, strconv.FormatUint(uint64(order.ID), 10), order)
}

func (r *orderSearchRepository) Search(ctx context.Context, userID uint, status domain.OrderStatus, keyword string, limit int) ([]*domain.Order, error) {
	query := buildOrderQuery(userID, status, keyword, limit)
	var resp esSearchResponse
	if err := r.client.Search(ctx, r.index, query, &resp); err != nil {
		return nil, err
	}
	results := make([]*domain.Order, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var o domain.Order
		if err := json.Unmarshal(hit.Source, &o); err != nil {
			continue
		}
		results = append(results, &o)
	}
	return results, nil
}

func buildOrderQuery(userID uint, status domain.OrderStatus, keyword string, limit int) map[string]any {
	must := make([]map[string]any, 0, 3)
	if userID != 0 {
		must = append(must, map[string]any{"term": map[string]any{"user_id": userID}})
	}
	if status != "" {
		must = append(must, map[string]any{"term": map[string]any{"status": status}})
	}
	if keyword != "" {
		must = append(must, map[string]any{"multi_match": map[string]any{
			"query":  keyword,
			"fields": []string{"order_no^3", "items.product_name", "items.sku"},
		}})
	}

	query := map[string]any{
		"size": limit,
		"sort": []map[string]any{{"updated_at": map[string]any{"order": "desc"}}},
	}
	if len(must) == 0 {
		query["query"] = map[string]any{"match_all": map[string]any{}}
		return query
	}
	query["query"] = map[string]any{
		"bool": map[string]any{
			"must": must,
		},
	}
	return query
}
