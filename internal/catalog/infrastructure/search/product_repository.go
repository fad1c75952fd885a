package search

import (
	"context"
	"encoding/json"
	"strconv"

	search_pkg "github.com/wyfcoding/pkg/search"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

type productSearchRepository struct {
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

func NewProductSearchRepository(client *search_pkg.Client, index string) domain.ProductSearchRepository {
	if client == nil {
		return nil
	}
	if index == "" {
		index = "products"
	}
	return &productSearchRepository{client: client, index: index}
}

func (r *productSearchRepository) Index(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == 0 {
		return nil
	}
	return r.client.Index(ctx, r.index, strconv.FormatUint(uint64(product.ID), 10), product)
}

func (r *productSearchRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Product, error) {
	esQuery := buildProductQuery(query, limit)
	var resp esSearchResponse
	if err := r.client.Search(ctx, r.index, esQuery, &resp); err != nil {
		return nil, err
	}
	results := make([]*domain.Product, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var p domain.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			continue
		}
		results = append(results, &p)
	}
	return results, nil
}

func buildProductQuery(keyword string, limit int) map[string]any {
	query := map[string]any{
		"size": limit,
		"sort": []map[string]any{{"updated_at": map[string]any{"order": "desc"}}},
	}
	if keyword == "" {
		query["query"] = map[string]any{"match_all": map[string]any{}}
		return query
	}
	query["query"] = map[string]any{
		"bool": map[string]any{
			"must": []map[string]any{
				{"multi_match": map[string]any{
					"query":  keyword,
					"fields": []string{"name^3", "description", "category", "tags"},
				}},
			},
			"filter": []map[string]any{
				{"term": map[string]any{"published": true}},
			},
		},
	}
	return query
}
