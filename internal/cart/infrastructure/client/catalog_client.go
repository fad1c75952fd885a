package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// catalogClient 目录服务 REST 客户端，实现 domain.CatalogGateway。
type catalogClient struct {
	http *resty.Client
}

// NewCatalogClient 创建目录服务客户端，baseURL 形如 http://catalog:8080。
func NewCatalogClient(baseURL string) domain.CatalogGateway {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(3 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond)
	return &catalogClient{http: c}
}

// selectionQuoteResponse 目录服务报价接口的响应体
type selectionQuoteResponse struct {
	ProductID   uint   `json:"product_id"`
	VariationID uint   `json:"variation_id"`
	ProductName string `json:"product_name"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

type quoteErrorResponse struct {
	Error string `json:"error"`
}

func (c *catalogClient) QuoteSelection(ctx context.Context, productID uint, color, size string, quantity int) (*domain.VariationQuote, error) {
	var quote selectionQuoteResponse
	var apiErr quoteErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"color":    color,
			"size":     size,
			"quantity": fmt.Sprintf("%d", quantity),
		}).
		SetResult(&quote).
		SetError(&apiErr).
		Get(fmt.Sprintf("/api/v1/products/%d/quote", productID))
	if err != nil {
		return nil, fmt.Errorf("catalog quote request failed: %w", err)
	}
	return toQuote(resp, &quote, &apiErr)
}

func (c *catalogClient) QuoteVariation(ctx context.Context, variationID uint, quantity int) (*domain.VariationQuote, error) {
	var quote selectionQuoteResponse
	var apiErr quoteErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("quantity", fmt.Sprintf("%d", quantity)).
		SetResult(&quote).
		SetError(&apiErr).
		Get(fmt.Sprintf("/api/v1/variations/%d/quote", variationID))
	if err != nil {
		return nil, fmt.Errorf("catalog quote request failed: %w", err)
	}
	return toQuote(resp, &quote, &apiErr)
}

func toQuote(resp *resty.Response, quote *selectionQuoteResponse, apiErr *quoteErrorResponse) (*domain.VariationQuote, error) {
	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.ErrSelectionNotFound
	case http.StatusConflict:
		return nil, domain.ErrSelectionUnavailable
	case http.StatusBadRequest:
		return nil, domain.ErrInvalidQuantity
	default:
		return nil, fmt.Errorf("catalog quote failed: status=%d error=%s", resp.StatusCode(), apiErr.Error)
	}

	unitPrice, err := decimal.NewFromString(quote.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid unit_price in catalog quote: %w", err)
	}
	return &domain.VariationQuote{
		ProductID:   quote.ProductID,
		VariationID: quote.VariationID,
		ProductName: quote.ProductName,
		Color:       quote.Color,
		Size:        quote.Size,
		SKU:         quote.SKU,
		Stock:       quote.Stock,
		UnitPrice:   unitPrice,
	}, nil
}
