package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

// cartClient 购物车服务 REST 客户端，实现 domain.CartGateway。
type cartClient struct {
	http *resty.Client
}

// NewCartClient 创建购物车服务客户端，baseURL 形如 http://cart:8080。
func NewCartClient(baseURL string) domain.CartGateway {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(3 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond)
	return &cartClient{http: c}
}

// cartResponse 购物车服务视图接口的响应体
type cartResponse struct {
	ID    uint `json:"id"`
	Items []struct {
		ProductID   uint   `json:"product_id"`
		VariationID uint   `json:"variation_id"`
		ProductName string `json:"product_name"`
		Color       string `json:"color"`
		Size        string `json:"size"`
		SKU         string `json:"sku"`
		UnitPrice   string `json:"unit_price"`
		Quantity    int    `json:"quantity"`
	} `json:"items"`
}

func (c *cartClient) GetCart(ctx context.Context, userID uint) (*domain.CartSnapshot, error) {
	var cart cartResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&cart).
		Get(fmt.Sprintf("/api/v1/carts/%d", userID))
	if err != nil {
		return nil, fmt.Errorf("cart request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("cart request failed: status=%d", resp.StatusCode())
	}

	snapshot := &domain.CartSnapshot{
		CartID: cart.ID,
		UserID: userID,
		Lines:  make([]domain.CartLine, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_price in cart item: %w", err)
		}
		snapshot.Lines = append(snapshot.Lines, domain.CartLine{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			SKU:         item.SKU,
			UnitPrice:   unitPrice,
			Quantity:    item.Quantity,
		})
	}
	return snapshot, nil
}

func (c *cartClient) Clear(ctx context.Context, userID uint, reason string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("reason", reason).
		Delete(fmt.Sprintf("/api/v1/carts/%d", userID))
	if err != nil {
		return fmt.Errorf("cart clear request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("cart clear failed: status=%d", resp.StatusCode())
	}
	return nil
}
