package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/storefront/internal/catalog/application"
)

// OrderPlacedTopic 订单服务发布的下单事件主题
const OrderPlacedTopic = "order.placed"

// StockHandler 消费订单事件并扣减款式库存
type StockHandler struct {
	cmd    *application.CatalogCommandService
	logger *slog.Logger
}

func NewStockHandler(cmd *application.CatalogCommandService, logger *slog.Logger) *StockHandler {
	return &StockHandler{cmd: cmd, logger: logger}
}

func (h *StockHandler) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.Topic {
	case OrderPlacedTopic:
		var payload struct {
			OrderNo string `json:"order_no"`
			Items   []struct {
				VariationID uint `json:"variation_id"`
				Quantity    int  `json:"quantity"`
			} `json:"items"`
		}
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order placed event", "error", err)
			return err
		}
		for _, item := range payload.Items {
			if err := h.cmd.DeductStockForOrder(ctx, item.VariationID, item.Quantity); err != nil {
				h.logger.ErrorContext(ctx, "failed to deduct stock for order",
					"order_no", payload.OrderNo,
					"variation_id", item.VariationID,
					"error", err,
				)
				return err
			}
		}
		return nil
	default:
		h.logger.WarnContext(ctx, "unknown catalog event topic", "topic", msg.Topic)
		return nil
	}
}
