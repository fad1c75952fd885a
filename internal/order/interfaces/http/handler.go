package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/order/application"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	cmd   *application.OrderCommandService
	query *application.OrderQueryService
}

func NewOrderHandler(cmd *application.OrderCommandService, query *application.OrderQueryService) *OrderHandler {
	return &OrderHandler{cmd: cmd, query: query}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.POST("/checkout", h.Checkout)
		api.GET("", h.ListOrders)
		api.GET("/search", h.SearchOrders)
		api.GET("/:order_no", h.GetOrder)
		api.POST("/:order_no/pay", h.MarkPaid)
		api.POST("/:order_no/ship", h.Ship)
		api.POST("/:order_no/deliver", h.Deliver)
		api.POST("/:order_no/cancel", h.Cancel)
	}
}

// CheckoutRequest 结算下单请求
type CheckoutRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	ShippingAddress string `json:"shipping_address"`
}

// Checkout 从购物车结算下单
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.cmd.Checkout(c.Request.Context(), application.CheckoutCommand{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		h.renderError(c, err, "failed to checkout")
		return
	}
	response.Success(c, dto)
}

// GetOrder 按订单号获取订单
func (h *OrderHandler) GetOrder(c *gin.Context) {
	dto, err := h.query.GetByOrderNo(c.Request.Context(), c.Param("order_no"))
	if err != nil {
		h.renderError(c, err, "failed to get order")
		return
	}
	response.Success(c, dto)
}

// ListOrders 分页列出用户订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid user_id", "")
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	dtos, total, err := h.query.ListUserOrders(c.Request.Context(), uint(userID), offset, limit)
	if err != nil {
		h.renderError(c, err, "failed to list orders")
		return
	}
	response.Success(c, gin.H{"items": dtos, "total": total})
}

// SearchOrders 按状态/关键字搜索订单
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	dtos, err := h.query.SearchOrders(
		c.Request.Context(),
		uint(userID),
		domain.OrderStatus(c.Query("status")),
		c.Query("q"),
		limit,
	)
	if err != nil {
		h.renderError(c, err, "failed to search orders")
		return
	}
	response.Success(c, gin.H{"items": dtos})
}

// MarkPaid 标记支付完成
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	h.applyTransition(c, h.cmd.MarkPaid, "failed to mark order paid")
}

// Ship 标记发货
func (h *OrderHandler) Ship(c *gin.Context) {
	h.applyTransition(c, h.cmd.Ship, "failed to ship order")
}

// Deliver 标记送达
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.applyTransition(c, h.cmd.Deliver, "failed to deliver order")
}

// Cancel 取消订单
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, h.cmd.Cancel, "failed to cancel order")
}

func (h *OrderHandler) applyTransition(c *gin.Context, fn func(ctx context.Context, orderNo string) error, msg string) {
	orderNo := c.Param("order_no")
	if err := fn(c.Request.Context(), orderNo); err != nil {
		h.renderError(c, err, msg)
		return
	}
	response.Success(c, gin.H{"order_no": orderNo})
}

func (h *OrderHandler) renderError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), msg, "error", err)
	}
	response.ErrorWithStatus(c, status, err.Error(), "")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
