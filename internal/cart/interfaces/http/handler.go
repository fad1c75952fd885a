package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	cmd   *application.CartCommandService
	query *application.CartQueryService
}

func NewCartHandler(cmd *application.CartCommandService, query *application.CartQueryService) *CartHandler {
	return &CartHandler{cmd: cmd, query: query}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/carts/:user_id")
	{
		api.GET("", h.GetCart)
		api.POST("/items", h.AddItem)
		api.PUT("/items/:variation_id", h.UpdateQuantity)
		api.DELETE("/items/:variation_id", h.RemoveItem)
		api.DELETE("", h.ClearCart)
	}
}

// AddItemRequest 加入购物车请求
type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// GetCart 获取购物车视图。
// 响应是裸 JSON，订单服务结算时按该结构反序列化。
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := h.pathID(c, "user_id")
	if !ok {
		return
	}
	dto, err := h.query.GetCart(c.Request.Context(), userID)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logging.Error(c.Request.Context(), "failed to get cart", "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// AddItem 加入款式
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := h.pathID(c, "user_id")
	if !ok {
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.cmd.AddItem(c.Request.Context(), application.AddItemCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.renderError(c, err, "failed to add cart item")
		return
	}
	response.Success(c, result)
}

// UpdateQuantity 修改款式数量
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := h.pathID(c, "user_id")
	if !ok {
		return
	}
	variationID, ok := h.pathID(c, "variation_id")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.cmd.UpdateQuantity(c.Request.Context(), application.UpdateItemCommand{
		UserID:      userID,
		VariationID: variationID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.renderError(c, err, "failed to update cart item")
		return
	}
	response.Success(c, result)
}

// RemoveItem 移除款式
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.pathID(c, "user_id")
	if !ok {
		return
	}
	variationID, ok := h.pathID(c, "variation_id")
	if !ok {
		return
	}
	err := h.cmd.RemoveItem(c.Request.Context(), application.RemoveItemCommand{
		UserID:      userID,
		VariationID: variationID,
	})
	if err != nil {
		h.renderError(c, err, "failed to remove cart item")
		return
	}
	response.Success(c, gin.H{"variation_id": variationID})
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := h.pathID(c, "user_id")
	if !ok {
		return
	}
	if err := h.cmd.ClearCart(c.Request.Context(), userID, c.DefaultQuery("reason", "manual")); err != nil {
		h.renderError(c, err, "failed to clear cart")
		return
	}
	response.Success(c, gin.H{"user_id": userID})
}

func (h *CartHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid "+name, "")
		return 0, false
	}
	return uint(id), true
}

func (h *CartHandler) renderError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), msg, "error", err)
	}
	response.ErrorWithStatus(c, status, err.Error(), "")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrSelectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrSelectionUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
