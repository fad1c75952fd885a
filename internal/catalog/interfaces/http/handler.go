package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	cmd   *application.CatalogCommandService
	query *application.CatalogQueryService
}

func NewCatalogHandler(cmd *application.CatalogCommandService, query *application.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{cmd: cmd, query: query}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.POST("", h.CreateProduct)
			products.GET("", h.ListProducts)
			products.GET("/search", h.SearchProducts)
			products.GET("/:id", h.GetProduct)
			products.PUT("/:id", h.UpdateProduct)
			products.POST("/:id/publish", h.SetPublished)
			products.POST("/:id/variations", h.AddVariation)
			products.POST("/:id/tiers", h.AddTier)
			products.GET("/:id/quote", h.QuoteSelection)
		}
		variations := api.Group("/variations")
		{
			variations.PUT("/:id/stock", h.AdjustStock)
			variations.GET("/:id/quote", h.QuoteVariation)
		}
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	VendorID      uint   `json:"vendor_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Tags          string `json:"tags"`
	BasePrice     string `json:"base_price" binding:"required"`
	FeaturedImage string `json:"featured_image"`
}

// AddVariationRequest 新增款式请求
type AddVariationRequest struct {
	Color    string `json:"color" binding:"required"`
	Size     string `json:"size" binding:"required"`
	SKU      string `json:"sku"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url"`
}

// AddTierRequest 新增定价规则请求
type AddTierRequest struct {
	Type         string     `json:"type" binding:"required"`
	FromQuantity int        `json:"from_quantity"`
	ToQuantity   int        `json:"to_quantity"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	Amount       string     `json:"amount" binding:"required"`
}

// CreateProduct 创建商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid base_price", "")
		return
	}

	id, err := h.cmd.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		VendorID:      req.VendorID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Tags:          req.Tags,
		BasePrice:     basePrice,
		FeaturedImage: req.FeaturedImage,
	})
	if err != nil {
		h.renderError(c, err, "failed to create product")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// UpdateProduct 更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid base_price", "")
		return
	}

	err = h.cmd.UpdateProduct(c.Request.Context(), application.UpdateProductCommand{
		ProductID:     id,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Tags:          req.Tags,
		BasePrice:     basePrice,
		FeaturedImage: req.FeaturedImage,
	})
	if err != nil {
		h.renderError(c, err, "failed to update product")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// SetPublished 商品上架/下架
func (h *CatalogHandler) SetPublished(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Published bool `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	if err := h.cmd.SetPublished(c.Request.Context(), id, req.Published); err != nil {
		h.renderError(c, err, "failed to set published")
		return
	}
	response.Success(c, gin.H{"id": id, "published": req.Published})
}

// GetProduct 获取商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	dto, err := h.query.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err, "failed to get product")
		return
	}
	response.Success(c, dto)
}

// ListProducts 分页列出商品
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	vendorID, _ := strconv.ParseUint(c.Query("vendor_id"), 10, 64)

	filter := domain.ProductFilter{
		Category:      c.Query("category"),
		VendorID:      uint(vendorID),
		OnlyPublished: c.Query("published") == "true",
		Offset:        offset,
		Limit:         limit,
	}
	dtos, total, err := h.query.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, err, "failed to list products")
		return
	}
	response.Success(c, gin.H{"items": dtos, "total": total})
}

// SearchProducts 全文搜索商品
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	dtos, err := h.query.SearchProducts(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.renderError(c, err, "failed to search products")
		return
	}
	response.Success(c, gin.H{"items": dtos})
}

// AddVariation 新增款式
func (h *CatalogHandler) AddVariation(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req AddVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	vid, err := h.cmd.AddVariation(c.Request.Context(), application.AddVariationCommand{
		ProductID: id,
		Color:     req.Color,
		Size:      req.Size,
		SKU:       req.SKU,
		Barcode:   req.Barcode,
		Quantity:  req.Quantity,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.renderError(c, err, "failed to add variation")
		return
	}
	response.Success(c, gin.H{"id": vid})
}

// AddTier 新增定价规则
func (h *CatalogHandler) AddTier(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req AddTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid amount", "")
		return
	}

	cmd := application.AddTierCommand{
		ProductID:    id,
		Type:         domain.TierType(req.Type),
		FromQuantity: req.FromQuantity,
		ToQuantity:   req.ToQuantity,
		Amount:       amount,
	}
	if req.StartsAt != nil {
		cmd.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		cmd.EndsAt = *req.EndsAt
	}

	tid, err := h.cmd.AddTier(c.Request.Context(), cmd)
	if err != nil {
		h.renderError(c, err, "failed to add tier")
		return
	}
	response.Success(c, gin.H{"id": tid})
}

// AdjustStock 调整款式库存
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Delta  int    `json:"delta" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	err := h.cmd.AdjustStock(c.Request.Context(), application.AdjustStockCommand{
		VariationID: id,
		Delta:       req.Delta,
		Reason:      req.Reason,
	})
	if err != nil {
		h.renderError(c, err, "failed to adjust stock")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// QuoteSelection 按颜色/尺码解析款式并报价。
// 响应是裸 JSON，购物车与订单服务按该结构反序列化。
func (h *CatalogHandler) QuoteSelection(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	quantity, _ := strconv.Atoi(c.DefaultQuery("quantity", "1"))

	quote, err := h.query.QuoteSelection(c.Request.Context(), id, c.Query("color"), c.Query("size"), quantity)
	if err != nil {
		h.renderQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// QuoteVariation 按款式 ID 报价
func (h *CatalogHandler) QuoteVariation(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	quantity, _ := strconv.Atoi(c.DefaultQuery("quantity", "1"))

	quote, err := h.query.QuoteVariation(c.Request.Context(), id, quantity)
	if err != nil {
		h.renderQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *CatalogHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", "")
		return 0, false
	}
	return uint(id), true
}

func (h *CatalogHandler) renderError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), msg, "error", err)
	}
	response.ErrorWithStatus(c, status, err.Error(), "")
}

func (h *CatalogHandler) renderQuoteError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), "failed to quote selection", "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrVariationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidTierRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrVariationExists),
		errors.Is(err, domain.ErrProductUnpublished),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
