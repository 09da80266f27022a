package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"perfume-shop/internal/domain"
	"perfume-shop/internal/notify"
	"perfume-shop/internal/repository"
	"perfume-shop/internal/services"
	"perfume-shop/internal/validation"
)

type orderService interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id uint64, upd services.OrderUpdate) (*domain.Order, domain.OrderStatus, error)
	GetByID(ctx context.Context, id uint64) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, status string, page, limit int) ([]domain.Order, int64, int, error)
}

type catalogService interface {
	List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, bool, error)
	Get(ctx context.Context, id uint64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id uint64, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id uint64) error
	Reseed(ctx context.Context) ([]domain.Product, error)
}

type notifier interface {
	DispatchConfirmation(ctx context.Context, order *domain.Order) notify.Result
	DispatchStatusUpdate(ctx context.Context, order *domain.Order, status domain.OrderStatus) notify.Result
	DispatchTest(ctx context.Context, email string) notify.Outcome
}

type storePinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	orders   orderService
	catalog  catalogService
	notifier notifier
	log      *zap.Logger

	adminKey      string
	uploadDir     string
	maxUploadSize int64

	pinger storePinger // optional, health only
	rdb    *redis.Client
}

type HandlerConfig struct {
	AdminKey      string
	UploadDir     string
	MaxUploadSize int64
}

func NewHandler(orders orderService, catalog catalogService, n notifier, cfg HandlerConfig, log *zap.Logger) *Handler {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 5 << 20
	}
	return &Handler{
		orders:        orders,
		catalog:       catalog,
		notifier:      n,
		log:           log,
		adminKey:      cfg.AdminKey,
		uploadDir:     cfg.UploadDir,
		maxUploadSize: cfg.MaxUploadSize,
	}
}

// SetStorePinger wires the connectivity probe reported by /api/health.
func (h *Handler) SetStorePinger(p storePinger) { h.pinger = p }

// SetRedisClient wires the optional cache reported by /api/health.
func (h *Handler) SetRedisClient(rdb *redis.Client) { h.rdb = rdb }

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/orders", h.CreateOrder)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.GET("/orders/number/:orderNumber", h.GetOrderByNumber)
	api.PUT("/orders/:id", h.RequireAdmin, h.UpdateOrder)
	api.POST("/orders/:id/send-confirmation", h.RequireAdmin, h.ResendConfirmation)
	api.POST("/debug-order", h.DebugOrder)

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/products", h.RequireAdmin, h.CreateProduct)
	api.PUT("/products/:id", h.RequireAdmin, h.UpdateProduct)
	api.DELETE("/products/:id", h.RequireAdmin, h.DeleteProduct)
	api.POST("/products/bulk-insert", h.RequireAdmin, h.BulkInsertProducts)

	api.POST("/test-email", h.RequireAdmin, h.TestEmail)
	api.GET("/health", h.Health)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var payload validation.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	normalized, err := validation.Validate(&payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), normalized)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// The order is committed; notification outcomes are data in the
	// response, never a reason to fail the request.
	results := h.notifier.DispatchConfirmation(c.Request.Context(), order)

	c.JSON(http.StatusCreated, CreateOrderResponse{
		Success:       true,
		Message:       "Order placed successfully",
		OrderNumber:   order.OrderNumber,
		Order:         order,
		Notifications: results,
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}

	orders, total, totalPages, err := h.orders.List(c.Request.Context(), status, page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListOrdersResponse{
		Orders:      orders,
		TotalPages:  totalPages,
		CurrentPage: page,
		TotalOrders: total,
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	order, err := h.orders.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, prev, err := h.orders.Update(c.Request.Context(), id, services.OrderUpdate{
		Status:        req.Status,
		AdminNotes:    req.AdminNotes,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"success": true, "order": order}
	if req.Status != nil && order.Status != prev {
		resp["notifications"] = h.notifier.DispatchStatusUpdate(c.Request.Context(), order, order.Status)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ResendConfirmation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	results := h.notifier.DispatchConfirmation(c.Request.Context(), order)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Confirmation notifications sent",
		"results": results,
	})
}

func (h *Handler) TestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email address is required"})
		return
	}

	outcome := h.notifier.DispatchTest(c.Request.Context(), req.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": outcome.Success,
		"message": "Test email dispatched",
		"result":  outcome,
	})
}

func (h *Handler) Health(c *gin.Context) {
	dbState := "unconfigured"
	if h.pinger != nil {
		dbState = "up"
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			dbState = "down"
		}
	}

	cacheState := "unconfigured"
	if h.rdb != nil {
		cacheState = "up"
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			cacheState = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": dbState,
		"cache":    cacheState,
	})
}

func (h *Handler) parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// respondError translates the error taxonomy to status codes. Validation
// failures carry per-field detail; everything unrecognized is a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": verr.Message,
			"details": []gin.H{
				{"field": verr.Field, "message": verr.Message},
			},
		})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store is temporarily unavailable"})
	default:
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
