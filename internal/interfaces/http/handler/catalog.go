package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storelink/backend/internal/application/feed"
	"github.com/storelink/backend/internal/domain/catalog"
	"github.com/storelink/backend/internal/infrastructure/logger"
	"github.com/storelink/backend/internal/interfaces/http/dto"
)

// productsPageSize caps the product listing endpoint
const productsPageSize = 50

// SyncCoordinator is the application-facing surface the handler drives
type SyncCoordinator interface {
	Sync(ctx context.Context) *feed.SyncResult
	Status() feed.Status
	Products(limit int) ([]catalog.Product, int)
}

// ChangeNotifier receives catalog change notifications from webhooks
type ChangeNotifier interface {
	Notify()
}

// WebhookVerifier checks webhook payload authenticity
type WebhookVerifier interface {
	VerifyWebhook(body []byte, signature string) bool
}

// CatalogHandler serves the sync API and the Shopify webhook endpoint.
// Request-scoped logging comes from the gin context, so the handler holds
// no logger of its own.
type CatalogHandler struct {
	BaseHandler
	coordinator SyncCoordinator
	notifier    ChangeNotifier
	verifier    WebhookVerifier
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(coordinator SyncCoordinator, notifier ChangeNotifier, verifier WebhookVerifier) *CatalogHandler {
	return &CatalogHandler{
		coordinator: coordinator,
		notifier:    notifier,
		verifier:    verifier,
	}
}

// RegisterRoutes registers the sync API routes
func (h *CatalogHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/sync", h.Sync)
	api.GET("/status", h.Status)
	api.GET("/products", h.Products)
}

// RegisterWebhookRoutes registers the platform webhook routes
func (h *CatalogHandler) RegisterWebhookRoutes(webhooks *gin.RouterGroup) {
	webhooks.POST("/shopify/products", h.ProductsWebhook)
}

// Sync runs a full sync cycle synchronously and reports its outcome
func (h *CatalogHandler) Sync(c *gin.Context) {
	result := h.coordinator.Sync(c.Request.Context())
	if result.Err != nil {
		h.Error(c, syncErrorCode(result.Err), result.Err.Error())
		return
	}

	h.JSON(c, dto.SyncResponse{
		Success: true,
		Count:   result.Count,
		Files:   result.Artifacts,
	})
}

// Status reports coordinator state without blocking on a running sync
func (h *CatalogHandler) Status(c *gin.Context) {
	status := h.coordinator.Status()
	h.JSON(c, dto.StatusResponse{
		ProductsCount:    status.ProductsCount,
		LastSync:         status.LastSync,
		ShopifyConnected: status.PlatformConnected,
		SyncInProgress:   status.InFlight,
		LastError:        status.LastError,
	})
}

// Products returns the first page of the current snapshot
func (h *CatalogHandler) Products(c *gin.Context) {
	products, total := h.coordinator.Products(productsPageSize)
	status := h.coordinator.Status()
	h.JSON(c, dto.ProductsResponse{
		Products: products,
		Total:    total,
		LastSync: status.LastSync,
	})
}

// ProductsWebhook acks a product change delivery immediately and defers the
// actual resync to the debouncer. The response never waits on a sync.
func (h *CatalogHandler) ProductsWebhook(c *gin.Context) {
	log := logger.GetGinLogger(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warn("Failed to read webhook body", zap.Error(err))
		h.JSON(c, dto.WebhookAck{Received: true})
		return
	}

	signature := c.GetHeader("X-Shopify-Hmac-Sha256")
	if !h.verifier.VerifyWebhook(body, signature) {
		// Per platform guidance the delivery is still acked; it is just
		// not acted upon.
		log.Warn("Webhook signature verification failed",
			zap.String("topic", c.GetHeader("X-Shopify-Topic")),
		)
		h.JSON(c, dto.WebhookAck{Received: true})
		return
	}

	log.Info("Product change webhook received",
		zap.String("topic", c.GetHeader("X-Shopify-Topic")),
		zap.Int("body_size", len(body)),
	)

	h.notifier.Notify()
	h.JSON(c, dto.WebhookAck{Received: true})
}

// syncErrorCode maps sync failures to wire error codes
func syncErrorCode(err error) string {
	switch {
	case errors.Is(err, catalog.ErrSyncInProgress):
		return dto.ErrCodeSyncInProgress
	case errors.Is(err, catalog.ErrPlatformNotConfigured):
		return dto.ErrCodeNotConfigured
	case errors.Is(err, catalog.ErrEmptyCatalog):
		return dto.ErrCodeEmptyCatalog
	case errors.Is(err, catalog.ErrFetchFailed):
		return dto.ErrCodeFetchFailed
	case errors.Is(err, catalog.ErrSinkWrite):
		return dto.ErrCodeSinkWrite
	default:
		return dto.ErrCodeInternal
	}
}
