package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelink/backend/internal/interfaces/http/dto"
)

// RouteRegistrar defines the interface for registering API routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// WebhookRegistrar defines the interface for registering webhook routes,
// which live outside the /api prefix
type WebhookRegistrar interface {
	RegisterWebhookRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiPrefix  string
	registrars []RouteRegistrar
	webhooks   []WebhookRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIPrefix overrides the default "/api" prefix
func WithAPIPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.apiPrefix = prefix
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiPrefix:  "/api",
		registrars: make([]RouteRegistrar, 0),
		webhooks:   make([]WebhookRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterWebhooks adds a WebhookRegistrar to be registered later
func (r *Router) RegisterWebhooks(registrar WebhookRegistrar) *Router {
	r.webhooks = append(r.webhooks, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	api := r.engine.Group(r.apiPrefix)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	webhooks := r.engine.Group("/webhook")
	for _, registrar := range r.webhooks {
		registrar.RegisterWebhookRoutes(webhooks)
	}
}
