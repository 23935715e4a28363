package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-engine/internal/config"
	domainRepo "github.com/sangkips/receipt-engine/internal/domain/repository"
	"github.com/sangkips/receipt-engine/internal/presentation/http/dto/response"
	"github.com/sangkips/receipt-engine/internal/presentation/http/handler"
	"github.com/sangkips/receipt-engine/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Receipt *handler.ReceiptHandler
	Profile *handler.ProfileHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		}
		if deps.RateLimiter != nil {
			health["rate_limiter"] = deps.RateLimiter.Stats()
		}
		c.JSON(200, health)
	})

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	{
		registerReceiptRoutes(v1, h, deps)
		registerSaleRoutes(v1, h, deps)
		registerPrinterRoutes(v1, h)
		registerProfileRoutes(v1, h)
	}

	return router
}

// printIdempotency guards endpoints that produce a physical print.
func printIdempotency(deps *Deps) gin.HandlerFunc {
	if deps.IdempotencyRepo == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := v1.Group("/receipts")
	{
		receipts.POST("/preview", h.Receipt.Preview)
		receipts.POST("/preview/html", h.Receipt.PreviewHTML)
		receipts.POST("/print", printIdempotency(deps), h.Receipt.Print)
		receipts.POST("/email", h.Receipt.Email)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := v1.Group("/sales")
	{
		sales.POST("/:id/print", printIdempotency(deps), h.Receipt.PrintSale)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}

func registerProfileRoutes(v1 *gin.RouterGroup, h *Handlers) {
	profiles := v1.Group("/print-profiles")
	{
		profiles.GET("", h.Profile.List)
		profiles.GET("/:name", h.Profile.Get)
		profiles.PUT("/:name", h.Profile.Update)
		profiles.DELETE("/:name", h.Profile.Delete)
		profiles.POST("/:name/reset", h.Profile.Reset)
		profiles.GET("/:name/export", h.Profile.Export)
		profiles.POST("/:name/import", h.Profile.Import)
	}
}
