package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Precios-api/internal/application/aggregation"
	"github.com/jhoicas/Precios-api/internal/application/auth"
	"github.com/jhoicas/Precios-api/internal/application/catalog"
	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/application/ledger"
	"github.com/jhoicas/Precios-api/internal/application/review"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// pinger lo implementan los TxRunner de postgres y memory.
type pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CatalogUC     *catalog.UseCase
	LedgerUC      *ledger.UseCase
	ReviewUC      *review.UseCase
	AggregationUC *aggregation.UseCase
	Identity      *identity.Service
	Storage       pinger
	Metrics       httpObserver    // opcional
	MetricsHTTP   nethttp.Handler // opcional: exposición /metrics
	Log           *logger.Logger
	JWTSecret     string
	QueryTimeout  time.Duration
	ServiceName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.Named("http")

	if deps.Metrics != nil {
		app.Use(RequestMetrics(deps.Metrics))
	}
	if deps.MetricsHTTP != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHTTP))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := deps.Storage.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api", RequestTimeout(deps.QueryTimeout))
	requireAuth := AuthMiddleware(deps.JWTSecret)
	requireReviewer := RequireReviewer(deps.Identity, log)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	api.Get("/me", requireAuth, authHandler.Me)

	// Products: lecturas públicas, alta protegida. Las rutas fijas van antes de /:id.
	productHandler := NewProductHandler(deps.CatalogUC, deps.AggregationUC, log)
	products := api.Group("/products")
	products.Get("/search", productHandler.Search)
	products.Get("/featured", productHandler.Featured)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Post("/", requireAuth, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/lowest-price", productHandler.LowestPrice)
	products.Get("/:id/prices", productHandler.Prices)

	// Prices (protegido)
	priceHandler := NewPriceHandler(deps.LedgerUC, log)
	prices := api.Group("/prices", requireAuth)
	prices.Post("/", priceHandler.Submit)
	prices.Post("/by-store-name", priceHandler.SubmitByStoreName)

	// Stores
	storeHandler := NewStoreHandler(deps.CatalogUC, log)
	stores := api.Group("/stores")
	stores.Get("/verified", storeHandler.ListVerified)
	stores.Post("/find-or-create", requireAuth, storeHandler.FindOrCreate)
	stores.Post("/", requireAuth, requireReviewer, storeHandler.Create)
	stores.Post("/:id/verify", requireAuth, requireReviewer, storeHandler.Verify)

	// Review (supervisor / admin, confirmado contra el perfil)
	reviewHandler := NewReviewHandler(deps.ReviewUC, log)
	reviewGroup := api.Group("/review", requireAuth, requireReviewer)
	reviewGroup.Get("/queue", priceHandler.Queue)
	reviewGroup.Post("/prices/:id", reviewHandler.Review)
	reviewGroup.Get("/prices/:id/validations", reviewHandler.Validations)
}
