package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Precios-api/internal/application/aggregation"
	"github.com/jhoicas/Precios-api/internal/application/auth"
	"github.com/jhoicas/Precios-api/internal/application/catalog"
	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/application/ledger"
	"github.com/jhoicas/Precios-api/internal/application/review"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
	"github.com/jhoicas/Precios-api/internal/infrastructure/memory"
	"github.com/jhoicas/Precios-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Precios-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Precios-api/internal/interfaces/http"
	"github.com/jhoicas/Precios-api/pkg/config"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// storage lo cumplen postgres.TxRunner y memory.DB.
type storage interface {
	repository.TxRunner
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos repository.TxRepos
		store storage
	)
	switch cfg.DB.Driver {
	case config.StorageMemory:
		db := memory.New()
		repos, store = db.Repos(), db
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos, store = postgres.NewRepos(pool), postgres.NewTxRunner(pool)
	}

	reg := metrics.NewRegistry()
	ident := identity.NewService(repos.Users, identity.Config{
		Attempts: cfg.Identity.RetryAttempts,
		Delay:    cfg.Identity.RetryDelay,
	}, log)

	catalogUC := catalog.NewUseCase(store, repos, ident, reg, log)
	ledgerUC := ledger.NewUseCase(repos, ident, reg, log)
	reviewUC := review.NewUseCase(store, repos, ident, reg, log)
	aggregationUC := aggregation.NewUseCase(repos, aggregation.Config{
		SearchLimit:     cfg.Catalog.SearchLimit,
		FeaturedDefault: cfg.Catalog.FeaturedDefault,
	})
	authUC := auth.NewAuthUseCase(repos.Users, ident, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Identity.AdminEmails)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Precios API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CatalogUC:     catalogUC,
		LedgerUC:      ledgerUC,
		ReviewUC:      reviewUC,
		AggregationUC: aggregationUC,
		Identity:      ident,
		Storage:       store,
		Metrics:       reg,
		MetricsHTTP:   reg.Handler(),
		Log:           log,
		JWTSecret:     cfg.JWT.Secret,
		QueryTimeout:  cfg.DB.QueryTimeout,
		ServiceName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
