package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	infracache "github.com/jhoicas/stock-ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/realtime"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

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
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	appMetrics := metrics.New(cfg.Metrics.Namespace)

	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	revisionRepo := postgres.NewRevisionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de proyecciones: opcional, sin Redis se recalcula en cada lectura.
	var projectionCache inventory.ProjectionCache
	if cfg.Redis.Enabled() {
		rdb, err := infracache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché de proyecciones desactivado")
		} else {
			defer rdb.Close()
			projectionCache = infracache.NewRedisProjectionCache(rdb, cfg.Redis.TTL, appMetrics)
		}
	}

	projectionUC := inventory.NewProjectionUseCase(itemRepo, movRepo, revisionRepo, projectionCache, log.Component("projection"))
	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, movRepo)
	catalogUC := inventory.NewCatalogUseCase(categoryRepo, unitRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(itemRepo, movRepo)
	ledgerUC := inventory.NewLedgerUseCase(movRepo)
	csvExportUC := inventory.NewCSVExportUseCase(projectionUC)
	csvImportUC := inventory.NewCSVImportUseCase(txRunner, categoryRepo, unitRepo)

	dashboardUC := appanalytics.NewDashboardUseCase(projectionUC, movRepo, loc)
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	reportUC := appanalytics.NewReportUseCase(movRepo, pdfGenerator, loc)

	// Alertas en tiempo real: LISTEN/NOTIFY -> notificador -> hub SSE
	hub := realtime.NewHub(log.Zerolog(), appMetrics)
	alertHandler := httpRouter.NewAlertHandler(hub, 0)

	var notifierWG sync.WaitGroup
	if cfg.Notifier.Enabled {
		listener := postgres.NewMovementListener(pool, log.Zerolog())
		notifier := inventory.NewNotifier(listener, itemRepo, movRepo, log.Zerolog(), inventory.NotifierConfig{
			MaxConcurrent:   cfg.Notifier.MaxConcurrent,
			InitialInterval: cfg.Notifier.InitialBackoff,
			MaxInterval:     cfg.Notifier.MaxBackoff,
		}, hub).WithObserver(appMetrics)

		notifierWG.Add(1)
		go func() {
			defer notifierWG.Done()
			if err := notifier.Run(ctx); err != nil {
				log.Error().Err(err).Msg("notificador de stock finalizado")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	if cfg.Metrics.Enabled {
		app.Use(appMetrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(appMetrics.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sse_clients": hub.ClientCount()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:           itemUC,
		CatalogUC:        catalogUC,
		RegisterMovement: registerMovementUC,
		LedgerUC:         ledgerUC,
		ProjectionUC:     projectionUC,
		CSVExport:        csvExportUC,
		CSVImport:        csvImportUC,
		DashboardUC:      dashboardUC,
		ReportUC:         reportUC,
		Alerts:           alertHandler,
		JWTSecret:        cfg.JWT.Secret,
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

	alertHandler.Close()
	stop()
	notifierWG.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
