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
	"golang.org/x/text/language"

	"github.com/jhoicas/botica-stock/internal/application/auth"
	"github.com/jhoicas/botica-stock/internal/application/reports"
	appstock "github.com/jhoicas/botica-stock/internal/application/stock"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
	"github.com/jhoicas/botica-stock/internal/infrastructure/backend"
	"github.com/jhoicas/botica-stock/internal/infrastructure/cache"
	"github.com/jhoicas/botica-stock/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/botica-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/botica-stock/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/botica-stock/internal/interfaces/http"
	"github.com/jhoicas/botica-stock/pkg/config"
	"github.com/jhoicas/botica-stock/pkg/logger"
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
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	loc := cfg.Stock.Location()
	lang, err := language.Parse(cfg.Stock.Locale)
	if err != nil {
		log.Warn().Err(err).Str("locale", cfg.Stock.Locale).Msg("locale inválido, se usa español")
		lang = language.Spanish
	}

	client := backend.NewClient(cfg.Backend, loc, log.Component("backend"))

	lotCache, closeCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Cache.Driver).Msg("caché de lotes")
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Error().Err(err).Msg("cerrar caché")
		}
	}()

	// Historial de KPIs: solo con base de datos configurada.
	var snapshots repository.SnapshotRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de snapshots")
		}
		snapshots = postgres.NewSnapshotRepository(pool)
	} else {
		log.Info().Msg("sin base de datos: historial de indicadores deshabilitado")
	}

	stockUC := appstock.NewUseCase(appstock.Deps{
		Lots:      client,
		Loader:    appstock.NewLotLoader(client, cfg.Backend.PageSize, cfg.Backend.FetchConcurrency, log.Component("loader")),
		Cache:     lotCache,
		Snapshots: snapshots,
		XLSX:      excel.NewStockWorkbook(),
		PDF:       infrapdf.NewStockReportPDF(cfg.App.Name),
		Log:       log.Component("stock"),
	}, appstock.Options{
		RiskWindowDays: cfg.Stock.RiskWindowDays,
		Language:       lang,
		Location:       loc,
		CacheTTL:       cfg.Cache.TTL(),
	})
	reportsUC := reports.NewUseCase(client, client, client, lotCache, cfg.Cache.TTL(), loc, log.Component("reports"))
	authUC := auth.NewAuthUseCase(client, log.Component("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout() + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Botica Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		StockUC:   stockUC,
		ReportsUC: reportsUC,
		JWTSecret: cfg.JWT.Secret,
		AdminRole: cfg.JWT.AdminRole,
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
