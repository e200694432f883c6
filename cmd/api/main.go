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

	_ "github.com/jhoicas/Operaciones-api/docs"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/bootstrap"
	infraai "github.com/jhoicas/Operaciones-api/internal/infrastructure/ai"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Operaciones-api/internal/interfaces/http"
	"github.com/jhoicas/Operaciones-api/pkg/config"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

// @title                       Operaciones API
// @version                     1.0
// @description                 Inventario, pedidos, abastecimiento, finanzas y analítica multiempresa.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, err := bootstrap.OpenStores(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer stores.Close()

	var recorder *metrics.Recorder
	var rec ports.MetricsRecorder
	if cfg.Metrics.Enabled {
		recorder = metrics.New()
		rec = recorder
	}

	llm := infraai.NewFromConfig(cfg.AI)
	container := bootstrap.Build(cfg, stores, llm, rec, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // imágenes en data URL
	})
	app.Use(recover.New())
	if recorder != nil {
		app.Use(recorder.Middleware())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Operaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if recorder != nil {
		app.Get("/metrics", recorder.Handler())
	}

	httpRouter.Router(app, container.RouterDeps(cfg.JWT.Secret))

	sched := scheduler.New(container.Finance, log)
	if err := sched.Start(cfg.Finance.CollectionsCron); err != nil {
		log.Fatal().Err(err).Msg("agendar corrida de cartera")
	}

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
	sched.Stop()

	log.Info().Msg("aplicación detenida")
}
