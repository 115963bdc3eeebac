package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tom73737/non-zero-days-app-jkqfrv/config"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database/repositories"
	"github.com/tom73737/non-zero-days-app-jkqfrv/handlers"
	"github.com/tom73737/non-zero-days-app-jkqfrv/leveling"
	"github.com/tom73737/non-zero-days-app-jkqfrv/logger"
	"github.com/tom73737/non-zero-days-app-jkqfrv/middleware"
	"github.com/tom73737/non-zero-days-app-jkqfrv/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.NewLogger("NonZero", cfg.Log.Level, cfg.Log.Format, cfg.Log.AddSource))

	logger.LogSystem("Starting Non-Zero Days API",
		slog.String("version", version),
		slog.String("commit", commit))

	var (
		db       *database.DB
		habits   repositories.HabitRepository
		checkins repositories.CheckinRepository
		progress repositories.ProgressRepository
		txRunner database.TxRunner
	)

	switch cfg.DB.Driver {
	case "", "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		slog.Info("Connecting to database...", slog.String("type", "db"))
		db, err = database.New(ctx, cfg.DB)
		if err != nil {
			logger.LogError("Failed to connect to database", err)
			os.Exit(1)
		}
		if err := db.InitTables(ctx); err != nil {
			logger.LogError("Failed to initialize schema", err)
			os.Exit(1)
		}

		habits = repositories.NewHabitRepository(db.BunDB())
		checkins = repositories.NewCheckinRepository(db.BunDB())
		progress = repositories.NewProgressRepository(db.BunDB())
		txRunner = database.NewTransactionManager(db.BunDB())

	case "memory":
		slog.Warn("Using in-memory storage; all data is lost on restart")
		habits = repositories.NewMemoryHabitRepository()
		checkins = repositories.NewMemoryCheckinRepository()
		progress = repositories.NewMemoryProgressRepository()
		txRunner = database.NopTxRunner{}

	default:
		slog.Error("Unknown db driver", slog.String("driver", cfg.DB.Driver))
		os.Exit(1)
	}

	sessions, err := services.NewSessionService(cfg.Auth)
	if err != nil {
		slog.Error("Failed to initialize session service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	calc := leveling.NewCalculator(leveling.NewDefaultConfig())

	webApp := &handlers.WebApp{
		Config:   cfg,
		DB:       db,
		Habits:   services.NewHabitService(habits),
		Checkins: services.NewCheckinService(checkins, progress, txRunner, calc),
		Progress: services.NewProgressService(progress, checkins, calc),
		Sessions: sessions,
		Version:  version,
	}

	app := fiber.New(fiber.Config{
		AppName:      "Non-Zero Days API",
		ServerHeader: "NonZero",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Web.AllowOrigins, ","),
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,Cookie",
	}))
	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp, sessions)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	if db != nil {
		db.Close()
	}

	slog.Info("Server shutdown complete")
}

// setupRoutes configures all application routes.
func setupRoutes(app *fiber.App, webApp *handlers.WebApp, sessions *services.SessionService) {
	app.Get("/health", handlers.HealthCheck(webApp))

	if webApp.Config.Web.Debug {
		app.Post("/api/auth/dev-token", handlers.DevToken(webApp))
	}

	api := app.Group("/api")
	api.Use(middleware.APIRateLimit())
	api.Use(middleware.AuthRequired(sessions))

	api.Post("/habits", handlers.HabitsCreate(webApp))
	api.Get("/habits", handlers.HabitsList(webApp))
	api.Patch("/habits/:id", handlers.HabitsUpdate(webApp))
	api.Delete("/habits/:id", handlers.HabitsDelete(webApp))

	api.Post("/checkin", handlers.Checkin(webApp))

	api.Get("/progress", handlers.GetProgress(webApp))
	api.Get("/progress/history", handlers.GetHistory(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not Found",
		})
	})
}
