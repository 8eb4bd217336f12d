// Package main is the entry point for the bank card API server.
// It initializes all dependencies, sets up the HTTP server,
// and shuts it down gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bankcards/internal/config"
	"bankcards/internal/handlers"
	"bankcards/internal/logging"
	"bankcards/internal/middleware"
	"bankcards/internal/repositories"
	"bankcards/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	config.LoadEnv()
	logging.Setup()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repositories.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if repositories.CacheService != nil && config.GetEnv("CACHE_FLUSH_ON_START", "true") == "true" {
		if err := repositories.CacheService.FlushAll(ctx); err != nil {
			slog.Warn("failed to flush redis cache", "error", err)
		} else {
			slog.Info("redis cache flushed on startup")
		}
	}

	go repositories.ReportPoolStats(ctx, config.GetDurationEnv("DB_STATS_INTERVAL", time.Minute))

	services := routes.NewServices(repositories.DB, repositories.CacheService)

	if email := config.GetEnv("ADMIN_EMAIL", ""); email != "" {
		password := config.GetEnv("ADMIN_PASSWORD", "")
		if password == "" {
			slog.Error("ADMIN_PASSWORD must be set when ADMIN_EMAIL is")
			os.Exit(1)
		}
		_, created, err := services.Users.EnsureAdmin(ctx, config.GetEnv("ADMIN_NAME", "admin"), email, password)
		if err != nil {
			slog.Error("failed to ensure admin account", "error", err)
			os.Exit(1)
		}
		slog.Info("admin account ready", "created", created)
	}

	app := fiber.New(fiber.Config{
		AppName:      "bankcards",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: handlers.ErrorHandler,
		ReadTimeout:  config.GetDurationEnv("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: config.GetDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(config.GetListEnv("CORS_ORIGINS", []string{"http://localhost:5173"}), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.Metrics())

	app.Use("/api/register", authLimiter())
	app.Use("/api/login", authLimiter())

	routes.Register(app, services)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		if err := app.ShutdownWithTimeout(config.GetDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	addr := ":" + config.GetEnv("PORT", "3000")
	slog.Info("server listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server stopped", "error", err)
	}
}

// authLimiter throttles credential endpoints per client IP.
func authLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.GetIntEnv("AUTH_RATE_LIMIT", 5),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests, please try again later")
		},
	})
}
