package main

import (
	"context"
	"log/slog"
	"os"

	"bankcards/internal/config"
	"bankcards/internal/logging"
	"bankcards/internal/repositories"
	"bankcards/internal/services/user"
)

func main() {
	config.LoadEnv()
	logging.Setup()

	adminName := config.GetEnv("ADMIN_NAME", "admin")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		slog.Error("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
		os.Exit(1)
	}

	if err := repositories.InitDB(); err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repositories.Close()

	users := user.NewService(repositories.NewUserRepository(repositories.DB, repositories.CacheService))
	admin, created, err := users.EnsureAdmin(context.Background(), adminName, adminEmail, adminPassword)
	if err != nil {
		slog.Error("failed to create admin user", "error", err)
		repositories.Close()
		os.Exit(1)
	}

	if !created {
		slog.Info("admin user already exists", "user_id", admin.ID)
		return
	}
	slog.Info("admin account created", "user_id", admin.ID)
}
