// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"bankcards/internal/config"
	"bankcards/internal/models"
	"bankcards/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB
var CacheService *cache.CacheService

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LockTimeout     time.Duration
}

func loadDBConfig() DBConfig {
	return DBConfig{
		MaxIdleConns:    config.GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    config.GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		LockTimeout:     config.LockTimeout(),
	}
}

// InitDB initializes the database connection.
// It sets up the connection pool, performs migrations,
// and connects the Redis user cache.
func InitDB() error {
	if err := initPostgres(loadDBConfig()); err != nil {
		return err
	}

	redisClient := cache.NewRedisClient(cache.NewRedisConfig())
	CacheService = cache.NewCacheService(redisClient, config.GetDurationEnv("CACHE_TTL", 24*time.Hour))

	return AutoMigrate(DB)
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.BankCard{},
		&models.Request{},
	)
}

func dsn() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_USER", "postgres"),
		config.GetEnv("DB_PASSWORD", "postgres"),
		config.GetEnv("DB_NAME", "bankcards"),
		config.GetEnv("DB_PORT", "5432"),
		config.GetEnv("DB_SSLMODE", "disable"),
	)
}

func initPostgres(cfg DBConfig) error {
	// Configure GORM logger to ignore "record not found" errors
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !config.IsProduction(),
		},
	)

	db, err := gorm.Open(postgres.Open(dsn()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	slog.Info("postgres connected",
		"max_open_conns", cfg.MaxOpenConns,
		"lock_timeout", cfg.LockTimeout.String())
	return nil
}

// ReportPoolStats logs postgres and redis pool stats until ctx is done.
func ReportPoolStats(ctx context.Context, every time.Duration) {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := sqlDB.Stats()
			slog.Debug("db pool stats",
				"open", stats.OpenConnections,
				"idle", stats.Idle,
				"in_use", stats.InUse,
				"wait_count", stats.WaitCount,
				"wait_duration", stats.WaitDuration.String())
			if CacheService != nil {
				rs := CacheService.GetStats(ctx)
				slog.Debug("redis pool stats",
					"hits", rs.Hits,
					"misses", rs.Misses,
					"timeouts", rs.Timeouts,
					"total_conns", rs.TotalConns,
					"idle_conns", rs.IdleConns)
			}
		}
	}
}

// Close releases the database and cache connections.
func Close() {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close database connection", "error", err)
			}
		}
	}
	if CacheService != nil {
		if err := CacheService.Close(); err != nil {
			slog.Warn("failed to close redis connection", "error", err)
		}
	}
}

// HealthCheck pings postgres and redis.
func HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"database": "connected", "redis": "connected"}

	if DB == nil {
		status["database"] = "not initialized"
	} else if sqlDB, err := DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unreachable"
	}

	if CacheService == nil {
		status["redis"] = "not initialized"
	} else if err := CacheService.HealthCheck(ctx); err != nil {
		status["redis"] = "unreachable"
	}

	return status
}
