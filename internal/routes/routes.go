// Package routes defines the API routing configuration.
// It wires repositories into services and mounts every HTTP route with its
// authentication requirements.
package routes

import (
	"bankcards/internal/config"
	"bankcards/internal/handlers"
	"bankcards/internal/metrics"
	"bankcards/internal/middleware"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/repositories/cache"
	"bankcards/internal/services/auth"
	"bankcards/internal/services/card"
	"bankcards/internal/services/request"
	"bankcards/internal/services/transfer"
	"bankcards/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Services are the dependencies behind the HTTP surface.
type Services struct {
	Auth      auth.Service
	Users     user.Service
	Cards     card.Service
	Transfers transfer.Service
	Requests  request.Service
	Health    handlers.HealthChecker
}

// NewServices builds the production service graph. cacheService may be nil.
func NewServices(db *gorm.DB, cacheService *cache.CacheService) Services {
	userRepo := repositories.NewUserRepository(db, cacheService)
	cardRepo := repositories.NewBankCardRepository(db, config.LockTimeout())
	requestRepo := repositories.NewRequestRepository(db)
	collector := metrics.NewPrometheusCollector()

	return Services{
		Auth:      auth.NewService(userRepo),
		Users:     user.NewService(userRepo),
		Cards:     card.NewService(cardRepo, userRepo, collector),
		Transfers: transfer.NewService(cardRepo, collector),
		Requests:  request.NewService(cardRepo, requestRepo, collector),
		Health:    repositories.HealthCheck,
	}
}

// Register mounts the routes for s.
func Register(app *fiber.App, s Services) {
	authHandler := handlers.NewAuthHandler(s.Auth)
	userHandler := handlers.NewUserHandler(s.Users)
	cardHandler := handlers.NewCardHandler(s.Cards)
	transferHandler := handlers.NewTransferHandler(s.Transfers)
	requestHandler := handlers.NewRequestHandler(s.Requests)
	authMiddleware := middleware.NewAuthMiddleware(s.Auth)

	app.Get("/health", handlers.HealthCheck(s.Health))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Authentication is attached per prefix so unknown /api paths still fall through to 404.
	api.Post("/logout", authMiddleware.Handler, authHandler.LogoutUser)
	api.Get("/users/me", authMiddleware.Handler, middleware.HasPermission(models.PermissionUserRead), userHandler.GetCurrentUser)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)
	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), userHandler.ListUsers)
	admin.Patch("/users/:id", middleware.HasPermission(models.PermissionWriteAdmin), userHandler.UpdateUser)
	admin.Post("/cards", middleware.HasPermission(models.PermissionWriteAdmin), cardHandler.Create)
	admin.Get("/cards", middleware.HasPermission(models.PermissionReadAdmin), cardHandler.ListAll)
	admin.Patch("/cards/:id/block", middleware.HasPermission(models.PermissionWriteAdmin), cardHandler.Block)
	admin.Patch("/cards/:id/activate", middleware.HasPermission(models.PermissionWriteAdmin), cardHandler.Activate)
	admin.Delete("/cards/:id", middleware.HasPermission(models.PermissionWriteAdmin), cardHandler.Delete)

	// Card owner routes
	cards := api.Group("/cards", authMiddleware.Handler)
	cards.Get("/", middleware.HasPermission(models.PermissionCardRead), cardHandler.ListOwn)
	cards.Post("/transfer", middleware.HasPermission(models.PermissionCardTransfer), transferHandler.Transfer)
	cards.Get("/:id", middleware.HasPermission(models.PermissionCardRead), cardHandler.Get)

	api.Post("/requests/block/:cardId", authMiddleware.Handler, middleware.HasPermission(models.PermissionRequestWrite), requestHandler.BlockCard)
}
