package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker reports per-dependency health; a "connected" value means healthy.
type HealthChecker func(ctx context.Context) map[string]string

// HealthCheck answers 200 when every dependency is ok and 503 otherwise.
func HealthCheck(check HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		services := check(ctx)
		status, code := "ok", fiber.StatusOK
		for _, s := range services {
			if s != "connected" {
				status, code = "degraded", fiber.StatusServiceUnavailable
				break
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"services": services,
		})
	}
}
