package handlers

import (
	"context"
	"time"

	"employee_management/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthCheck pings the database and, when configured, redis.
func HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	status := fiber.Map{}
	overall := fiber.StatusOK

	sqlDB, err := DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["database"] = "unavailable"
		overall = fiber.StatusServiceUnavailable
		utils.Logger.Warn("Health check failed: DB ping", zap.Error(err))
	} else {
		status["database"] = "ok"
	}

	if Redis != nil {
		if err := Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			overall = fiber.StatusServiceUnavailable
			utils.Logger.Warn("Health check failed: redis ping", zap.Error(err))
		} else {
			status["redis"] = "ok"
		}
	}

	return c.Status(overall).JSON(status)
}
