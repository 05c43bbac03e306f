package handlers

import (
	"employee_management/services"
	"employee_management/types"
	"employee_management/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	DB       *gorm.DB
	Redis    *redis.Client
	Services *services.Services
)

// InitHandlers wires the collaborators the handlers use. rdb may be nil.
func InitHandlers(db *gorm.DB, svc *services.Services, rdb *redis.Client) {
	DB = db
	Services = svc
	Redis = rdb
}

func statusFor(code types.ErrorCode) int {
	switch code {
	case types.CodeValidation:
		return fiber.StatusBadRequest
	case types.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case types.CodeForbidden:
		return fiber.StatusForbidden
	case types.CodeNotFound:
		return fiber.StatusNotFound
	case types.CodeConflict, types.CodeInvalidTransition:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as an APIResponse. Only AppErrors below 500 reveal their message.
func respondError(c *fiber.Ctx, err error) error {
	appErr, ok := types.AsAppError(err)
	if !ok {
		utils.Logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	status := statusFor(appErr.Code)
	if status >= 500 {
		utils.Logger.Error(appErr.Message, zap.String("path", c.Path()), zap.Error(appErr.Err))
	}

	return c.Status(status).JSON(types.APIResponse{
		Success: false,
		Message: appErr.Message,
		Error:   string(appErr.Code),
		Errors:  appErr.Fields,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(400).JSON(types.APIResponse{
		Success: false,
		Message: types.ErrInvalidInput,
		Error:   "Invalid request body",
	})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(400).JSON(types.APIResponse{
		Success: false,
		Message: types.ErrInvalidInput,
		Error:   "Invalid query parameters",
	})
}

// paged is the list payload of paginated endpoints.
type paged struct {
	Items      interface{}      `json:"items"`
	Pagination types.Pagination `json:"pagination"`
}
