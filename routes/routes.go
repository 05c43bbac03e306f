package routes

import (
	"errors"

	"employee_management/handlers"
	"employee_management/metrics"
	"employee_management/middleware"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the fiber app with every route mounted. handlers.InitHandlers must run first.
func NewApp(m *metrics.Metrics, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "employee-management",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(m))

	SetupRoutes(app, gatherer)
	return app
}

func SetupRoutes(app *fiber.App, gatherer prometheus.Gatherer) {
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	auth := app.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/login", handlers.Login)

	v1 := app.Group("/api/v1", middleware.RequireAuth)
	v1.Get("/me", handlers.Me)

	employees := v1.Group("/employees", middleware.RequireAdmin)
	employees.Get("/", handlers.GetAllEmployees)
	employees.Get("/stats", handlers.GetEmployeeStats)
	employees.Get("/departments", handlers.GetDepartments)
	employees.Get("/:id", handlers.GetEmployee)
	employees.Put("/:id", handlers.UpdateEmployee)
	employees.Delete("/:id", handlers.DeleteEmployee)
	employees.Post("/:id/approve", handlers.ApproveEmployee)
	employees.Post("/:id/reject", handlers.RejectEmployee)
	employees.Get("/:id/salary-summary", handlers.GetSalarySummary)

	records := v1.Group("/monthly-records")
	records.Post("/", middleware.RequireAdmin, handlers.CreateMonthlyRecord)
	records.Get("/", handlers.GetMonthlyRecords)
	records.Get("/:id", handlers.GetMonthlyRecord)
	records.Put("/:id/status", middleware.RequireAdmin, handlers.UpdatePaymentStatus)

	payRequests := v1.Group("/pay-requests")
	payRequests.Post("/", middleware.RequireEmployee, handlers.SubmitPayRequest)
	payRequests.Get("/", handlers.GetPayRequests)
	payRequests.Post("/:id/approve", middleware.RequireAdmin, handlers.ApprovePayRequest)
	payRequests.Post("/:id/reject", middleware.RequireAdmin, handlers.RejectPayRequest)

	messages := v1.Group("/messages")
	messages.Post("/", handlers.SendMessage)
	messages.Get("/", handlers.GetMessages)
	messages.Put("/:id/read", handlers.MarkMessageRead)

	notifications := v1.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Get("/unread-count", handlers.GetUnreadCount)
	notifications.Put("/read-all", handlers.MarkAllNotificationsRead)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)

	v1.Get("/dashboard", middleware.RequireAdmin, handlers.GetDashboard)
	v1.Get("/reports/:type", middleware.RequireAdmin, handlers.DownloadReport)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := types.ErrInternalError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(types.APIResponse{
		Success: false,
		Error:   message,
	})
}
