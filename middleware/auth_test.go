package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"employee_management/config"
	"employee_management/metrics"
	"employee_management/middleware"
	"employee_management/models"
	"employee_management/services"
	"employee_management/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	config.AppConfig = testutil.Config()

	app := fiber.New()
	app.Get("/whoami", middleware.RequireAuth, func(c *fiber.Ctx) error {
		p := middleware.CurrentPrincipal(c)
		return c.SendString(string(p.Role) + ":" + p.ID)
	})
	app.Get("/admin", middleware.RequireAuth, middleware.RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/employee", middleware.RequireAuth, middleware.RequireEmployee, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, authorization string) int {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	app := newApp()
	employeeToken := testutil.CreateTestToken(t, "e-1", models.RoleEmployee, "Asha")

	expired, err := services.IssueToken(testutil.JWTSecret, -time.Minute,
		services.Principal{ID: "e-1", Role: models.RoleEmployee})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"No Token", "", 401},
		{"Wrong Scheme", "Basic " + employeeToken, 401},
		{"Garbage", "Bearer abc.def.ghi", 401},
		{"Expired", "Bearer " + expired, 401},
		{"Valid", "Bearer " + employeeToken, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, app, "/whoami", tt.header))
		})
	}
}

func TestRoleGuards(t *testing.T) {
	app := newApp()
	admin := "Bearer " + testutil.AdminToken(t)
	employee := "Bearer " + testutil.CreateTestToken(t, "e-1", models.RoleEmployee, "Asha")

	assert.Equal(t, 204, get(t, app, "/admin", admin))
	assert.Equal(t, 403, get(t, app, "/admin", employee))
	assert.Equal(t, 204, get(t, app, "/employee", employee))
	assert.Equal(t, 403, get(t, app, "/employee", admin))
}

func TestRequestLoggerRecordsMetrics(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(middleware.RequestLogger(m))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/ping", "200")))
}
