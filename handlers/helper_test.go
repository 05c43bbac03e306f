package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"employee_management/config"
	"employee_management/handlers"
	"employee_management/metrics"
	"employee_management/routes"
	"employee_management/services"
	"employee_management/testutil"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func SetupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t)
	config.AppConfig = testutil.Config()

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)
	svc := services.New(services.Deps{DB: db, Config: config.AppConfig, Metrics: m})
	handlers.InitHandlers(db, svc, nil)

	return routes.NewApp(m, registry), db
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) types.APIResponse {
	t.Helper()
	defer resp.Body.Close()

	var response types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return response
}

// decodeData unmarshals the data field of the envelope into dst.
func decodeData(t *testing.T, resp *http.Response, dst interface{}) types.APIResponse {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		types.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	if dst != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, dst))
	}
	return envelope.APIResponse
}
