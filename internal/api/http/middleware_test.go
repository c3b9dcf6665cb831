package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/noc-fault-service/internal/observability"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

func newMiddlewareTestApp(metrics *observability.Metrics) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("bad input", map[string]any{"field": "status"})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("unexpected")
	})
	return app
}

func TestErrorMiddlewareRendersDomainErrors(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newMiddlewareTestApp(metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "VALIDATION_FAILED", payload.Error.Code)
	assert.Equal(t, "bad input", payload.Error.Message)
	assert.Equal(t, "status", payload.Error.Details["field"])

	assert.EqualValues(t, 1, metrics.ErrorCount("/invalid", http.MethodGet, "VALIDATION_FAILED"))
}

func TestRequestLoggerObservesRenderedStatus(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newMiddlewareTestApp(metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil))
	require.NoError(t, err)
	resp.Body.Close()

	// The logger sits outside error handling, so the request is counted with
	// the rendered failure status, not a premature 200.
	assert.EqualValues(t, 1, metrics.RequestCount("/invalid", http.MethodGet, http.StatusBadRequest))
	assert.EqualValues(t, 0, metrics.RequestCount("/invalid", http.MethodGet, http.StatusOK))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.EqualValues(t, 1, metrics.RequestCount("/ok", http.MethodGet, http.StatusOK))
}

func TestErrorMiddlewareRecoversPanics(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newMiddlewareTestApp(metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.EqualValues(t, 1, metrics.RequestCount("/boom", http.MethodGet, http.StatusInternalServerError))
}
