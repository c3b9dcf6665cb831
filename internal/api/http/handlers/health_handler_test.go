package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func readyResponse(t *testing.T, pg, redis error) (int, map[string]string) {
	t.Helper()
	app := fiber.New()
	h := NewHealthHandler(stubPinger{err: pg}, stubPinger{err: redis})
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload.Checks
}

func TestHealthLive(t *testing.T) {
	app := fiber.New()
	h := NewHealthHandler(stubPinger{}, stubPinger{})
	app.Get("/health/live", h.Live)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthReady(t *testing.T) {
	status, checks := readyResponse(t, nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", checks["postgres"])
	assert.Equal(t, "ok", checks["redis"])
}

func TestHealthReadyPostgresDown(t *testing.T) {
	status, checks := readyResponse(t, errors.New("dial refused"), nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "dial refused", checks["postgres"])
}

func TestHealthReadyRedisDown(t *testing.T) {
	// Redis backs the idempotency-key store, so readiness gates on it too.
	status, checks := readyResponse(t, nil, errors.New("dial refused"))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "ok", checks["postgres"])
	assert.Equal(t, "dial refused", checks["redis"])
}
