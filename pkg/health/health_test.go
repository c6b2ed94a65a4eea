package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live?format=json", nil))
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks health.Checks
		code   int
		body   string
	}{
		{name: "no checks", checks: nil, code: http.StatusOK, body: "OK"},
		{name: "all healthy", checks: health.Checks{"smtp": ok}, code: http.StatusOK, body: "OK"},
		{name: "one failing", checks: health.Checks{"smtp": down, "other": ok}, code: http.StatusServiceUnavailable, body: "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			health.ReadinessHandler(tt.checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestReadinessHandler_JSON(t *testing.T) {
	t.Parallel()

	h := health.ReadinessHandler(health.Checks{
		"smtp":  func(context.Context) error { return errors.New("connection refused") },
		"other": func(context.Context) error { return nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp health.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Equal(t, health.Check{Status: health.StatusUnhealthy, Error: "connection refused"}, resp.Checks["smtp"])
	assert.Equal(t, health.Check{Status: health.StatusHealthy}, resp.Checks["other"])
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	resp := health.Run(context.Background(), health.Checks{
		"slow": func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}, health.WithTimeout(20*time.Millisecond))

	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
}
