package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/catalog-api/internal/config"
	"github.com/spec-kit/catalog-api/internal/observability"
	"github.com/spec-kit/catalog-api/internal/service"
)

type testServer struct {
	app  *fiber.App
	logs *observer.ObservedLogs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Name: "catalog-api-test", RequestTimeoutSeconds: 5},
		Logger:  config.LoggerConfig{Level: "debug"},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
	registry, err := observability.NewRegistry(cfg.Metrics)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	app := NewApp(cfg, zap.New(core), registry, Services{
		Users:    service.NewUserService(nil),
		Products: service.NewProductService(nil),
	})
	return &testServer{app: app, logs: logs}
}

type testResponse struct {
	status int
	header nethttp.Header
	body   string
}

func (s *testServer) get(t *testing.T, path string) testResponse {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(nethttp.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{status: resp.StatusCode, header: resp.Header, body: string(body)}
}

func (s *testServer) exceptionLogs() []observer.LoggedEntry {
	return s.logs.FilterMessage("request exception").All()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp := s.get(t, "/health")
	assert.Equal(t, nethttp.StatusOK, resp.status)
	assert.JSONEq(t, `{"status":"healthy"}`, resp.body)
}

func TestMetricsBeforeAnyFailure(t *testing.T) {
	s := newTestServer(t)

	resp := s.get(t, "/metrics")
	assert.Equal(t, nethttp.StatusOK, resp.status)
	assert.Equal(t, observability.ContentType, resp.header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.body, "api_exceptions_sum_total 0")
	assert.NotContains(t, resp.body, "api_exceptions_total{")
}

func TestSimulatedUserErrorIsTracked(t *testing.T) {
	s := newTestServer(t)

	resp := s.get(t, "/users/999/error")
	assert.Equal(t, nethttp.StatusBadRequest, resp.status)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.body), &payload))
	assert.Equal(t, "invalid-input", payload.Error.Code)
	assert.Equal(t, "Invalid user data provided", payload.Error.Message)

	entries := s.exceptionLogs()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "simulate_user_error", fields["endpoint"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "invalid-input", fields["exception_type"])
	assert.Contains(t, fields["error"], "Invalid user data provided")
	assert.NotEmpty(t, fields["request_id"])

	metrics := s.get(t, "/metrics").body
	assert.Contains(t, metrics, `api_exceptions_total{endpoint="simulate_user_error",exception_type="invalid-input",method="GET"} 1`)
	assert.Contains(t, metrics, "api_exceptions_sum_total 1")
}

func TestSimulatedErrorKinds(t *testing.T) {
	tests := []struct {
		path     string
		status   int
		endpoint string
		kind     string
	}{
		{"/users/998/error", nethttp.StatusServiceUnavailable, "simulate_user_error", "resource-unavailable"},
		{"/products/999/error", nethttp.StatusServiceUnavailable, "simulate_product_error", "connectivity-failure"},
		{"/products/998/error", nethttp.StatusNotFound, "simulate_product_error", "missing-key"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s := newTestServer(t)

			resp := s.get(t, tt.path)
			assert.Equal(t, tt.status, resp.status)

			metrics := s.get(t, "/metrics").body
			assert.Contains(t, metrics, `api_exceptions_total{endpoint="`+tt.endpoint+`",exception_type="`+tt.kind+`",method="GET"} 1`)
			assert.Contains(t, metrics, "api_exceptions_sum_total 1")
		})
	}
}

func TestUnmatchedRouteRecordedAsUnknown(t *testing.T) {
	s := newTestServer(t)

	resp := s.get(t, "/users/abc")
	assert.Equal(t, nethttp.StatusNotFound, resp.status)

	entries := s.exceptionLogs()
	require.Len(t, entries, 1)
	assert.Equal(t, observability.UnknownEndpoint, entries[0].ContextMap()["endpoint"])

	metrics := s.get(t, "/metrics").body
	assert.Contains(t, metrics, `api_exceptions_total{endpoint="unknown",exception_type="fiber.Error",method="GET"} 1`)
}

func TestSuccessfulRequestsAreNotCounted(t *testing.T) {
	s := newTestServer(t)

	resp := s.get(t, "/users/1")
	assert.Equal(t, nethttp.StatusOK, resp.status)
	assert.JSONEq(t, `{"id":1,"name":"John Doe","email":"john@example.com"}`, resp.body)

	resp = s.get(t, "/products")
	assert.Equal(t, nethttp.StatusOK, resp.status)
	assert.Contains(t, resp.body, `"name":"Laptop"`)

	resp = s.get(t, "/products/3/error")
	assert.Equal(t, nethttp.StatusOK, resp.status)
	assert.JSONEq(t, `{"message":"Product 3 processed successfully"}`, resp.body)

	// Absence is a normal response, not a failure.
	resp = s.get(t, "/users/42")
	assert.Equal(t, nethttp.StatusNotFound, resp.status)
	assert.JSONEq(t, `{"message":"User not found"}`, resp.body)

	assert.Empty(t, s.exceptionLogs())
	assert.Contains(t, s.get(t, "/metrics").body, "api_exceptions_sum_total 0")
}

func TestGlobalCounterEqualsFailures(t *testing.T) {
	s := newTestServer(t)

	paths := []string{
		"/users", "/users/999/error", "/users/2", "/products/999/error",
		"/nope", "/users/999/error", "/products/1", "/products/998/error",
	}
	for _, p := range paths {
		s.get(t, p)
	}

	metrics := s.get(t, "/metrics").body
	assert.Contains(t, metrics, "api_exceptions_sum_total 5")
	assert.Contains(t, metrics, `api_exceptions_total{endpoint="simulate_user_error",exception_type="invalid-input",method="GET"} 2`)
	assert.Len(t, s.exceptionLogs(), 5)
}

func TestPanicIsTrackedAsInternal(t *testing.T) {
	s := newTestServer(t)
	s.app.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	}).Name("boom")

	resp := s.get(t, "/boom")
	assert.Equal(t, nethttp.StatusInternalServerError, resp.status)
	assert.Contains(t, resp.body, `"code":"internal"`)

	metrics := s.get(t, "/metrics").body
	assert.Contains(t, metrics, `api_exceptions_total{endpoint="boom",exception_type="internal",method="GET"} 1`)
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))

	generated := s.get(t, "/health").header.Get(fiber.HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, 4, strings.Count(generated, "-"))
}
