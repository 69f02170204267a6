package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agentcli-bridge/config"
	"agentcli-bridge/logger"
	"agentcli-bridge/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers(t *testing.T) *Handlers {
	cfg := config.Default()
	cfg.SessionFile = t.TempDir() + "/sessions.json"
	store := session.NewStore(cfg.SessionFile, time.Hour)
	return NewHandlers(cfg, store, logger.ConditionalLogger(context.Background()), nil)
}

func TestRouter_CORSPreflightShortCircuits(t *testing.T) {
	h := testHandlers(t)
	r := NewRouter(h)

	req := httptest.NewRequest(http.MethodOptions, "/v1/chat/completions", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_NotFoundReturnsJSONEnvelope(t *testing.T) {
	h := testHandlers(t)
	r := NewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not_found_error")
}

func TestRouter_HealthAndModels(t *testing.T) {
	h := testHandlers(t)
	r := NewRouter(h)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)

	rr2 := httptest.NewRecorder()
	r.ServeHTTP(rr2, httptest.NewRequest(http.MethodGet, "/v1/models", nil))
	assert.Equal(t, http.StatusOK, rr2.Code)
	assert.Contains(t, rr2.Body.String(), "claude-opus-4")
}

func TestStartStopServer_IsIdempotent(t *testing.T) {
	h := testHandlers(t)
	r := NewRouter(h)

	err := StartServer(StartOptions{Host: "127.0.0.1", Port: "0"}, r)
	require.NoError(t, err)

	// second Start is a no-op while one is already running
	err = StartServer(StartOptions{Host: "127.0.0.1", Port: "0"}, r)
	require.NoError(t, err)

	require.NoError(t, StopServer(context.Background()))
	// second Stop is a no-op once stopped
	require.NoError(t, StopServer(context.Background()))
}
