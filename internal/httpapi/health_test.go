package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/engine/pkg/logger"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func TestHealthHandlerCheckAlwaysHealthy(t *testing.T) {
	h := NewHealthHandler(nil, nil, logger.New())
	w := httptest.NewRecorder()
	h.Check(w, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandlerReadyAllOK(t *testing.T) {
	h := NewHealthHandler(stubPinger{}, stubPinger{}, logger.New())
	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/v1/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestHealthHandlerReadyDependencyDown(t *testing.T) {
	h := NewHealthHandler(stubPinger{err: errors.New("connection refused")}, stubPinger{}, logger.New())
	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/v1/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthHandlerReadySkipsNilDeps(t *testing.T) {
	h := NewHealthHandler(nil, nil, logger.New())
	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/v1/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
