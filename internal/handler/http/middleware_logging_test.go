package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLogging_EmitsRequestEntry(t *testing.T) {
	h := newTestHandler(nil, nil)

	var buf bytes.Buffer
	zl := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})

	middleware := h.withLogging(next)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/api/auth/register", entry["uri"])
	assert.Equal(t, http.MethodPost, entry["method"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.Equal(t, float64(len("created")), entry["size"])
	_, hasDuration := entry["duration"]
	assert.True(t, hasDuration, "expected duration field in log entry")
}

func TestWithLogging_PassesResponseThrough(t *testing.T) {
	h := newTestHandler(nil, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	})

	middleware := h.withLogging(next)
	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "payload", rr.Body.String())
}
