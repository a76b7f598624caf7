package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbPingerMock struct {
	PingFunc func(ctx context.Context) error
}

func (m *dbPingerMock) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

func TestHealthHandler_Live(t *testing.T) {
	h := NewHealthHandler(&dbPingerMock{}, "test")

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHealthHandler_Ready_OK(t *testing.T) {
	db := &dbPingerMock{PingFunc: func(ctx context.Context) error { return nil }}
	h := NewHealthHandler(db, "test")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_Ready_DBDown(t *testing.T) {
	db := &dbPingerMock{PingFunc: func(ctx context.Context) error { return errors.New("connection refused") }}
	h := NewHealthHandler(db, "test")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthHandler_Health(t *testing.T) {
	db := &dbPingerMock{PingFunc: func(ctx context.Context) error { return nil }}
	h := NewHealthHandler(db, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	require.Contains(t, resp.Components, "database")
	assert.Equal(t, "ok", resp.Components["database"].Status)
	assert.NotEmpty(t, resp.Components["database"].Latency)
}

func TestHealthHandler_Health_DBDown(t *testing.T) {
	db := &dbPingerMock{PingFunc: func(ctx context.Context) error { return errors.New("connection refused") }}
	h := NewHealthHandler(db, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "down", resp.Status)
	assert.Equal(t, "down", resp.Components["database"].Status)
}
