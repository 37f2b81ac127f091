package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuelmariscal/coursera/internal/common"
)

func TestHealthCalls(t *testing.T) {
	srv, rec := newBackend(t, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
		})
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "MotoSegura API is running"})
		})
	})
	c := newTestClient(srv)
	ctx := context.Background()

	h, err := c.CheckHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h["status"])
	assert.Empty(t, rec.last().Header.Get(common.MobileDeviceHeaderName))

	s, err := c.GetAPIStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MotoSegura API is running", s["message"])

	p, err := c.ProbeHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", p["status"])
	assert.Equal(t, "true", rec.last().Header.Get(common.MobileDeviceHeaderName))
}

func TestProbeHealth_Errors(t *testing.T) {
	srv, _ := newBackend(t, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "maintenance"})
		})
	})
	c := newTestClient(srv)

	_, err := c.ProbeHealth(context.Background())
	assert.ErrorIs(t, err, ErrServerError)

	_, err = c.CheckHealth(context.Background())
	assert.ErrorIs(t, err, ErrServerError)
}
