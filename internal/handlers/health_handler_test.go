package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler(map[string]Check{
		"postgres": func(context.Context) error { return nil },
	})
	r := gin.New()
	r.GET("/health", h.Live)
	r.GET("/ready", h.Ready)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", nil).Code)

	w := do(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)
}

func TestReady_FailingCheck(t *testing.T) {
	h := NewHealthHandler(map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	r := gin.New()
	r.GET("/ready", h.Ready)

	w := do(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"connection refused"`)
	assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
}
