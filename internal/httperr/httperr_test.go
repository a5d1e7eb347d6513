package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusFor("slot_conflict"))
	assert.Equal(t, http.StatusNotFound, StatusFor("service_not_found"))
	assert.Equal(t, http.StatusBadRequest, StatusFor("too_soon"))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
	}{
		{"business", ErrBusiness("slot_conflict"), http.StatusConflict, "slot_conflict"},
		{"wrapped business", fmt.Errorf("create: %w", ErrBusiness("client_not_found")), http.StatusNotFound, "client_not_found"},
		{"plain", errors.New("connection reset"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err, "boom")

			assert.Equal(t, tt.status, w.Code)

			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestPostgresCodes(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, IsExclusionConflict(exclusion))
	assert.False(t, IsUniqueViolation(exclusion))
	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsExclusionConflict(errors.New("x")))
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("ctx: %w", ErrBusiness("too_soon"))

	assert.True(t, IsBusiness(err, "too_soon"))
	assert.False(t, IsBusiness(err, "slot_conflict"))
	assert.False(t, IsBusiness(nil, "too_soon"))
}
