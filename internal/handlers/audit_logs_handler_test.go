package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type querySink struct {
	got audit.Query
}

func (s *querySink) Write(context.Context, models.AuditLog) error { return nil }

func (s *querySink) List(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	s.got = q
	return []models.AuditLog{{ID: 1, BusinessID: q.BusinessID, Action: "appointment_created"}}, 31, nil
}

func TestAuditLogsList_BuildsQuery(t *testing.T) {
	f := newFixture(t)
	sink := &querySink{}
	h := NewAuditLogsHandler(sink)

	r := gin.New()
	r.GET("/logs", f.staff(), h.List)

	w := do(t, r, http.MethodGet, "/logs?page=3&limit=10&action=appointment_created&from=2024-07-01&to=2024-07-02", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, f.business.ID, sink.got.BusinessID)
	assert.Equal(t, "appointment_created", sink.got.Action)
	assert.Equal(t, 10, sink.got.Limit)
	assert.Equal(t, 20, sink.got.Offset)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), sink.got.From)
	assert.Equal(t, time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC), sink.got.To)

	body := decode[struct {
		Page  int               `json:"page"`
		Total int64             `json:"total"`
		Data  []models.AuditLog `json:"data"`
	}](t, w)
	assert.Equal(t, 3, body.Page)
	assert.EqualValues(t, 31, body.Total)
	assert.Len(t, body.Data, 1)
}

func TestAuditLogsList_ClampsPaging(t *testing.T) {
	f := newFixture(t)
	sink := &querySink{}
	r := gin.New()
	r.GET("/logs", f.staff(), NewAuditLogsHandler(sink).List)

	w := do(t, r, http.MethodGet, "/logs?page=-1&limit=5000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, sink.got.Limit)
	assert.Equal(t, 0, sink.got.Offset)
}
