package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	sink audit.Sink
}

func NewAuditLogsHandler(sink audit.Sink) *AuditLogsHandler {
	return &AuditLogsHandler{sink: sink}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := audit.Query{
		BusinessID: businessIDFrom(c),
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := h.sink.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
