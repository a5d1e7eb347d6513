package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-crm/internal/models"
)

// Query filters a page of audit entries. Zero values mean "any".
type Query struct {
	BusinessID uint
	Action     string
	Entity     string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// Sink stores audit entries and pages through them, newest first.
type Sink interface {
	Write(ctx context.Context, entry models.AuditLog) error
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}
