package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/lock"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	"github.com/BruksfildServices01/booking-crm/internal/timezone"
)

// Deps is shared by every use case in this package. Only Repo is required.
type Deps struct {
	Repo   domain.Repository
	Audit  *audit.Dispatcher
	Events events.Publisher
	Clock  availability.Clock
	Locker lock.Locker
	Log    *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	if d.Clock == nil {
		d.Clock = availability.SystemClock
	}
	if d.Locker == nil {
		d.Locker = lock.NewLocalLocker()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}

// loadBusiness maps a missing business to a business error.
func (d Deps) loadBusiness(ctx context.Context, id uint) (*models.Business, *time.Location, error) {
	b, err := d.Repo.GetBusinessByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, httperr.ErrBusiness("business_not_found")
		}
		return nil, nil, err
	}
	return b, timezone.Location(b.Timezone), nil
}

func (d Deps) publish(ctx context.Context, eventType string, ap *models.Appointment) {
	err := d.Events.Publish(ctx, events.AppointmentEvent{
		Type:          eventType,
		AppointmentID: ap.ID,
		BusinessID:    ap.BusinessID,
		ClientID:      ap.ClientID,
		ServiceID:     ap.ServiceID,
		StartTime:     ap.StartTime,
		EndTime:       ap.EndTime,
		Status:        ap.Status,
		PaymentStatus: ap.PaymentStatus,
		OccurredAt:    d.Clock.Now(),
	})
	if err != nil {
		d.Log.Warn("event publish failed",
			zap.String("type", eventType),
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}
}

func durationOf(s *models.Service) time.Duration {
	minutes := s.DurationMin
	if minutes <= 0 {
		minutes = availability.DefaultDurationMinutes
	}
	if minutes > availability.MaxDurationMinutes {
		minutes = availability.MaxDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

func minAdvance(b *models.Business) time.Duration {
	if b.MinAdvanceMinutes <= 0 {
		return 0
	}
	return time.Duration(b.MinAdvanceMinutes) * time.Minute
}
