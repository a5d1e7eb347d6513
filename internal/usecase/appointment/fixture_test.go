package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/infra/repository"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

// 2024-07-01 is a Monday.
var monday = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

type auditSink struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (s *auditSink) Write(_ context.Context, e models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *auditSink) List(context.Context, audit.Query) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func (s *auditSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}

type fixture struct {
	repo       *repository.AppointmentMemoryRepository
	business   models.Business
	service    models.Service
	events     *events.Recorder
	sink       *auditSink
	dispatcher *audit.Dispatcher
	deps       Deps
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	repo := repository.NewAppointmentMemoryRepository()
	business := repo.AddBusiness(models.Business{
		Name:     "Studio",
		Slug:     "studio",
		Timezone: "UTC",
		Active:   true,
	})
	repo.SetWorkingHours(business.ID, availability.DefaultWorkingHours())

	service := repo.AddService(models.Service{
		BusinessID:  business.ID,
		Name:        "Cut",
		DurationMin: 60,
		Active:      true,
	})

	sink := &auditSink{}
	dispatcher := audit.NewDispatcher(sink, nil)
	recorder := &events.Recorder{}

	return &fixture{
		repo:       repo,
		business:   business,
		service:    service,
		events:     recorder,
		sink:       sink,
		dispatcher: dispatcher,
		deps: Deps{
			Repo:   repo,
			Audit:  dispatcher,
			Events: recorder,
			Clock:  availability.FixedClock(now),
		},
	}
}

// flushAudit drains the dispatcher so entries can be inspected.
func (f *fixture) flushAudit(t *testing.T) []string {
	t.Helper()
	require.NoError(t, f.dispatcher.Close(context.Background()))
	return f.sink.actions()
}

func (f *fixture) input(date, hm string) CreateAppointmentInput {
	return CreateAppointmentInput{
		BusinessID:  f.business.ID,
		ClientName:  "Ana",
		ClientPhone: "+15550001",
		ServiceID:   f.service.ID,
		Date:        date,
		Time:        hm,
	}
}

func (f *fixture) book(t *testing.T, date, hm string) *models.Appointment {
	t.Helper()
	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), f.input(date, hm))
	require.NoError(t, err)
	return ap
}
