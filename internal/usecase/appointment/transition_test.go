package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

func TestCancel(t *testing.T) {
	f := newFixture(t, monday.Add(8*time.Hour))
	ap := f.book(t, "2024-07-01", "10:00")
	actor := uint(42)

	got, err := NewCancelAppointment(f.deps).Execute(context.Background(), f.business.ID, &actor, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	require.NotNil(t, got.CancelledAt)

	_, err = NewCancelAppointment(f.deps).Execute(context.Background(), f.business.ID, &actor, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	evs := f.events.Events()
	assert.Equal(t, events.AppointmentCancelled, evs[len(evs)-1].Type)
	assert.Equal(t, []string{"appointment_created", "appointment_cancelled"}, f.flushAudit(t))
}

func TestComplete_ThenNoShowRejected(t *testing.T) {
	f := newFixture(t, monday.Add(8*time.Hour))
	ap := f.book(t, "2024-07-01", "10:00")

	got, err := NewCompleteAppointment(f.deps).Execute(context.Background(), f.business.ID, nil, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)

	_, err = NewMarkNoShowAppointment(f.deps).Execute(context.Background(), f.business.ID, nil, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestMarkNoShow_KeepsSlotBooked(t *testing.T) {
	f := newFixture(t, monday.Add(8*time.Hour))
	ap := f.book(t, "2024-07-01", "10:00")

	got, err := NewMarkNoShowAppointment(f.deps).Execute(context.Background(), f.business.ID, nil, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), got.Status)

	_, err = NewCreateAppointment(f.deps).Execute(context.Background(), f.input("2024-07-01", "10:00"))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestTransition_OtherBusinessIsNotFound(t *testing.T) {
	f := newFixture(t, monday.Add(8*time.Hour))
	ap := f.book(t, "2024-07-01", "10:00")

	other := f.repo.AddBusiness(models.Business{Slug: "other", Timezone: "UTC", Active: true})

	_, err := NewCancelAppointment(f.deps).Execute(context.Background(), other.ID, nil, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestUpdatePayment(t *testing.T) {
	f := newFixture(t, monday.Add(8*time.Hour))
	ap := f.book(t, "2024-07-01", "10:00")
	uc := NewUpdatePaymentStatus(f.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.business.ID, nil, ap.ID, "free")
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_status"))

	_, err = uc.Execute(ctx, f.business.ID, nil, ap.ID, "refunded")
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_transition"))

	got, err := uc.Execute(ctx, f.business.ID, nil, ap.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", got.PaymentStatus)
	require.NotNil(t, got.PaidAt)

	got, err = uc.Execute(ctx, f.business.ID, nil, ap.ID, "refunded")
	require.NoError(t, err)
	assert.Equal(t, "refunded", got.PaymentStatus)

	evs := f.events.Events()
	assert.Equal(t, events.AppointmentPaymentUpdated, evs[len(evs)-1].Type)
	assert.Equal(t, "refunded", evs[len(evs)-1].PaymentStatus)
}
