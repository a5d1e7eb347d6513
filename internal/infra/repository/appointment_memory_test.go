package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

var day = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

func appointmentAt(businessID uint, from, to time.Duration) *models.Appointment {
	return &models.Appointment{
		BusinessID: businessID,
		StartTime:  day.Add(from),
		EndTime:    day.Add(to),
		Status:     string(domain.StatusScheduled),
	}
}

func TestMemoryCreateRejectsOverlap(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreateAppointment(ctx, appointmentAt(1, 10*time.Hour, 11*time.Hour)))

	err := repo.CreateAppointment(ctx, appointmentAt(1, 10*time.Hour+30*time.Minute, 11*time.Hour+30*time.Minute))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	// Back to back and other business are fine.
	assert.NoError(t, repo.CreateAppointment(ctx, appointmentAt(1, 11*time.Hour, 12*time.Hour)))
	assert.NoError(t, repo.CreateAppointment(ctx, appointmentAt(2, 10*time.Hour, 11*time.Hour)))
}

func TestMemoryCancelledFreesInterval(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	ap := appointmentAt(1, 10*time.Hour, 11*time.Hour)
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	require.NoError(t, domain.Cancel(ap, day))
	require.NoError(t, repo.UpdateAppointment(ctx, ap))

	booked, err := repo.ListBookedIntervals(ctx, 1, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, booked)

	assert.NoError(t, repo.CreateAppointment(ctx, appointmentAt(1, 10*time.Hour, 11*time.Hour)))
}

func TestMemoryConcurrentCreate(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateAppointment(ctx, appointmentAt(1, 10*time.Hour, 11*time.Hour))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrSlotConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestMemoryLookupsWrapNotFound(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()
	b := repo.AddBusiness(models.Business{Slug: "acme"})

	_, err := repo.GetBusinessByID(ctx, b.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetService(ctx, b.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repo.GetBusinessBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestMemoryGetOrCreateClientMatchesPhone(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	first, err := repo.GetOrCreateClient(ctx, 1, "Ana", "555", "")
	require.NoError(t, err)

	again, err := repo.GetOrCreateClient(ctx, 1, "Ana B.", "555", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	other, err := repo.GetOrCreateClient(ctx, 2, "Ana", "555", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}
