//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/booking-crm/internal/db"
	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

// Run with:
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infra/repository/
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

type pgFixture struct {
	db       *gorm.DB
	repo     *AppointmentGormRepository
	business models.Business
	client   models.Client
	service  models.Service
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	gdb := openTestDB(t)

	f := &pgFixture{db: gdb, repo: NewAppointmentGormRepository(gdb)}

	f.business = models.Business{
		Name:     "Studio",
		Slug:     fmt.Sprintf("studio-%d", time.Now().UnixNano()),
		Timezone: "UTC",
		Active:   true,
	}
	require.NoError(t, gdb.Create(&f.business).Error)

	f.client = models.Client{BusinessID: f.business.ID, Name: "Ana", Phone: "+15550001"}
	require.NoError(t, gdb.Create(&f.client).Error)

	f.service = models.Service{BusinessID: f.business.ID, Name: "Cut", DurationMin: 60, Active: true}
	require.NoError(t, gdb.Create(&f.service).Error)

	t.Cleanup(func() {
		gdb.Where("business_id = ?", f.business.ID).Delete(&models.Appointment{})
		gdb.Where("business_id = ?", f.business.ID).Delete(&models.Client{})
		gdb.Where("business_id = ?", f.business.ID).Delete(&models.Service{})
		gdb.Delete(&models.Business{}, f.business.ID)
	})
	return f
}

func (f *pgFixture) at(from, to time.Duration) *models.Appointment {
	ap := appointmentAt(f.business.ID, from, to)
	ap.ClientID = f.client.ID
	ap.ServiceID = f.service.ID
	ap.PaymentStatus = string(domain.PaymentPending)
	return ap
}

func TestGormCreateRejectsOverlap(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.CreateAppointment(ctx, f.at(10*time.Hour, 11*time.Hour)))

	err := f.repo.CreateAppointment(ctx, f.at(10*time.Hour+30*time.Minute, 11*time.Hour+30*time.Minute))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	// Back to back is fine.
	require.NoError(t, f.repo.CreateAppointment(ctx, f.at(11*time.Hour, 12*time.Hour)))

	booked, err := f.repo.ListBookedIntervals(ctx, f.business.ID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, booked, 2)
}

func TestGormExclusionConstraintBacksTheProbe(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.CreateAppointment(ctx, f.at(14*time.Hour, 15*time.Hour)))

	// Insert directly, skipping the FOR UPDATE check.
	err := f.db.WithContext(ctx).Omit(clause.Associations).Create(f.at(14*time.Hour+15*time.Minute, 14*time.Hour+45*time.Minute)).Error
	require.Error(t, err)
	assert.True(t, httperr.IsExclusionConflict(err), "got %v", err)
}

func TestGormCancelledDoesNotBlock(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	ap := f.at(9*time.Hour, 10*time.Hour)
	require.NoError(t, f.repo.CreateAppointment(ctx, ap))

	ap.Status = string(domain.StatusCancelled)
	require.NoError(t, f.repo.UpdateAppointment(ctx, ap))

	require.NoError(t, f.repo.CreateAppointment(ctx, f.at(9*time.Hour, 10*time.Hour)))
}

func TestGormConcurrentCreate(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.repo.CreateAppointment(ctx, f.at(16*time.Hour, 17*time.Hour))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, domain.ErrSlotConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
}
