package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

// Repository is everything the appointment use cases need from storage.
// Lookups of missing records return an error wrapping ErrNotFound.
type Repository interface {
	// -------- Business directory --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	GetWorkingHours(
		ctx context.Context,
		businessID uint,
	) (availability.WorkingHours, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	ListActiveServices(
		ctx context.Context,
		businessID uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		businessID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// ListBookedIntervals returns every non-cancelled appointment of the
	// business overlapping [start, end), ordered by start time.
	ListBookedIntervals(
		ctx context.Context,
		businessID uint,
		start time.Time,
		end time.Time,
	) ([]availability.BookedInterval, error)

	// CreateAppointment persists ap unless it overlaps a non-cancelled
	// appointment of the same business, in which case it returns
	// ErrSlotConflict. The check and the insert are atomic.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		businessID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		businessID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
