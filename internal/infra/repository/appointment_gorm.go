package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

const notCancelled = "status <> 'cancelled'"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func lookupErr(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, lookupErr("get business", err)
	}
	return &b, nil
}

func (r *AppointmentGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&b).Error; err != nil {
		return nil, lookupErr("get business by slug", err)
	}
	return &b, nil
}

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	businessID uint,
) (availability.WorkingHours, error) {

	var rows []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get working hours: %w", err)
	}

	return models.ToAvailability(rows), nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&s).Error; err != nil {
		return nil, lookupErr("get service", err)
	}
	return &s, nil
}

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	businessID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND active = true", businessID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	businessID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", clientID, businessID).
		First(&client).Error; err != nil {
		return nil, lookupErr("get client", err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find client: %w", err)
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedIntervals(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) ([]availability.BookedInterval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("business_id", "start_time", "end_time").
		Where("business_id = ? AND "+notCancelled+" AND start_time < ? AND end_time > ?",
			businessID, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list booked intervals: %w", err)
	}

	out := make([]availability.BookedInterval, 0, len(apps))
	for _, ap := range apps {
		out = append(out, availability.BookedInterval{
			BusinessID: ap.BusinessID,
			Start:      ap.StartTime,
			End:        ap.EndTime,
		})
	}
	return out, nil
}

// CreateAppointment locks any overlapping row of the business before
// inserting. Two transactions racing on a free interval both see nothing to
// lock; the exclusion constraint installed by db.NewDB rejects the second
// insert with 23P01.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing models.Appointment
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("business_id = ? AND "+notCancelled+" AND start_time < ? AND end_time > ?",
				ap.BusinessID, ap.EndTime, ap.StartTime,
			).
			Take(&existing).Error

		switch {
		case err == nil:
			return domain.ErrSlotConflict
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSlotConflict), httperr.IsExclusionConflict(err):
		return domain.ErrSlotConflict
	default:
		return fmt.Errorf("create appointment: %w", err)
	}
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND business_id = ?", appointmentID, businessID).
		First(&ap).Error; err != nil {
		return nil, lookupErr("get appointment", err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error; err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"business_id = ? AND start_time >= ? AND start_time < ?",
			businessID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
