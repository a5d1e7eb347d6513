package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

// AppointmentMemoryRepository keeps everything in maps guarded by one
// mutex. CreateAppointment checks for overlaps and inserts while holding
// it, so it gives the same guarantee as the exclusion constraint.
type AppointmentMemoryRepository struct {
	mu sync.Mutex

	nextID uint

	businesses   map[uint]models.Business
	hours        map[uint]availability.WorkingHours
	services     map[uint]models.Service
	clients      map[uint]models.Client
	appointments map[uint]models.Appointment
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		businesses:   map[uint]models.Business{},
		hours:        map[uint]availability.WorkingHours{},
		services:     map[uint]models.Service{},
		clients:      map[uint]models.Client{},
		appointments: map[uint]models.Appointment{},
	}
}

func (r *AppointmentMemoryRepository) id() uint {
	r.nextID++
	return r.nextID
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *AppointmentMemoryRepository) AddBusiness(b models.Business) models.Business {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == 0 {
		b.ID = r.id()
	}
	r.businesses[b.ID] = b
	return b
}

func (r *AppointmentMemoryRepository) SetWorkingHours(businessID uint, hours availability.WorkingHours) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hours[businessID] = hours.Normalize()
}

func (r *AppointmentMemoryRepository) AddService(s models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		s.ID = r.id()
	}
	r.services[s.ID] = s
	return s
}

func (r *AppointmentMemoryRepository) AddClient(c models.Client) models.Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		c.ID = r.id()
	}
	r.clients[c.ID] = c
	return c
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetBusinessByID(
	_ context.Context,
	id uint,
) (*models.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.businesses[id]
	if !ok {
		return nil, fmt.Errorf("get business: %w", domain.ErrNotFound)
	}
	return &b, nil
}

func (r *AppointmentMemoryRepository) GetBusinessBySlug(
	_ context.Context,
	slug string,
) (*models.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.businesses {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("get business by slug: %w", domain.ErrNotFound)
}

func (r *AppointmentMemoryRepository) GetWorkingHours(
	_ context.Context,
	businessID uint,
) (availability.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := availability.WorkingHours{}
	for k, v := range r.hours[businessID] {
		out[k] = v
	}
	return out, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetService(
	_ context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[serviceID]
	if !ok || s.BusinessID != businessID {
		return nil, fmt.Errorf("get service: %w", domain.ErrNotFound)
	}
	return &s, nil
}

func (r *AppointmentMemoryRepository) ListActiveServices(
	_ context.Context,
	businessID uint,
) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Service{}
	for _, s := range r.services {
		if s.BusinessID == businessID && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetClient(
	_ context.Context,
	businessID uint,
	clientID uint,
) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[clientID]
	if !ok || c.BusinessID != businessID {
		return nil, fmt.Errorf("get client: %w", domain.ErrNotFound)
	}
	return &c, nil
}

func (r *AppointmentMemoryRepository) GetOrCreateClient(
	_ context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.BusinessID == businessID && c.Phone == phone {
			return &c, nil
		}
	}

	c := models.Client{
		ID:         r.id(),
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	r.clients[c.ID] = c
	return &c, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentMemoryRepository) bookedLocked(
	businessID uint,
	start time.Time,
	end time.Time,
) []availability.BookedInterval {

	out := []availability.BookedInterval{}
	for _, ap := range r.appointments {
		if ap.BusinessID != businessID || !domain.Status(ap.Status).Booked() {
			continue
		}
		if !availability.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			continue
		}
		out = append(out, availability.BookedInterval{
			BusinessID: ap.BusinessID,
			Start:      ap.StartTime,
			End:        ap.EndTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (r *AppointmentMemoryRepository) ListBookedIntervals(
	_ context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) ([]availability.BookedInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bookedLocked(businessID, start, end), nil
}

func (r *AppointmentMemoryRepository) CreateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.bookedLocked(ap.BusinessID, ap.StartTime, ap.EndTime)) > 0 {
		return domain.ErrSlotConflict
	}

	now := time.Now()
	ap.ID = r.id()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	stored := *ap
	stored.Client = models.Client{}
	stored.Service = models.Service{}
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) hydrateLocked(ap models.Appointment) models.Appointment {
	ap.Client = r.clients[ap.ClientID]
	ap.Service = r.services[ap.ServiceID]
	return ap
}

func (r *AppointmentMemoryRepository) GetAppointment(
	_ context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[appointmentID]
	if !ok || ap.BusinessID != businessID {
		return nil, fmt.Errorf("get appointment: %w", domain.ErrNotFound)
	}
	ap = r.hydrateLocked(ap)
	return &ap, nil
}

func (r *AppointmentMemoryRepository) UpdateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return fmt.Errorf("update appointment: %w", domain.ErrNotFound)
	}

	stored := *ap
	stored.Client = models.Client{}
	stored.Service = models.Service{}
	stored.UpdatedAt = time.Now()
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) ListAppointmentsForPeriod(
	_ context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.BusinessID != businessID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, r.hydrateLocked(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
