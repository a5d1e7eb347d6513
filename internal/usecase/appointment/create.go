package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/lock"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

const lockWait = 5 * time.Second

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID uint

	// ActorID is the staff member creating the booking, nil for the
	// public page.
	ActorID *uint

	// Either an existing client, or name and phone to match or create one.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps   Deps
	engine *availability.Engine
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	deps = deps.withDefaults()
	return &CreateAppointment{
		deps:   deps,
		engine: availability.NewEngine(deps.Clock),
	}
}

func bookingLockKey(businessID uint) string {
	return fmt.Sprintf("booking:business:%d", businessID)
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	repo := uc.deps.Repo

	// --------------------------------------------------
	// Business
	// --------------------------------------------------
	business, loc, err := uc.deps.loadBusiness(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !business.Active {
		return nil, httperr.ErrBusiness("business_inactive")
	}

	// --------------------------------------------------
	// Date / time in the business zone
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		strings.TrimSpace(in.Date)+" "+strings.TrimSpace(in.Time),
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.deps.Clock.Now()
	if start.Before(now.Add(minAdvance(business))) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	service, err := repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(durationOf(service))

	// --------------------------------------------------
	// Working hours
	// --------------------------------------------------
	hours, err := repo.GetWorkingHours(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !domain.IsWithinWorkingHours(hours, start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// Client
	// --------------------------------------------------
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflict check + insert, serialised per business
	// --------------------------------------------------
	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()

	release, err := uc.deps.Locker.Acquire(lockCtx, bookingLockKey(in.BusinessID))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, httperr.ErrBusiness("booking_busy")
		}
		return nil, fmt.Errorf("acquire booking lock: %w", err)
	}
	defer release()

	booked, err := repo.ListBookedIntervals(ctx, in.BusinessID, start, end)
	if err != nil {
		return nil, err
	}
	if uc.engine.HasConflict(in.BusinessID, start, end, booked) {
		uc.auditConflict(in, start, end)
		return nil, domain.ErrSlotConflict
	}

	ap := &models.Appointment{
		BusinessID:    in.BusinessID,
		ClientID:      client.ID,
		ServiceID:     service.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.InitialPaymentStatus()),
		Notes:         strings.TrimSpace(in.Notes),
	}

	if err := repo.CreateAppointment(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.auditConflict(in, start, end)
		}
		return nil, err
	}

	ap.Client = *client
	ap.Service = *service

	// --------------------------------------------------
	// Audit + event
	// --------------------------------------------------
	uc.deps.Audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     in.ActorID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})
	uc.deps.publish(ctx, events.AppointmentCreated, ap)

	uc.deps.Log.Info("appointment created",
		zap.Uint("business_id", in.BusinessID),
		zap.Uint("appointment_id", ap.ID),
		zap.Time("start", start),
	)

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.deps.Repo.GetClient(ctx, in.BusinessID, in.ClientID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrBusiness("client_not_found")
			}
			return nil, err
		}
		return client, nil
	}

	name := strings.TrimSpace(in.ClientName)
	phone := strings.TrimSpace(in.ClientPhone)
	if name == "" || phone == "" {
		return nil, httperr.ErrBusiness("client_required")
	}

	return uc.deps.Repo.GetOrCreateClient(
		ctx,
		in.BusinessID,
		name,
		phone,
		strings.TrimSpace(in.ClientEmail),
	)
}

func (uc *CreateAppointment) auditConflict(in CreateAppointmentInput, start, end time.Time) {
	uc.deps.Audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     in.ActorID,
		Action:     "appointment_conflict",
		Entity:     "appointment",
		Metadata: map[string]any{
			"start":      start,
			"end":        end,
			"service_id": in.ServiceID,
		},
	})
}
