package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

// transition loads an appointment of the business, applies change, saves
// it and records the action.
func (d Deps) transition(
	ctx context.Context,
	businessID uint,
	actorID *uint,
	appointmentID uint,
	action string,
	eventType string,
	change func(ap *models.Appointment, now time.Time) error,
) (*models.Appointment, error) {

	_, loc, err := d.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	ap, err := d.Repo.GetAppointment(ctx, businessID, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if err := change(ap, d.Clock.Now().In(loc)); err != nil {
		return nil, err
	}

	if err := d.Repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	d.Audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     actorID,
		Action:     action,
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})
	d.publish(ctx, eventType, ap)

	return ap, nil
}
