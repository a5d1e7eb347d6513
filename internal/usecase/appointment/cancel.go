package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type CancelAppointment struct {
	deps Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{deps: deps.withDefaults()}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	businessID uint,
	actorID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.deps.transition(
		ctx,
		businessID,
		actorID,
		appointmentID,
		"appointment_cancelled",
		events.AppointmentCancelled,
		domain.Cancel,
	)
}
