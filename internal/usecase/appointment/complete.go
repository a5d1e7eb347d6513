package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type CompleteAppointment struct {
	deps Deps
}

func NewCompleteAppointment(deps Deps) *CompleteAppointment {
	return &CompleteAppointment{deps: deps.withDefaults()}
}

func (uc *CompleteAppointment) Execute(
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
		"appointment_completed",
		events.AppointmentCompleted,
		domain.Complete,
	)
}
