package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type MarkNoShowAppointment struct {
	deps Deps
}

func NewMarkNoShowAppointment(deps Deps) *MarkNoShowAppointment {
	return &MarkNoShowAppointment{deps: deps.withDefaults()}
}

func (uc *MarkNoShowAppointment) Execute(
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
		"appointment_no_show",
		events.AppointmentNoShow,
		domain.MarkNoShow,
	)
}
