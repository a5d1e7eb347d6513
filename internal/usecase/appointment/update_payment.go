package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type UpdatePaymentStatus struct {
	deps Deps
}

func NewUpdatePaymentStatus(deps Deps) *UpdatePaymentStatus {
	return &UpdatePaymentStatus{deps: deps.withDefaults()}
}

func (uc *UpdatePaymentStatus) Execute(
	ctx context.Context,
	businessID uint,
	actorID *uint,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	next, ok := domain.ParsePaymentStatus(status)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_payment_status")
	}

	return uc.deps.transition(
		ctx,
		businessID,
		actorID,
		appointmentID,
		"appointment_payment_"+string(next),
		events.AppointmentPaymentUpdated,
		func(ap *models.Appointment, now time.Time) error {
			return domain.ChangePayment(ap, next, now)
		},
	)
}
