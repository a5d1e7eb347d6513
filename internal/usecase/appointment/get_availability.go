package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
)

type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps.withDefaults()}
}

// Execute lists the slots of in.Date, read as a calendar day in the
// business zone. The duration comes from in.ServiceID when set, otherwise
// from in.DurationMin. Slots starting inside the business's minimum advance
// window are unavailable, like past ones.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]availability.TimeSlot, error) {

	business, loc, err := uc.deps.loadBusiness(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !business.Active {
		return []availability.TimeSlot{}, nil
	}

	duration := in.DurationMin
	if in.ServiceID != 0 {
		service, err := uc.deps.Repo.GetService(ctx, in.BusinessID, in.ServiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrBusiness("service_not_found")
			}
			return nil, err
		}
		duration = service.DurationMin
	}

	hours, err := uc.deps.Repo.GetWorkingHours(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	y, m, d := in.Date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := uc.deps.Repo.ListBookedIntervals(ctx, in.BusinessID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	advance := minAdvance(business)
	clock := availability.ClockFunc(func() time.Time {
		return uc.deps.Clock.Now().Add(advance)
	})

	engine := availability.NewEngine(clock)
	return engine.GenerateSlots(dayStart, hours, duration, booked), nil
}
