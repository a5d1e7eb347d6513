package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-crm/internal/dto"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

func toListDTO(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			ClientID:      ap.ClientID,
			ClientName:    ap.Client.Name,
			ClientPhone:   ap.Client.Phone,
			ServiceID:     ap.ServiceID,
			ServiceName:   ap.Service.Name,
			Notes:         ap.Notes,
		})
	}
	return out
}

// ======================================================
// BY DATE
// ======================================================

type ListAppointmentsByDate struct {
	deps Deps
}

func NewListAppointmentsByDate(deps Deps) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{deps: deps.withDefaults()}
}

// Execute lists every appointment, cancelled included, starting on date
// (YYYY-MM-DD) in the business zone.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	businessID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	_, loc, err := uc.deps.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.deps.Repo.ListAppointmentsForPeriod(ctx, businessID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}

// ======================================================
// BY MONTH
// ======================================================

type ListAppointmentsByMonth struct {
	deps Deps
}

func NewListAppointmentsByMonth(deps Deps) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{deps: deps.withDefaults()}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	businessID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	_, loc, err := uc.deps.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.deps.Repo.ListAppointmentsForPeriod(ctx, businessID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}
