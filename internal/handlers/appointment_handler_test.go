package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/dto"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

func appointmentRouter(f *fixture) *gin.Engine {
	h := NewAppointmentHandler(f.deps)
	r := gin.New()
	me := r.Group("/api/me", f.staff())
	me.POST("/appointments", h.Create)
	me.GET("/appointments", h.ListByDate)
	me.GET("/appointments/month", h.ListByMonth)
	me.PATCH("/appointments/:id/cancel", h.Cancel)
	me.PATCH("/appointments/:id/complete", h.Complete)
	me.PATCH("/appointments/:id/no-show", h.NoShow)
	me.PATCH("/appointments/:id/payment", h.UpdatePayment)
	return r
}

func createAt(t *testing.T, r *gin.Engine, f *fixture, hm string) models.Appointment {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/me/appointments", CreateAppointmentRequest{
		ClientName:  "Ana",
		ClientPhone: "+15550001234",
		ServiceID:   f.service.ID,
		Date:        "2024-07-01",
		Time:        hm,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Appointment](t, w)
}

func TestAppointmentCreateAndList(t *testing.T) {
	f := newFixture(t)
	r := appointmentRouter(f)

	ap := createAt(t, r, f, "09:00")
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, "pending", ap.PaymentStatus)
	createAt(t, r, f, "11:00")

	w := do(t, r, http.MethodGet, "/api/me/appointments?date=2024-07-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Appointments []dto.AppointmentListDTO `json:"appointments"`
	}](t, w)
	require.Len(t, list.Appointments, 2)
	assert.Equal(t, "Cut", list.Appointments[0].ServiceName)

	w = do(t, r, http.MethodGet, "/api/me/appointments/month?year=2024&month=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct {
		Appointments []dto.AppointmentListDTO `json:"appointments"`
	}](t, w).Appointments, 2)
}

func TestAppointmentCreateRequiresClient(t *testing.T) {
	f := newFixture(t)
	r := appointmentRouter(f)

	w := do(t, r, http.MethodPost, "/api/me/appointments", CreateAppointmentRequest{
		ServiceID: f.service.ID,
		Date:      "2024-07-01",
		Time:      "09:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "client_required", decode[errorBody](t, w).Code)
}

func TestAppointmentListBadInput(t *testing.T) {
	f := newFixture(t)
	r := appointmentRouter(f)

	tests := []struct {
		target string
		code   string
	}{
		{"/api/me/appointments", "missing_date"},
		{"/api/me/appointments?date=July", "invalid_date"},
		{"/api/me/appointments/month?year=2024", "missing_year_or_month"},
		{"/api/me/appointments/month?year=1990&month=1", "invalid_year"},
		{"/api/me/appointments/month?year=2024&month=13", "invalid_month"},
	}
	for _, tt := range tests {
		w := do(t, r, http.MethodGet, tt.target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.target)
		assert.Equal(t, tt.code, decode[errorBody](t, w).Code, tt.target)
	}
}

func TestAppointmentCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	r := appointmentRouter(f)

	ap := createAt(t, r, f, "09:00")

	w := do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/cancel", ap.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(domain.StatusCancelled), decode[models.Appointment](t, w).Status)

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/cancel", ap.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", decode[errorBody](t, w).Code)

	createAt(t, r, f, "09:00")
}

func TestAppointmentStatusRoutes(t *testing.T) {
	f := newFixture(t)
	r := appointmentRouter(f)

	done := createAt(t, r, f, "09:00")
	w := do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/complete", done.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(domain.StatusCompleted), decode[models.Appointment](t, w).Status)

	missed := createAt(t, r, f, "10:00")
	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/no-show", missed.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(domain.StatusNoShow), decode[models.Appointment](t, w).Status)

	w = do(t, r, http.MethodPatch, "/api/me/appointments/999/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "appointment_not_found", decode[errorBody](t, w).Code)

	w = do(t, r, http.MethodPatch, "/api/me/appointments/abc/complete", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_appointment_id", decode[errorBody](t, w).Code)
}

func TestAppointmentPayment(t *testing.T) {
	f := newFixture(t)
	r := appointmentRouter(f)
	ap := createAt(t, r, f, "09:00")
	target := fmt.Sprintf("/api/me/appointments/%d/payment", ap.ID)

	w := do(t, r, http.MethodPatch, target, UpdatePaymentRequest{PaymentStatus: "paid"})
	require.Equal(t, http.StatusOK, w.Code)
	paid := decode[models.Appointment](t, w)
	assert.Equal(t, "paid", paid.PaymentStatus)
	assert.NotNil(t, paid.PaidAt)

	w = do(t, r, http.MethodPatch, target, UpdatePaymentRequest{PaymentStatus: "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_payment_transition", decode[errorBody](t, w).Code)

	w = do(t, r, http.MethodPatch, target, UpdatePaymentRequest{PaymentStatus: "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_payment_status", decode[errorBody](t, w).Code)

	w = do(t, r, http.MethodPatch, target, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
