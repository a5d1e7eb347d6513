package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	"github.com/BruksfildServices01/booking-crm/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *appointment.CreateAppointment
	cancel      *appointment.CancelAppointment
	complete    *appointment.CompleteAppointment
	noShow      *appointment.MarkNoShowAppointment
	payment     *appointment.UpdatePaymentStatus
	listByDate  *appointment.ListAppointmentsByDate
	listByMonth *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(deps appointment.Deps) *AppointmentHandler {
	return &AppointmentHandler{
		create:      appointment.NewCreateAppointment(deps),
		cancel:      appointment.NewCancelAppointment(deps),
		complete:    appointment.NewCompleteAppointment(deps),
		noShow:      appointment.NewMarkNoShowAppointment(deps),
		payment:     appointment.NewUpdatePaymentStatus(deps),
		listByDate:  appointment.NewListAppointmentsByDate(deps),
		listByMonth: appointment.NewListAppointmentsByMonth(deps),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:  businessIDFrom(c),
		ActorID:     actorFrom(c),
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), businessIDFrom(c), dateStr)
	if err != nil {
		respondError(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"appointments": list,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), businessIDFrom(c), year, month)
	if err != nil {
		respondError(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}

// ======================================================
// STATUS CHANGES
// ======================================================

type statusChange func(c *gin.Context, businessID uint, actorID *uint, id uint) (*models.Appointment, error)

func (h *AppointmentHandler) changeStatus(c *gin.Context, run statusChange) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := run(c, businessIDFrom(c), actorFrom(c), id)
	if err != nil {
		respondError(c, err, "failed_to_update_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, func(c *gin.Context, businessID uint, actorID *uint, id uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), businessID, actorID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, func(c *gin.Context, businessID uint, actorID *uint, id uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), businessID, actorID, id)
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.changeStatus(c, func(c *gin.Context, businessID uint, actorID *uint, id uint) (*models.Appointment, error) {
		return h.noShow.Execute(c.Request.Context(), businessID, actorID, id)
	})
}

func (h *AppointmentHandler) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "payment_status is required.")
		return
	}

	h.changeStatus(c, func(c *gin.Context, businessID uint, actorID *uint, id uint) (*models.Appointment, error) {
		return h.payment.Execute(c.Request.Context(), businessID, actorID, id, req.PaymentStatus)
	})
}
