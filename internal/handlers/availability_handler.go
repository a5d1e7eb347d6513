package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	ucAppointment "github.com/BruksfildServices01/booking-crm/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(deps ucAppointment.Deps) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: ucAppointment.NewGetAvailability(deps),
	}
}

// slotsFor answers every available-slots endpoint once the business is
// known. service_id takes precedence over duration.
func (h *AvailabilityHandler) slotsFor(c *gin.Context, businessID uint) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}

	date, err := parseDateParam(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
		return
	}

	duration, err := parseDurationParam(c.Query("duration"))
	if err != nil {
		httperr.BadRequest(c, "invalid_duration", "duration must be a whole number of minutes.")
		return
	}

	var serviceID uint
	if raw := c.Query("service_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_service_id", "Invalid service_id.")
			return
		}
		serviceID = id
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessID:  businessID,
		ServiceID:   serviceID,
		DurationMin: duration,
		Date:        date,
	})
	if err != nil {
		respondError(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// GET /api/available-slots?businessId=&date=&duration=
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	raw := c.Query("businessId")
	if raw == "" {
		httperr.BadRequest(c, "missing_business_id", "businessId is required.")
		return
	}

	businessID, ok := parseID(raw)
	if !ok {
		httperr.BadRequest(c, "invalid_business_id", "Invalid businessId.")
		return
	}

	h.slotsFor(c, businessID)
}

// GET /api/me/available-slots
func (h *AvailabilityHandler) MyAvailableSlots(c *gin.Context) {
	h.slotsFor(c, businessIDFrom(c))
}
