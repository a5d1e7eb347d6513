package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	"github.com/BruksfildServices01/booking-crm/internal/usecase/appointment"
	"github.com/BruksfildServices01/booking-crm/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the booking page of a business, addressed by slug.
type PublicHandler struct {
	repo         domain.Repository
	availability *AvailabilityHandler
	create       *appointment.CreateAppointment
}

func NewPublicHandler(deps appointment.Deps) *PublicHandler {
	return &PublicHandler{
		repo:         deps.Repo,
		availability: NewAvailabilityHandler(deps),
		create:       appointment.NewCreateAppointment(deps),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

type publicBusiness struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

// businessBySlug writes the error response itself and returns nil when the
// slug is unknown or the business is not taking bookings.
func (h *PublicHandler) businessBySlug(c *gin.Context) *models.Business {
	b, err := h.repo.GetBusinessBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return nil
		}
		httperr.Internal(c, "failed_to_get_business", "Failed to load business.")
		return nil
	}
	if !b.Active {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil
	}
	return b
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	b := h.businessBySlug(c)
	if b == nil {
		return
	}

	services, err := h.repo.ListActiveServices(c.Request.Context(), b.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	if category != "" {
		filtered := services[:0]
		for _, s := range services {
			if strings.EqualFold(s.Category, category) {
				filtered = append(filtered, s)
			}
		}
		services = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"business": publicBusiness{
			Name:     b.Name,
			Slug:     b.Slug,
			Phone:    b.Phone,
			Address:  b.Address,
			Timezone: b.Timezone,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	b := h.businessBySlug(c)
	if b == nil {
		return
	}

	h.availability.slotsFor(c, b.ID)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	b := h.businessBySlug(c)
	if b == nil {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	phone := validators.NormalizePhone(req.ClientPhone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:  b.ID,
		ClientName:  req.ClientName,
		ClientPhone: phone,
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

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
		"service":    ap.Service.Name,
	})
}
