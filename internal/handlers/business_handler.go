package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	"github.com/BruksfildServices01/booking-crm/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	Active            *bool   `json:"active"`
}

func (h *BusinessHandler) load(c *gin.Context) (*models.Business, bool) {
	var b models.Business
	if err := h.db.WithContext(c.Request.Context()).First(&b, businessIDFrom(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_business", "Failed to load business.")
		return nil, false
	}
	return &b, true
}

func (h *BusinessHandler) GetMyBusiness(c *gin.Context) {
	b, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BusinessHandler) UpdateMyBusiness(c *gin.Context) {
	b, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Name cannot be empty.")
			return
		}
		b.Name = name
	}
	if req.Phone != nil {
		b.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		b.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		b.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "min_advance_minutes must be zero or positive.")
			return
		}
		b.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.Active != nil {
		b.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(b).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Failed to save business settings.")
		return
	}

	c.JSON(http.StatusOK, b)
}
