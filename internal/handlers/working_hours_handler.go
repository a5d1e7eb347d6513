package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

// Get returns all seven days keyed by weekday name.
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	var rows []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", businessIDFrom(c)).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_working_hours", "Failed to load working hours.")
		return
	}

	c.JSON(http.StatusOK, models.ToAvailability(rows).Normalize())
}

// Update replaces the whole week. Days left out of the body are closed.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req availability.WorkingHours
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Expected an object keyed by weekday name.")
		return
	}

	if err := req.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_working_hours", err.Error())
		return
	}

	businessID := businessIDFrom(c)
	hours := req.Normalize()
	rows := models.FromAvailability(businessID, hours)

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", businessID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Failed to save working hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}
