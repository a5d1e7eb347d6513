package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/httpresp"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1,max=1440"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	active := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("business_id = ?", businessIDFrom(c))

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch active {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.Service{
		BusinessID:  businessIDFrom(c),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", id, businessIDFrom(c)).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Failed to load service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 || *req.DurationMin > availability.MaxDurationMinutes {
			httperr.BadRequest(c, "invalid_duration", "duration_min must be between 1 and 1440.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	c.JSON(http.StatusOK, service)
}
