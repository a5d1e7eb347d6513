package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/httpresp"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	"github.com/BruksfildServices01/booking-crm/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("business_id = ?", businessIDFrom(c))

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Failed to list clients.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}

	businessID := businessIDFrom(c)

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("business_id = ? AND phone = ?", businessID, phone).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Failed to create client.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "client_exists", "A client with that phone already exists.")
		return
	}

	client := models.Client{
		BusinessID: businessID,
		Name:       strings.TrimSpace(req.Name),
		Phone:      phone,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:      req.Notes,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Failed to create client.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// GET (WITH HISTORY)
// ======================================================

func (h *ClientHandler) load(c *gin.Context) (*models.Client, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_client_id", "Invalid client id.")
		return nil, false
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", id, businessIDFrom(c)).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_client", "Failed to load client.")
		return nil, false
	}
	return &client, true
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var history []models.Appointment
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Service").
		Where("business_id = ? AND client_id = ?", client.BusinessID, client.ID).
		Order("start_time DESC").
		Find(&history).Error; err != nil {
		httperr.Internal(c, "failed_to_get_client", "Failed to load client history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": history,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if phone == "" {
			httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
			return
		}
		client.Phone = phone
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Failed to update client.")
		return
	}

	c.JSON(http.StatusOK, client)
}
