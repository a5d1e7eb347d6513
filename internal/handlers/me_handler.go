package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/middleware"
	"github.com/BruksfildServices01/booking-crm/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Business").
		First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userView(&user),
		"business": user.Business,
	})
}
