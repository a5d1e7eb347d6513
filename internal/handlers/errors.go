package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-crm/internal/httperr"
)

func respondError(c *gin.Context, err error, fallbackCode string) {
	httperr.FromError(c, err, fallbackCode)
}

// mapCreateErrors is shared by the staff and public booking endpoints.
func mapCreateErrors(c *gin.Context, err error) {
	respondError(c, err, "failed_to_create_appointment")
}
