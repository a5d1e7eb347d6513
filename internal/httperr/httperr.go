package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// ======================================================
// Business error -> HTTP
// ======================================================

var statusByCode = map[string]int{
	"slot_conflict":              http.StatusConflict,
	"invalid_state":              http.StatusConflict,
	"invalid_payment_transition": http.StatusConflict,
	"slug_taken":                 http.StatusConflict,
	"email_taken":                http.StatusConflict,
	"business_inactive":          http.StatusUnprocessableEntity,
	"booking_busy":               http.StatusServiceUnavailable,
}

var messageByCode = map[string]string{
	"slot_conflict":              "The requested time overlaps an existing appointment.",
	"invalid_state":              "The appointment cannot change to that status.",
	"invalid_payment_transition": "The payment cannot change to that status.",
	"business_inactive":          "The business is not taking bookings.",
	"business_not_found":         "Business not found.",
	"service_not_found":          "Service not found.",
	"client_not_found":           "Client not found.",
	"appointment_not_found":      "Appointment not found.",
	"invalid_date_or_time":       "Invalid date or time.",
	"too_soon":                   "The requested time is too soon.",
	"outside_working_hours":      "The requested time is outside working hours.",
	"client_required":            "Client name and phone are required.",
	"booking_busy":               "Another booking is in progress, try again.",
	"invalid_payment_status":     "Unknown payment status.",
	"invalid_date":               "Invalid date.",
}

// StatusFor returns the HTTP status used for a business error code.
func StatusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	if strings.HasSuffix(code, "_not_found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// FromError writes err. Business errors keep their code; anything else is
// reported as an internal error under fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	if code, ok := CodeOf(err); ok {
		msg, known := messageByCode[code]
		if !known {
			msg = "Request rejected."
		}
		Write(c, StatusFor(code), code, msg)
		return
	}

	Internal(c, fallbackCode, "Internal error.")
}
