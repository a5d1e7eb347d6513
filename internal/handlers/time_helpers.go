package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/middleware"
)

var errInvalidDuration = errors.New("invalid duration")

// parseDateParam reads YYYY-MM-DD. Only the calendar day matters; use cases
// place it in the business zone.
func parseDateParam(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// parseDurationParam returns 0 for an empty value, letting the engine apply
// its default. Non-numeric input and anything longer than a day is an error.
func parseDurationParam(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > availability.MaxDurationMinutes {
		return 0, errInvalidDuration
	}
	return n, nil
}

func parseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func businessIDFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextBusinessID).(uint)
}

// actorFrom returns the authenticated user, or nil on public routes.
func actorFrom(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
