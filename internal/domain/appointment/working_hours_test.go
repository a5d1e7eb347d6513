package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
)

func TestIsWithinWorkingHours(t *testing.T) {
	hours := availability.WorkingHours{
		"monday": {IsOpen: true, From: "09:00", To: "18:00"},
		"sunday": {IsOpen: false},
	}
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	assert.True(t, IsWithinWorkingHours(hours, at(9, 0), at(10, 0)))
	assert.True(t, IsWithinWorkingHours(hours, at(17, 0), at(18, 0)))
	assert.False(t, IsWithinWorkingHours(hours, at(8, 45), at(9, 45)))
	assert.False(t, IsWithinWorkingHours(hours, at(17, 30), at(18, 30)))
	assert.False(t, IsWithinWorkingHours(hours, at(10, 0), at(10, 0)))

	sunday := day.AddDate(0, 0, -1)
	assert.False(t, IsWithinWorkingHours(hours, sunday.Add(10*time.Hour), sunday.Add(11*time.Hour)))

	tuesday := day.AddDate(0, 0, 1)
	assert.False(t, IsWithinWorkingHours(hours, tuesday.Add(10*time.Hour), tuesday.Add(11*time.Hour)))
}
