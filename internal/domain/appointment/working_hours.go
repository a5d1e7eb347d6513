package appointment

import (
	"time"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
)

// IsWithinWorkingHours reports whether [start, end) lies inside the opening
// window of start's weekday. Both instants must fall on the same local day.
func IsWithinWorkingHours(
	hours availability.WorkingHours,
	start time.Time,
	end time.Time,
) bool {

	if !end.After(start) {
		return false
	}

	day, ok := hours.For(start)
	if !ok {
		return false
	}

	from, to, ok := day.Window()
	if !ok {
		return false
	}

	y, m, d := start.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, start.Location())

	workStart := dayStart.Add(time.Duration(from) * time.Minute)
	workEnd := dayStart.Add(time.Duration(to) * time.Minute)

	return !start.Before(workStart) && !end.After(workEnd)
}
