package appointment

import "time"

type AvailabilityInput struct {
	BusinessID  uint
	ServiceID   uint
	DurationMin int
	Date        time.Time
}
