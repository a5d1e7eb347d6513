// Package availability computes bookable time slots for a business day and
// checks candidate appointments against existing bookings.
//
// Everything here is pure: callers fetch working hours and booked intervals
// from storage and pass them in. All intervals are half-open, [start, end),
// so back-to-back appointments never conflict.
package availability

import "time"

const (
	// SlotStepMinutes is the fixed grid on which candidate starts are
	// generated, independent of the service duration.
	SlotStepMinutes = 15

	// DefaultDurationMinutes replaces a missing or non-positive duration.
	DefaultDurationMinutes = 60

	// MaxDurationMinutes is the longest service a single day can hold.
	MaxDurationMinutes = 24 * 60
)

// BookedInterval is an existing, non-cancelled appointment.
type BookedInterval struct {
	BusinessID uint
	Start      time.Time
	End        time.Time
}

// TimeSlot is one candidate start time on the grid.
type TimeSlot struct {
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
	Available bool   `json:"available"`
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func overlapsAny(start, end time.Time, booked []BookedInterval) bool {
	for _, b := range booked {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// Engine generates slots and answers conflict checks. It holds no state
// besides its clock and is safe for concurrent use.
type Engine struct {
	clock Clock
}

func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	return &Engine{clock: clock}
}

// GenerateSlots lists every grid start of date's opening window at which a
// service of durationMinutes still ends by closing time. Slots that start
// before now or overlap a booked interval are returned with Available set
// to false. A closed, missing or malformed day yields an empty slice.
func (e *Engine) GenerateSlots(
	date time.Time,
	hours WorkingHours,
	durationMinutes int,
	booked []BookedInterval,
) []TimeSlot {

	day, ok := hours.For(date)
	if !ok {
		return []TimeSlot{}
	}

	from, to, ok := day.Window()
	if !ok {
		return []TimeSlot{}
	}

	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if durationMinutes > to-from {
		return []TimeSlot{}
	}

	now := e.clock.Now()
	loc := date.Location()
	y, m, d := date.Date()
	length := time.Duration(durationMinutes) * time.Minute

	slots := make([]TimeSlot, 0, (to-from)/SlotStepMinutes+1)
	for s := from; s <= to-durationMinutes; s += SlotStepMinutes {
		start := time.Date(y, m, d, s/60, s%60, 0, 0, loc)
		end := start.Add(length)

		slots = append(slots, TimeSlot{
			Time:      FormatClock(s),
			Timestamp: start.UnixMilli(),
			Available: !start.Before(now) && !overlapsAny(start, end, booked),
		})
	}

	return slots
}

// HasConflict reports whether [start, end) overlaps any existing interval
// of businessID. Intervals tagged with another business are ignored; an
// untagged interval (BusinessID 0) is assumed to belong to businessID.
func (e *Engine) HasConflict(
	businessID uint,
	start time.Time,
	end time.Time,
	existing []BookedInterval,
) bool {
	for _, b := range existing {
		if b.BusinessID != 0 && b.BusinessID != businessID {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
