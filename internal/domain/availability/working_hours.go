package availability

import (
	"fmt"
	"strings"
	"time"
)

// DayHours is the opening window of a single weekday.
type DayHours struct {
	IsOpen bool   `json:"isOpen"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// WorkingHours maps a lowercase weekday name ("monday" to "sunday") to its
// opening window.
type WorkingHours map[string]DayHours

// Indexed by time.Weekday, so Sunday is 0.
var weekdayNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// WeekdayName returns the WorkingHours key for d.
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

// ParseWeekday is the inverse of WeekdayName. Matching is case-insensitive.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight into "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Window returns the open interval of the day in minutes since midnight.
// ok is false when the day is closed or its times are malformed.
func (d DayHours) Window() (from, to int, ok bool) {
	if !d.IsOpen {
		return 0, 0, false
	}
	from, err := ParseClock(d.From)
	if err != nil {
		return 0, 0, false
	}
	to, err = ParseClock(d.To)
	if err != nil {
		return 0, 0, false
	}
	if from >= to {
		return 0, 0, false
	}
	return from, to, true
}

// For returns the hours configured for the weekday of date, evaluated in
// date's own location.
func (w WorkingHours) For(date time.Time) (DayHours, bool) {
	day, ok := w[WeekdayName(date.Weekday())]
	return day, ok
}

// Normalize returns a copy holding exactly seven entries. Missing days are
// closed and keys are lowercased.
func (w WorkingHours) Normalize() WorkingHours {
	out := make(WorkingHours, len(weekdayNames))
	for _, name := range weekdayNames {
		out[name] = DayHours{}
	}
	for name, day := range w {
		if wd, ok := ParseWeekday(name); ok {
			out[WeekdayName(wd)] = day
		}
	}
	return out
}

// Validate rejects unknown weekday names and open days whose window is
// not a valid from < to pair.
func (w WorkingHours) Validate() error {
	for name, day := range w {
		if _, ok := ParseWeekday(name); !ok {
			return fmt.Errorf("unknown weekday %q", name)
		}
		if !day.IsOpen {
			continue
		}
		from, err := ParseClock(day.From)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		to, err := ParseClock(day.To)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if from >= to {
			return fmt.Errorf("%s: opening time %s must be before closing time %s", name, day.From, day.To)
		}
	}
	return nil
}

// DefaultWorkingHours is Monday to Friday, 09:00 to 18:00.
func DefaultWorkingHours() WorkingHours {
	wh := WorkingHours{}.Normalize()
	for d := time.Monday; d <= time.Friday; d++ {
		wh[WeekdayName(d)] = DayHours{IsOpen: true, From: "09:00", To: "18:00"}
	}
	return wh
}
