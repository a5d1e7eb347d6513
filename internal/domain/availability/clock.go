package availability

import "time"

// Clock is the source of "now" for past-slot filtering.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
