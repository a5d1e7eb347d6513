package timezone

import (
	"sync/atomic"
	"time"
)

var defaultTZ atomic.Value

func init() {
	defaultTZ.Store("UTC")
}

// SetDefault changes the zone used for businesses without a valid one.
// Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultTZ.Store(tz)
	}
}

func Default() string {
	return defaultTZ.Load().(string)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(Default())
	if err != nil {
		return time.UTC
	}
	return loc
}

// In converts t into tz.
func In(tz string, t time.Time) time.Time {
	return t.In(Location(tz))
}
