// Package timezone pins business-time calculations to one location so
// day and week windows do not drift with the host clock.
package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var (
	defaultOnce sync.Once
	defaultLoc  *time.Location
)

func defaultLocation() *time.Location {
	defaultOnce.Do(func() {
		loc, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
		defaultLoc = loc
	})
	return defaultLoc
}

// Location resolves tz, falling back to the default timezone when tz is
// empty or unknown.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return defaultLocation()
}

// Now returns the current time in the business timezone.
func Now() time.Time {
	return time.Now().In(defaultLocation())
}
