// File: utils/clock.go
package utils

import (
	"time"

	"studiobook/config"
)

// StudioClock yields time in the studio's fixed-offset zone. All slot times and
// calendar-day boundaries are interpreted against this clock, never against the
// server's local zone; mixing the two breaks the booking cutoff.
type StudioClock struct {
	loc *time.Location
}

// NewStudioClock builds a clock for a fixed UTC offset in minutes (IST = 330).
func NewStudioClock(name string, offsetMinutes int) StudioClock {
	return StudioClock{loc: time.FixedZone(name, offsetMinutes*60)}
}

// NewConfiguredStudioClock builds the clock from AppConfig.
func NewConfiguredStudioClock() StudioClock {
	return NewStudioClock(config.AppConfig.StudioTZName, config.AppConfig.StudioTZOffsetMin)
}

// Location returns the studio zone.
func (c StudioClock) Location() *time.Location {
	return c.loc
}

// Now returns the current time in studio-local terms.
func (c StudioClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current studio-local calendar date as "YYYY-MM-DD".
func (c StudioClock) Today() string {
	return c.Now().Format("2006-01-02")
}

// MinutesOfDay converts a studio-local time to minutes since midnight.
func (c StudioClock) MinutesOfDay(t time.Time) int {
	local := t.In(c.loc)
	return local.Hour()*60 + local.Minute()
}

// WeekdayKey maps a "YYYY-MM-DD" studio-local date to the schedule document
// key ("Mon".."Sun"). The error is nil for any well-formed date string.
func (c StudioClock) WeekdayKey(date string) (string, error) {
	t, err := time.ParseInLocation("2006-01-02", date, c.loc)
	if err != nil {
		return "", err
	}
	return t.Format("Mon"), nil
}
