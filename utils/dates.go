package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for appointment and schedule dates.
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a "YYYY-MM-DD" date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseClock parses a clock time in either 12-hour ("9:00 AM") or
// 24-hour ("09:00") form and returns the hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"3:04 PM", "03:04 PM", "15:04"} {
		if t, perr := time.Parse(layout, strings.ToUpper(s)); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("invalid clock time %q", s)
}

// GenerateTimeSlots returns hourly "HH:MM" booking slots between the open and
// close times. The closing hour itself is not a bookable slot: open "9:00 AM"
// close "5:00 PM" yields 09:00 through 16:00.
func GenerateTimeSlots(openTime, closeTime string) ([]string, error) {
	openHour, _, err := ParseClock(openTime)
	if err != nil {
		return nil, err
	}
	closeHour, _, err := ParseClock(closeTime)
	if err != nil {
		return nil, err
	}

	var slots []string
	for h := openHour; h < closeHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots, nil
}
