package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a wall-clock value like "09:00" or "9.30" into hour and
// minute components. Both ':' and '.' separators are accepted because upstream
// forms have historically produced either.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid clock value '%s'", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid clock value '%s'", s)
	}
	return h, m, nil
}

// AtClock returns the instant on 'day' at hour:minute in the given timezone.
func AtClock(day time.Time, h, m int, loc *time.Location) time.Time {
	d := day.In(loc)
	y, mo, dd := d.Date()
	return time.Date(y, mo, dd, h, m, 0, 0, loc)
}

// StartOfDay returns local midnight of the day containing t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// ParseDateOnly parses a YYYY-MM-DD value as local midnight in loc.
func ParseDateOnly(s string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day, nil
}
