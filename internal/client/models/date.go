package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/repslog/internal/common"
)

const (
	dateLayout = "2006-01-02"
)

// Date is a calendar date without time of day, serialized as YYYY-MM-DD.
type Date string

// DateOf normalizes t to a calendar date in loc. A nil loc means time.Local.
func DateOf(t time.Time, loc *time.Location) (Date, error) {
	if t.IsZero() {
		return "", common.Validation("date is required")
	}
	if loc == nil {
		loc = time.Local
	}
	return Date(t.In(loc).Format(dateLayout)), nil
}

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", common.Validation("invalid date %q", s)
	}
	return Date(s), nil
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", string(d), err)
	}
	return t, nil
}

func (d Date) String() string { return string(d) }

// TimeOfDay is a wall-clock time without date, serialized as HH:MM:SS.
type TimeOfDay string

// ParseTimeOfDay accepts HH:MM or HH:MM:SS and normalizes to HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Format("15:04:05")), nil
		}
	}
	return "", common.Validation("invalid time of day %q", s)
}
