package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/repslog/internal/common"
)

// PerformerOptions are suggestions offered for Entry.Performer. Any
// non-empty value is accepted.
var PerformerOptions = []string{"Myself", "Contractor", "Property Manager", "Other"}

// Entry is one logged activity on a property.
type Entry struct {
	ID           string     `json:"id"`
	Date         Date       `json:"date"`
	TotalMinutes int        `json:"totalMinutes"`
	Performer    string     `json:"performer"`
	ActivityType string     `json:"activityType"`
	Notes        *string    `json:"notes,omitempty"`
	Images       []string   `json:"images,omitempty"`
	StartTime    *TimeOfDay `json:"startTime,omitempty"`
	EndTime      *TimeOfDay `json:"endTime,omitempty"`
	PropertyID   string     `json:"propertyID"`
	CategoryID   *string    `json:"categoryID,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// PropertyRef returns the unresolved reference to the owning property.
func (e Entry) PropertyRef() Ref[Property] {
	return Unresolved[Property](e.PropertyID)
}

// CategoryRef returns the unresolved category reference; false when the
// entry has no category.
func (e Entry) CategoryRef() (Ref[Category], bool) {
	if e.CategoryID == nil || *e.CategoryID == "" {
		return Ref[Category]{}, false
	}
	return Unresolved[Category](*e.CategoryID), true
}

// ImageKeys returns the stored image keys without blanks. The API may
// return null list members.
func (e Entry) ImageKeys() []string {
	out := make([]string, 0, len(e.Images))
	for _, k := range e.Images {
		if strings.TrimSpace(k) != "" {
			out = append(out, k)
		}
	}
	return out
}

// TotalMinutes converts a duration given as hours and minutes.
func TotalMinutes(hours, minutes int) (int, error) {
	if hours < 0 || minutes < 0 {
		return 0, common.Validation("duration must not be negative (hours=%d, minutes=%d)", hours, minutes)
	}
	return hours*60 + minutes, nil
}

// FormatDuration renders minutes as "2h 5m", "2h" or "5m".
func FormatDuration(totalMinutes int) string {
	h, m := totalMinutes/60, totalMinutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// SortEntriesNewestFirst returns a copy ordered by date, newest first. Equal
// dates fall back to creation time, then id, so the order is stable.
func SortEntriesNewestFirst(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		ci, cj := out[i].CreatedAt, out[j].CreatedAt
		if ci != nil && cj != nil && !ci.Equal(*cj) {
			return ci.After(*cj)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
