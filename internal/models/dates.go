package models

import (
	"fmt"
	"strings"
	"time"
)

// dayDateLayout is the second wire convention the records service uses for
// date-only fields (attendance visit day, assignment date). Student birth
// dates and schedule times stay RFC3339.
const dayDateLayout = "02.01.2006"

// DayDate is a date-only value marshalled as DD.MM.YYYY.
type DayDate struct {
	time.Time
}

// Day builds a DayDate from calendar components.
func Day(year int, month time.Month, day int) DayDate {
	return DayDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses the DD.MM.YYYY wire form.
func ParseDay(raw string) (DayDate, error) {
	t, err := time.Parse(dayDateLayout, raw)
	if err != nil {
		return DayDate{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return DayDate{Time: t}, nil
}

func (d DayDate) String() string {
	return d.Format(dayDateLayout)
}

// MarshalJSON renders the DD.MM.YYYY form.
func (d DayDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dayDateLayout) + `"`), nil
}

// UnmarshalJSON accepts DD.MM.YYYY and, as a fallback, RFC3339 timestamps
// some endpoints echo back.
func (d *DayDate) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dayDateLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", raw, err)
	}
	// Keep the calendar day of the parsed value; truncating on the absolute
	// timeline would shift offset timestamps onto the previous day.
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}
