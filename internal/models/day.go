package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayFormat is the wire and storage representation of a civil date.
const DayFormat = "2006-01-02"

// Day is a civil calendar date with no time-of-day or zone component.
// Internally it is midnight UTC, so two Days built from the same
// year/month/day always compare equal regardless of how they were obtained.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates an arbitrary instant to its civil date.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay parses a "2006-01-02" string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) Time() time.Time        { return d.t }
func (d Day) Year() int              { return d.t.Year() }
func (d Day) Month() time.Month      { return d.t.Month() }
func (d Day) DayOfMonth() int        { return d.t.Day() }
func (d Day) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Day) IsZero() bool           { return d.t.IsZero() }
func (d Day) Equal(other Day) bool   { return d.t.Equal(other.t) }
func (d Day) Before(other Day) bool  { return d.t.Before(other.t) }
func (d Day) AddDays(n int) Day      { return DayOf(d.t.AddDate(0, 0, n)) }
func (d Day) FirstOfMonth() Day      { return NewDay(d.Year(), d.Month(), 1) }

func (d Day) String() string {
	return d.t.Format(DayFormat)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
