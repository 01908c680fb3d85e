// Package schedule implements the scheduling/availability engine: time-grid
// generation, calendar day enumeration, and slot-status resolution. Everything
// here is a pure function over models values; no I/O and no clocks.
package schedule

import (
	"fmt"

	"roomcal/internal/config"
	"roomcal/internal/models"
)

// InvalidWindowError reports a malformed operating window. It is fatal at
// startup and never recoverable at runtime.
type InvalidWindowError struct {
	Start int
	End   int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid operating window [%d, %d): want 0 <= start < end <= 24", e.Start, e.End)
}

// Slots produces the ordered half-hour slot labels of the operating window:
// "07:00", "07:30", ..., "21:30" for a [7, 22) window. The output length is
// always 2*(end-start).
func Slots(window config.HoursConfig) ([]string, error) {
	if !window.Valid() {
		return nil, &InvalidWindowError{Start: window.Start, End: window.End}
	}

	slots := make([]string, 0, 2*(window.End-window.Start))
	for minute := window.Start * 60; minute < window.End*60; minute += models.SlotStepMinutes {
		slots = append(slots, models.FormatClock(minute))
	}
	return slots, nil
}

// SlotMinutes is Slots with labels already converted to minutes since
// midnight, for callers that compare rather than render.
func SlotMinutes(window config.HoursConfig) ([]int, error) {
	if !window.Valid() {
		return nil, &InvalidWindowError{Start: window.Start, End: window.End}
	}

	minutes := make([]int, 0, 2*(window.End-window.Start))
	for minute := window.Start * 60; minute < window.End*60; minute += models.SlotStepMinutes {
		minutes = append(minutes, minute)
	}
	return minutes, nil
}
