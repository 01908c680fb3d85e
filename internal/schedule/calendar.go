package schedule

import (
	"roomcal/internal/models"
)

// WeekStart returns the Sunday on or before the given day. Weeks always
// start on Sunday; this is fixed policy, not configuration.
func WeekStart(day models.Day) models.Day {
	return day.AddDays(-int(day.Weekday()))
}

// MonthGrid enumerates the 42-cell month view for the month containing ref:
// six full weeks starting on the Sunday on or before the first of the month.
// The grid may include trailing days of the previous and next months; dimming
// those cells is the caller's concern.
func MonthGrid(ref models.Day) []models.Day {
	start := WeekStart(ref.FirstOfMonth())

	days := make([]models.Day, 0, models.MonthGridDays)
	for i := 0; i < models.MonthGridDays; i++ {
		days = append(days, start.AddDays(i))
	}
	return days
}

// WeekDays enumerates the 7-cell week view containing ref, starting on its
// Sunday.
func WeekDays(ref models.Day) []models.Day {
	start := WeekStart(ref)

	days := make([]models.Day, 0, models.DaysPerWeek)
	for i := 0; i < models.DaysPerWeek; i++ {
		days = append(days, start.AddDays(i))
	}
	return days
}

// InMonth reports whether day belongs to the same calendar month as ref.
// Used by callers to dim out-of-month cells in the month grid.
func InMonth(day, ref models.Day) bool {
	return day.Year() == ref.Year() && day.Month() == ref.Month()
}
