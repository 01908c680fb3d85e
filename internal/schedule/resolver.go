package schedule

import (
	"roomcal/internal/config"
	"roomcal/internal/models"
)

// Resolve maps a room's reservation list, a day, and a slot start (minutes
// since midnight) to the slot's status plus every reservation covering it.
// Booked wins over inquiry when both cover the same slot; overlapping
// reservations are permitted, so the match list may hold more than one entry.
func Resolve(reservations []models.Reservation, day models.Day, slotMinutes int) (string, []models.Reservation) {
	var matches []models.Reservation
	status := models.SlotAvailable

	for _, res := range reservations {
		if !res.Covers(day, slotMinutes) {
			continue
		}
		matches = append(matches, res)
		if res.Status == models.StatusBooked {
			status = models.SlotBooked
		} else if status != models.SlotBooked {
			status = models.SlotInquiry
		}
	}

	return status, matches
}

// ResolveLabel is Resolve for callers holding a "HH:MM" slot label.
func ResolveLabel(reservations []models.Reservation, day models.Day, slot string) (string, []models.Reservation, error) {
	minutes, err := models.ClockMinutes(slot)
	if err != nil {
		return "", nil, err
	}
	status, matches := Resolve(reservations, day, minutes)
	return status, matches, nil
}

// Cell is one resolved calendar cell: a (day, slot) pair with its status and
// the reservations occupying it. Cells are view-model artifacts recomputed on
// every render, never persisted.
type Cell struct {
	Day          models.Day           `json:"date"`
	Slot         string               `json:"slot"`
	Status       string               `json:"status"`
	Reservations []models.Reservation `json:"reservations,omitempty"`
}

// MonthCell is one cell of the 42-day month view. The status is day-level:
// booked if any reservation that day is booked, else inquiry if any exists,
// else available.
type MonthCell struct {
	Day          models.Day           `json:"date"`
	InMonth      bool                 `json:"inMonth"`
	Status       string               `json:"status"`
	Reservations []models.Reservation `json:"reservations,omitempty"`
}

// MonthCells builds the month view for the month containing ref, marking
// out-of-month cells so callers can dim them.
func MonthCells(reservations []models.Reservation, ref models.Day) []MonthCell {
	grid := MonthGrid(ref)

	cells := make([]MonthCell, 0, len(grid))
	for _, day := range grid {
		status := models.SlotAvailable
		var matches []models.Reservation
		for _, res := range reservations {
			if !res.Date.Equal(day) {
				continue
			}
			matches = append(matches, res)
			if res.Status == models.StatusBooked {
				status = models.SlotBooked
			} else if status != models.SlotBooked {
				status = models.SlotInquiry
			}
		}
		cells = append(cells, MonthCell{
			Day:          day,
			InMonth:      InMonth(day, ref),
			Status:       status,
			Reservations: matches,
		})
	}
	return cells
}

// DayCells resolves every slot of the operating window for a single day.
func DayCells(reservations []models.Reservation, day models.Day, window config.HoursConfig) ([]Cell, error) {
	minutes, err := SlotMinutes(window)
	if err != nil {
		return nil, err
	}

	cells := make([]Cell, 0, len(minutes))
	for _, m := range minutes {
		status, matches := Resolve(reservations, day, m)
		cells = append(cells, Cell{
			Day:          day,
			Slot:         models.FormatClock(m),
			Status:       status,
			Reservations: matches,
		})
	}
	return cells, nil
}
