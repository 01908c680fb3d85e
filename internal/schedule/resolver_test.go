package schedule

import (
	"testing"
	"time"

	"roomcal/internal/config"
	"roomcal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay() models.Day {
	return models.NewDay(2024, time.March, 1)
}

func reservation(id, status, start, end string) models.Reservation {
	return models.Reservation{
		ID:        id,
		Room:      "Sanctuary",
		Status:    status,
		Date:      testDay(),
		StartTime: start,
		EndTime:   end,
	}
}

func TestResolve(t *testing.T) {
	t.Run("EmptyListIsAvailable", func(t *testing.T) {
		status, matches := Resolve(nil, testDay(), 9*60)
		assert.Equal(t, models.SlotAvailable, status)
		assert.Empty(t, matches)
	})

	t.Run("BookedCoversSlot", func(t *testing.T) {
		list := []models.Reservation{reservation("r1", models.StatusBooked, "09:00", "10:00")}

		status, matches := Resolve(list, testDay(), 9*60+30)
		assert.Equal(t, models.SlotBooked, status)
		require.Len(t, matches, 1)
		assert.Equal(t, "r1", matches[0].ID)
	})

	t.Run("HalfOpenBoundary", func(t *testing.T) {
		list := []models.Reservation{reservation("r1", models.StatusBooked, "09:00", "10:00")}

		status, _ := Resolve(list, testDay(), 10*60)
		assert.Equal(t, models.SlotAvailable, status)
	})

	t.Run("BookedWinsOverInquiry", func(t *testing.T) {
		list := []models.Reservation{
			reservation("inq", models.StatusInquiry, "09:00", "11:00"),
			reservation("bkd", models.StatusBooked, "09:30", "10:00"),
		}

		status, matches := Resolve(list, testDay(), 9*60+30)
		assert.Equal(t, models.SlotBooked, status)
		assert.Len(t, matches, 2)

		// Order of the input list must not change the outcome.
		status, _ = Resolve([]models.Reservation{list[1], list[0]}, testDay(), 9*60+30)
		assert.Equal(t, models.SlotBooked, status)
	})

	t.Run("InquiryOnly", func(t *testing.T) {
		list := []models.Reservation{reservation("inq", models.StatusInquiry, "09:00", "10:00")}

		status, _ := Resolve(list, testDay(), 9*60)
		assert.Equal(t, models.SlotInquiry, status)
	})

	t.Run("OverlappingReservationsAllMatched", func(t *testing.T) {
		list := []models.Reservation{
			reservation("a", models.StatusInquiry, "09:00", "12:00"),
			reservation("b", models.StatusInquiry, "09:00", "12:00"),
		}

		_, matches := Resolve(list, testDay(), 10*60)
		assert.Len(t, matches, 2)
	})

	t.Run("OtherDateIgnored", func(t *testing.T) {
		res := reservation("r1", models.StatusBooked, "09:00", "10:00")
		res.Date = testDay().AddDays(1)

		status, _ := Resolve([]models.Reservation{res}, testDay(), 9*60+30)
		assert.Equal(t, models.SlotAvailable, status)
	})

	t.Run("Idempotent", func(t *testing.T) {
		list := []models.Reservation{
			reservation("r1", models.StatusBooked, "09:00", "10:00"),
			reservation("r2", models.StatusInquiry, "14:00", "15:00"),
		}

		status1, matches1 := Resolve(list, testDay(), 9*60)
		status2, matches2 := Resolve(list, testDay(), 9*60)
		assert.Equal(t, status1, status2)
		assert.Equal(t, matches1, matches2)
	})
}

func TestResolveLabel(t *testing.T) {
	list := []models.Reservation{reservation("r1", models.StatusBooked, "09:00", "10:00")}

	status, matches, err := ResolveLabel(list, testDay(), "09:30")
	require.NoError(t, err)
	assert.Equal(t, models.SlotBooked, status)
	assert.Len(t, matches, 1)

	_, _, err = ResolveLabel(list, testDay(), "9am")
	assert.Error(t, err)
}

func TestDayCells(t *testing.T) {
	window := config.HoursConfig{Start: 9, End: 11}
	list := []models.Reservation{reservation("r1", models.StatusBooked, "09:00", "10:00")}

	cells, err := DayCells(list, testDay(), window)
	require.NoError(t, err)
	require.Len(t, cells, 4)

	assert.Equal(t, "09:00", cells[0].Slot)
	assert.Equal(t, models.SlotBooked, cells[0].Status)
	assert.Equal(t, models.SlotBooked, cells[1].Status)
	assert.Equal(t, models.SlotAvailable, cells[2].Status)
	assert.Empty(t, cells[2].Reservations)
	assert.Equal(t, models.SlotAvailable, cells[3].Status)

	_, err = DayCells(list, testDay(), config.HoursConfig{Start: 11, End: 9})
	assert.Error(t, err)
}
