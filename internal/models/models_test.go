package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockMinutes(t *testing.T) {
	t.Run("ValidTimes", func(t *testing.T) {
		cases := map[string]int{
			"00:00": 0,
			"07:00": 420,
			"09:30": 570,
			"21:30": 1290,
			"23:59": 1439,
		}
		for input, want := range cases {
			got, err := ClockMinutes(input)
			require.NoError(t, err, input)
			assert.Equal(t, want, got, input)
		}
	})

	t.Run("InvalidTimes", func(t *testing.T) {
		for _, input := range []string{"", "9", "24:00", "12:60", "ab:cd", "-1:00"} {
			_, err := ClockMinutes(input)
			assert.Error(t, err, input)
		}
	})

	t.Run("FormatRoundTrip", func(t *testing.T) {
		for _, label := range []string{"07:00", "09:30", "21:30"} {
			m, err := ClockMinutes(label)
			require.NoError(t, err)
			assert.Equal(t, label, FormatClock(m))
		}
	})
}

func TestDay(t *testing.T) {
	t.Run("ParseAndString", func(t *testing.T) {
		d, err := ParseDay("2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 1, d.DayOfMonth())
		assert.Equal(t, "2024-03-01", d.String())
	})

	t.Run("ParseRejectsGarbage", func(t *testing.T) {
		_, err := ParseDay("03/01/2024")
		assert.Error(t, err)
	})

	t.Run("DayOfDropsTimeOfDay", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		instant := time.Date(2024, time.March, 1, 23, 45, 0, 0, loc)
		assert.True(t, DayOf(instant).Equal(NewDay(2024, time.March, 1)))
	})

	t.Run("AddDaysCrossesMonthBoundary", func(t *testing.T) {
		d := NewDay(2024, time.February, 28)
		assert.Equal(t, "2024-02-29", d.AddDays(1).String())
		assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	})

	t.Run("JSONRoundTrip", func(t *testing.T) {
		d := NewDay(2024, time.March, 1)
		raw, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2024-03-01"`, string(raw))

		var back Day
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.True(t, d.Equal(back))
	})
}

func TestReservationCovers(t *testing.T) {
	day := NewDay(2024, time.March, 1)
	res := Reservation{
		ID:        "r1",
		Room:      "Sanctuary",
		Status:    StatusBooked,
		Date:      day,
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	t.Run("CoversInterior", func(t *testing.T) {
		assert.True(t, res.Covers(day, 9*60))
		assert.True(t, res.Covers(day, 9*60+30))
	})

	t.Run("HalfOpenEnd", func(t *testing.T) {
		assert.False(t, res.Covers(day, 10*60))
	})

	t.Run("WrongDate", func(t *testing.T) {
		assert.False(t, res.Covers(day.AddDays(1), 9*60+30))
	})
}
