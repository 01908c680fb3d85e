package repository

import (
	"context"
	"testing"
	"time"

	"roomcal/internal/logging"
	"roomcal/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReservation(id string) models.Reservation {
	return models.Reservation{
		ID:          id,
		Room:        "Sanctuary",
		MeetingName: "Staff Sync",
		StaffName:   "Jacqui Lewis",
		Status:      models.StatusBooked,
		Date:        models.NewDay(2024, time.March, 1),
		StartTime:   "09:00",
		EndTime:     "10:00",
	}
}

func TestRedisReservationStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	store := NewRedisReservationStore(client, logging.Nop())
	ctx := context.Background()

	t.Run("GetUnknownRoomIsEmpty", func(t *testing.T) {
		got, err := store.Get(ctx, "Parlor")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		list := []models.Reservation{testReservation("r1"), testReservation("r2")}

		require.NoError(t, store.Save(ctx, "Sanctuary", list))

		got, err := store.Get(ctx, "Sanctuary")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "r1", got[0].ID)
		assert.Equal(t, "Staff Sync", got[0].MeetingName)
		assert.Equal(t, "2024-03-01", got[0].Date.String())
	})

	t.Run("SaveReplacesWholeList", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "Sanctuary", []models.Reservation{testReservation("r3")}))

		got, err := store.Get(ctx, "Sanctuary")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "r3", got[0].ID)
	})

	t.Run("RoomsAreIndependent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "Kitchen", []models.Reservation{testReservation("k1")}))

		sanctuary, err := store.Get(ctx, "Sanctuary")
		require.NoError(t, err)
		kitchen, err := store.Get(ctx, "Kitchen")
		require.NoError(t, err)

		assert.Equal(t, "r3", sanctuary[0].ID)
		assert.Equal(t, "k1", kitchen[0].ID)
	})

	t.Run("CorruptDataCoercedToEmpty", func(t *testing.T) {
		s.Set("reservations:Classroom", "{not json")

		got, err := store.Get(ctx, "Classroom")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ReadFailureCoercedToEmpty", func(t *testing.T) {
		s.SetError("boom")
		defer s.SetError("")

		got, err := store.Get(ctx, "Sanctuary")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("WriteFailurePropagates", func(t *testing.T) {
		s.SetError("boom")
		defer s.SetError("")

		err := store.Save(ctx, "Sanctuary", []models.Reservation{testReservation("r4")})
		assert.Error(t, err)
	})
}
