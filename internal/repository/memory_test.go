package repository

import (
	"context"
	"testing"

	"roomcal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReservationStore(t *testing.T) {
	store := NewMemoryReservationStore()
	ctx := context.Background()

	t.Run("GetUnknownRoomIsEmpty", func(t *testing.T) {
		got, err := store.Get(ctx, "Parlor")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "Sanctuary", []models.Reservation{testReservation("r1")}))

		got, err := store.Get(ctx, "Sanctuary")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "r1", got[0].ID)
	})

	t.Run("GetReturnsACopy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "Kitchen", []models.Reservation{testReservation("k1")}))

		first, err := store.Get(ctx, "Kitchen")
		require.NoError(t, err)
		first[0].MeetingName = "mutated"

		second, err := store.Get(ctx, "Kitchen")
		require.NoError(t, err)
		assert.Equal(t, "Staff Sync", second[0].MeetingName)
	})

	t.Run("SaveCopiesInput", func(t *testing.T) {
		list := []models.Reservation{testReservation("x1")}
		require.NoError(t, store.Save(ctx, "Parlor", list))
		list[0].MeetingName = "mutated"

		got, err := store.Get(ctx, "Parlor")
		require.NoError(t, err)
		assert.Equal(t, "Staff Sync", got[0].MeetingName)
	})
}
