package repository

import (
	"context"
	"errors"
	"testing"

	"roomcal/internal/logging"
	"roomcal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails every call while broken is set.
type flakyStore struct {
	inner  *MemoryReservationStore
	broken bool
	calls  int
}

func (f *flakyStore) Get(ctx context.Context, room string) ([]models.Reservation, error) {
	f.calls++
	if f.broken {
		return nil, errors.New("primary down")
	}
	return f.inner.Get(ctx, room)
}

func (f *flakyStore) Save(ctx context.Context, room string, reservations []models.Reservation) error {
	f.calls++
	if f.broken {
		return errors.New("primary down")
	}
	return f.inner.Save(ctx, room, reservations)
}

func TestFailoverReservationStore(t *testing.T) {
	ctx := context.Background()

	t.Run("UsesPrimaryWhenHealthy", func(t *testing.T) {
		primary := &flakyStore{inner: NewMemoryReservationStore()}
		fallback := NewMemoryReservationStore()
		store := NewFailoverReservationStore(primary, fallback, logging.Nop())

		require.NoError(t, store.Save(ctx, "Sanctuary", []models.Reservation{testReservation("r1")}))

		got, err := store.Get(ctx, "Sanctuary")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "r1", got[0].ID)
	})

	t.Run("FallsBackOnPrimaryFailure", func(t *testing.T) {
		primary := &flakyStore{inner: NewMemoryReservationStore(), broken: true}
		fallback := NewMemoryReservationStore()
		store := NewFailoverReservationStore(primary, fallback, logging.Nop())

		require.NoError(t, store.Save(ctx, "Sanctuary", []models.Reservation{testReservation("r1")}))

		got, err := store.Get(ctx, "Sanctuary")
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("StopsHittingPrimaryWhileDown", func(t *testing.T) {
		primary := &flakyStore{inner: NewMemoryReservationStore(), broken: true}
		fallback := NewMemoryReservationStore()
		store := NewFailoverReservationStore(primary, fallback, logging.Nop())

		_, _ = store.Get(ctx, "Sanctuary") // trips the breaker
		callsAfterTrip := primary.calls

		_, _ = store.Get(ctx, "Sanctuary")
		_, _ = store.Get(ctx, "Sanctuary")
		assert.Equal(t, callsAfterTrip, primary.calls)
	})

	t.Run("FallbackStaysWarm", func(t *testing.T) {
		primary := &flakyStore{inner: NewMemoryReservationStore()}
		fallback := NewMemoryReservationStore()
		store := NewFailoverReservationStore(primary, fallback, logging.Nop())

		require.NoError(t, store.Save(ctx, "Kitchen", []models.Reservation{testReservation("k1")}))

		// Primary dies after a healthy write; the fallback already has data.
		primary.broken = true
		got, err := store.Get(ctx, "Kitchen")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "k1", got[0].ID)
	})
}
