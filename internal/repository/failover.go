package repository

import (
	"context"
	"sync/atomic"
	"time"

	"roomcal/internal/domain"
	"roomcal/internal/models"

	"github.com/rs/zerolog"
)

// FailoverReservationStore serves from a primary store and falls back to a
// secondary one when the primary errors, retrying the primary after a
// cooldown. With the in-memory store as fallback the service keeps working
// through a Redis outage, at the cost of durability.
type FailoverReservationStore struct {
	primary   domain.ReservationStore
	fallback  domain.ReservationStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed primary attempt
}

const recoveryInterval = time.Minute

func NewFailoverReservationStore(primary, fallback domain.ReservationStore, logger *zerolog.Logger) *FailoverReservationStore {
	return &FailoverReservationStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverReservationStore) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary reservation store failed, falling back")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverReservationStore) shouldProbe() bool {
	return time.Since(time.Unix(0, r.lastCheck.Load())) > recoveryInterval
}

func (r *FailoverReservationStore) Get(ctx context.Context, room string) ([]models.Reservation, error) {
	if !r.isDown.Load() || r.shouldProbe() {
		reservations, err := r.primary.Get(ctx, room)
		if err == nil {
			r.isDown.Store(false)
			return reservations, nil
		}
		r.markDown(err)
	}

	return r.fallback.Get(ctx, room)
}

func (r *FailoverReservationStore) Save(ctx context.Context, room string, reservations []models.Reservation) error {
	if !r.isDown.Load() || r.shouldProbe() {
		err := r.primary.Save(ctx, room, reservations)
		if err == nil {
			r.isDown.Store(false)
			// Keep the fallback warm so a later outage serves current data.
			_ = r.fallback.Save(ctx, room, reservations)
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.Save(ctx, room, reservations)
}
