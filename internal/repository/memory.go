package repository

import (
	"context"
	"sync"

	"roomcal/internal/models"
)

// MemoryReservationStore holds per-room reservation lists in process memory.
// Used in tests and as the failover fallback.
type MemoryReservationStore struct {
	rooms sync.Map // room name -> []models.Reservation
}

func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{}
}

func (r *MemoryReservationStore) Get(ctx context.Context, room string) ([]models.Reservation, error) {
	val, ok := r.rooms.Load(room)
	if !ok {
		return []models.Reservation{}, nil
	}

	stored := val.([]models.Reservation)
	// Defensive copy so callers cannot mutate the stored list.
	out := make([]models.Reservation, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *MemoryReservationStore) Save(ctx context.Context, room string, reservations []models.Reservation) error {
	stored := make([]models.Reservation, len(reservations))
	copy(stored, reservations)
	r.rooms.Store(room, stored)
	return nil
}
