package domain

import (
	"context"

	"roomcal/internal/models"
	"roomcal/internal/schedule"
)

// ReservationStore is the per-room key-value persistence contract. Storage is
// partitioned by room name: two rooms' lists are fully independent.
//
// Get returns the full reservation list for a room, and an empty list when no
// data exists. Implementations coerce underlying read failures to an empty
// list (logging them); the engine never observes a read error. Save replaces
// the entire stored list; write failures propagate to the caller.
type ReservationStore interface {
	Get(ctx context.Context, room string) ([]models.Reservation, error)
	Save(ctx context.Context, room string, reservations []models.Reservation) error
}

// ReservationService is the reservation lifecycle plus the calendar queries
// consumed by the API layer.
type ReservationService interface {
	Create(ctx context.Context, input models.Reservation) (*models.Reservation, error)
	Update(ctx context.Context, room, id string, input models.Reservation) (*models.Reservation, error)
	Delete(ctx context.Context, room, id string) error
	Reservations(ctx context.Context, room string) ([]models.Reservation, error)
	ResolveSlot(ctx context.Context, room string, day models.Day, slot string) (string, []models.Reservation, error)
	DayView(ctx context.Context, room string, day models.Day) ([]schedule.Cell, error)
	WeekView(ctx context.Context, room string, ref models.Day) ([][]schedule.Cell, error)
	MonthView(ctx context.Context, room string, ref models.Day) ([]schedule.MonthCell, error)
}

// EventPublisher publishes serialized domain events.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ExportWorker accepts background schedule-export requests.
type ExportWorker interface {
	EnqueueExport(ctx context.Context, ref models.Day) error
}
