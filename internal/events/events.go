package events

import (
	"encoding/json"
	"sync"
	"time"

	"roomcal/internal/models"
)

const (
	EventReservationCreated = "reservation_created"
	EventReservationUpdated = "reservation_updated"
	EventReservationDeleted = "reservation_deleted"
)

// ReservationEventPayload is the reservation snapshot handed to event
// consumers.
type ReservationEventPayload struct {
	ReservationID string     `json:"reservation_id"`
	Room          string     `json:"room"`
	MeetingName   string     `json:"meeting_name"`
	StaffName     string     `json:"staff_name"`
	Status        string     `json:"status"`
	Date          models.Day `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
}

// NewReservationPayload snapshots a reservation for publishing.
func NewReservationPayload(res models.Reservation) ReservationEventPayload {
	return ReservationEventPayload{
		ReservationID: res.ID,
		Room:          res.Room,
		MeetingName:   res.MeetingName,
		StaffName:     res.StaffName,
		Status:        res.Status,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
	}
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
