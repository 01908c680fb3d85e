package events

import (
	"encoding/json"
	"testing"
	"time"

	"roomcal/internal/models"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventReservationCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	res := models.Reservation{
		ID:        "abc",
		Room:      "Sanctuary",
		Status:    models.StatusBooked,
		Date:      models.NewDay(2024, time.March, 1),
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	if err := bus.PublishJSON(EventReservationCreated, NewReservationPayload(res)); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
	if received.Type != EventReservationCreated {
		t.Errorf("expected type %s, got %s", EventReservationCreated, received.Type)
	}

	var decoded ReservationEventPayload
	if err := json.Unmarshal(received.Payload, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.ReservationID != "abc" || decoded.Room != "Sanctuary" {
		t.Errorf("unexpected payload: %+v", decoded)
	}
	if decoded.Date.String() != "2024-03-01" {
		t.Errorf("expected date 2024-03-01, got %s", decoded.Date)
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ *Event) error { count1++; return nil })
	bus.Subscribe("event", func(_ *Event) error { count2++; return nil })

	bus.Publish(&Event{Type: "event"})

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both handlers to be called once, got %d and %d", count1, count2)
	}
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()

	// Publishing with nobody listening must not panic.
	bus.Publish(&Event{Type: "nobody_home"})

	if err := bus.PublishJSON("nobody_home", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}
}

func TestNilBusPublishJSON(t *testing.T) {
	var bus *EventBus
	if err := bus.PublishJSON("event", nil); err != nil {
		t.Fatalf("nil bus PublishJSON should be a no-op, got %v", err)
	}
}
