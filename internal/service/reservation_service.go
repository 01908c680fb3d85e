package service

import (
	"context"
	"fmt"
	"sync"

	"roomcal/internal/config"
	"roomcal/internal/domain"
	"roomcal/internal/events"
	"roomcal/internal/metrics"
	"roomcal/internal/models"
	"roomcal/internal/schedule"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReservationService implements the reservation lifecycle and the calendar
// queries. All mutations are full-list read-modify-write through the store;
// a per-room mutex serializes same-room mutations within this process, which
// is the at-most-one-in-flight-mutation assumption the store contract makes.
type ReservationService struct {
	store    domain.ReservationStore
	eventBus domain.EventPublisher
	exporter domain.ExportWorker
	cfg      *config.Config
	logger   *zerolog.Logger

	roomLocks sync.Map // room name -> *sync.Mutex
}

func NewReservationService(store domain.ReservationStore, eventBus domain.EventPublisher, exporter domain.ExportWorker, cfg *config.Config, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		store:    store,
		eventBus: eventBus,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *ReservationService) lockRoom(room string) func() {
	val, _ := s.roomLocks.LoadOrStore(room, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// validate checks a reservation input against the static configuration and
// the time-range invariants. The time-order check is the one the UI recovers
// from; the rest guard against malformed API input.
func (s *ReservationService) validate(input *models.Reservation) error {
	if !s.cfg.HasRoom(input.Room) {
		return fmt.Errorf("%w: %s", ErrUnknownRoom, input.Room)
	}
	if !s.cfg.HasStaff(input.StaffName) {
		return fmt.Errorf("%w: %s", ErrUnknownStaff, input.StaffName)
	}
	if input.Status != models.StatusBooked && input.Status != models.StatusInquiry {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, input.Status)
	}
	if input.Date.IsZero() {
		return ErrMissingDate
	}

	start, err := models.ClockMinutes(input.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadTimeFormat, input.StartTime)
	}
	end, err := models.ClockMinutes(input.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadTimeFormat, input.EndTime)
	}

	if end <= start {
		return ErrInvalidTimeRange
	}
	if start%models.SlotStepMinutes != 0 || end%models.SlotStepMinutes != 0 {
		return ErrOffGrid
	}

	windowStart := s.cfg.Hours.Start * 60
	windowEnd := s.cfg.Hours.End * 60
	if start < windowStart || end > windowEnd {
		return fmt.Errorf("%w: %s-%s", ErrOutsideWindow, input.StartTime, input.EndTime)
	}

	return nil
}

// Create validates the input, assigns a fresh id, appends to the room's list
// and persists it. Status defaults to inquiry when unset.
func (s *ReservationService) Create(ctx context.Context, input models.Reservation) (*models.Reservation, error) {
	if input.Status == "" {
		input.Status = models.StatusInquiry
	}

	if err := s.validate(&input); err != nil {
		metrics.IncReservationOp("create", "validation_error")
		return nil, err
	}

	unlock := s.lockRoom(input.Room)
	defer unlock()

	list, err := s.store.Get(ctx, input.Room)
	if err != nil {
		metrics.IncReservationOp("create", "storage_error")
		return nil, err
	}

	input.ID = uuid.NewString()
	list = append(list, input)

	if err := s.store.Save(ctx, input.Room, list); err != nil {
		metrics.IncReservationOp("create", "storage_error")
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", input.ID).
		Str("room", input.Room).
		Str("date", input.Date.String()).
		Str("status", input.Status).
		Msg("reservation created")

	s.publish(events.EventReservationCreated, input)
	s.refreshExport(ctx, input.Date)
	metrics.IncReservationOp("create", "ok")

	return &input, nil
}

// Update validates the input and replaces the record matching id within the
// room's list, keeping the id stable. Returns ErrReservationNotFound when no
// record matches.
func (s *ReservationService) Update(ctx context.Context, room, id string, input models.Reservation) (*models.Reservation, error) {
	input.Room = room
	if input.Status == "" {
		input.Status = models.StatusInquiry
	}

	if err := s.validate(&input); err != nil {
		metrics.IncReservationOp("update", "validation_error")
		return nil, err
	}

	unlock := s.lockRoom(room)
	defer unlock()

	list, err := s.store.Get(ctx, room)
	if err != nil {
		metrics.IncReservationOp("update", "storage_error")
		return nil, err
	}

	index := -1
	for i := range list {
		if list[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		metrics.IncReservationOp("update", "not_found")
		return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
	}

	input.ID = id
	list[index] = input

	if err := s.store.Save(ctx, room, list); err != nil {
		metrics.IncReservationOp("update", "storage_error")
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", id).
		Str("room", room).
		Msg("reservation updated")

	s.publish(events.EventReservationUpdated, input)
	s.refreshExport(ctx, input.Date)
	metrics.IncReservationOp("update", "ok")

	return &input, nil
}

// Delete removes the record matching id from the room's list. Deleting an
// unknown id is a no-op: the list is left untouched and no error is raised.
func (s *ReservationService) Delete(ctx context.Context, room, id string) error {
	unlock := s.lockRoom(room)
	defer unlock()

	list, err := s.store.Get(ctx, room)
	if err != nil {
		metrics.IncReservationOp("delete", "storage_error")
		return err
	}

	var removed *models.Reservation
	remaining := make([]models.Reservation, 0, len(list))
	for _, res := range list {
		if res.ID == id {
			r := res
			removed = &r
			continue
		}
		remaining = append(remaining, res)
	}

	if removed == nil {
		metrics.IncReservationOp("delete", "not_found")
		return nil
	}

	if err := s.store.Save(ctx, room, remaining); err != nil {
		metrics.IncReservationOp("delete", "storage_error")
		return err
	}

	s.logger.Info().
		Str("reservation_id", id).
		Str("room", room).
		Msg("reservation deleted")

	s.publish(events.EventReservationDeleted, *removed)
	s.refreshExport(ctx, removed.Date)
	metrics.IncReservationOp("delete", "ok")

	return nil
}

// Reservations returns the room's current list.
func (s *ReservationService) Reservations(ctx context.Context, room string) ([]models.Reservation, error) {
	if !s.cfg.HasRoom(room) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, room)
	}
	return s.store.Get(ctx, room)
}

// ResolveSlot resolves a single (room, day, slot) cell.
func (s *ReservationService) ResolveSlot(ctx context.Context, room string, day models.Day, slot string) (string, []models.Reservation, error) {
	list, err := s.Reservations(ctx, room)
	if err != nil {
		return "", nil, err
	}
	return schedule.ResolveLabel(list, day, slot)
}

// DayView resolves every slot of the operating window for one day.
func (s *ReservationService) DayView(ctx context.Context, room string, day models.Day) ([]schedule.Cell, error) {
	list, err := s.Reservations(ctx, room)
	if err != nil {
		return nil, err
	}
	return schedule.DayCells(list, day, s.cfg.Hours)
}

// WeekView resolves the 7-day week containing ref, one cell column per day.
func (s *ReservationService) WeekView(ctx context.Context, room string, ref models.Day) ([][]schedule.Cell, error) {
	list, err := s.Reservations(ctx, room)
	if err != nil {
		return nil, err
	}

	days := schedule.WeekDays(ref)
	columns := make([][]schedule.Cell, 0, len(days))
	for _, day := range days {
		cells, err := schedule.DayCells(list, day, s.cfg.Hours)
		if err != nil {
			return nil, err
		}
		columns = append(columns, cells)
	}
	return columns, nil
}

// MonthView resolves the 42-cell month grid containing ref.
func (s *ReservationService) MonthView(ctx context.Context, room string, ref models.Day) ([]schedule.MonthCell, error) {
	list, err := s.Reservations(ctx, room)
	if err != nil {
		return nil, err
	}
	return schedule.MonthCells(list, ref), nil
}

func (s *ReservationService) publish(eventType string, res models.Reservation) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, events.NewReservationPayload(res)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("publish event")
	}
}

func (s *ReservationService) refreshExport(ctx context.Context, day models.Day) {
	if s.exporter == nil {
		return
	}
	if err := s.exporter.EnqueueExport(ctx, day); err != nil {
		s.logger.Warn().Err(err).Msg("enqueue export refresh")
	}
}
