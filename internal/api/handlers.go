package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"roomcal/internal/models"
	"roomcal/internal/schedule"
	"roomcal/internal/service"
)

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": s.cfg.Rooms})
}

func (s *HTTPServer) handleStaff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"staff": s.cfg.Staff})
}

func (s *HTTPServer) handleHours(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	slots, err := schedule.Slots(s.cfg.Hours)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"start": s.cfg.Hours.Start,
		"end":   s.cfg.Hours.End,
		"slots": slots,
	})
}

// pathRoom extracts the room segment after prefix, rejecting empty or nested
// paths.
func pathRoom(r *http.Request, prefix string) (string, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rest = strings.TrimSpace(rest)
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

func (s *HTTPServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	room, ok := pathRoom(r, "/api/v1/calendar/")
	if !ok {
		writeError(w, http.StatusBadRequest, "room is required")
		return
	}

	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	day, err := models.ParseDay(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	view := strings.TrimSpace(r.URL.Query().Get("view"))
	if view == "" {
		view = "month"
	}

	switch view {
	case "month":
		cells, err := s.service.MonthView(r.Context(), room, day)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"view": view, "cells": cells})
	case "week":
		columns, err := s.service.WeekView(r.Context(), room, day)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"view": view, "days": columns})
	case "day":
		cells, err := s.service.DayView(r.Context(), room, day)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"view": view, "cells": cells})
	default:
		writeError(w, http.StatusBadRequest, "view must be month, week, or day")
	}
}

func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	room, ok := pathRoom(r, "/api/v1/availability/")
	if !ok {
		writeError(w, http.StatusBadRequest, "room is required")
		return
	}

	day, err := models.ParseDay(strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing date; expected YYYY-MM-DD")
		return
	}

	slot := strings.TrimSpace(r.URL.Query().Get("time"))
	if slot == "" {
		writeError(w, http.StatusBadRequest, "time is required")
		return
	}

	status, matches, err := s.service.ResolveSlot(r.Context(), room, day, slot)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRoom) {
			s.writeServiceError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       status,
		"reservations": matches,
	})
}

func (s *HTTPServer) handleReservationsCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input models.Reservation
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.service.Create(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleReservationsItem(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/reservations/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.SplitN(rest, "/", 2)

	// GET /reservations/{room} lists; PUT/DELETE /reservations/{room}/{id}.
	switch {
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] != "":
		list, err := s.service.Reservations(r.Context(), parts[0])
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reservations": list})

	case r.Method == http.MethodPut && len(parts) == 2 && parts[0] != "" && parts[1] != "":
		var input models.Reservation
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		updated, err := s.service.Update(r.Context(), parts[0], parts[1], input)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] != "" && parts[1] != "":
		if err := s.service.Delete(r.Context(), parts[0], parts[1]); err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// writeServiceError maps service errors to HTTP statuses: validation
// failures are 422 so the client can surface them and keep the user's
// input, missing records are 404, and anything else is a storage-layer
// failure the client should treat as unsaved state.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownRoom):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case service.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
