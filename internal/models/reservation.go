package models

// Reservation is the unit of booking. A reservation belongs to exactly one
// room and one civil date; its times are wall-clock labels on the 30-minute
// grid within the operating window.
type Reservation struct {
	ID          string `json:"id"`
	Room        string `json:"room"`
	MeetingName string `json:"meetingName"`
	StaffName   string `json:"staffName"`
	Status      string `json:"status"` // booked, inquiry
	Date        Day    `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// StartMinutes returns the start time as minutes since midnight.
// A reservation holds only validated times, so parse failures map to 0.
func (r *Reservation) StartMinutes() int {
	m, err := ClockMinutes(r.StartTime)
	if err != nil {
		return 0
	}
	return m
}

// EndMinutes returns the end time as minutes since midnight.
func (r *Reservation) EndMinutes() int {
	m, err := ClockMinutes(r.EndTime)
	if err != nil {
		return 0
	}
	return m
}

// Covers reports whether the reservation occupies the slot starting at
// slotMinutes on the given day. The interval is half-open: a reservation
// ending exactly at a slot boundary does not cover that slot.
func (r *Reservation) Covers(day Day, slotMinutes int) bool {
	if !r.Date.Equal(day) {
		return false
	}
	return r.StartMinutes() <= slotMinutes && slotMinutes < r.EndMinutes()
}
