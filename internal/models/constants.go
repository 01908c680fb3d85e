package models

// Reservation statuses. A reservation is either a firm booking or an
// inquiry placeholder; the distinction only affects how a slot is rendered.
const (
	StatusBooked  = "booked"
	StatusInquiry = "inquiry"
)

// Slot statuses as resolved for a calendar cell. Booked and inquiry reuse
// the reservation status values; available means no reservation covers the slot.
const (
	SlotBooked    = StatusBooked
	SlotInquiry   = StatusInquiry
	SlotAvailable = "available"
)

const (
	// SlotStepMinutes is the resolution of the booking grid.
	SlotStepMinutes = 30

	// MinutesPerDay bounds every minutes-since-midnight value.
	MinutesPerDay = 24 * 60

	// DefaultStartHour and DefaultEndHour define the operating window used
	// when the config leaves hours unset.
	DefaultStartHour = 7
	DefaultEndHour   = 22

	// MonthGridDays is the fixed size of a month view: 6 full weeks.
	MonthGridDays = 42

	// DaysPerWeek is the size of a week view.
	DaysPerWeek = 7

	// ExportQueueSize is the buffer of the background export worker.
	ExportQueueSize = 100
)
