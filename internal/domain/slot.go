package domain

import "time"

// AvailableSlot is a candidate start time for a service booking
type AvailableSlot struct {
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Available       bool
}

// IsFull returns true if the slot is taken
func (s *AvailableSlot) IsFull() bool {
	return !s.Available
}
