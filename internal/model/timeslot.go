package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a concrete bookable interval derived from an availability
// pattern. Invariant: IsAvailable is true exactly when AppointmentID is nil;
// the booking commit flips both inside one transaction.
type TimeSlot struct {
	Base
	PsychologistID uuid.UUID  `db:"psychologist_id" json:"psychologist_id"`
	PatternID      *uuid.UUID `db:"pattern_id" json:"pattern_id,omitempty"`
	StartTime      time.Time  `db:"start_time" json:"start_time"`
	EndTime        time.Time  `db:"end_time" json:"end_time"`
	IsAvailable    bool       `db:"is_available" json:"is_available"`
	AppointmentID  *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
}

// Overlaps reports whether the slot intersects [start, end).
func (s *TimeSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}
