package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// IsTerminal reports whether the status admits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether the appointment still holds its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusConfirmed
}

type SessionType string

const (
	SessionTypeTelehealth SessionType = "telehealth"
	SessionTypeInPerson   SessionType = "in_person"
)

// Appointment is the persisted booking. Rows are never hard-deleted;
// lifecycle is expressed through status transitions. Reschedules are
// modelled as cancel-old plus book-new so the audit trail stays intact.
type Appointment struct {
	Base
	PatientID      uuid.UUID         `db:"patient_id" json:"patient_id"`
	PsychologistID uuid.UUID         `db:"psychologist_id" json:"psychologist_id"`
	ServiceID      uuid.UUID         `db:"service_id" json:"service_id"`
	TimeSlotID     uuid.UUID         `db:"time_slot_id" json:"time_slot_id"`
	StartTime      time.Time         `db:"start_time" json:"start_time"`
	EndTime        time.Time         `db:"end_time" json:"end_time"`
	SessionType    SessionType       `db:"session_type" json:"session_type"`
	Status         AppointmentStatus `db:"status" json:"status"`
	MeetingRoomRef *string           `db:"meeting_room_ref" json:"meeting_room_ref,omitempty"`
	Notes          string            `db:"notes" json:"notes,omitempty"`
	CancelReason   *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
	RescheduledTo  *uuid.UUID        `db:"rescheduled_to" json:"rescheduled_to,omitempty"`
}

type BookAppointmentRequest struct {
	PatientID      uuid.UUID `json:"patient_id" validate:"required"`
	PsychologistID uuid.UUID `json:"psychologist_id" validate:"required"`
	ServiceID      uuid.UUID `json:"service_id" validate:"required"`
	TimeSlotID     uuid.UUID `json:"time_slot_id" validate:"required"`
	SessionType    string    `json:"session_type" validate:"required,oneof=telehealth in_person"`
	Notes          string    `json:"notes" validate:"max=1000"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type RescheduleAppointmentRequest struct {
	NewTimeSlotID uuid.UUID `json:"new_time_slot_id" validate:"required"`
	Reason        string    `json:"reason" validate:"max=500"`
}

type AppointmentFilters struct {
	PsychologistID uuid.UUID
	PatientID      uuid.UUID
	Status         AppointmentStatus
	StartDate      time.Time
	EndDate        time.Time
}
