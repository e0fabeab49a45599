package event

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
)

// NewAppointmentEvent builds the outbox row for an appointment lifecycle
// event. The row is written in the same transaction as the state change;
// delivery happens asynchronously and never affects booking outcomes.
func NewAppointmentEvent(eventType string, appt *model.Appointment) (*model.OutboxEvent, error) {
	payload, err := json.Marshal(appt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment event: %w", err)
	}

	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
	}, nil
}
