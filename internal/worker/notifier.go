package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mindwell/clinic-scheduler/internal/email"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
	"github.com/mindwell/clinic-scheduler/pkg/messaging"
)

// Notifier consumes appointment events from the broker and emails the
// patient. Delivery is best effort; a failed email is logged, the
// appointment state is already committed.
type Notifier struct {
	broker      messaging.Broker
	emailSvc    email.Service
	patientRepo repository.PatientRepository
}

func NewNotifier(broker messaging.Broker, emailSvc email.Service, patientRepo repository.PatientRepository) *Notifier {
	return &Notifier{broker: broker, emailSvc: emailSvc, patientRepo: patientRepo}
}

func (n *Notifier) Start(ctx context.Context) error {
	channels := []string{
		model.EventAppointmentCreated,
		model.EventAppointmentCancelled,
		model.EventAppointmentRescheduled,
	}

	for _, ch := range channels {
		msgs, err := n.broker.Subscribe(ctx, ch)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", ch, err)
		}
		go n.consume(ctx, ch, msgs)
	}

	<-ctx.Done()
	return nil
}

func (n *Notifier) consume(ctx context.Context, channel string, msgs <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-msgs:
			if !ok {
				return
			}
			if err := n.handle(ctx, channel, raw); err != nil {
				log.Error().Err(err).Str("channel", channel).Msg("notification failed")
			}
		}
	}
}

func (n *Notifier) handle(ctx context.Context, channel string, raw []byte) error {
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}

	var appt model.Appointment
	if err := json.Unmarshal(msg.Payload, &appt); err != nil {
		return fmt.Errorf("failed to decode appointment payload: %w", err)
	}

	patient, err := n.patientRepo.Get(ctx, appt.PatientID)
	if err != nil {
		return fmt.Errorf("failed to load patient %s: %w", appt.PatientID, err)
	}

	switch channel {
	case model.EventAppointmentCreated:
		return n.emailSvc.SendBookingConfirmation(ctx, patient.Email, &appt)
	case model.EventAppointmentCancelled:
		// Reschedule cancellations are followed by a rescheduled event for
		// the replacement; skip the duplicate mail.
		if appt.RescheduledTo != nil {
			return nil
		}
		return n.emailSvc.SendCancellation(ctx, patient.Email, &appt)
	case model.EventAppointmentRescheduled:
		return n.emailSvc.SendRescheduleNotice(ctx, patient.Email, &appt)
	}
	return nil
}
