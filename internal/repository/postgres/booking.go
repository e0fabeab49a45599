package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mindwell/clinic-scheduler/internal/model"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
)

// uniqueViolation is the Postgres error code raised by the partial unique
// index on appointments(time_slot_id) for non-terminal statuses.
const uniqueViolation = "23505"

// CommitBooking converts a candidate slot into a scheduled appointment.
// The slot row is locked for the duration of the transaction, so under
// concurrent requests exactly one caller observes is_available = TRUE.
// The unique index on time_slot_id is the final backstop either way.
func (r *bookingRepository) CommitBooking(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent, excludePatientAppt *uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var slot model.TimeSlot
		err := tx.GetContext(ctx, &slot, `
			SELECT id, psychologist_id, pattern_id, start_time, end_time,
				   is_available, appointment_id, created_at, updated_at
			FROM time_slots
			WHERE id = $1
			FOR UPDATE
		`, appt.TimeSlotID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("time slot", err)
		}
		if err != nil {
			return fmt.Errorf("failed to lock time slot: %w", err)
		}

		if !slot.IsAvailable || slot.AppointmentID != nil {
			return apperrors.SlotUnavailable(nil)
		}

		// Patient overlap is re-checked inside the transaction; the listing
		// the client booked from may be stale.
		conflictQuery := `
			SELECT EXISTS (
				SELECT 1 FROM appointments
				WHERE patient_id = $1
				AND status IN ('scheduled', 'confirmed')
				AND start_time < $3
				AND end_time > $2
		`
		conflictArgs := []interface{}{appt.PatientID, slot.StartTime, slot.EndTime}
		if excludePatientAppt != nil {
			conflictQuery += " AND id != $4"
			conflictArgs = append(conflictArgs, *excludePatientAppt)
		}
		conflictQuery += ")"

		var conflict bool
		err = tx.GetContext(ctx, &conflict, conflictQuery, conflictArgs...)
		if err != nil {
			return fmt.Errorf("failed to check patient conflict: %w", err)
		}
		if conflict {
			return apperrors.PatientConflict()
		}

		appt.StartTime = slot.StartTime
		appt.EndTime = slot.EndTime
		appt.Status = model.AppointmentStatusScheduled
		appt.CreatedAt = time.Now()
		appt.UpdatedAt = time.Now()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO appointments (
				id, patient_id, psychologist_id, service_id, time_slot_id,
				start_time, end_time, session_type, status, notes,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			appt.ID,
			appt.PatientID,
			appt.PsychologistID,
			appt.ServiceID,
			appt.TimeSlotID,
			appt.StartTime,
			appt.EndTime,
			appt.SessionType,
			appt.Status,
			appt.Notes,
			appt.CreatedAt,
			appt.UpdatedAt,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
				return apperrors.SlotUnavailable(err)
			}
			return fmt.Errorf("failed to insert appointment: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE time_slots
			SET is_available = FALSE, appointment_id = $1, updated_at = $2
			WHERE id = $3 AND is_available = TRUE
		`, appt.ID, time.Now(), appt.TimeSlotID)
		if err != nil {
			return fmt.Errorf("failed to claim time slot: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.SlotUnavailable(nil)
		}

		return insertOutboxEventTx(ctx, tx, event)
	})
}

// CancelAndRelease flips the appointment into a released state and frees
// its slot in the same transaction, keeping the availability invariant.
func (r *bookingRepository) CancelAndRelease(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		appt.UpdatedAt = time.Now()

		result, err := tx.ExecContext(ctx, `
			UPDATE appointments
			SET status = $1, cancel_reason = $2, rescheduled_to = $3, updated_at = $4
			WHERE id = $5
		`,
			appt.Status,
			appt.CancelReason,
			appt.RescheduledTo,
			appt.UpdatedAt,
			appt.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("appointment", nil)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE time_slots
			SET is_available = TRUE, appointment_id = NULL, updated_at = $1
			WHERE id = $2 AND appointment_id = $3
		`, time.Now(), appt.TimeSlotID, appt.ID)
		if err != nil {
			return fmt.Errorf("failed to release time slot: %w", err)
		}

		if event == nil {
			return nil
		}
		return insertOutboxEventTx(ctx, tx, event)
	})
}

// UpdateStatus persists a status-only transition (confirm, complete,
// no-show) together with its outbox event.
func (r *bookingRepository) UpdateStatus(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		appt.UpdatedAt = time.Now()

		result, err := tx.ExecContext(ctx, `
			UPDATE appointments
			SET status = $1, meeting_room_ref = $2, notes = $3, updated_at = $4
			WHERE id = $5
		`,
			appt.Status,
			appt.MeetingRoomRef,
			appt.Notes,
			appt.UpdatedAt,
			appt.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("appointment", nil)
		}

		if event == nil {
			return nil
		}
		return insertOutboxEventTx(ctx, tx, event)
	})
}

func insertOutboxEventTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (
			id, event_type, payload, status, retry_count, created_at
		) VALUES ($1, $2, $3, $4, 0, $5)
	`,
		event.ID,
		event.EventType,
		event.Payload,
		model.OutboxStatusPending,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}
