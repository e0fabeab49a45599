package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
)

const appointmentColumns = `
	id, patient_id, psychologist_id, service_id, time_slot_id,
	start_time, end_time, session_type, status, meeting_room_ref,
	notes, cancel_reason, rescheduled_to, created_at, updated_at
`

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PsychologistID != uuid.Nil {
		query += fmt.Sprintf(" AND psychologist_id = $%d", argCount)
		args = append(args, filters.PsychologistID)
		argCount++
	}
	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND start_time >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}
	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND start_time < $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListActiveInRange(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE psychologist_id = $1
		AND status IN ('scheduled', 'confirmed')
		AND start_time < $3
		AND end_time > $2
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, psychologistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list active appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) HasPatientConflict(ctx context.Context, patientID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE patient_id = $1
			AND status IN ('scheduled', 'confirmed')
			AND start_time < $3
			AND end_time > $2
	`
	args := []interface{}{patientID, start, end}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}
	query += ")"

	var hasConflict bool
	err := r.db.GetContext(ctx, &hasConflict, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check patient conflict: %w", err)
	}
	return hasConflict, nil
}

func (r *appointmentRepository) ListElapsedActive(ctx context.Context, asOf time.Time, limit int) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status IN ('scheduled', 'confirmed')
		AND end_time < $1
		ORDER BY end_time ASC
		LIMIT $2
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list elapsed appointments: %w", err)
	}
	return appointments, nil
}
