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

func (r *timeSlotRepository) Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	query := `
		SELECT id, psychologist_id, pattern_id, start_time, end_time,
			   is_available, appointment_id, created_at, updated_at
		FROM time_slots
		WHERE id = $1
	`
	var slot model.TimeSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("time slot", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time slot: %w", err)
	}
	return &slot, nil
}

func (r *timeSlotRepository) ListAvailable(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.TimeSlot, error) {
	query := `
		SELECT id, psychologist_id, pattern_id, start_time, end_time,
			   is_available, appointment_id, created_at, updated_at
		FROM time_slots
		WHERE psychologist_id = $1
		AND is_available = TRUE
		AND start_time >= $2
		AND start_time < $3
		ORDER BY start_time ASC
	`
	var slots []*model.TimeSlot
	err := r.db.SelectContext(ctx, &slots, query, psychologistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	return slots, nil
}

func (r *timeSlotRepository) UpsertGenerated(ctx context.Context, slots []*model.TimeSlot) (int, error) {
	query := `
		INSERT INTO time_slots (
			id, psychologist_id, pattern_id, start_time, end_time,
			is_available, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7)
		ON CONFLICT (psychologist_id, start_time) DO NOTHING
	`
	inserted := 0
	for _, slot := range slots {
		slot.ID = uuid.New()
		slot.CreatedAt = time.Now()
		slot.UpdatedAt = time.Now()

		result, err := r.db.ExecContext(ctx, query,
			slot.ID,
			slot.PsychologistID,
			slot.PatternID,
			slot.StartTime,
			slot.EndTime,
			slot.CreatedAt,
			slot.UpdatedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert generated slot: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(rows)
	}
	return inserted, nil
}

func (r *timeSlotRepository) PruneUnbooked(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM time_slots
		WHERE is_available = TRUE
		AND appointment_id IS NULL
		AND end_time < $1
	`
	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune unbooked slots: %w", err)
	}
	return result.RowsAffected()
}
