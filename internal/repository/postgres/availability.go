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

func (r *availabilityRepository) Create(ctx context.Context, p *model.AvailabilityPattern) error {
	query := `
		INSERT INTO availability_patterns (
			id, psychologist_id, day_of_week, start_minute, end_minute,
			active, valid_from, valid_until, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PsychologistID,
		int(p.DayOfWeek),
		p.StartMinute,
		p.EndMinute,
		p.Active,
		p.ValidFrom,
		p.ValidUntil,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability pattern: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityPattern, error) {
	query := `
		SELECT id, psychologist_id, day_of_week, start_minute, end_minute,
			   active, valid_from, valid_until, created_at, updated_at
		FROM availability_patterns
		WHERE id = $1
	`
	var p model.AvailabilityPattern
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("availability pattern", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability pattern: %w", err)
	}
	return &p, nil
}

func (r *availabilityRepository) Update(ctx context.Context, p *model.AvailabilityPattern) error {
	query := `
		UPDATE availability_patterns
		SET start_minute = $1, end_minute = $2, active = $3,
			valid_until = $4, updated_at = $5
		WHERE id = $6
	`
	p.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		p.StartMinute,
		p.EndMinute,
		p.Active,
		p.ValidUntil,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update availability pattern: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("availability pattern", nil)
	}
	return nil
}

func (r *availabilityRepository) Disable(ctx context.Context, id uuid.UUID, until time.Time) error {
	query := `
		UPDATE availability_patterns
		SET active = FALSE, valid_until = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, until, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to disable availability pattern: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("availability pattern", nil)
	}
	return nil
}

func (r *availabilityRepository) ListForPsychologist(ctx context.Context, psychologistID uuid.UUID, activeOnly bool) ([]*model.AvailabilityPattern, error) {
	query := `
		SELECT id, psychologist_id, day_of_week, start_minute, end_minute,
			   active, valid_from, valid_until, created_at, updated_at
		FROM availability_patterns
		WHERE psychologist_id = $1
	`
	if activeOnly {
		query += " AND active = TRUE"
	}
	query += " ORDER BY day_of_week, start_minute"

	var patterns []*model.AvailabilityPattern
	err := r.db.SelectContext(ctx, &patterns, query, psychologistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability patterns: %w", err)
	}
	return patterns, nil
}
