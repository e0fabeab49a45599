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

func (r *psychologistRepository) Create(ctx context.Context, p *model.Psychologist) error {
	query := `
		INSERT INTO psychologists (
			id, name, email, password_hash, timezone,
			telehealth_available, in_person_available, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.PasswordHash,
		p.Timezone,
		p.TelehealthAvailable,
		p.InPersonAvailable,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create psychologist: %w", err)
	}
	return nil
}

func (r *psychologistRepository) Get(ctx context.Context, id uuid.UUID) (*model.Psychologist, error) {
	query := `
		SELECT id, name, email, password_hash, timezone,
			   telehealth_available, in_person_available, status,
			   created_at, updated_at
		FROM psychologists
		WHERE id = $1
	`
	var p model.Psychologist
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("psychologist", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get psychologist: %w", err)
	}
	return &p, nil
}

func (r *psychologistRepository) GetByEmail(ctx context.Context, email string) (*model.Psychologist, error) {
	query := `
		SELECT id, name, email, password_hash, timezone,
			   telehealth_available, in_person_available, status,
			   created_at, updated_at
		FROM psychologists
		WHERE email = $1
	`
	var p model.Psychologist
	err := r.db.GetContext(ctx, &p, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("psychologist", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get psychologist by email: %w", err)
	}
	return &p, nil
}

func (r *psychologistRepository) Update(ctx context.Context, p *model.Psychologist) error {
	query := `
		UPDATE psychologists
		SET name = $1, timezone = $2, telehealth_available = $3,
			in_person_available = $4, status = $5, updated_at = $6
		WHERE id = $7
	`
	p.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Timezone,
		p.TelehealthAvailable,
		p.InPersonAvailable,
		p.Status,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update psychologist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("psychologist", nil)
	}
	return nil
}

func (r *psychologistRepository) List(ctx context.Context, status model.PsychologistStatus) ([]*model.Psychologist, error) {
	query := `
		SELECT id, name, email, password_hash, timezone,
			   telehealth_available, in_person_available, status,
			   created_at, updated_at
		FROM psychologists
	`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY name ASC"

	var psychologists []*model.Psychologist
	err := r.db.SelectContext(ctx, &psychologists, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list psychologists: %w", err)
	}
	return psychologists, nil
}
