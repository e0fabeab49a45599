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

func (r *patientRepository) Create(ctx context.Context, p *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, name, email, phone, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.Phone,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, name, email, phone, status, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var p model.Patient
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) Update(ctx context.Context, p *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, email = $2, phone = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	p.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Email,
		p.Phone,
		p.Status,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, status model.PatientStatus) ([]*model.Patient, error) {
	query := `
		SELECT id, name, email, phone, status, created_at, updated_at
		FROM patients
	`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY name ASC"

	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
