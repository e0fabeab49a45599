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

func (r *serviceRepository) Create(ctx context.Context, s *model.Service) error {
	query := `
		INSERT INTO services (
			id, name, description, duration_minutes, buffer_minutes,
			price, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Description,
		s.DurationMinutes,
		s.BufferMinutes,
		s.Price,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, name, description, duration_minutes, buffer_minutes,
			   price, status, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var s model.Service
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("service", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &s, nil
}

func (r *serviceRepository) Update(ctx context.Context, s *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3,
			buffer_minutes = $4, price = $5, status = $6, updated_at = $7
		WHERE id = $8
	`
	s.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Description,
		s.DurationMinutes,
		s.BufferMinutes,
		s.Price,
		s.Status,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, duration_minutes, buffer_minutes,
			   price, status, created_at, updated_at
		FROM services
		ORDER BY name ASC
	`
	var services []*model.Service
	err := r.db.SelectContext(ctx, &services, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
