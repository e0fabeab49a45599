package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
)

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, actor_id, actor_role, action, entity_type, entity_id,
			changes, ip_address, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	log.ID = uuid.New()
	log.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.ActorID,
		log.ActorRole,
		log.Action,
		log.EntityType,
		log.EntityID,
		log.Changes,
		log.IPAddress,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filters.ActorID != uuid.Nil {
		where += fmt.Sprintf(" AND actor_id = $%d", argCount)
		args = append(args, filters.ActorID)
		argCount++
	}
	if filters.EntityType != "" {
		where += fmt.Sprintf(" AND entity_type = $%d", argCount)
		args = append(args, filters.EntityType)
		argCount++
	}
	if filters.EntityID != uuid.Nil {
		where += fmt.Sprintf(" AND entity_id = $%d", argCount)
		args = append(args, filters.EntityID)
		argCount++
	}
	if !filters.StartDate.IsZero() {
		where += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}
	if !filters.EndDate.IsZero() {
		where += fmt.Sprintf(" AND created_at < $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM audit_logs"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	query := `
		SELECT id, actor_id, actor_role, action, entity_type, entity_id,
			   changes, ip_address, created_at
		FROM audit_logs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, pageSize, (page-1)*pageSize)

	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, total, nil
}

func (r *auditRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit logs: %w", err)
	}
	return result.RowsAffected()
}
