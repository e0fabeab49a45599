package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
)

// Actor identifies who performed an action. It is passed explicitly through
// the service layer rather than stashed in request-scoped globals.
type Actor struct {
	ID   uuid.UUID
	Role string
	IP   string
}

// System is the actor recorded for background jobs.
var System = Actor{ID: uuid.Nil, Role: "system"}

type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log writes an audit entry. Audit failures are logged, never propagated;
// they must not fail the underlying operation.
func (s *Service) Log(ctx context.Context, actor Actor, action, entityType string, entityID uuid.UUID, changes interface{}) {
	var payload json.RawMessage
	if changes != nil {
		b, err := json.Marshal(changes)
		if err != nil {
			log.Warn().Err(err).Str("action", action).Msg("failed to marshal audit changes")
		} else {
			payload = b
		}
	}

	entry := &model.AuditLog{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    payload,
		IPAddress:  actor.IP,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID.String()).
			Msg("failed to write audit log")
	}
}

// List returns audit entries for admin review.
func (s *Service) List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, int64, error) {
	return s.repo.List(ctx, filters)
}
