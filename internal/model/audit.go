package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records who did what to which entity. ActorID comes from the
// authenticated request context, passed explicitly through the services.
type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ActorID    uuid.UUID       `json:"actor_id" db:"actor_id"`
	ActorRole  string          `json:"actor_role" db:"actor_role"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id" db:"entity_id"`
	Changes    json.RawMessage `json:"changes,omitempty" db:"changes"`
	IPAddress  string          `json:"ip_address" db:"ip_address"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionBook       = "book"
	AuditActionConfirm    = "confirm"
	AuditActionCancel     = "cancel"
	AuditActionReschedule = "reschedule"
	AuditActionComplete   = "complete"
	AuditActionNoShow     = "no_show"
	AuditActionDisable    = "disable"

	AuditEntityPatient      = "patient"
	AuditEntityPsychologist = "psychologist"
	AuditEntityPattern      = "availability_pattern"
	AuditEntityAppointment  = "appointment"
	AuditEntityService      = "service"
)

type AuditFilters struct {
	ActorID    uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Pagination
}
