package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityPattern is a recurring weekly window during which a
// psychologist can be booked. Times are minutes from midnight in the
// psychologist's configured time zone. Patterns are never hard-deleted
// while future slots reference them; ValidUntil soft-disables instead.
type AvailabilityPattern struct {
	Base
	PsychologistID uuid.UUID    `db:"psychologist_id" json:"psychologist_id"`
	DayOfWeek      time.Weekday `db:"day_of_week" json:"day_of_week"`
	StartMinute    int          `db:"start_minute" json:"start_minute"`
	EndMinute      int          `db:"end_minute" json:"end_minute"`
	Active         bool         `db:"active" json:"active"`
	ValidFrom      time.Time    `db:"valid_from" json:"valid_from"`
	ValidUntil     *time.Time   `db:"valid_until" json:"valid_until,omitempty"`
}

// AppliesOn reports whether the pattern covers the given local date.
func (p *AvailabilityPattern) AppliesOn(date time.Time) bool {
	if !p.Active || date.Weekday() != p.DayOfWeek {
		return false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if day.Before(truncateToDay(p.ValidFrom, date.Location())) {
		return false
	}
	if p.ValidUntil != nil && day.After(truncateToDay(*p.ValidUntil, date.Location())) {
		return false
	}
	return true
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

type CreateAvailabilityPatternRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	StartMinute int    `json:"start_minute" validate:"min=0,max=1439"`
	EndMinute   int    `json:"end_minute" validate:"required,min=1,max=1440,gtfield=StartMinute"`
	ValidFrom   string `json:"valid_from" validate:"required"`
}

type UpdateAvailabilityPatternRequest struct {
	StartMinute *int    `json:"start_minute" validate:"omitempty,min=0,max=1439"`
	EndMinute   *int    `json:"end_minute" validate:"omitempty,min=1,max=1440"`
	Active      *bool   `json:"active"`
	ValidUntil  *string `json:"valid_until"`
}
