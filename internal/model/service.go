package model

// Service is a bookable session offering, e.g. a standard 50 minute
// consultation. BufferMinutes is the gap kept free after each session.
type Service struct {
	Base
	Name            string  `db:"name" json:"name"`
	Description     string  `db:"description" json:"description"`
	DurationMinutes int     `db:"duration_minutes" json:"duration_minutes"`
	BufferMinutes   int     `db:"buffer_minutes" json:"buffer_minutes"`
	Price           float64 `db:"price" json:"price"`
	Status          string  `db:"status" json:"status"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Description     string  `json:"description" validate:"max=1000"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=5,max=240"`
	BufferMinutes   int     `json:"buffer_minutes" validate:"min=0,max=60"`
	Price           float64 `json:"price" validate:"min=0"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=240"`
	BufferMinutes   *int     `json:"buffer_minutes,omitempty" validate:"omitempty,min=0,max=60"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=active retired"`
}
