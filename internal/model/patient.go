package model

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusArchived PatientStatus = "archived"
)

type Patient struct {
	Base
	Name   string        `db:"name" json:"name"`
	Email  string        `db:"email" json:"email"`
	Phone  string        `db:"phone" json:"phone,omitempty"`
	Status PatientStatus `db:"status" json:"status"`
}

type CreatePatientRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=32"`
}

type UpdatePatientRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status *string `json:"status"`
}
