package model

type PsychologistStatus string

const (
	PsychologistStatusActive   PsychologistStatus = "active"
	PsychologistStatusInactive PsychologistStatus = "inactive"
)

// Psychologist is a bookable practitioner. Timezone is the IANA zone all of
// their availability windows are interpreted in.
type Psychologist struct {
	Base
	Name                string             `db:"name" json:"name"`
	Email               string             `db:"email" json:"email"`
	Password            string             `db:"-" json:"password,omitempty"`
	PasswordHash        string             `db:"password_hash" json:"-"`
	Timezone            string             `db:"timezone" json:"timezone"`
	TelehealthAvailable bool               `db:"telehealth_available" json:"telehealth_available"`
	InPersonAvailable   bool               `db:"in_person_available" json:"in_person_available"`
	Status              PsychologistStatus `db:"status" json:"status"`
}

// OffersSessionType reports whether the psychologist delivers the given mode.
func (p *Psychologist) OffersSessionType(t SessionType) bool {
	switch t {
	case SessionTypeTelehealth:
		return p.TelehealthAvailable
	case SessionTypeInPerson:
		return p.InPersonAvailable
	default:
		return false
	}
}

type CreatePsychologistRequest struct {
	Name                string `json:"name" validate:"required,max=255"`
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8"`
	Timezone            string `json:"timezone" validate:"required"`
	TelehealthAvailable bool   `json:"telehealth_available"`
	InPersonAvailable   bool   `json:"in_person_available"`
}

type UpdatePsychologistRequest struct {
	Name                *string `json:"name"`
	Timezone            *string `json:"timezone"`
	TelehealthAvailable *bool   `json:"telehealth_available"`
	InPersonAvailable   *bool   `json:"in_person_available"`
	Status              *string `json:"status"`
}
