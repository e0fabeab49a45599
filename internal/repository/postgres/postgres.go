package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/mindwell/clinic-scheduler/internal/repository"
)

type psychologistRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type serviceRepository struct {
	db *sqlx.DB
}

type availabilityRepository struct {
	db *sqlx.DB
}

type timeSlotRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type bookingRepository struct {
	BaseRepository
}

type outboxRepository struct {
	db *sqlx.DB
}

type auditRepository struct {
	db *sqlx.DB
}

func NewPsychologistRepository(db *sqlx.DB) repository.PsychologistRepository {
	return &psychologistRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func NewTimeSlotRepository(db *sqlx.DB) repository.TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{BaseRepository: NewBaseRepository(db)}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}
