package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
)

// All repository interfaces in one file
type (
	PsychologistRepository interface {
		Create(ctx context.Context, p *model.Psychologist) error
		Get(ctx context.Context, id uuid.UUID) (*model.Psychologist, error)
		GetByEmail(ctx context.Context, email string) (*model.Psychologist, error)
		Update(ctx context.Context, p *model.Psychologist) error
		List(ctx context.Context, status model.PsychologistStatus) ([]*model.Psychologist, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, p *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, p *model.Patient) error
		List(ctx context.Context, status model.PatientStatus) ([]*model.Patient, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, s *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, s *model.Service) error
		List(ctx context.Context) ([]*model.Service, error)
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, p *model.AvailabilityPattern) error
		Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityPattern, error)
		Update(ctx context.Context, p *model.AvailabilityPattern) error
		// Disable soft-disables the pattern from the given date; the row is kept
		// because generated slots reference it.
		Disable(ctx context.Context, id uuid.UUID, until time.Time) error
		ListForPsychologist(ctx context.Context, psychologistID uuid.UUID, activeOnly bool) ([]*model.AvailabilityPattern, error)
	}

	TimeSlotRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
		ListAvailable(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.TimeSlot, error)
		// UpsertGenerated inserts newly generated slots, skipping any that
		// collide with an existing slot for the same psychologist and start
		// time. Returns the number of rows actually inserted.
		UpsertGenerated(ctx context.Context, slots []*model.TimeSlot) (int, error)
		// PruneUnbooked removes past slots that were never booked.
		PruneUnbooked(ctx context.Context, before time.Time) (int64, error)
	}

	AppointmentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		// ListActiveInRange returns scheduled/confirmed appointments for the
		// psychologist overlapping [from, to).
		ListActiveInRange(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
		HasPatientConflict(ctx context.Context, patientID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
		// ListElapsedActive returns active appointments whose end time passed
		// before asOf; used by the no-show sweeper.
		ListElapsedActive(ctx context.Context, asOf time.Time, limit int) ([]*model.Appointment, error)
	}

	// BookingRepository owns the transactional mutation paths that must keep
	// the slot/appointment invariant intact. The database, not the caller's
	// view of slot availability, is the source of truth: a claimed slot or a
	// unique-index violation surfaces as ErrCodeSlotUnavailable.
	BookingRepository interface {
		// CommitBooking atomically claims the slot, inserts the appointment as
		// scheduled and writes the outbox event. excludePatientAppt, when set,
		// is ignored by the in-transaction patient overlap check; reschedules
		// pass the appointment being replaced.
		CommitBooking(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent, excludePatientAppt *uuid.UUID) error
		// CancelAndRelease atomically updates the appointment and frees its slot.
		CancelAndRelease(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error
		// UpdateStatus persists a status-only transition with its event.
		UpdateStatus(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, int64, error)
		DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}
)
