package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/config"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
	"github.com/mindwell/clinic-scheduler/internal/service/audit"
	"github.com/mindwell/clinic-scheduler/internal/service/event"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
)

// Service owns the booking commit path and the appointment status machine.
// Every precondition is re-validated here at commit time; the candidate
// list the client chose from is treated as stale advice.
type Service struct {
	bookingRepo      repository.BookingRepository
	appointmentRepo  repository.AppointmentRepository
	slotRepo         repository.TimeSlotRepository
	psychologistRepo repository.PsychologistRepository
	patientRepo      repository.PatientRepository
	serviceRepo      repository.ServiceRepository
	auditor          *audit.Service
	cfg              config.BookingConfig

	now func() time.Time
}

func NewService(
	bookingRepo repository.BookingRepository,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.TimeSlotRepository,
	psychologistRepo repository.PsychologistRepository,
	patientRepo repository.PatientRepository,
	serviceRepo repository.ServiceRepository,
	auditor *audit.Service,
	cfg config.BookingConfig,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		appointmentRepo:  appointmentRepo,
		slotRepo:         slotRepo,
		psychologistRepo: psychologistRepo,
		patientRepo:      patientRepo,
		serviceRepo:      serviceRepo,
		auditor:          auditor,
		cfg:              cfg,
		now:              time.Now,
	}
}

// Book converts a candidate slot into a scheduled appointment. The
// repository commit runs under a row lock plus a unique index, so under
// concurrent requests for the same slot at most one caller succeeds; the
// rest get ErrCodeSlotUnavailable.
func (s *Service) Book(ctx context.Context, actor audit.Actor, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	appt, err := s.prepareBooking(ctx, req, nil)
	if err != nil {
		return nil, err
	}

	evt, err := event.NewAppointmentEvent(model.EventAppointmentCreated, appt)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.CommitBooking(ctx, appt, evt, nil); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionBook, model.AuditEntityAppointment, appt.ID, appt)
	return appt, nil
}

// prepareBooking loads and validates everything a commit needs. No side
// effects; a failed precondition leaves no trace. excludeAppt, when set,
// is skipped by the patient-overlap check so a reschedule can target a
// slot overlapping the appointment it replaces.
func (s *Service) prepareBooking(ctx context.Context, req *model.BookAppointmentRequest, excludeAppt *uuid.UUID) (*model.Appointment, error) {
	psy, err := s.psychologistRepo.Get(ctx, req.PsychologistID)
	if err != nil {
		return nil, err
	}
	if psy.Status != model.PsychologistStatusActive {
		return nil, apperrors.SlotUnavailable(fmt.Errorf("psychologist %s is not active", psy.ID))
	}

	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	sessionType := model.SessionType(req.SessionType)
	if !psy.OffersSessionType(sessionType) {
		return nil, apperrors.UnsupportedSessionType(req.SessionType)
	}

	slot, err := s.slotRepo.Get(ctx, req.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if slot.PsychologistID != psy.ID {
		return nil, apperrors.NotFound("time slot", nil)
	}
	if !slot.IsAvailable {
		return nil, apperrors.SlotUnavailable(nil)
	}
	if !slot.StartTime.After(s.now()) {
		return nil, apperrors.SlotInPast()
	}

	conflict, err := s.appointmentRepo.HasPatientConflict(ctx, req.PatientID, slot.StartTime, slot.EndTime, excludeAppt)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient conflict: %w", err)
	}
	if conflict {
		return nil, apperrors.PatientConflict()
	}

	return &model.Appointment{
		Base:           model.Base{ID: uuid.New()},
		PatientID:      req.PatientID,
		PsychologistID: psy.ID,
		ServiceID:      svc.ID,
		TimeSlotID:     slot.ID,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		SessionType:    sessionType,
		Status:         model.AppointmentStatusScheduled,
		Notes:          req.Notes,
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointmentRepo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.appointmentRepo.List(ctx, filters)
}

// Confirm moves a scheduled appointment to confirmed.
func (s *Service) Confirm(ctx context.Context, actor audit.Actor, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != model.AppointmentStatusScheduled {
		return nil, apperrors.InvalidTransition(string(appt.Status), string(model.AppointmentStatusConfirmed))
	}

	appt.Status = model.AppointmentStatusConfirmed
	evt, err := event.NewAppointmentEvent(model.EventAppointmentConfirmed, appt)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, appt, evt); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionConfirm, model.AuditEntityAppointment, appt.ID, nil)
	return appt, nil
}

// Cancel releases the appointment and its slot. Enforced outside the
// cancel lead window only; the violation is reported, never silently
// ignored.
func (s *Service) Cancel(ctx context.Context, actor audit.Actor, id uuid.UUID, reason string) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.IsActive() {
		return nil, apperrors.InvalidTransition(string(appt.Status), string(model.AppointmentStatusCancelled))
	}
	if s.now().Add(s.cfg.CancelLeadWindow).After(appt.StartTime) {
		return nil, apperrors.LeadWindowViolation("cancellation", s.cfg.CancelLeadWindow.Hours())
	}

	appt.Status = model.AppointmentStatusCancelled
	appt.CancelReason = &reason

	evt, err := event.NewAppointmentEvent(model.EventAppointmentCancelled, appt)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.CancelAndRelease(ctx, appt, evt); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionCancel, model.AuditEntityAppointment, appt.ID, map[string]string{"reason": reason})
	return appt, nil
}

// Reschedule books the new slot first, then cancels the original with a
// pointer to its replacement. Two records are kept so the audit history
// shows the full story.
func (s *Service) Reschedule(ctx context.Context, actor audit.Actor, id uuid.UUID, req *model.RescheduleAppointmentRequest) (*model.Appointment, error) {
	old, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !old.Status.IsActive() {
		return nil, apperrors.InvalidTransition(string(old.Status), string(model.AppointmentStatusCancelled))
	}
	if s.now().Add(s.cfg.RescheduleLeadWindow).After(old.StartTime) {
		return nil, apperrors.LeadWindowViolation("reschedule", s.cfg.RescheduleLeadWindow.Hours())
	}

	replacement, err := s.prepareBooking(ctx, &model.BookAppointmentRequest{
		PatientID:      old.PatientID,
		PsychologistID: old.PsychologistID,
		ServiceID:      old.ServiceID,
		TimeSlotID:     req.NewTimeSlotID,
		SessionType:    string(old.SessionType),
		Notes:          old.Notes,
	}, &old.ID)
	if err != nil {
		return nil, err
	}

	evt, err := event.NewAppointmentEvent(model.EventAppointmentRescheduled, replacement)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.CommitBooking(ctx, replacement, evt, &old.ID); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "rescheduled"
	}
	old.Status = model.AppointmentStatusCancelled
	old.CancelReason = &reason
	old.RescheduledTo = &replacement.ID

	cancelEvt, err := event.NewAppointmentEvent(model.EventAppointmentCancelled, old)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.CancelAndRelease(ctx, old, cancelEvt); err != nil {
		return nil, fmt.Errorf("replacement %s booked but failed to cancel original: %w", replacement.ID, err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionReschedule, model.AuditEntityAppointment, old.ID, map[string]interface{}{
		"replacement_id": replacement.ID,
		"reason":         reason,
	})
	return replacement, nil
}

// Complete closes out a confirmed appointment. Downstream billing listens
// for the completed event; no invoicing happens here.
func (s *Service) Complete(ctx context.Context, actor audit.Actor, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != model.AppointmentStatusConfirmed {
		return nil, apperrors.InvalidTransition(string(appt.Status), string(model.AppointmentStatusCompleted))
	}

	appt.Status = model.AppointmentStatusCompleted
	evt, err := event.NewAppointmentEvent(model.EventAppointmentCompleted, appt)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, appt, evt); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionComplete, model.AuditEntityAppointment, appt.ID, nil)
	return appt, nil
}

// SetMeetingRoom stores the opaque video room reference provisioned by the
// external telehealth integration.
func (s *Service) SetMeetingRoom(ctx context.Context, actor audit.Actor, id uuid.UUID, ref string) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.IsActive() {
		return nil, apperrors.InvalidTransition(string(appt.Status), string(appt.Status))
	}

	appt.MeetingRoomRef = &ref
	if err := s.bookingRepo.UpdateStatus(ctx, appt, nil); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate, model.AuditEntityAppointment, appt.ID, map[string]string{"meeting_room_ref": ref})
	return appt, nil
}

// MarkNoShow records that the window passed without the patient joining.
func (s *Service) MarkNoShow(ctx context.Context, actor audit.Actor, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.IsActive() {
		return nil, apperrors.InvalidTransition(string(appt.Status), string(model.AppointmentStatusNoShow))
	}
	if appt.EndTime.After(s.now()) {
		return nil, apperrors.Validation("appointment window has not passed yet", nil)
	}

	appt.Status = model.AppointmentStatusNoShow
	evt, err := event.NewAppointmentEvent(model.EventAppointmentNoShow, appt)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, appt, evt); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionNoShow, model.AuditEntityAppointment, appt.ID, nil)
	return appt, nil
}

// SweepNoShows marks elapsed active appointments as no_show. Idempotent:
// already-swept rows no longer match the elapsed-active query.
func (s *Service) SweepNoShows(ctx context.Context, batchSize int) (int, error) {
	elapsed, err := s.appointmentRepo.ListElapsedActive(ctx, s.now(), batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list elapsed appointments: %w", err)
	}

	swept := 0
	for _, appt := range elapsed {
		if _, err := s.MarkNoShow(ctx, audit.System, appt.ID); err != nil {
			return swept, fmt.Errorf("failed to mark %s no_show: %w", appt.ID, err)
		}
		swept++
	}
	return swept, nil
}
