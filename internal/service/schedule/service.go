package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/config"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
	"github.com/mindwell/clinic-scheduler/internal/service/audit"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
)

// Service manages availability patterns and the generated slot inventory.
type Service struct {
	availabilityRepo repository.AvailabilityRepository
	slotRepo         repository.TimeSlotRepository
	appointmentRepo  repository.AppointmentRepository
	psychologistRepo repository.PsychologistRepository
	auditor          *audit.Service
	cfg              config.BookingConfig

	now func() time.Time
}

func NewService(
	availabilityRepo repository.AvailabilityRepository,
	slotRepo repository.TimeSlotRepository,
	appointmentRepo repository.AppointmentRepository,
	psychologistRepo repository.PsychologistRepository,
	auditor *audit.Service,
	cfg config.BookingConfig,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		appointmentRepo:  appointmentRepo,
		psychologistRepo: psychologistRepo,
		auditor:          auditor,
		cfg:              cfg,
		now:              time.Now,
	}
}

func (s *Service) CreatePattern(ctx context.Context, actor audit.Actor, psychologistID uuid.UUID, req *model.CreateAvailabilityPatternRequest) (*model.AvailabilityPattern, error) {
	psy, err := s.psychologistRepo.Get(ctx, psychologistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load psychologist: %w", err)
	}

	if req.EndMinute <= req.StartMinute {
		return nil, apperrors.Validation("window end must be after start", nil)
	}

	loc, err := time.LoadLocation(psy.Timezone)
	if err != nil {
		return nil, apperrors.Validation("psychologist has an invalid timezone", err)
	}

	validFrom, err := time.ParseInLocation("2006-01-02", req.ValidFrom, loc)
	if err != nil {
		return nil, apperrors.Validation("valid_from must be YYYY-MM-DD", err)
	}

	pattern := &model.AvailabilityPattern{
		PsychologistID: psy.ID,
		DayOfWeek:      time.Weekday(req.DayOfWeek),
		StartMinute:    req.StartMinute,
		EndMinute:      req.EndMinute,
		Active:         true,
		ValidFrom:      validFrom,
	}

	if err := s.availabilityRepo.Create(ctx, pattern); err != nil {
		return nil, fmt.Errorf("failed to create pattern: %w", err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate, model.AuditEntityPattern, pattern.ID, pattern)
	return pattern, nil
}

func (s *Service) UpdatePattern(ctx context.Context, actor audit.Actor, id uuid.UUID, req *model.UpdateAvailabilityPatternRequest) (*model.AvailabilityPattern, error) {
	pattern, err := s.availabilityRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartMinute != nil {
		pattern.StartMinute = *req.StartMinute
	}
	if req.EndMinute != nil {
		pattern.EndMinute = *req.EndMinute
	}
	if pattern.EndMinute <= pattern.StartMinute {
		return nil, apperrors.Validation("window end must be after start", nil)
	}
	if req.Active != nil {
		pattern.Active = *req.Active
	}
	if req.ValidUntil != nil {
		// Anchored in the psychologist's zone, same as valid_from, so the
		// boundary falls on the intended local day.
		psy, err := s.psychologistRepo.Get(ctx, pattern.PsychologistID)
		if err != nil {
			return nil, fmt.Errorf("failed to load psychologist: %w", err)
		}
		loc, err := time.LoadLocation(psy.Timezone)
		if err != nil {
			return nil, apperrors.Validation("psychologist has an invalid timezone", err)
		}
		until, err := time.ParseInLocation("2006-01-02", *req.ValidUntil, loc)
		if err != nil {
			return nil, apperrors.Validation("valid_until must be YYYY-MM-DD", err)
		}
		pattern.ValidUntil = &until
	}

	if err := s.availabilityRepo.Update(ctx, pattern); err != nil {
		return nil, fmt.Errorf("failed to update pattern: %w", err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate, model.AuditEntityPattern, pattern.ID, req)
	return pattern, nil
}

// DisablePattern soft-disables the pattern from today. Existing booked
// slots are untouched; generation simply stops past the disable point.
func (s *Service) DisablePattern(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	if _, err := s.availabilityRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.availabilityRepo.Disable(ctx, id, s.now()); err != nil {
		return err
	}
	s.auditor.Log(ctx, actor, model.AuditActionDisable, model.AuditEntityPattern, id, nil)
	return nil
}

func (s *Service) ListPatterns(ctx context.Context, psychologistID uuid.UUID) ([]*model.AvailabilityPattern, error) {
	return s.availabilityRepo.ListForPsychologist(ctx, psychologistID, false)
}

// ListOpenSlots returns the persisted bookable inventory for the range,
// limited to the future.
func (s *Service) ListOpenSlots(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.TimeSlot, error) {
	if _, err := s.psychologistRepo.Get(ctx, psychologistID); err != nil {
		return nil, err
	}

	now := s.now()
	if from.IsZero() || from.Before(now) {
		from = now
	}
	if to.IsZero() {
		to = now.AddDate(0, 0, s.cfg.HorizonDays)
	}
	if !from.Before(to) {
		return nil, apperrors.Validation("range end must be after start", nil)
	}

	return s.slotRepo.ListAvailable(ctx, psychologistID, from, to)
}

// RegenerateSlots refreshes the rolling slot window for one psychologist.
// Existing slots (booked or not) are left alone; only missing candidates
// are inserted. Returns the number of new slots written.
func (s *Service) RegenerateSlots(ctx context.Context, psychologistID uuid.UUID) (int, error) {
	psy, err := s.psychologistRepo.Get(ctx, psychologistID)
	if err != nil {
		return 0, fmt.Errorf("failed to load psychologist: %w", err)
	}

	loc, err := time.LoadLocation(psy.Timezone)
	if err != nil {
		return 0, fmt.Errorf("psychologist %s has invalid timezone %q: %w", psy.ID, psy.Timezone, err)
	}

	patterns, err := s.availabilityRepo.ListForPsychologist(ctx, psy.ID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to load patterns: %w", err)
	}
	if len(patterns) == 0 {
		return 0, nil
	}

	now := s.now()
	from := now
	to := now.AddDate(0, 0, s.cfg.HorizonDays)

	busy, err := s.appointmentRepo.ListActiveInRange(ctx, psy.ID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load appointments: %w", err)
	}

	session := time.Duration(s.cfg.DefaultSessionMinutes) * time.Minute
	buffer := time.Duration(s.cfg.DefaultBufferMinutes) * time.Minute

	candidates := GenerateSlots(patterns, busy, loc, from, to, now, session, buffer)
	if len(candidates) == 0 {
		return 0, nil
	}

	slots := make([]*model.TimeSlot, 0, len(candidates))
	for _, c := range candidates {
		patternID := c.PatternID
		slots = append(slots, &model.TimeSlot{
			PsychologistID: psy.ID,
			PatternID:      &patternID,
			StartTime:      c.Start,
			EndTime:        c.End,
			IsAvailable:    true,
		})
	}

	return s.slotRepo.UpsertGenerated(ctx, slots)
}

// PruneStaleSlots removes past slots that were never booked.
func (s *Service) PruneStaleSlots(ctx context.Context) (int64, error) {
	return s.slotRepo.PruneUnbooked(ctx, s.now())
}
