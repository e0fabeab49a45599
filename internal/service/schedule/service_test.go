package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell/clinic-scheduler/internal/config"
	"github.com/mindwell/clinic-scheduler/internal/model"
	auditService "github.com/mindwell/clinic-scheduler/internal/service/audit"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
)

type fakeAvailabilityRepo struct {
	patterns map[uuid.UUID]*model.AvailabilityPattern
}

func (r *fakeAvailabilityRepo) Create(ctx context.Context, p *model.AvailabilityPattern) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patterns[p.ID] = p
	return nil
}

func (r *fakeAvailabilityRepo) Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityPattern, error) {
	p, ok := r.patterns[id]
	if !ok {
		return nil, apperrors.NotFound("availability pattern", nil)
	}
	return p, nil
}

func (r *fakeAvailabilityRepo) Update(ctx context.Context, p *model.AvailabilityPattern) error {
	r.patterns[p.ID] = p
	return nil
}

func (r *fakeAvailabilityRepo) Disable(ctx context.Context, id uuid.UUID, until time.Time) error {
	p := r.patterns[id]
	p.Active = false
	p.ValidUntil = &until
	return nil
}

func (r *fakeAvailabilityRepo) ListForPsychologist(ctx context.Context, psychologistID uuid.UUID, activeOnly bool) ([]*model.AvailabilityPattern, error) {
	var out []*model.AvailabilityPattern
	for _, p := range r.patterns {
		if p.PsychologistID != psychologistID {
			continue
		}
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeSlotRepo struct {
	upserted []*model.TimeSlot
	listFrom time.Time
	listTo   time.Time
}

func (r *fakeSlotRepo) Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return nil, apperrors.NotFound("time slot", nil)
}

func (r *fakeSlotRepo) ListAvailable(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.TimeSlot, error) {
	r.listFrom, r.listTo = from, to
	return nil, nil
}

func (r *fakeSlotRepo) UpsertGenerated(ctx context.Context, slots []*model.TimeSlot) (int, error) {
	r.upserted = append(r.upserted, slots...)
	return len(slots), nil
}

func (r *fakeSlotRepo) PruneUnbooked(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeAppointmentRepo struct{}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}
func (r *fakeAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) ListActiveInRange(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) HasPatientConflict(ctx context.Context, patientID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	return false, nil
}
func (r *fakeAppointmentRepo) ListElapsedActive(ctx context.Context, asOf time.Time, limit int) ([]*model.Appointment, error) {
	return nil, nil
}

type fakePsychologistRepo struct {
	psychologists map[uuid.UUID]*model.Psychologist
}

func (r *fakePsychologistRepo) Create(ctx context.Context, p *model.Psychologist) error { return nil }
func (r *fakePsychologistRepo) Get(ctx context.Context, id uuid.UUID) (*model.Psychologist, error) {
	p, ok := r.psychologists[id]
	if !ok {
		return nil, apperrors.NotFound("psychologist", nil)
	}
	return p, nil
}
func (r *fakePsychologistRepo) GetByEmail(ctx context.Context, email string) (*model.Psychologist, error) {
	return nil, apperrors.NotFound("psychologist", nil)
}
func (r *fakePsychologistRepo) Update(ctx context.Context, p *model.Psychologist) error { return nil }
func (r *fakePsychologistRepo) List(ctx context.Context, status model.PsychologistStatus) ([]*model.Psychologist, error) {
	return nil, nil
}

type fakeAuditRepo struct{}

func (r *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error { return nil }
func (r *fakeAuditRepo) List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, int64, error) {
	return nil, 0, nil
}
func (r *fakeAuditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *model.Psychologist, *fakeAvailabilityRepo, *fakeSlotRepo) {
	t.Helper()

	psy := &model.Psychologist{
		Base:     model.Base{ID: uuid.New()},
		Name:     "Dr Chen",
		Timezone: "Australia/Sydney",
		Status:   model.PsychologistStatusActive,
	}

	availRepo := &fakeAvailabilityRepo{patterns: make(map[uuid.UUID]*model.AvailabilityPattern)}
	slotRepo := &fakeSlotRepo{}

	svc := NewService(
		availRepo,
		slotRepo,
		&fakeAppointmentRepo{},
		&fakePsychologistRepo{psychologists: map[uuid.UUID]*model.Psychologist{psy.ID: psy}},
		auditService.NewService(&fakeAuditRepo{}),
		config.BookingConfig{
			HorizonDays:           30,
			DefaultSessionMinutes: 50,
			DefaultBufferMinutes:  10,
		},
	)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	}
	return svc, psy, availRepo, slotRepo
}

func TestCreatePattern(t *testing.T) {
	svc, psy, _, _ := newTestService(t)

	pattern, err := svc.CreatePattern(context.Background(), auditService.System, psy.ID, &model.CreateAvailabilityPatternRequest{
		DayOfWeek:   1,
		StartMinute: 540,
		EndMinute:   720,
		ValidFrom:   "2026-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Monday, pattern.DayOfWeek)
	assert.True(t, pattern.Active)
	// valid_from is anchored in the psychologist's zone.
	loc, _ := time.LoadLocation("Australia/Sydney")
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, loc).Unix(), pattern.ValidFrom.Unix())
}

func TestCreatePattern_InvalidWindow(t *testing.T) {
	svc, psy, _, _ := newTestService(t)

	_, err := svc.CreatePattern(context.Background(), auditService.System, psy.ID, &model.CreateAvailabilityPatternRequest{
		DayOfWeek:   1,
		StartMinute: 720,
		EndMinute:   540,
		ValidFrom:   "2026-09-01",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestCreatePattern_UnknownPsychologist(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreatePattern(context.Background(), auditService.System, uuid.New(), &model.CreateAvailabilityPatternRequest{
		DayOfWeek:   1,
		StartMinute: 540,
		EndMinute:   720,
		ValidFrom:   "2026-09-01",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestDisablePattern(t *testing.T) {
	svc, psy, availRepo, _ := newTestService(t)

	pattern, err := svc.CreatePattern(context.Background(), auditService.System, psy.ID, &model.CreateAvailabilityPatternRequest{
		DayOfWeek:   1,
		StartMinute: 540,
		EndMinute:   720,
		ValidFrom:   "2026-09-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DisablePattern(context.Background(), auditService.System, pattern.ID))

	stored := availRepo.patterns[pattern.ID]
	assert.False(t, stored.Active)
	require.NotNil(t, stored.ValidUntil)
}

func TestUpdatePattern_ValidUntilInPsychologistZone(t *testing.T) {
	svc, psy, availRepo, _ := newTestService(t)

	pattern, err := svc.CreatePattern(context.Background(), auditService.System, psy.ID, &model.CreateAvailabilityPatternRequest{
		DayOfWeek:   1,
		StartMinute: 540,
		EndMinute:   720,
		ValidFrom:   "2026-09-01",
	})
	require.NoError(t, err)

	until := "2026-09-14"
	updated, err := svc.UpdatePattern(context.Background(), auditService.System, pattern.ID, &model.UpdateAvailabilityPatternRequest{
		ValidUntil: &until,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ValidUntil)

	// Same anchoring as valid_from: local midnight in the psychologist's
	// zone, not UTC. A UTC parse would land 10 hours earlier and shave a
	// day off the covered range.
	loc, _ := time.LoadLocation("Australia/Sydney")
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, loc).Unix(), updated.ValidUntil.Unix())

	stored := availRepo.patterns[pattern.ID]
	require.NotNil(t, stored.ValidUntil)
	assert.Equal(t, updated.ValidUntil.Unix(), stored.ValidUntil.Unix())
}

func TestListOpenSlots_ClampsRangeToFuture(t *testing.T) {
	svc, psy, _, slotRepo := newTestService(t)
	now := svc.now()

	_, err := svc.ListOpenSlots(context.Background(), psy.ID, now.Add(-48*time.Hour), time.Time{})
	require.NoError(t, err)

	assert.True(t, slotRepo.listFrom.Equal(now))
	assert.True(t, slotRepo.listTo.Equal(now.AddDate(0, 0, 30)))
}

func TestListOpenSlots_RejectsInvertedRange(t *testing.T) {
	svc, psy, _, _ := newTestService(t)
	now := svc.now()

	_, err := svc.ListOpenSlots(context.Background(), psy.ID, now.AddDate(0, 0, 5), now.AddDate(0, 0, 2))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestRegenerateSlots(t *testing.T) {
	svc, psy, _, slotRepo := newTestService(t)

	_, err := svc.CreatePattern(context.Background(), auditService.System, psy.ID, &model.CreateAvailabilityPatternRequest{
		DayOfWeek:   1,
		StartMinute: 540,
		EndMinute:   720,
		ValidFrom:   "2026-09-01",
	})
	require.NoError(t, err)

	created, err := svc.RegenerateSlots(context.Background(), psy.ID)
	require.NoError(t, err)
	assert.Greater(t, created, 0)

	for _, slot := range slotRepo.upserted {
		assert.Equal(t, psy.ID, slot.PsychologistID)
		assert.True(t, slot.IsAvailable)
		require.NotNil(t, slot.PatternID)
		assert.True(t, slot.EndTime.After(slot.StartTime))
	}
}

func TestRegenerateSlots_NoPatterns(t *testing.T) {
	svc, psy, _, slotRepo := newTestService(t)

	created, err := svc.RegenerateSlots(context.Background(), psy.ID)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, slotRepo.upserted)
}
