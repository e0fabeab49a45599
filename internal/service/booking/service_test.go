package booking

import (
	"context"
	"sync"
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

// memStore is a shared in-memory backing for the repository fakes. The
// booking fake mirrors the database guarantees: slot claim and appointment
// insert happen under one lock, and a claimed slot rejects later commits.
type memStore struct {
	mu           sync.Mutex
	slots        map[uuid.UUID]*model.TimeSlot
	appointments map[uuid.UUID]*model.Appointment
	events       []*model.OutboxEvent
}

func newMemStore() *memStore {
	return &memStore{
		slots:        make(map[uuid.UUID]*model.TimeSlot),
		appointments: make(map[uuid.UUID]*model.Appointment),
	}
}

type fakeBookingRepo struct{ store *memStore }

func (r *fakeBookingRepo) CommitBooking(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent, excludePatientAppt *uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	slot, ok := r.store.slots[appt.TimeSlotID]
	if !ok {
		return apperrors.NotFound("time slot", nil)
	}
	if !slot.IsAvailable || slot.AppointmentID != nil {
		return apperrors.SlotUnavailable(nil)
	}

	for _, existing := range r.store.appointments {
		if excludePatientAppt != nil && existing.ID == *excludePatientAppt {
			continue
		}
		if existing.PatientID == appt.PatientID && existing.Status.IsActive() &&
			appt.StartTime.Before(existing.EndTime) && existing.StartTime.Before(appt.EndTime) {
			return apperrors.PatientConflict()
		}
	}

	cp := *appt
	r.store.appointments[appt.ID] = &cp
	slot.IsAvailable = false
	slot.AppointmentID = &appt.ID
	if event != nil {
		r.store.events = append(r.store.events, event)
	}
	return nil
}

func (r *fakeBookingRepo) CancelAndRelease(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *appt
	r.store.appointments[appt.ID] = &cp
	if slot, ok := r.store.slots[appt.TimeSlotID]; ok && slot.AppointmentID != nil && *slot.AppointmentID == appt.ID {
		slot.IsAvailable = true
		slot.AppointmentID = nil
	}
	if event != nil {
		r.store.events = append(r.store.events, event)
	}
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, appt *model.Appointment, event *model.OutboxEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *appt
	r.store.appointments[appt.ID] = &cp
	if event != nil {
		r.store.events = append(r.store.events, event)
	}
	return nil
}

type fakeAppointmentRepo struct{ store *memStore }

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	appt, ok := r.store.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*model.Appointment
	for _, appt := range r.store.appointments {
		cp := *appt
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListActiveInRange(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) HasPatientConflict(ctx context.Context, patientID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, appt := range r.store.appointments {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if appt.PatientID == patientID && appt.Status.IsActive() &&
			start.Before(appt.EndTime) && appt.StartTime.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) ListElapsedActive(ctx context.Context, asOf time.Time, limit int) ([]*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*model.Appointment
	for _, appt := range r.store.appointments {
		if appt.Status.IsActive() && appt.EndTime.Before(asOf) {
			cp := *appt
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type fakeSlotRepo struct{ store *memStore }

func (r *fakeSlotRepo) Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot, ok := r.store.slots[id]
	if !ok {
		return nil, apperrors.NotFound("time slot", nil)
	}
	cp := *slot
	return &cp, nil
}

func (r *fakeSlotRepo) ListAvailable(ctx context.Context, psychologistID uuid.UUID, from, to time.Time) ([]*model.TimeSlot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) UpsertGenerated(ctx context.Context, slots []*model.TimeSlot) (int, error) {
	return 0, nil
}

func (r *fakeSlotRepo) PruneUnbooked(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakePsychologistRepo struct{ psychologists map[uuid.UUID]*model.Psychologist }

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

type fakePatientRepo struct{ patients map[uuid.UUID]*model.Patient }

func (r *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error { return nil }
func (r *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return p, nil
}
func (r *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }
func (r *fakePatientRepo) List(ctx context.Context, status model.PatientStatus) ([]*model.Patient, error) {
	return nil, nil
}

type fakeServiceRepo struct{ services map[uuid.UUID]*model.Service }

func (r *fakeServiceRepo) Create(ctx context.Context, s *model.Service) error { return nil }
func (r *fakeServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}
	return s, nil
}
func (r *fakeServiceRepo) Update(ctx context.Context, s *model.Service) error { return nil }
func (r *fakeServiceRepo) List(ctx context.Context) ([]*model.Service, error) { return nil, nil }

type fakeAuditRepo struct{}

func (r *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error { return nil }
func (r *fakeAuditRepo) List(ctx context.Context, filters *model.AuditFilters) ([]*model.AuditLog, int64, error) {
	return nil, 0, nil
}
func (r *fakeAuditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fixture struct {
	svc     *Service
	store   *memStore
	psy     *model.Psychologist
	patient *model.Patient
	offer   *model.Service
	slot    *model.TimeSlot
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	psy := &model.Psychologist{
		Base:                model.Base{ID: uuid.New()},
		Name:                "Dr Reyes",
		Timezone:            "Australia/Sydney",
		TelehealthAvailable: true,
		Status:              model.PsychologistStatusActive,
	}
	patient := &model.Patient{
		Base:   model.Base{ID: uuid.New()},
		Name:   "Alex",
		Email:  "alex@example.com",
		Status: model.PatientStatusActive,
	}
	offer := &model.Service{
		Base:            model.Base{ID: uuid.New()},
		Name:            "Standard consultation",
		DurationMinutes: 50,
	}
	slot := &model.TimeSlot{
		Base:           model.Base{ID: uuid.New()},
		PsychologistID: psy.ID,
		StartTime:      now.AddDate(0, 0, 7),
		EndTime:        now.AddDate(0, 0, 7).Add(50 * time.Minute),
		IsAvailable:    true,
	}
	store.slots[slot.ID] = slot

	cfg := config.BookingConfig{
		HorizonDays:          30,
		CancelLeadWindow:     24 * time.Hour,
		RescheduleLeadWindow: 48 * time.Hour,
	}

	svc := NewService(
		&fakeBookingRepo{store: store},
		&fakeAppointmentRepo{store: store},
		&fakeSlotRepo{store: store},
		&fakePsychologistRepo{psychologists: map[uuid.UUID]*model.Psychologist{psy.ID: psy}},
		&fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}},
		&fakeServiceRepo{services: map[uuid.UUID]*model.Service{offer.ID: offer}},
		auditService.NewService(&fakeAuditRepo{}),
		cfg,
	)
	svc.now = func() time.Time { return now }

	return &fixture{svc: svc, store: store, psy: psy, patient: patient, offer: offer, slot: slot, now: now}
}

func (f *fixture) bookRequest() *model.BookAppointmentRequest {
	return &model.BookAppointmentRequest{
		PatientID:      f.patient.ID,
		PsychologistID: f.psy.ID,
		ServiceID:      f.offer.ID,
		TimeSlotID:     f.slot.ID,
		SessionType:    string(model.SessionTypeTelehealth),
	}
}

func (f *fixture) addSlot(start time.Time) *model.TimeSlot {
	slot := &model.TimeSlot{
		Base:           model.Base{ID: uuid.New()},
		PsychologistID: f.psy.ID,
		StartTime:      start,
		EndTime:        start.Add(50 * time.Minute),
		IsAvailable:    true,
	}
	f.store.slots[slot.ID] = slot
	return slot
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	got, ok := apperrors.Code(err)
	require.True(t, ok, "expected application error, got %v", err)
	assert.Equal(t, code, got)
}

func TestBook(t *testing.T) {
	f := newFixture(t)
	actor := auditService.Actor{ID: f.patient.ID, Role: "patient"}

	appt, err := f.svc.Book(context.Background(), actor, f.bookRequest())
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)
	assert.Equal(t, f.slot.StartTime, appt.StartTime)
	assert.False(t, f.store.slots[f.slot.ID].IsAvailable)
	require.NotNil(t, f.store.slots[f.slot.ID].AppointmentID)
	assert.Equal(t, appt.ID, *f.store.slots[f.slot.ID].AppointmentID)

	require.Len(t, f.store.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, f.store.events[0].EventType)
}

func TestBook_ConcurrentRequestsOneWinner(t *testing.T) {
	f := newFixture(t)
	actor := auditService.Actor{ID: f.patient.ID, Role: "patient"}

	// Distinct patients racing for the same slot.
	const n = 16
	patients := make([]*model.Patient, n)
	patientRepo := &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
	for i := range patients {
		p := &model.Patient{Base: model.Base{ID: uuid.New()}, Status: model.PatientStatusActive}
		patients[i] = p
		patientRepo.patients[p.ID] = p
	}
	f.svc.patientRepo = patientRepo

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := f.bookRequest()
			req.PatientID = patients[i].ID
			_, errs[i] = f.svc.Book(context.Background(), actor, req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireCode(t, err, apperrors.ErrCodeSlotUnavailable)
	}
	assert.Equal(t, 1, succeeded)
}

func TestBook_UnsupportedSessionType(t *testing.T) {
	f := newFixture(t)
	f.psy.InPersonAvailable = false

	req := f.bookRequest()
	req.SessionType = string(model.SessionTypeInPerson)

	_, err := f.svc.Book(context.Background(), auditService.System, req)
	requireCode(t, err, apperrors.ErrCodeUnsupportedSessionType)
}

func TestBook_PastSlot(t *testing.T) {
	f := newFixture(t)
	past := f.addSlot(f.now.Add(-time.Hour))

	req := f.bookRequest()
	req.TimeSlotID = past.ID

	_, err := f.svc.Book(context.Background(), auditService.System, req)
	requireCode(t, err, apperrors.ErrCodeSlotInPast)
}

func TestBook_PatientConflict(t *testing.T) {
	f := newFixture(t)
	actor := auditService.Actor{ID: f.patient.ID, Role: "patient"}

	_, err := f.svc.Book(context.Background(), actor, f.bookRequest())
	require.NoError(t, err)

	// Second psychologist, overlapping time, same patient.
	other := &model.Psychologist{
		Base:                model.Base{ID: uuid.New()},
		Timezone:            "Australia/Sydney",
		TelehealthAvailable: true,
		Status:              model.PsychologistStatusActive,
	}
	f.svc.psychologistRepo.(*fakePsychologistRepo).psychologists[other.ID] = other

	overlapping := &model.TimeSlot{
		Base:           model.Base{ID: uuid.New()},
		PsychologistID: other.ID,
		StartTime:      f.slot.StartTime.Add(20 * time.Minute),
		EndTime:        f.slot.StartTime.Add(70 * time.Minute),
		IsAvailable:    true,
	}
	f.store.slots[overlapping.ID] = overlapping

	req := f.bookRequest()
	req.PsychologistID = other.ID
	req.TimeSlotID = overlapping.ID

	_, err = f.svc.Book(context.Background(), actor, req)
	requireCode(t, err, apperrors.ErrCodePatientConflict)
}

func TestBook_InactivePsychologist(t *testing.T) {
	f := newFixture(t)
	f.psy.Status = model.PsychologistStatusInactive

	_, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	requireCode(t, err, apperrors.ErrCodeSlotUnavailable)
}

func TestConfirm(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	confirmed, err := f.svc.Confirm(context.Background(), auditService.System, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, confirmed.Status)

	// Confirming twice is an invalid transition.
	_, err = f.svc.Confirm(context.Background(), auditService.System, appt.ID)
	requireCode(t, err, apperrors.ErrCodeInvalidTransition)
}

func TestCancel_ReleasesSlot(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), auditService.System, appt.ID, "patient request")
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "patient request", *cancelled.CancelReason)
	assert.True(t, f.store.slots[f.slot.ID].IsAvailable)
	assert.Nil(t, f.store.slots[f.slot.ID].AppointmentID)

	// The freed slot can be booked again.
	other := &model.Patient{Base: model.Base{ID: uuid.New()}, Status: model.PatientStatusActive}
	f.svc.patientRepo.(*fakePatientRepo).patients[other.ID] = other
	req := f.bookRequest()
	req.PatientID = other.ID
	_, err = f.svc.Book(context.Background(), auditService.System, req)
	require.NoError(t, err)
}

func TestCancel_InsideLeadWindow(t *testing.T) {
	f := newFixture(t)
	soon := f.addSlot(f.now.Add(2 * time.Hour))

	req := f.bookRequest()
	req.TimeSlotID = soon.ID
	appt, err := f.svc.Book(context.Background(), auditService.System, req)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), auditService.System, appt.ID, "")
	requireCode(t, err, apperrors.ErrCodeLeadWindowViolation)
}

func TestCancel_TerminalStatus(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), auditService.System, appt.ID, "first")
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), auditService.System, appt.ID, "second")
	requireCode(t, err, apperrors.ErrCodeInvalidTransition)
}

func TestReschedule(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	newSlot := f.addSlot(f.now.AddDate(0, 0, 10))
	replacement, err := f.svc.Reschedule(context.Background(), auditService.System, appt.ID, &model.RescheduleAppointmentRequest{
		NewTimeSlotID: newSlot.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, replacement.Status)
	assert.Equal(t, newSlot.ID, replacement.TimeSlotID)
	assert.Equal(t, appt.PatientID, replacement.PatientID)

	old, err := f.svc.Get(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, old.Status)
	require.NotNil(t, old.RescheduledTo)
	assert.Equal(t, replacement.ID, *old.RescheduledTo)

	assert.True(t, f.store.slots[f.slot.ID].IsAvailable)
	assert.False(t, f.store.slots[newSlot.ID].IsAvailable)
}

func TestReschedule_TargetOverlapsOriginal(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	// New slot starts 20 minutes into the original's window. The
	// appointment being replaced must not count as a patient conflict.
	overlapping := f.addSlot(f.slot.StartTime.Add(20 * time.Minute))
	replacement, err := f.svc.Reschedule(context.Background(), auditService.System, appt.ID, &model.RescheduleAppointmentRequest{
		NewTimeSlotID: overlapping.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, overlapping.ID, replacement.TimeSlotID)
	old, err := f.svc.Get(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, old.Status)
	assert.True(t, f.store.slots[f.slot.ID].IsAvailable)
}

func TestReschedule_InsideLeadWindow(t *testing.T) {
	f := newFixture(t)
	soon := f.addSlot(f.now.Add(36 * time.Hour))

	req := f.bookRequest()
	req.TimeSlotID = soon.ID
	appt, err := f.svc.Book(context.Background(), auditService.System, req)
	require.NoError(t, err)

	later := f.addSlot(f.now.AddDate(0, 0, 10))
	_, err = f.svc.Reschedule(context.Background(), auditService.System, appt.ID, &model.RescheduleAppointmentRequest{
		NewTimeSlotID: later.ID,
	})
	requireCode(t, err, apperrors.ErrCodeLeadWindowViolation)
}

func TestReschedule_UnavailableTargetKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	taken := f.addSlot(f.now.AddDate(0, 0, 10))
	taken.IsAvailable = false

	_, err = f.svc.Reschedule(context.Background(), auditService.System, appt.ID, &model.RescheduleAppointmentRequest{
		NewTimeSlotID: taken.ID,
	})
	requireCode(t, err, apperrors.ErrCodeSlotUnavailable)

	// Original untouched.
	current, err := f.svc.Get(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, current.Status)
}

func TestComplete_RequiresConfirmed(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), auditService.System, appt.ID)
	requireCode(t, err, apperrors.ErrCodeInvalidTransition)

	_, err = f.svc.Confirm(context.Background(), auditService.System, appt.ID)
	require.NoError(t, err)

	completed, err := f.svc.Complete(context.Background(), auditService.System, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)
}

func TestMarkNoShow_WindowMustHavePassed(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	_, err = f.svc.MarkNoShow(context.Background(), auditService.System, appt.ID)
	requireCode(t, err, apperrors.ErrCodeValidation)

	f.svc.now = func() time.Time { return appt.EndTime.Add(time.Minute) }
	marked, err := f.svc.MarkNoShow(context.Background(), auditService.System, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusNoShow, marked.Status)
}

func TestSweepNoShows(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	// Nothing elapsed yet.
	swept, err := f.svc.SweepNoShows(context.Background(), 100)
	require.NoError(t, err)
	assert.Zero(t, swept)

	f.svc.now = func() time.Time { return appt.EndTime.Add(time.Hour) }
	swept, err = f.svc.SweepNoShows(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	current, err := f.svc.Get(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusNoShow, current.Status)

	// Idempotent on re-run.
	swept, err = f.svc.SweepNoShows(context.Background(), 100)
	require.NoError(t, err)
	assert.Zero(t, swept)
}

func TestSetMeetingRoom(t *testing.T) {
	f := newFixture(t)
	appt, err := f.svc.Book(context.Background(), auditService.System, f.bookRequest())
	require.NoError(t, err)

	updated, err := f.svc.SetMeetingRoom(context.Background(), auditService.System, appt.ID, "room-abc123")
	require.NoError(t, err)
	require.NotNil(t, updated.MeetingRoomRef)
	assert.Equal(t, "room-abc123", *updated.MeetingRoomRef)
}
