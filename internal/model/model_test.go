package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatusHelpers(t *testing.T) {
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusNoShow.IsTerminal())
	assert.False(t, AppointmentStatusScheduled.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())

	assert.True(t, AppointmentStatusScheduled.IsActive())
	assert.True(t, AppointmentStatusConfirmed.IsActive())
	assert.False(t, AppointmentStatusCompleted.IsActive())
}

func TestOffersSessionType(t *testing.T) {
	p := &Psychologist{TelehealthAvailable: true, InPersonAvailable: false}

	assert.True(t, p.OffersSessionType(SessionTypeTelehealth))
	assert.False(t, p.OffersSessionType(SessionTypeInPerson))
	assert.False(t, p.OffersSessionType(SessionType("group")))
}

func TestPatternAppliesOn(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	validFrom := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	p := &AvailabilityPattern{
		DayOfWeek:   time.Monday,
		StartMinute: 540,
		EndMinute:   720,
		Active:      true,
		ValidFrom:   validFrom,
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	tuesday := monday.AddDate(0, 0, 1)

	assert.True(t, p.AppliesOn(monday))
	assert.False(t, p.AppliesOn(tuesday))

	// Before valid_from.
	assert.False(t, p.AppliesOn(time.Date(2026, 8, 31, 0, 0, 0, 0, loc)))

	// After valid_until.
	until := time.Date(2026, 9, 10, 0, 0, 0, 0, loc)
	p.ValidUntil = &until
	assert.True(t, p.AppliesOn(monday))
	assert.False(t, p.AppliesOn(monday.AddDate(0, 0, 7)))

	p.Active = false
	assert.False(t, p.AppliesOn(monday))
}

func TestTimeSlotOverlaps(t *testing.T) {
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slot := &TimeSlot{StartTime: start, EndTime: start.Add(50 * time.Minute)}

	assert.True(t, slot.Overlaps(start.Add(20*time.Minute), start.Add(70*time.Minute)))
	assert.True(t, slot.Overlaps(start.Add(-time.Hour), start.Add(time.Minute)))
	// Half-open: touching boundaries do not overlap.
	assert.False(t, slot.Overlaps(start.Add(50*time.Minute), start.Add(2*time.Hour)))
	assert.False(t, slot.Overlaps(start.Add(-time.Hour), start))
}
