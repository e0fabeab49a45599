package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell/clinic-scheduler/internal/model"
)

func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)
	return loc
}

func weekdayPattern(day time.Weekday, startMin, endMin int, validFrom time.Time) *model.AvailabilityPattern {
	return &model.AvailabilityPattern{
		Base:        model.Base{ID: uuid.New()},
		DayOfWeek:   day,
		StartMinute: startMin,
		EndMinute:   endMin,
		Active:      true,
		ValidFrom:   validFrom,
	}
}

func TestGenerateSlots_PartitionsWindow(t *testing.T) {
	loc := sydney(t)
	validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)
	// Monday 09:00 to 12:00
	pattern := weekdayPattern(time.Monday, 540, 720, validFrom)

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	from := now
	to := now.AddDate(0, 0, 7)

	slots := GenerateSlots([]*model.AvailabilityPattern{pattern}, nil, loc, from, to, now, 50*time.Minute, 10*time.Minute)

	// One Monday (Sep 7) in range: 09:00, 10:00, 11:00. 11:00+50m fits
	// exactly; a 12:00 start would not.
	require.Len(t, slots, 3)
	monday := time.Date(2026, 9, 7, 9, 0, 0, 0, loc)
	assert.True(t, slots[0].Start.Equal(monday))
	assert.True(t, slots[1].Start.Equal(monday.Add(time.Hour)))
	assert.True(t, slots[2].Start.Equal(monday.Add(2*time.Hour)))
	assert.True(t, slots[0].End.Equal(monday.Add(50*time.Minute)))
	assert.Equal(t, pattern.ID, slots[0].PatternID)
}

func TestGenerateSlots_SkipsBusyIntervals(t *testing.T) {
	loc := sydney(t)
	validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)
	pattern := weekdayPattern(time.Monday, 540, 720, validFrom)

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	busyStart := time.Date(2026, 9, 7, 10, 0, 0, 0, loc)
	busy := []*model.Appointment{
		{
			StartTime: busyStart,
			EndTime:   busyStart.Add(50 * time.Minute),
			Status:    model.AppointmentStatusScheduled,
		},
		// Cancelled appointments do not block regeneration.
		{
			StartTime: busyStart.Add(-time.Hour),
			EndTime:   busyStart.Add(-10 * time.Minute),
			Status:    model.AppointmentStatusCancelled,
		},
	}

	slots := GenerateSlots([]*model.AvailabilityPattern{pattern}, busy, loc, now, now.AddDate(0, 0, 7), now, 50*time.Minute, 10*time.Minute)

	require.Len(t, slots, 2)
	assert.Equal(t, 9, slots[0].Start.In(loc).Hour())
	assert.Equal(t, 11, slots[1].Start.In(loc).Hour())
}

func TestGenerateSlots_FutureOnly(t *testing.T) {
	loc := sydney(t)
	validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)
	pattern := weekdayPattern(time.Monday, 540, 720, validFrom)

	// Mid-window on the Monday itself: 10:00 exactly.
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, loc)
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	slots := GenerateSlots([]*model.AvailabilityPattern{pattern}, nil, loc, from, to, now, 50*time.Minute, 10*time.Minute)

	// 09:00 passed, 10:00 is not strictly future, only 11:00 remains.
	require.Len(t, slots, 1)
	assert.Equal(t, 11, slots[0].Start.In(loc).Hour())
}

func TestGenerateSlots_RespectsValidUntil(t *testing.T) {
	loc := sydney(t)
	validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)
	pattern := weekdayPattern(time.Monday, 540, 660, validFrom)
	until := time.Date(2026, 9, 8, 0, 0, 0, 0, loc)
	pattern.ValidUntil = &until

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	slots := GenerateSlots([]*model.AvailabilityPattern{pattern}, nil, loc, now, now.AddDate(0, 0, 14), now, time.Hour, 0)

	// Sep 7 qualifies, Sep 14 is past valid_until.
	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.Equal(t, 7, s.Start.In(loc).Day())
	}
}

func TestGenerateSlots_KeepsLocalTimeAcrossDST(t *testing.T) {
	loc := sydney(t)
	validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)
	// Sunday 09:00 to 11:00. Sydney clocks go forward on 2026-10-04.
	pattern := weekdayPattern(time.Sunday, 540, 660, validFrom)

	now := time.Date(2026, 9, 28, 0, 0, 0, 0, loc)
	slots := GenerateSlots([]*model.AvailabilityPattern{pattern}, nil, loc, now, now.AddDate(0, 0, 7), now, time.Hour, 0)

	require.Len(t, slots, 2)
	dstDay := slots[0].Start.In(loc)
	assert.Equal(t, 4, dstDay.Day())
	assert.Equal(t, time.October, dstDay.Month())
	assert.Equal(t, 9, dstDay.Hour())
	assert.Equal(t, 10, slots[1].Start.In(loc).Hour())

	// The transition day runs on AEDT, UTC+11.
	_, offset := dstDay.Zone()
	assert.Equal(t, 11*3600, offset)
}

func TestGenerateSlots_DedupesOverlappingPatterns(t *testing.T) {
	loc := sydney(t)
	validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)
	a := weekdayPattern(time.Monday, 540, 660, validFrom)
	b := weekdayPattern(time.Monday, 540, 720, validFrom)

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	slots := GenerateSlots([]*model.AvailabilityPattern{a, b}, nil, loc, now, now.AddDate(0, 0, 7), now, time.Hour, 0)

	starts := make(map[int64]struct{})
	for _, s := range slots {
		_, dup := starts[s.Start.Unix()]
		assert.False(t, dup, "duplicate start %s", s.Start)
		starts[s.Start.Unix()] = struct{}{}
	}
	require.Len(t, slots, 3)
}

func TestGenerateSlots_EmptyInputs(t *testing.T) {
	loc := sydney(t)
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)

	assert.Empty(t, GenerateSlots(nil, nil, loc, now, now.AddDate(0, 0, 7), now, time.Hour, 0))
	assert.Empty(t, GenerateSlots(nil, nil, loc, now.AddDate(0, 0, 7), now, now, time.Hour, 0))
}
