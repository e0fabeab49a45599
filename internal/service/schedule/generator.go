package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
)

// Candidate is a generated bookable interval before persistence.
type Candidate struct {
	Start     time.Time
	End       time.Time
	PatternID uuid.UUID
}

// GenerateSlots partitions the psychologist's availability windows in
// [from, to) into session-sized intervals. All wall-clock arithmetic is
// done in loc, the psychologist's configured zone, so windows stay at the
// same local time across daylight-saving transitions.
//
// A candidate is emitted only when the full session fits inside the
// pattern window, its start is strictly after now, and it does not
// overlap any of the busy appointments.
func GenerateSlots(
	patterns []*model.AvailabilityPattern,
	busy []*model.Appointment,
	loc *time.Location,
	from, to time.Time,
	now time.Time,
	session, buffer time.Duration,
) []Candidate {
	if session <= 0 || !from.Before(to) {
		return nil
	}
	step := session + buffer

	var out []Candidate
	day := startOfDay(from.In(loc))
	end := to.In(loc)

	for ; day.Before(end); day = nextDay(day) {
		for _, p := range patterns {
			if !p.AppliesOn(day) {
				continue
			}

			winStart := atMinute(day, p.StartMinute)
			winEnd := atMinute(day, p.EndMinute)

			for t := winStart; !t.Add(session).After(winEnd); t = t.Add(step) {
				slotEnd := t.Add(session)
				if !t.After(now) {
					continue
				}
				if t.Before(from) || !t.Before(to) {
					continue
				}
				if overlapsAny(t, slotEnd, busy) {
					continue
				}
				out = append(out, Candidate{Start: t, End: slotEnd, PatternID: p.ID})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return dedupe(out)
}

func overlapsAny(start, end time.Time, busy []*model.Appointment) bool {
	for _, appt := range busy {
		if !appt.Status.IsActive() {
			continue
		}
		if start.Before(appt.EndTime) && appt.StartTime.Before(end) {
			return true
		}
	}
	return false
}

// dedupe drops candidates with duplicate start times, which appear when
// two patterns for the same day overlap. Input must be sorted.
func dedupe(candidates []Candidate) []Candidate {
	if len(candidates) < 2 {
		return candidates
	}
	out := candidates[:1]
	for _, c := range candidates[1:] {
		if !c.Start.Equal(out[len(out)-1].Start) {
			out = append(out, c)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nextDay advances by calendar day, not 24 hours; DST days are 23 or 25
// hours long.
func nextDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}

// atMinute resolves a minutes-from-midnight offset to a wall-clock instant
// on the given day. time.Date normalizes across DST gaps.
func atMinute(day time.Time, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minute/60, minute%60, 0, 0, day.Location())
}
