// Package schedule holds the pure attendance scheduling logic: the weekly
// period-window table, the window classifier and the per-occurrence status
// resolver. Nothing here touches the database or the system clock; callers
// always pass "now" explicitly.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window classifies a timestamp against a period's recording window.
type Window string

const (
	BeforeWindow      Window = "BEFORE_WINDOW"
	InWindow          Window = "IN_WINDOW"
	AfterWindow       Window = "AFTER_WINDOW"
	NotScheduledToday Window = "NOT_SCHEDULED_TODAY"
)

// PeriodKey identifies a self-study/prep period.
type PeriodKey string

const (
	PeriodMorningPrep      PeriodKey = "morning_prep"
	PeriodEveningPrep      PeriodKey = "evening_prep"
	PeriodSaturdayExtended PeriodKey = "saturday_extended_prep"
)

func (p PeriodKey) Valid() bool {
	switch p {
	case PeriodMorningPrep, PeriodEveningPrep, PeriodSaturdayExtended:
		return true
	default:
		return false
	}
}

// TimeOfDay is a wall-clock time without a date, minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// On anchors the clock time to d's calendar date and location.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, d.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// PeriodWindow is one scheduled self-study window within a day.
type PeriodWindow struct {
	Key   PeriodKey
	Start TimeOfDay
	End   TimeOfDay
}

// WeeklyRules is the single source of truth for the self-study timetable.
// The Saturday start is injected because the legacy system carried two
// different values for it (10:00 and 04:00).
type WeeklyRules struct {
	SaturdayStart TimeOfDay
}

// DefaultRules uses the 10:00 Saturday start.
func DefaultRules() WeeklyRules {
	return WeeklyRules{SaturdayStart: TimeOfDay{Hour: 10}}
}

// RulesWithSaturdayStart parses an "HH:MM" override, falling back to the
// default on bad input.
func RulesWithSaturdayStart(s string) WeeklyRules {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return DefaultRules()
	}
	return WeeklyRules{SaturdayStart: t}
}

// WindowsFor returns the self-study windows scheduled on the given weekday:
// Mon-Thu morning and evening prep, Fri morning only, Sat the extended prep,
// Sun evening only.
func (r WeeklyRules) WindowsFor(day time.Weekday) []PeriodWindow {
	morning := PeriodWindow{Key: PeriodMorningPrep, Start: TimeOfDay{Hour: 7}, End: TimeOfDay{Hour: 8, Minute: 30}}
	evening := PeriodWindow{Key: PeriodEveningPrep, Start: TimeOfDay{Hour: 19, Minute: 30}, End: TimeOfDay{Hour: 22}}

	switch day {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		return []PeriodWindow{morning, evening}
	case time.Friday:
		return []PeriodWindow{morning}
	case time.Saturday:
		return []PeriodWindow{{Key: PeriodSaturdayExtended, Start: r.SaturdayStart, End: TimeOfDay{Hour: 12}}}
	case time.Sunday:
		return []PeriodWindow{evening}
	default:
		return nil
	}
}

// WindowFor returns the window for one period key on the given weekday, or
// false when the key is not scheduled that day.
func (r WeeklyRules) WindowFor(day time.Weekday, key PeriodKey) (PeriodWindow, bool) {
	for _, w := range r.WindowsFor(day) {
		if w.Key == key {
			return w, true
		}
	}
	return PeriodWindow{}, false
}

// ClassifySelfStudy classifies now against the self-study window of key on
// now's own calendar date.
func (r WeeklyRules) ClassifySelfStudy(key PeriodKey, now time.Time) Window {
	w, ok := r.WindowFor(now.Weekday(), key)
	if !ok {
		return NotScheduledToday
	}
	return ClassifyInstant(w.Start.On(now), w.End.On(now), now)
}

// ActiveWindow returns the self-study window containing now, if any.
func (r WeeklyRules) ActiveWindow(now time.Time) (PeriodWindow, bool) {
	for _, w := range r.WindowsFor(now.Weekday()) {
		if ClassifyInstant(w.Start.On(now), w.End.On(now), now) == InWindow {
			return w, true
		}
	}
	return PeriodWindow{}, false
}

// ClassifyInstant places now against the half-open window [start, end).
func ClassifyInstant(start, end, now time.Time) Window {
	if now.Before(start) {
		return BeforeWindow
	}
	if now.Before(end) {
		return InWindow
	}
	return AfterWindow
}

// ClassifySlot classifies now against a regular-period window that runs
// [startTime, endTime) on the calendar date. A date on a different weekday
// than dayOfWeek is not scheduled.
func ClassifySlot(dayOfWeek int, startTime, endTime string, date, now time.Time) (Window, error) {
	if int(date.Weekday()) != dayOfWeek {
		return NotScheduledToday, nil
	}
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return "", err
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return "", err
	}
	return ClassifyInstant(start.On(date), end.On(date), now.In(date.Location())), nil
}
