package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mon 2026-01-05 .. Sun 2026-01-11
func dayAt(day time.Weekday, hour, min int) time.Time {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
	d := base.AddDate(0, 0, (int(day)+6)%7)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("07:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 30}, got)

	for _, bad := range []string{"", "7", "25:00", "12:60", "ab:cd"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestWindowsFor(t *testing.T) {
	r := DefaultRules()

	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday} {
		ws := r.WindowsFor(day)
		require.Len(t, ws, 2, day.String())
		assert.Equal(t, PeriodMorningPrep, ws[0].Key)
		assert.Equal(t, PeriodEveningPrep, ws[1].Key)
	}

	fri := r.WindowsFor(time.Friday)
	require.Len(t, fri, 1)
	assert.Equal(t, PeriodMorningPrep, fri[0].Key)

	sat := r.WindowsFor(time.Saturday)
	require.Len(t, sat, 1)
	assert.Equal(t, PeriodSaturdayExtended, sat[0].Key)
	assert.Equal(t, TimeOfDay{Hour: 10}, sat[0].Start)
	assert.Equal(t, TimeOfDay{Hour: 12}, sat[0].End)

	sun := r.WindowsFor(time.Sunday)
	require.Len(t, sun, 1)
	assert.Equal(t, PeriodEveningPrep, sun[0].Key)
}

func TestRulesWithSaturdayStart(t *testing.T) {
	r := RulesWithSaturdayStart("04:00")
	w, ok := r.WindowFor(time.Saturday, PeriodSaturdayExtended)
	require.True(t, ok)
	assert.Equal(t, TimeOfDay{Hour: 4}, w.Start)

	// bad override falls back to the default
	r = RulesWithSaturdayStart("not-a-time")
	w, _ = r.WindowFor(time.Saturday, PeriodSaturdayExtended)
	assert.Equal(t, TimeOfDay{Hour: 10}, w.Start)
}

func TestClassifySelfStudy(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		name string
		key  PeriodKey
		now  time.Time
		want Window
	}{
		{"monday morning before", PeriodMorningPrep, dayAt(time.Monday, 6, 59), BeforeWindow},
		{"monday morning at start", PeriodMorningPrep, dayAt(time.Monday, 7, 0), InWindow},
		{"monday morning inside", PeriodMorningPrep, dayAt(time.Monday, 8, 0), InWindow},
		{"monday morning at end", PeriodMorningPrep, dayAt(time.Monday, 8, 30), AfterWindow},
		{"monday morning after", PeriodMorningPrep, dayAt(time.Monday, 8, 31), AfterWindow},
		{"monday evening at start", PeriodEveningPrep, dayAt(time.Monday, 19, 30), InWindow},
		{"monday evening at end", PeriodEveningPrep, dayAt(time.Monday, 22, 0), AfterWindow},
		{"friday evening not scheduled", PeriodEveningPrep, dayAt(time.Friday, 20, 0), NotScheduledToday},
		{"saturday extended inside", PeriodSaturdayExtended, dayAt(time.Saturday, 11, 0), InWindow},
		{"saturday extended before", PeriodSaturdayExtended, dayAt(time.Saturday, 9, 59), BeforeWindow},
		{"saturday morning not scheduled", PeriodMorningPrep, dayAt(time.Saturday, 7, 30), NotScheduledToday},
		{"sunday morning not scheduled", PeriodMorningPrep, dayAt(time.Sunday, 7, 30), NotScheduledToday},
		{"sunday evening inside", PeriodEveningPrep, dayAt(time.Sunday, 21, 0), InWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ClassifySelfStudy(tt.key, tt.now))
		})
	}
}

// Totality: every key/timestamp pair lands in exactly one of the four
// classifications at every quarter hour of a full week.
func TestClassifySelfStudyTotality(t *testing.T) {
	r := DefaultRules()
	keys := []PeriodKey{PeriodMorningPrep, PeriodEveningPrep, PeriodSaturdayExtended}
	start := dayAt(time.Monday, 0, 0)

	for _, key := range keys {
		for m := 0; m < 7*24*60; m += 15 {
			now := start.Add(time.Duration(m) * time.Minute)
			w := r.ClassifySelfStudy(key, now)
			switch w {
			case BeforeWindow, InWindow, AfterWindow, NotScheduledToday:
			default:
				t.Fatalf("unexpected window %q for %s at %s", w, key, now)
			}
		}
	}
}

func TestActiveWindow(t *testing.T) {
	r := DefaultRules()

	w, ok := r.ActiveWindow(dayAt(time.Monday, 7, 5))
	require.True(t, ok)
	assert.Equal(t, PeriodMorningPrep, w.Key)

	w, ok = r.ActiveWindow(dayAt(time.Saturday, 10, 30))
	require.True(t, ok)
	assert.Equal(t, PeriodSaturdayExtended, w.Key)

	_, ok = r.ActiveWindow(dayAt(time.Monday, 12, 0))
	assert.False(t, ok)
}

func TestClassifySlot(t *testing.T) {
	monday := dayAt(time.Monday, 0, 0)

	tests := []struct {
		name string
		now  time.Time
		want Window
	}{
		{"before", dayAt(time.Monday, 8, 55), BeforeWindow},
		{"at start", dayAt(time.Monday, 9, 0), InWindow},
		{"inside", dayAt(time.Monday, 9, 30), InWindow},
		{"at end", dayAt(time.Monday, 10, 0), AfterWindow},
		{"after", dayAt(time.Monday, 10, 5), AfterWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifySlot(int(time.Monday), "09:00", "10:00", monday, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("wrong weekday", func(t *testing.T) {
		got, err := ClassifySlot(int(time.Tuesday), "09:00", "10:00", monday, dayAt(time.Monday, 9, 30))
		require.NoError(t, err)
		assert.Equal(t, NotScheduledToday, got)
	})

	t.Run("bad times", func(t *testing.T) {
		_, err := ClassifySlot(int(time.Monday), "9am", "10:00", monday, monday)
		assert.Error(t, err)
	})
}
