package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 5, 10, 5, 0, 0, time.UTC)

func pending(age time.Duration) *PermissionInfo {
	return &PermissionInfo{Status: RequestPending, RequestedAt: now.Add(-age)}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		window      Window
		hasRecord   bool
		req         *PermissionInfo
		wantStatus  Status
		wantActions []Action
	}{
		{"record exists", AfterWindow, true, nil, StatusCompleted, []Action{ActionView}},
		{"record wins over request", AfterWindow, true, pending(time.Hour), StatusCompleted, []Action{ActionView}},
		{"in window", InWindow, false, nil, StatusPending, []Action{ActionRecord}},
		{"before window", BeforeWindow, false, nil, StatusYetToStart, nil},
		{"not scheduled", NotScheduledToday, false, nil, StatusYetToStart, nil},
		{"missed", AfterWindow, false, nil, StatusMissed, []Action{ActionRequestPermission}},
		{"pending request fresh", AfterWindow, false, pending(time.Hour), StatusPendingRequest, nil},
		{"pending request just under ttl", AfterWindow, false, pending(PermissionRequestTTL - time.Minute), StatusPendingRequest, nil},
		{"pending request at ttl", AfterWindow, false, pending(PermissionRequestTTL), StatusExpired, nil},
		{"pending request stale", AfterWindow, false, pending(3 * 24 * time.Hour), StatusExpired, nil},
		{"approved", AfterWindow, false, &PermissionInfo{Status: RequestApproved}, StatusPermissionGranted, []Action{ActionRecord}},
		{"denied", AfterWindow, false, &PermissionInfo{Status: RequestDenied}, StatusPermissionDenied, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.window, tt.hasRecord, tt.req, now)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantActions, res.Actions)
		})
	}
}

// Repeated calls with identical inputs yield identical output.
func TestResolveIdempotent(t *testing.T) {
	req := pending(time.Hour)
	first := Resolve(AfterWindow, false, req, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Resolve(AfterWindow, false, req, now))
	}
}

// Exactly one of the eight labels applies for every input combination.
func TestResolveTotality(t *testing.T) {
	windows := []Window{BeforeWindow, InWindow, AfterWindow, NotScheduledToday}
	reqs := []*PermissionInfo{
		nil,
		pending(time.Hour),
		pending(3 * 24 * time.Hour),
		{Status: RequestApproved},
		{Status: RequestDenied},
	}
	known := map[Status]bool{
		StatusCompleted: true, StatusPending: true, StatusYetToStart: true,
		StatusMissed: true, StatusPendingRequest: true, StatusExpired: true,
		StatusPermissionGranted: true, StatusPermissionDenied: true,
	}

	for _, w := range windows {
		for _, hasRecord := range []bool{false, true} {
			for _, req := range reqs {
				res := Resolve(w, hasRecord, req, now)
				require.True(t, known[res.Status], "unknown status %q", res.Status)
			}
		}
	}
}

func TestResolveScenarioRegularPeriod(t *testing.T) {
	// Teacher X, Period 2, Monday 09:00-10:00.
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	classify := func(at time.Time) Window {
		w, err := ClassifySlot(int(time.Monday), "09:00", "10:00", monday, at)
		require.NoError(t, err)
		return w
	}

	// 08:55 -> YET_TO_START
	res := Resolve(classify(monday.Add(8*time.Hour+55*time.Minute)), false, nil, monday)
	assert.Equal(t, StatusYetToStart, res.Status)

	// 09:30, no record -> PENDING, can_record
	res = Resolve(classify(monday.Add(9*time.Hour+30*time.Minute)), false, nil, monday)
	assert.Equal(t, StatusPending, res.Status)
	assert.True(t, res.CanRecord())

	// recorded -> COMPLETED
	res = Resolve(classify(monday.Add(9*time.Hour+40*time.Minute)), true, nil, monday)
	assert.Equal(t, StatusCompleted, res.Status)

	// 10:05, never recorded -> MISSED
	at := monday.Add(10*time.Hour + 5*time.Minute)
	res = Resolve(classify(at), false, nil, at)
	assert.Equal(t, StatusMissed, res.Status)
	assert.True(t, res.Allows(ActionRequestPermission))

	// teacher requests permission -> PENDING_REQUEST
	req := &PermissionInfo{Status: RequestPending, RequestedAt: at}
	res = Resolve(classify(at), false, req, at)
	assert.Equal(t, StatusPendingRequest, res.Status)

	// admin denies -> PERMISSION_DENIED, permanently unrecordable
	req.Status = RequestDenied
	res = Resolve(classify(at), false, req, at)
	assert.Equal(t, StatusPermissionDenied, res.Status)
	assert.False(t, res.CanRecord())
}

func TestBuildDaySchedule(t *testing.T) {
	r1, r2, r3 := uuid.New(), uuid.New(), uuid.New()
	occs := []DayOccurrence{
		{RosterSlotID: r3, PeriodNumber: 3, Window: BeforeWindow},
		{RosterSlotID: r1, PeriodNumber: 1, Window: AfterWindow, HasRecord: true, RecordedCount: 28},
		{RosterSlotID: r2, PeriodNumber: 2, Window: AfterWindow},
	}

	items, summary := BuildDaySchedule(occs, now)
	require.Len(t, items, 3)

	// ordered by period number
	assert.Equal(t, []uuid.UUID{r1, r2, r3}, []uuid.UUID{items[0].RosterID, items[1].RosterID, items[2].RosterID})

	assert.Equal(t, StatusCompleted, items[0].Status)
	assert.Equal(t, 28, items[0].RecordedAttendanceCount)
	assert.True(t, items[0].CanView)

	assert.Equal(t, StatusMissed, items[1].Status)
	assert.Equal(t, StatusYetToStart, items[2].Status)

	assert.Equal(t, ScheduleSummary{Completed: 1, Pending: 0, Missed: 1}, summary)
}
