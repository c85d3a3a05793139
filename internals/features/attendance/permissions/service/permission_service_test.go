package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

type fakeStore struct {
	slots    map[uuid.UUID]*academicsModel.RosterSlotModel
	records  map[string]bool
	requests map[uuid.UUID]*model.PermissionRequestModel
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    map[uuid.UUID]*academicsModel.RosterSlotModel{},
		records:  map[string]bool{},
		requests: map[uuid.UUID]*model.PermissionRequestModel{},
	}
}

func occKey(rosterID uuid.UUID, date time.Time) string {
	return rosterID.String() + "|" + date.Format("2006-01-02")
}

func (f *fakeStore) SlotByID(_ context.Context, id uuid.UUID) (*academicsModel.RosterSlotModel, error) {
	return f.slots[id], nil
}

func (f *fakeStore) RecordExists(_ context.Context, rosterSlotID uuid.UUID, date time.Time) (bool, error) {
	return f.records[occKey(rosterSlotID, date)], nil
}

func (f *fakeStore) RequestFor(_ context.Context, rosterSlotID uuid.UUID, date time.Time) (*model.PermissionRequestModel, error) {
	for _, r := range f.requests {
		if r.PermissionRequestRosterSlotID == rosterSlotID && r.PermissionRequestPeriodDate.Equal(date) {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) RequestByID(_ context.Context, id uuid.UUID) (*model.PermissionRequestModel, error) {
	return f.requests[id], nil
}

func (f *fakeStore) CreateRequest(_ context.Context, req *model.PermissionRequestModel) error {
	req.PermissionRequestID = uuid.New()
	f.requests[req.PermissionRequestID] = req
	return nil
}

func (f *fakeStore) SaveRequest(_ context.Context, req *model.PermissionRequestModel) error {
	f.requests[req.PermissionRequestID] = req
	return nil
}

func (f *fakeStore) PendingRequests(_ context.Context, filter PendingFilter) ([]model.PermissionRequestModel, error) {
	var out []model.PermissionRequestModel
	for _, r := range f.requests {
		if r.PermissionRequestStatus != schedule.RequestPending {
			continue
		}
		if filter.TeacherID != nil && r.PermissionRequestTeacherID != *filter.TeacherID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

var (
	teacherID = uuid.New()
	adminID   = uuid.New()
	classID   = uuid.New()
	// Monday 2026-01-05, period 09:00-10:00
	monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	after  = time.Date(2026, 1, 5, 10, 5, 0, 0, time.UTC)
	during = time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
)

func fixture() (*fakeStore, *Service, uuid.UUID) {
	store := newFakeStore()
	slotID := uuid.New()
	store.slots[slotID] = &academicsModel.RosterSlotModel{
		RosterSlotID:           slotID,
		RosterSlotClassID:      classID,
		RosterSlotTeacherID:    teacherID,
		RosterSlotDayOfWeek:    int(time.Monday),
		RosterSlotPeriodNumber: 2,
		RosterSlotStartTime:    "09:00",
		RosterSlotEndTime:      "10:00",
		RosterSlotIsActive:     true,
	}
	svc := New(store, schedule.DefaultRules()).WithClock(func() time.Time { return after })
	return store, svc, slotID
}

func input(slotID uuid.UUID) RequestInput {
	return RequestInput{
		RosterSlotID: slotID,
		ClassID:      classID,
		TeacherID:    teacherID,
		PeriodDate:   monday,
		Reason:       model.ReasonForgot,
	}
}

func TestRequestPermissionMissedPeriod(t *testing.T) {
	_, svc, slotID := fixture()

	req, err := svc.RequestPermission(context.Background(), input(slotID))
	require.NoError(t, err)
	assert.Equal(t, schedule.RequestPending, req.PermissionRequestStatus)
	assert.Equal(t, monday, req.PermissionRequestPeriodDate)

	// occurrence now resolves to PENDING_REQUEST
	res := schedule.Resolve(schedule.AfterWindow, false, req.Info(), after)
	assert.Equal(t, schedule.StatusPendingRequest, res.Status)
}

func TestRequestPermissionNotMissed(t *testing.T) {
	store, svc, slotID := fixture()

	t.Run("window still open", func(t *testing.T) {
		svc.WithClock(func() time.Time { return during })
		_, err := svc.RequestPermission(context.Background(), input(slotID))
		require.Error(t, err)
		assert.Equal(t, errs.KindState, errs.KindOf(err))
	})

	t.Run("already recorded", func(t *testing.T) {
		svc.WithClock(func() time.Time { return after })
		store.records[occKey(slotID, monday)] = true
		_, err := svc.RequestPermission(context.Background(), input(slotID))
		require.Error(t, err)
		assert.Equal(t, errs.KindState, errs.KindOf(err))
	})
}

func TestRequestPermissionValidation(t *testing.T) {
	_, svc, slotID := fixture()

	in := input(slotID)
	in.Reason = model.ReasonOther
	_, err := svc.RequestPermission(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	notes := "substitute teacher day"
	in.ReasonNotes = &notes
	_, err = svc.RequestPermission(context.Background(), in)
	assert.NoError(t, err)
}

func TestRequestPermissionWrongTeacher(t *testing.T) {
	_, svc, slotID := fixture()

	in := input(slotID)
	in.TeacherID = uuid.New()
	_, err := svc.RequestPermission(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthorization, errs.KindOf(err))
}

func TestRequestPermissionDuplicate(t *testing.T) {
	_, svc, slotID := fixture()

	_, err := svc.RequestPermission(context.Background(), input(slotID))
	require.NoError(t, err)

	_, err = svc.RequestPermission(context.Background(), input(slotID))
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestApproveRequest(t *testing.T) {
	_, svc, slotID := fixture()

	req, err := svc.RequestPermission(context.Background(), input(slotID))
	require.NoError(t, err)

	approved, err := svc.ApproveRequest(context.Background(), req.PermissionRequestID, adminID)
	require.NoError(t, err)
	assert.Equal(t, schedule.RequestApproved, approved.PermissionRequestStatus)
	require.NotNil(t, approved.PermissionRequestResolvedBy)
	assert.Equal(t, adminID, *approved.PermissionRequestResolvedBy)
	assert.NotNil(t, approved.PermissionRequestResolvedAt)

	// recording re-opens
	res := schedule.Resolve(schedule.AfterWindow, false, approved.Info(), after)
	assert.Equal(t, schedule.StatusPermissionGranted, res.Status)
	assert.True(t, res.CanRecord())

	// approval is terminal
	_, err = svc.DenyRequest(context.Background(), req.PermissionRequestID, adminID)
	require.Error(t, err)
	assert.Equal(t, errs.KindState, errs.KindOf(err))
}

func TestDenyRequestIsTerminal(t *testing.T) {
	_, svc, slotID := fixture()

	req, err := svc.RequestPermission(context.Background(), input(slotID))
	require.NoError(t, err)

	denied, err := svc.DenyRequest(context.Background(), req.PermissionRequestID, adminID)
	require.NoError(t, err)
	assert.Equal(t, schedule.RequestDenied, denied.PermissionRequestStatus)

	// denial blocks recording permanently
	res := schedule.Resolve(schedule.AfterWindow, false, denied.Info(), after)
	assert.Equal(t, schedule.StatusPermissionDenied, res.Status)
	assert.False(t, res.CanRecord())

	// and blocks any new request for the occurrence
	_, err = svc.RequestPermission(context.Background(), input(slotID))
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	// no path back to pending
	_, err = svc.ApproveRequest(context.Background(), req.PermissionRequestID, adminID)
	require.Error(t, err)
	assert.Equal(t, errs.KindState, errs.KindOf(err))
}

func TestResolveUnknownRequest(t *testing.T) {
	_, svc, _ := fixture()

	_, err := svc.ApproveRequest(context.Background(), uuid.New(), adminID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestListPendingRequestsExpiryAnnotation(t *testing.T) {
	_, svc, slotID := fixture()

	req, err := svc.RequestPermission(context.Background(), input(slotID))
	require.NoError(t, err)

	// fresh: not expired
	rows, err := svc.ListPendingRequests(context.Background(), PendingFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsExpired)

	// three days later: annotated expired, still pending, still approvable
	later := after.Add(3 * 24 * time.Hour)
	svc.WithClock(func() time.Time { return later })

	rows, err = svc.ListPendingRequests(context.Background(), PendingFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsExpired)
	assert.Equal(t, schedule.RequestPending, rows[0].PermissionRequestStatus)

	approved, err := svc.ApproveRequest(context.Background(), req.PermissionRequestID, adminID)
	require.NoError(t, err)
	assert.Equal(t, schedule.RequestApproved, approved.PermissionRequestStatus)
}
