// Package service implements the late-recording permission workflow:
// a teacher whose period resolved to MISSED asks for permission, an admin
// approves or denies, and both outcomes are terminal. The store is an
// interface so the workflow rules are testable without a database.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

type Store interface {
	SlotByID(ctx context.Context, id uuid.UUID) (*academicsModel.RosterSlotModel, error)
	RecordExists(ctx context.Context, rosterSlotID uuid.UUID, date time.Time) (bool, error)
	RequestFor(ctx context.Context, rosterSlotID uuid.UUID, date time.Time) (*model.PermissionRequestModel, error)
	RequestByID(ctx context.Context, id uuid.UUID) (*model.PermissionRequestModel, error)
	CreateRequest(ctx context.Context, req *model.PermissionRequestModel) error
	SaveRequest(ctx context.Context, req *model.PermissionRequestModel) error
	PendingRequests(ctx context.Context, f PendingFilter) ([]model.PermissionRequestModel, error)
}

// PendingFilter narrows the admin's pending-request list; every field is
// optional and applied independently.
type PendingFilter struct {
	TeacherID *uuid.UUID
	ClassID   *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

type Service struct {
	store Store
	rules schedule.WeeklyRules
	now   func() time.Time
}

func New(store Store, rules schedule.WeeklyRules) *Service {
	return &Service{store: store, rules: rules, now: time.Now}
}

// WithClock overrides the clock; tests pin it.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type RequestInput struct {
	RosterSlotID uuid.UUID
	ClassID      uuid.UUID
	TeacherID    uuid.UUID
	PeriodDate   time.Time
	Reason       model.ReasonCategory
	ReasonNotes  *string
}

// RequestPermission creates a pending request for a missed occurrence.
// Preconditions, in order: caller is the slot's teacher; no request exists
// yet for the occurrence (any status blocks, denial permanently); the
// occurrence currently resolves to MISSED.
func (s *Service) RequestPermission(ctx context.Context, in RequestInput) (*model.PermissionRequestModel, error) {
	if !in.Reason.Valid() {
		return nil, errs.Validation("unknown reason category %q", in.Reason)
	}
	if in.Reason == model.ReasonOther && (in.ReasonNotes == nil || strings.TrimSpace(*in.ReasonNotes) == "") {
		return nil, errs.Validation("reason_notes is required when reason is \"other\"")
	}

	slot, err := s.store.SlotByID(ctx, in.RosterSlotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, errs.NotFound("roster slot not found")
	}
	if slot.RosterSlotTeacherID != in.TeacherID {
		return nil, errs.Authorization("only the assigned teacher may request permission for this period")
	}

	existing, err := s.store.RequestFor(ctx, in.RosterSlotID, in.PeriodDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflict("a permission request already exists for this occurrence (status: %s)", existing.PermissionRequestStatus)
	}

	hasRecord, err := s.store.RecordExists(ctx, in.RosterSlotID, in.PeriodDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	window, err := schedule.ClassifySlot(slot.RosterSlotDayOfWeek, slot.RosterSlotStartTime, slot.RosterSlotEndTime, in.PeriodDate, now)
	if err != nil {
		return nil, err
	}
	res := schedule.Resolve(window, hasRecord, nil, now)
	if res.Status != schedule.StatusMissed {
		return nil, errs.State("permission may only be requested for a missed period (current status: %s)", res.Status)
	}

	req := &model.PermissionRequestModel{
		PermissionRequestRosterSlotID: in.RosterSlotID,
		PermissionRequestClassID:      in.ClassID,
		PermissionRequestTeacherID:    in.TeacherID,
		PermissionRequestPeriodDate:   in.PeriodDate,
		PermissionRequestReason:       in.Reason,
		PermissionRequestReasonNotes:  in.ReasonNotes,
		PermissionRequestStatus:       schedule.RequestPending,
		PermissionRequestCreatedAt:    now,
		PermissionRequestUpdatedAt:    now,
	}
	if err := s.store.CreateRequest(ctx, req); err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("a permission request already exists for this occurrence")
		}
		return nil, err
	}
	return req, nil
}

// ApproveRequest transitions pending -> approved; the occurrence then
// resolves to PERMISSION_GRANTED and recording re-opens.
func (s *Service) ApproveRequest(ctx context.Context, requestID, adminID uuid.UUID) (*model.PermissionRequestModel, error) {
	return s.resolve(ctx, requestID, adminID, schedule.RequestApproved)
}

// DenyRequest transitions pending -> denied; recording stays blocked for the
// occurrence forever.
func (s *Service) DenyRequest(ctx context.Context, requestID, adminID uuid.UUID) (*model.PermissionRequestModel, error) {
	return s.resolve(ctx, requestID, adminID, schedule.RequestDenied)
}

func (s *Service) resolve(ctx context.Context, requestID, adminID uuid.UUID, to schedule.RequestStatus) (*model.PermissionRequestModel, error) {
	req, err := s.store.RequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errs.NotFound("permission request not found")
	}
	// An aged pending request is flagged expired in list views but remains
	// resolvable; expiry is display-only.
	if req.PermissionRequestStatus != schedule.RequestPending {
		return nil, errs.State("request is already %s", req.PermissionRequestStatus)
	}

	now := s.now()
	req.PermissionRequestStatus = to
	req.PermissionRequestResolvedBy = &adminID
	req.PermissionRequestResolvedAt = &now
	req.PermissionRequestUpdatedAt = now

	if err := s.store.SaveRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// PendingRequest pairs a request with its derived expiry annotation.
type PendingRequest struct {
	model.PermissionRequestModel
	IsExpired bool `json:"is_expired"`
}

// ListPendingRequests returns pending requests annotated with is_expired.
func (s *Service) ListPendingRequests(ctx context.Context, f PendingFilter) ([]PendingRequest, error) {
	rows, err := s.store.PendingRequests(ctx, f)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]PendingRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, PendingRequest{PermissionRequestModel: r, IsExpired: r.IsExpired(now)})
	}
	return out, nil
}
