package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Status is the derived state of one attendance occurrence.
type Status string

const (
	StatusCompleted         Status = "COMPLETED"
	StatusPending           Status = "PENDING"
	StatusYetToStart        Status = "YET_TO_START"
	StatusMissed            Status = "MISSED"
	StatusPendingRequest    Status = "PENDING_REQUEST"
	StatusExpired           Status = "EXPIRED"
	StatusPermissionGranted Status = "PERMISSION_GRANTED"
	StatusPermissionDenied  Status = "PERMISSION_DENIED"
)

// Action is something the caller may do with an occurrence.
type Action string

const (
	ActionView              Action = "view"
	ActionRecord            Action = "record"
	ActionRequestPermission Action = "request_permission"
)

// RequestStatus mirrors the stored permission-request lifecycle.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

// PermissionRequestTTL is how long a pending request stays fresh before it
// is annotated as expired. Expiry is never a stored transition.
const PermissionRequestTTL = 48 * time.Hour

// PermissionInfo is the slice of a permission request the resolver needs.
type PermissionInfo struct {
	Status      RequestStatus
	RequestedAt time.Time
}

// Expired reports whether a pending request has aged past the TTL.
func (p PermissionInfo) Expired(now time.Time) bool {
	return p.Status == RequestPending && now.Sub(p.RequestedAt) >= PermissionRequestTTL
}

// Resolution is a status plus the explicit actions it allows.
type Resolution struct {
	Status  Status
	Actions []Action
}

func (r Resolution) Allows(a Action) bool {
	for _, x := range r.Actions {
		if x == a {
			return true
		}
	}
	return false
}

func (r Resolution) CanRecord() bool { return r.Allows(ActionRecord) }
func (r Resolution) CanView() bool   { return r.Allows(ActionView) }

// Resolve derives the occurrence status. First match wins:
//
//  1. a record exists                                -> COMPLETED {view}
//  2. in window                                      -> PENDING {record}
//  3. before window (or not scheduled on this date)  -> YET_TO_START {}
//  4. after window, no request                       -> MISSED {request_permission}
//  5. after window, pending request, fresh           -> PENDING_REQUEST {}
//  6. after window, pending request, aged >= TTL     -> EXPIRED {}
//  7. request approved                               -> PERMISSION_GRANTED {record}
//  8. request denied                                 -> PERMISSION_DENIED {}
//
// Pure function of its arguments; repeated calls with the same inputs yield
// the same resolution.
func Resolve(w Window, hasRecord bool, req *PermissionInfo, now time.Time) Resolution {
	if hasRecord {
		return Resolution{Status: StatusCompleted, Actions: []Action{ActionView}}
	}

	if req != nil {
		switch req.Status {
		case RequestApproved:
			return Resolution{Status: StatusPermissionGranted, Actions: []Action{ActionRecord}}
		case RequestDenied:
			return Resolution{Status: StatusPermissionDenied}
		}
	}

	switch w {
	case InWindow:
		return Resolution{Status: StatusPending, Actions: []Action{ActionRecord}}
	case BeforeWindow, NotScheduledToday:
		return Resolution{Status: StatusYetToStart}
	}

	// after window
	if req == nil {
		return Resolution{Status: StatusMissed, Actions: []Action{ActionRequestPermission}}
	}
	if req.Expired(now) {
		return Resolution{Status: StatusExpired}
	}
	return Resolution{Status: StatusPendingRequest}
}

// DayOccurrence is one roster-slot occurrence prepared for resolution.
type DayOccurrence struct {
	RosterSlotID  uuid.UUID
	PeriodNumber  int
	ClassName     string
	CourseName    string
	Window        Window
	HasRecord     bool
	RecordedCount int
	Request       *PermissionInfo
}

// ScheduleItem is one resolved row of a teacher's day schedule.
type ScheduleItem struct {
	RosterID                uuid.UUID `json:"roster_id"`
	Period                  int       `json:"period"`
	ClassName               string    `json:"class_name"`
	CourseName              string    `json:"course_name"`
	Status                  Status    `json:"status"`
	RecordedAttendanceCount int       `json:"recorded_attendance_count"`
	CanRecord               bool      `json:"can_record"`
	CanView                 bool      `json:"can_view"`
}

// ScheduleSummary feeds the dashboard summary cards.
type ScheduleSummary struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Missed    int `json:"missed"`
}

// BuildDaySchedule resolves every occurrence of a teacher's day, ordered by
// period number.
func BuildDaySchedule(occs []DayOccurrence, now time.Time) ([]ScheduleItem, ScheduleSummary) {
	items := make([]ScheduleItem, 0, len(occs))
	var summary ScheduleSummary

	for _, o := range occs {
		res := Resolve(o.Window, o.HasRecord, o.Request, now)
		items = append(items, ScheduleItem{
			RosterID:                o.RosterSlotID,
			Period:                  o.PeriodNumber,
			ClassName:               o.ClassName,
			CourseName:              o.CourseName,
			Status:                  res.Status,
			RecordedAttendanceCount: o.RecordedCount,
			CanRecord:               res.CanRecord(),
			CanView:                 res.CanView(),
		})

		switch res.Status {
		case StatusCompleted:
			summary.Completed++
		case StatusPending:
			summary.Pending++
		case StatusMissed:
			summary.Missed++
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Period < items[j].Period })
	return items, summary
}
