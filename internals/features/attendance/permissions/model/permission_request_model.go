package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
)

type ReasonCategory string

const (
	ReasonForgot         ReasonCategory = "forgot"
	ReasonTechnicalIssue ReasonCategory = "technical_issue"
	ReasonEmergency      ReasonCategory = "emergency"
	ReasonOther          ReasonCategory = "other"
)

func (r ReasonCategory) Valid() bool {
	switch r {
	case ReasonForgot, ReasonTechnicalIssue, ReasonEmergency, ReasonOther:
		return true
	default:
		return false
	}
}

// PermissionRequestModel is a teacher's request to record attendance for an
// occurrence whose window has closed. One row per (roster slot, period date),
// enforced by a unique index; pending -> approved|denied, both terminal.
// Expiry of a stale pending request is derived at read time, never stored.
type PermissionRequestModel struct {
	PermissionRequestID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:permission_request_id" json:"permission_request_id"`

	PermissionRequestRosterSlotID uuid.UUID `gorm:"type:uuid;not null;index;column:permission_request_roster_slot_id" json:"permission_request_roster_slot_id"`
	PermissionRequestClassID      uuid.UUID `gorm:"type:uuid;not null;column:permission_request_class_id" json:"permission_request_class_id"`
	PermissionRequestTeacherID    uuid.UUID `gorm:"type:uuid;not null;index;column:permission_request_teacher_id" json:"permission_request_teacher_id"`
	PermissionRequestPeriodDate   time.Time `gorm:"type:date;not null;column:permission_request_period_date" json:"permission_request_period_date"`

	PermissionRequestReason      ReasonCategory `gorm:"type:varchar(32);not null;column:permission_request_reason" json:"permission_request_reason"`
	PermissionRequestReasonNotes *string        `gorm:"type:text;column:permission_request_reason_notes" json:"permission_request_reason_notes,omitempty"`

	PermissionRequestStatus schedule.RequestStatus `gorm:"type:varchar(16);not null;default:'pending';column:permission_request_status" json:"permission_request_status"`

	PermissionRequestResolvedBy *uuid.UUID `gorm:"type:uuid;column:permission_request_resolved_by" json:"permission_request_resolved_by,omitempty"`
	PermissionRequestResolvedAt *time.Time `gorm:"type:timestamptz;column:permission_request_resolved_at" json:"permission_request_resolved_at,omitempty"`

	PermissionRequestCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:permission_request_created_at" json:"permission_request_created_at"`
	PermissionRequestUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:permission_request_updated_at" json:"permission_request_updated_at"`
}

func (PermissionRequestModel) TableName() string { return "permission_requests" }

// Info projects the row into the resolver's view of a request.
func (m *PermissionRequestModel) Info() *schedule.PermissionInfo {
	return &schedule.PermissionInfo{
		Status:      m.PermissionRequestStatus,
		RequestedAt: m.PermissionRequestCreatedAt,
	}
}

// IsExpired is the read-time display annotation for stale pending requests.
func (m *PermissionRequestModel) IsExpired(now time.Time) bool {
	return m.Info().Expired(now)
}
