package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
)

type CreatePermissionRequestDTO struct {
	RosterID    uuid.UUID `json:"roster_id" validate:"required"`
	ClassID     uuid.UUID `json:"class_id" validate:"required"`
	PeriodDate  string    `json:"period_date" validate:"required,datetime=2006-01-02"`
	Reason      string    `json:"reason" validate:"required,oneof=forgot technical_issue emergency other"`
	ReasonNotes *string   `json:"reason_notes" validate:"omitempty,max=500"`
}

type ResolvePermissionRequestDTO struct {
	RequestID uuid.UUID `json:"request_id" validate:"required"`
}

type PermissionRequestResponse struct {
	PermissionRequestID uuid.UUID  `json:"permission_request_id"`
	RosterID            uuid.UUID  `json:"roster_id"`
	ClassID             uuid.UUID  `json:"class_id"`
	TeacherID           uuid.UUID  `json:"teacher_id"`
	PeriodDate          string     `json:"period_date"`
	Reason              string     `json:"reason"`
	ReasonNotes         *string    `json:"reason_notes,omitempty"`
	Status              string     `json:"status"`
	IsExpired           bool       `json:"is_expired"`
	ResolvedBy          *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func ToResponse(m *model.PermissionRequestModel, now time.Time) PermissionRequestResponse {
	return PermissionRequestResponse{
		PermissionRequestID: m.PermissionRequestID,
		RosterID:            m.PermissionRequestRosterSlotID,
		ClassID:             m.PermissionRequestClassID,
		TeacherID:           m.PermissionRequestTeacherID,
		PeriodDate:          m.PermissionRequestPeriodDate.Format("2006-01-02"),
		Reason:              string(m.PermissionRequestReason),
		ReasonNotes:         m.PermissionRequestReasonNotes,
		Status:              string(m.PermissionRequestStatus),
		IsExpired:           m.IsExpired(now),
		ResolvedBy:          m.PermissionRequestResolvedBy,
		ResolvedAt:          m.PermissionRequestResolvedAt,
		CreatedAt:           m.PermissionRequestCreatedAt,
	}
}
