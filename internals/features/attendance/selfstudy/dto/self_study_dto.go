package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/selfstudy/model"
)

type CreateSelfStudySessionDTO struct {
	ClassID        uuid.UUID `json:"class_id" validate:"required"`
	Period         *string   `json:"period" validate:"omitempty,oneof=morning_prep evening_prep saturday_extended_prep"`
	AttendanceDate *string   `json:"attendance_date" validate:"omitempty,datetime=2006-01-02"`
	Notes          *string   `json:"notes" validate:"omitempty,max=500"`
}

type AbsentStudentDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Notes     *string   `json:"notes" validate:"omitempty,max=500"`
}

type SubmitSelfStudyAttendanceDTO struct {
	AbsentStudents []AbsentStudentDTO `json:"absent_students" validate:"dive"`
}

func (in *SubmitSelfStudyAttendanceDTO) AbsentList() []model.AbsentStudent {
	out := make([]model.AbsentStudent, 0, len(in.AbsentStudents))
	for _, a := range in.AbsentStudents {
		out = append(out, model.AbsentStudent{StudentID: a.StudentID, Notes: a.Notes})
	}
	return out
}

type SelfStudySessionResponse struct {
	SelfStudySessionID uuid.UUID             `json:"self_study_session_id"`
	ClassID            uuid.UUID             `json:"class_id"`
	Period             string                `json:"period"`
	Date               string                `json:"date"`
	TotalStudents      int                   `json:"total_students"`
	PresentStudents    int                   `json:"present_students"`
	AbsentStudents     []model.AbsentStudent `json:"absent_students"`
	Notes              *string               `json:"notes,omitempty"`
	SubmittedAt        *time.Time            `json:"submitted_at,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

func ToResponse(m *model.SelfStudySessionModel) (SelfStudySessionResponse, error) {
	absent, err := m.AbsentList()
	if err != nil {
		return SelfStudySessionResponse{}, err
	}
	if absent == nil {
		absent = []model.AbsentStudent{}
	}
	return SelfStudySessionResponse{
		SelfStudySessionID: m.SelfStudySessionID,
		ClassID:            m.SelfStudySessionClassID,
		Period:             string(m.SelfStudySessionPeriod),
		Date:               m.SelfStudySessionDate.Format("2006-01-02"),
		TotalStudents:      m.SelfStudySessionTotalStudents,
		PresentStudents:    m.SelfStudySessionPresentStudents,
		AbsentStudents:     absent,
		Notes:              m.SelfStudySessionNotes,
		SubmittedAt:        m.SelfStudySessionSubmittedAt,
		CreatedAt:          m.SelfStudySessionCreatedAt,
	}, nil
}
