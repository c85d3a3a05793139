package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

// AbsentStudent is one entry of the session's JSONB absent list.
type AbsentStudent struct {
	StudentID uuid.UUID `json:"student_id"`
	Notes     *string   `json:"notes,omitempty"`
}

// SelfStudySessionModel is one row per (class, prep period, date). A session
// is created all-present with the class headcount snapshotted, then mutated
// by submit, which recomputes the counts from the absent list. Resubmission
// overwrites: last write wins, with submitted_at keeping the first stamp.
type SelfStudySessionModel struct {
	SelfStudySessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:self_study_session_id" json:"self_study_session_id"`

	SelfStudySessionClassID uuid.UUID          `gorm:"type:uuid;not null;index;column:self_study_session_class_id" json:"self_study_session_class_id"`
	SelfStudySessionPeriod  schedule.PeriodKey `gorm:"type:varchar(32);not null;column:self_study_session_period" json:"self_study_session_period"`
	SelfStudySessionDate    time.Time          `gorm:"type:date;not null;column:self_study_session_date" json:"self_study_session_date"`

	SelfStudySessionTotalStudents   int `gorm:"not null;column:self_study_session_total_students" json:"self_study_session_total_students"`
	SelfStudySessionPresentStudents int `gorm:"not null;column:self_study_session_present_students" json:"self_study_session_present_students"`

	// JSONB list of AbsentStudent.
	SelfStudySessionAbsentStudents datatypes.JSON `gorm:"type:jsonb;not null;default:'[]';column:self_study_session_absent_students" json:"self_study_session_absent_students"`

	SelfStudySessionNotes *string `gorm:"type:text;column:self_study_session_notes" json:"self_study_session_notes,omitempty"`

	SelfStudySessionCreatedBy   uuid.UUID  `gorm:"type:uuid;not null;column:self_study_session_created_by" json:"self_study_session_created_by"`
	SelfStudySessionSubmittedAt *time.Time `gorm:"type:timestamptz;column:self_study_session_submitted_at" json:"self_study_session_submitted_at,omitempty"`

	SelfStudySessionCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:self_study_session_created_at" json:"self_study_session_created_at"`
	SelfStudySessionUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:self_study_session_updated_at" json:"self_study_session_updated_at"`
}

func (SelfStudySessionModel) TableName() string { return "self_study_sessions" }

// ApplySubmission stores the absent list and recomputes the present count,
// keeping present + |absent| == total. The first submission stamps
// submitted_at; later ones overwrite the lists and counts.
func (s *SelfStudySessionModel) ApplySubmission(absent []AbsentStudent, now time.Time) error {
	if len(absent) > s.SelfStudySessionTotalStudents {
		return errs.Validation("absent list (%d) exceeds session total of %d students",
			len(absent), s.SelfStudySessionTotalStudents)
	}

	seen := make(map[uuid.UUID]bool, len(absent))
	for _, a := range absent {
		if seen[a.StudentID] {
			return errs.Validation("student %s listed absent more than once", a.StudentID)
		}
		seen[a.StudentID] = true
	}

	raw, err := json.Marshal(absent)
	if err != nil {
		return err
	}

	s.SelfStudySessionAbsentStudents = raw
	s.SelfStudySessionPresentStudents = s.SelfStudySessionTotalStudents - len(absent)
	if s.SelfStudySessionSubmittedAt == nil {
		s.SelfStudySessionSubmittedAt = &now
	}
	s.SelfStudySessionUpdatedAt = now
	return nil
}

// AbsentList decodes the stored JSONB absent list.
func (s *SelfStudySessionModel) AbsentList() ([]AbsentStudent, error) {
	var out []AbsentStudent
	if len(s.SelfStudySessionAbsentStudents) == 0 {
		return out, nil
	}
	err := json.Unmarshal(s.SelfStudySessionAbsentStudents, &out)
	return out, err
}
