package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/records/model"
)

type StudentEntryDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent sick"`
	Notes     *string   `json:"notes" validate:"omitempty,max=500"`
}

type CreateAttendanceRecordDTO struct {
	RosterID          uuid.UUID         `json:"roster_id" validate:"required"`
	Date              string            `json:"date" validate:"required,datetime=2006-01-02"`
	AttendanceRecords []StudentEntryDTO `json:"attendance_records" validate:"required,min=1,dive"`
}

func (in *CreateAttendanceRecordDTO) Entries() []model.StudentEntry {
	out := make([]model.StudentEntry, 0, len(in.AttendanceRecords))
	for _, e := range in.AttendanceRecords {
		out = append(out, model.StudentEntry{
			StudentID: e.StudentID,
			Status:    model.EntryStatus(e.Status),
			Notes:     e.Notes,
		})
	}
	return out
}

// CountEntries tallies the per-status counts stored on the record row.
func CountEntries(entries []model.StudentEntry) (present, absent, sick int) {
	for _, e := range entries {
		switch e.Status {
		case model.EntryPresent:
			present++
		case model.EntryAbsent:
			absent++
		case model.EntrySick:
			sick++
		}
	}
	return
}

type AttendanceRecordResponse struct {
	AttendanceRecordID uuid.UUID `json:"attendance_record_id"`
	RosterID           uuid.UUID `json:"roster_id"`
	Date               string    `json:"date"`
	TeacherID          uuid.UUID `json:"teacher_id"`
	PresentCount       int       `json:"present_count"`
	AbsentCount        int       `json:"absent_count"`
	SickCount          int       `json:"sick_count"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToResponse(m *model.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID: m.AttendanceRecordID,
		RosterID:           m.AttendanceRecordRosterSlotID,
		Date:               m.AttendanceRecordDate.Format("2006-01-02"),
		TeacherID:          m.AttendanceRecordTeacherID,
		PresentCount:       m.AttendanceRecordPresentCount,
		AbsentCount:        m.AttendanceRecordAbsentCount,
		SickCount:          m.AttendanceRecordSickCount,
		CreatedAt:          m.AttendanceRecordCreatedAt,
	}
}
