package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EntryStatus string

const (
	EntryPresent EntryStatus = "present"
	EntryAbsent  EntryStatus = "absent"
	EntrySick    EntryStatus = "sick"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case EntryPresent, EntryAbsent, EntrySick:
		return true
	default:
		return false
	}
}

// StudentEntry is one per-student line inside a record's JSONB payload.
type StudentEntry struct {
	StudentID uuid.UUID   `json:"student_id"`
	Status    EntryStatus `json:"status"`
	Notes     *string     `json:"notes,omitempty"`
}

// AttendanceRecordModel is one row per (roster slot, calendar date). The
// unique index on that pair makes recording create-once; a duplicate insert
// surfaces as a 23505 and is reported as a conflict.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordRosterSlotID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_record_roster_slot_id" json:"attendance_record_roster_slot_id"`
	AttendanceRecordDate         time.Time `gorm:"type:date;not null;column:attendance_record_date" json:"attendance_record_date"`

	AttendanceRecordTeacherID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_teacher_id" json:"attendance_record_teacher_id"`

	// JSONB list of StudentEntry.
	AttendanceRecordEntries datatypes.JSON `gorm:"type:jsonb;not null;column:attendance_record_entries" json:"attendance_record_entries"`

	AttendanceRecordPresentCount int `gorm:"not null;default:0;column:attendance_record_present_count" json:"attendance_record_present_count"`
	AttendanceRecordAbsentCount  int `gorm:"not null;default:0;column:attendance_record_absent_count" json:"attendance_record_absent_count"`
	AttendanceRecordSickCount    int `gorm:"not null;default:0;column:attendance_record_sick_count" json:"attendance_record_sick_count"`

	AttendanceRecordCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:attendance_record_created_at" json:"attendance_record_created_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
