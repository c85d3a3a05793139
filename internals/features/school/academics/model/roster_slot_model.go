package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RosterSlotModel is one scheduled (class, course, teacher, day-of-week,
// period) assignment from the active timetable. Immutable within a term;
// the attendance features only read it.
type RosterSlotModel struct {
	RosterSlotID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:roster_slot_id" json:"roster_slot_id"`

	RosterSlotClassID   uuid.UUID `gorm:"type:uuid;not null;index;column:roster_slot_class_id" json:"roster_slot_class_id"`
	RosterSlotCourseID  uuid.UUID `gorm:"type:uuid;not null;column:roster_slot_course_id" json:"roster_slot_course_id"`
	RosterSlotTeacherID uuid.UUID `gorm:"type:uuid;not null;index;column:roster_slot_teacher_id" json:"roster_slot_teacher_id"`

	// time.Weekday numbering: Sunday = 0.
	RosterSlotDayOfWeek    int `gorm:"not null;column:roster_slot_day_of_week" json:"roster_slot_day_of_week"`
	RosterSlotPeriodNumber int `gorm:"not null;column:roster_slot_period_number" json:"roster_slot_period_number"`

	// "HH:MM", half-open recording window within the day.
	RosterSlotStartTime string `gorm:"type:varchar(5);not null;column:roster_slot_start_time" json:"roster_slot_start_time"`
	RosterSlotEndTime   string `gorm:"type:varchar(5);not null;column:roster_slot_end_time" json:"roster_slot_end_time"`

	RosterSlotIsActive bool `gorm:"not null;default:true;column:roster_slot_is_active" json:"roster_slot_is_active"`

	RosterSlotCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:roster_slot_created_at" json:"roster_slot_created_at"`
	RosterSlotUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:roster_slot_updated_at" json:"roster_slot_updated_at"`
	RosterSlotDeletedAt gorm.DeletedAt `gorm:"column:roster_slot_deleted_at;index" json:"roster_slot_deleted_at,omitempty"`
}

func (RosterSlotModel) TableName() string { return "roster_slots" }
