package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`
	ClassName string    `gorm:"type:varchar(80);not null;uniqueIndex;column:class_name" json:"class_name"`
	ClassGradeLevel *int `gorm:"column:class_grade_level" json:"class_grade_level,omitempty"`

	ClassHomeroomTeacherID *uuid.UUID `gorm:"type:uuid;column:class_homeroom_teacher_id" json:"class_homeroom_teacher_id,omitempty"`

	ClassIsActive bool `gorm:"not null;default:true;column:class_is_active" json:"class_is_active"`

	ClassCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

type StudentModel struct {
	StudentID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentClassID uuid.UUID `gorm:"type:uuid;not null;index;column:student_class_id" json:"student_class_id"`

	StudentName     string `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentNumber   string `gorm:"type:varchar(32);not null;uniqueIndex;column:student_number" json:"student_number"`
	StudentIsActive bool   `gorm:"not null;default:true;column:student_is_active" json:"student_is_active"`

	StudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

type CourseModel struct {
	CourseID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`
	CourseName string    `gorm:"type:varchar(120);not null;column:course_name" json:"course_name"`
	CourseCode string    `gorm:"type:varchar(32);not null;uniqueIndex;column:course_code" json:"course_code"`

	CourseCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:course_created_at" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:course_updated_at" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
