package dto

import "github.com/google/uuid"

type CreateClassDTO struct {
	Name              string     `json:"name" validate:"required,max=80"`
	GradeLevel        *int       `json:"grade_level" validate:"omitempty,min=1,max=13"`
	HomeroomTeacherID *uuid.UUID `json:"homeroom_teacher_id" validate:"omitempty"`
}

type CreateStudentDTO struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
	Name    string    `json:"name" validate:"required,max=120"`
	Number  string    `json:"number" validate:"required,max=32"`
}

type CreateCourseDTO struct {
	Name string `json:"name" validate:"required,max=120"`
	Code string `json:"code" validate:"required,max=32"`
}

type CreateRosterSlotDTO struct {
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`

	// time.Weekday numbering: Sunday = 0.
	DayOfWeek    int `json:"day_of_week" validate:"min=0,max=6"`
	PeriodNumber int `json:"period_number" validate:"required,min=1,max=12"`

	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}
