package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	academicsDTO "github.com/Tresorbana/school-sub000/internals/features/school/academics/dto"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

type AcademicsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAcademicsController(db *gorm.DB) *AcademicsController {
	return &AcademicsController{DB: db, Validator: validator.New()}
}

// ==========================
// Classes
// ==========================

func (ctl *AcademicsController) CreateClass(c *fiber.Ctx) error {
	var in academicsDTO.CreateClassDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	class := academicsModel.ClassModel{
		ClassName:              in.Name,
		ClassGradeLevel:        in.GradeLevel,
		ClassHomeroomTeacherID: in.HomeroomTeacherID,
		ClassIsActive:          true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&class).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return helper.FromError(c, errs.Conflict("a class with this name already exists"))
		}
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Class created", class)
}

func (ctl *AcademicsController) ListClasses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&academicsModel.ClassModel{})
	if c.Query("active") == "true" {
		q = q.Where("class_is_active")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}

	var classes []academicsModel.ClassModel
	if err := q.Order("class_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&classes).Error; err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, "OK", fiber.Map{
		"classes":    classes,
		"pagination": helper.BuildPagination(paging, total, len(classes)),
	})
}

// ==========================
// Students
// ==========================

func (ctl *AcademicsController) CreateStudent(c *fiber.Ctx) error {
	var in academicsDTO.CreateStudentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&academicsModel.ClassModel{}).
		Where("class_id = ?", in.ClassID).
		Count(&count).Error; err != nil {
		return helper.FromError(c, err)
	}
	if count == 0 {
		return helper.FromError(c, errs.NotFound("class not found"))
	}

	student := academicsModel.StudentModel{
		StudentClassID:  in.ClassID,
		StudentName:     in.Name,
		StudentNumber:   in.Number,
		StudentIsActive: true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&student).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return helper.FromError(c, errs.Conflict("a student with this number already exists"))
		}
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student created", student)
}

func (ctl *AcademicsController) ListStudents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&academicsModel.StudentModel{})
	if raw := c.Query("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		q = q.Where("student_class_id = ?", classID)
	}
	if c.Query("active") == "true" {
		q = q.Where("student_is_active")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}

	var students []academicsModel.StudentModel
	if err := q.Order("student_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&students).Error; err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, "OK", fiber.Map{
		"students":   students,
		"pagination": helper.BuildPagination(paging, total, len(students)),
	})
}

// ==========================
// Courses
// ==========================

func (ctl *AcademicsController) CreateCourse(c *fiber.Ctx) error {
	var in academicsDTO.CreateCourseDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	course := academicsModel.CourseModel{
		CourseName: in.Name,
		CourseCode: in.Code,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&course).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return helper.FromError(c, errs.Conflict("a course with this code already exists"))
		}
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course created", course)
}

func (ctl *AcademicsController) ListCourses(c *fiber.Ctx) error {
	var courses []academicsModel.CourseModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("course_code ASC").
		Find(&courses).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", courses)
}

// ==========================
// Roster slots
// ==========================

func (ctl *AcademicsController) CreateRosterSlot(c *fiber.Ctx) error {
	var in academicsDTO.CreateRosterSlotDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	start, err := schedule.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return helper.FromError(c, errs.Validation(err.Error()))
	}
	end, err := schedule.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return helper.FromError(c, errs.Validation(err.Error()))
	}
	if end.Hour < start.Hour || (end.Hour == start.Hour && end.Minute <= start.Minute) {
		return helper.FromError(c, errs.Validation(
			fmt.Sprintf("end_time %s must be after start_time %s", end, start)))
	}

	slot := academicsModel.RosterSlotModel{
		RosterSlotClassID:      in.ClassID,
		RosterSlotCourseID:     in.CourseID,
		RosterSlotTeacherID:    in.TeacherID,
		RosterSlotDayOfWeek:    in.DayOfWeek,
		RosterSlotPeriodNumber: in.PeriodNumber,
		RosterSlotStartTime:    start.String(),
		RosterSlotEndTime:      end.String(),
		RosterSlotIsActive:     true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&slot).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Roster slot created", slot)
}

func (ctl *AcademicsController) ListRosterSlots(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&academicsModel.RosterSlotModel{})

	if raw := c.Query("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		q = q.Where("roster_slot_class_id = ?", classID)
	}
	if raw := c.Query("teacher_id"); raw != "" {
		teacherID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid teacher_id")
		}
		q = q.Where("roster_slot_teacher_id = ?", teacherID)
	}
	if raw := c.Query("day_of_week"); raw != "" {
		q = q.Where("roster_slot_day_of_week = ?", raw)
	}

	var slots []academicsModel.RosterSlotModel
	if err := q.Where("roster_slot_is_active").
		Order("roster_slot_day_of_week ASC, roster_slot_period_number ASC").
		Find(&slots).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", slots)
}

func (ctl *AcademicsController) DeactivateRosterSlot(c *fiber.Ctx) error {
	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid roster slot id")
	}

	var slot academicsModel.RosterSlotModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("roster_slot_id = ?", slotID).
		First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("roster slot not found"))
		}
		return helper.FromError(c, err)
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&slot).
		Update("roster_slot_is_active", false).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Roster slot deactivated", fiber.Map{
		"roster_slot_id": slot.RosterSlotID,
	})
}
