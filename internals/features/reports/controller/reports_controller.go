package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	recModel "github.com/Tresorbana/school-sub000/internals/features/attendance/records/model"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
)

const dateLayout = "2006-01-02"

type ReportsController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReportsController(db *gorm.DB) *ReportsController {
	return &ReportsController{DB: db, Now: time.Now}
}

// GET /api/reports/class-attendance?class_id=&date_from=&date_to=
// Aggregates the per-student entry counts of every record the class's roster
// slots produced in the range.
func (ctl *ReportsController) ClassAttendanceSummary(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Query("class_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "class_id is required")
	}
	from, to, err := ctl.dateRange(c)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var slotIDs []uuid.UUID
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("roster_slots").
		Where("roster_slot_class_id = ? AND roster_slot_deleted_at IS NULL", classID).
		Pluck("roster_slot_id", &slotIDs).Error; err != nil {
		return helper.FromError(c, err)
	}

	summary := fiber.Map{
		"class_id":        classID,
		"date_from":       from.Format(dateLayout),
		"date_to":         to.Format(dateLayout),
		"records":         0,
		"present":         0,
		"absent":          0,
		"sick":            0,
		"attendance_rate": 0.0,
	}
	if len(slotIDs) == 0 {
		return helper.Success(c, "OK", summary)
	}

	var rows []recModel.AttendanceRecordModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("attendance_record_roster_slot_id IN ? AND attendance_record_date BETWEEN ? AND ?", slotIDs, from, to).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	var present, absent, sick int
	for _, r := range rows {
		present += r.AttendanceRecordPresentCount
		absent += r.AttendanceRecordAbsentCount
		sick += r.AttendanceRecordSickCount
	}
	total := present + absent + sick

	summary["records"] = len(rows)
	summary["present"] = present
	summary["absent"] = absent
	summary["sick"] = sick
	if total > 0 {
		summary["attendance_rate"] = float64(present) / float64(total)
	}

	return helper.Success(c, "OK", summary)
}

// GET /api/reports/teacher-compliance?teacher_id=&date_from=&date_to=
// Counts how many scheduled occurrences the teacher actually recorded.
// Occurrences are derived by walking the range's dates against the teacher's
// weekly roster, so the report never depends on stored status fields.
func (ctl *ReportsController) TeacherComplianceSummary(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Query("teacher_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "teacher_id is required")
	}
	from, to, err := ctl.dateRange(c)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var slots []academicsModel.RosterSlotModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("roster_slot_teacher_id = ? AND roster_slot_is_active", teacherID).
		Find(&slots).Error; err != nil {
		return helper.FromError(c, err)
	}

	slotsByDay := map[int][]uuid.UUID{}
	for _, s := range slots {
		slotsByDay[s.RosterSlotDayOfWeek] = append(slotsByDay[s.RosterSlotDayOfWeek], s.RosterSlotID)
	}

	scheduled := 0
	today := ctl.Now()
	for d := from; !d.After(to) && !d.After(today); d = d.AddDate(0, 0, 1) {
		scheduled += len(slotsByDay[int(d.Weekday())])
	}

	var recorded int64
	if len(slots) > 0 {
		slotIDs := make([]uuid.UUID, 0, len(slots))
		for _, s := range slots {
			slotIDs = append(slotIDs, s.RosterSlotID)
		}
		if err := ctl.DB.WithContext(c.UserContext()).
			Model(&recModel.AttendanceRecordModel{}).
			Where("attendance_record_roster_slot_id IN ? AND attendance_record_date BETWEEN ? AND ?", slotIDs, from, to).
			Count(&recorded).Error; err != nil {
			return helper.FromError(c, err)
		}
	}

	missed := scheduled - int(recorded)
	if missed < 0 {
		missed = 0
	}

	out := fiber.Map{
		"teacher_id": teacherID,
		"date_from":  from.Format(dateLayout),
		"date_to":    to.Format(dateLayout),
		"scheduled":  scheduled,
		"recorded":   recorded,
		"missed":     missed,
	}
	if scheduled > 0 {
		out["compliance_rate"] = float64(recorded) / float64(scheduled)
	} else {
		out["compliance_rate"] = 0.0
	}

	return helper.Success(c, "OK", out)
}

func (ctl *ReportsController) dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := ctl.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if v := c.Query("date_from"); v != "" {
		from, err = time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return from, to, fiber.NewError(fiber.StatusBadRequest, "date_from invalid format, expected YYYY-MM-DD")
		}
	}
	if v := c.Query("date_to"); v != "" {
		to, err = time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return from, to, fiber.NewError(fiber.StatusBadRequest, "date_to invalid format, expected YYYY-MM-DD")
		}
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.Local)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.Local)
	return from, to, nil
}
