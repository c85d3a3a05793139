package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	permModel "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
	recModel "github.com/Tresorbana/school-sub000/internals/features/attendance/records/model"
	"github.com/Tresorbana/school-sub000/internals/constants"
	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
)

// GET /api/attendance/schedule-status?teacher_id=&date=
// Resolves every roster slot of the teacher's day into a status row plus the
// summary counts for the dashboard cards. Status is re-derived from the
// current clock and fresh rows on every call; nothing is cached.
func (ctl *AttendanceRecordController) GetScheduleStatus(c *fiber.Ctx) error {
	teacherID, err := ctl.scheduleTeacher(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	now := ctl.Now()
	date := now
	if v := c.Query("date"); v != "" {
		date, err = time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date invalid format, expected YYYY-MM-DD")
		}
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)

	var slots []struct {
		academicsModel.RosterSlotModel
		ClassName  string `gorm:"column:class_name"`
		CourseName string `gorm:"column:course_name"`
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("roster_slots").
		Select("roster_slots.*, classes.class_name, courses.course_name").
		Joins("JOIN classes ON classes.class_id = roster_slots.roster_slot_class_id").
		Joins("JOIN courses ON courses.course_id = roster_slots.roster_slot_course_id").
		Where("roster_slot_teacher_id = ? AND roster_slot_day_of_week = ? AND roster_slot_is_active AND roster_slot_deleted_at IS NULL",
			teacherID, int(date.Weekday())).
		Find(&slots).Error; err != nil {
		return helper.FromError(c, err)
	}

	slotIDs := make([]uuid.UUID, 0, len(slots))
	for _, s := range slots {
		slotIDs = append(slotIDs, s.RosterSlotID)
	}

	records := map[uuid.UUID]*recModel.AttendanceRecordModel{}
	requests := map[uuid.UUID]*permModel.PermissionRequestModel{}
	if len(slotIDs) > 0 {
		var recs []recModel.AttendanceRecordModel
		if err := ctl.DB.WithContext(c.UserContext()).
			Where("attendance_record_roster_slot_id IN ? AND attendance_record_date = ?", slotIDs, date).
			Find(&recs).Error; err != nil {
			return helper.FromError(c, err)
		}
		for i := range recs {
			records[recs[i].AttendanceRecordRosterSlotID] = &recs[i]
		}

		var reqs []permModel.PermissionRequestModel
		if err := ctl.DB.WithContext(c.UserContext()).
			Where("permission_request_roster_slot_id IN ? AND permission_request_period_date = ?", slotIDs, date).
			Find(&reqs).Error; err != nil {
			return helper.FromError(c, err)
		}
		for i := range reqs {
			requests[reqs[i].PermissionRequestRosterSlotID] = &reqs[i]
		}
	}

	occs := make([]schedule.DayOccurrence, 0, len(slots))
	for _, s := range slots {
		window, err := schedule.ClassifySlot(s.RosterSlotDayOfWeek, s.RosterSlotStartTime, s.RosterSlotEndTime, date, now)
		if err != nil {
			return helper.FromError(c, err)
		}

		occ := schedule.DayOccurrence{
			RosterSlotID: s.RosterSlotID,
			PeriodNumber: s.RosterSlotPeriodNumber,
			ClassName:    s.ClassName,
			CourseName:   s.CourseName,
			Window:       window,
		}
		if rec, ok := records[s.RosterSlotID]; ok {
			occ.HasRecord = true
			occ.RecordedCount = rec.AttendanceRecordPresentCount + rec.AttendanceRecordAbsentCount + rec.AttendanceRecordSickCount
		}
		if req, ok := requests[s.RosterSlotID]; ok {
			occ.Request = req.Info()
		}
		occs = append(occs, occ)
	}

	items, summary := schedule.BuildDaySchedule(occs, now)

	return helper.Success(c, "OK", fiber.Map{
		"date":     date.Format(dateLayout),
		"schedule": items,
		"summary":  summary,
	})
}

// scheduleTeacher resolves which teacher's schedule is requested: admins and
// discipline staff may pass ?teacher_id=, teachers always get their own.
func (ctl *AttendanceRecordController) scheduleTeacher(c *fiber.Ctx) (uuid.UUID, error) {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return uuid.Nil, err
	}
	role := helper.GetUserRole(c)
	if v := c.Query("teacher_id"); v != "" && role != constants.RoleTeacher {
		return uuid.Parse(v)
	}
	return callerID, nil
}
