package controller

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/configs"
	permModel "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
	recDTO "github.com/Tresorbana/school-sub000/internals/features/attendance/records/dto"
	recModel "github.com/Tresorbana/school-sub000/internals/features/attendance/records/model"
	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	auditSvc "github.com/Tresorbana/school-sub000/internals/features/audit/service"
	academicsModel "github.com/Tresorbana/school-sub000/internals/features/school/academics/model"
	"github.com/Tresorbana/school-sub000/internals/constants"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

const dateLayout = "2006-01-02"

type AttendanceRecordController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Rules     schedule.WeeklyRules
	Audit     *auditSvc.Service
	Now       func() time.Time
}

func NewAttendanceRecordController(db *gorm.DB) *AttendanceRecordController {
	return &AttendanceRecordController{
		DB:        db,
		Validator: validator.New(),
		Rules:     schedule.RulesWithSaturdayStart(configs.SaturdayPrepStart),
		Audit:     auditSvc.New(db),
		Now:       time.Now,
	}
}

// POST /api/attendance/records
// Recording is only allowed while the occurrence resolves to an action set
// containing "record" (PENDING or PERMISSION_GRANTED), and only by the
// slot's assigned teacher.
func (ctl *AttendanceRecordController) CreateAttendanceRecord(c *fiber.Ctx) error {
	var in recDTO.CreateAttendanceRecordDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := time.ParseInLocation(dateLayout, in.Date, time.Local)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "date invalid format, expected YYYY-MM-DD")
	}

	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var slot academicsModel.RosterSlotModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("roster_slot_id = ? AND roster_slot_is_active", in.RosterID).
		First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("roster slot not found"))
		}
		return helper.FromError(c, err)
	}

	if helper.GetUserRole(c) != constants.RoleAdmin && slot.RosterSlotTeacherID != callerID {
		return helper.FromError(c, errs.Authorization("only the assigned teacher may record this period"))
	}

	now := ctl.Now()
	window, err := schedule.ClassifySlot(slot.RosterSlotDayOfWeek, slot.RosterSlotStartTime, slot.RosterSlotEndTime, date, now)
	if err != nil {
		return helper.FromError(c, err)
	}

	req, err := ctl.permissionFor(c, in.RosterID, date)
	if err != nil {
		return helper.FromError(c, err)
	}
	var reqInfo *schedule.PermissionInfo
	if req != nil {
		reqInfo = req.Info()
	}

	res := schedule.Resolve(window, false, reqInfo, now)
	if !res.CanRecord() {
		switch res.Status {
		case schedule.StatusMissed:
			return helper.FromError(c, errs.State("recording window has closed; request permission first"))
		case schedule.StatusPermissionDenied:
			return helper.FromError(c, errs.State("recording was denied for this occurrence"))
		case schedule.StatusYetToStart:
			return helper.FromError(c, errs.State("recording window has not opened yet"))
		default:
			return helper.FromError(c, errs.State("recording is not allowed in state %s", res.Status))
		}
	}

	entries := in.Entries()
	present, absent, sick := recDTO.CountEntries(entries)
	raw, err := json.Marshal(entries)
	if err != nil {
		return helper.FromError(c, err)
	}

	rec := recModel.AttendanceRecordModel{
		AttendanceRecordRosterSlotID: in.RosterID,
		AttendanceRecordDate:         date,
		AttendanceRecordTeacherID:    callerID,
		AttendanceRecordEntries:      raw,
		AttendanceRecordPresentCount: present,
		AttendanceRecordAbsentCount:  absent,
		AttendanceRecordSickCount:    sick,
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&rec).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return helper.FromError(c, errs.Conflict("attendance already recorded for this period and date"))
		}
		return helper.FromError(c, err)
	}

	ctl.Audit.Log(c.UserContext(), callerID, "attendance_record", rec.AttendanceRecordID.String(), "create",
		map[string]interface{}{"roster_id": in.RosterID, "date": in.Date, "present": present, "absent": absent, "sick": sick})

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attendance recorded", recDTO.ToResponse(&rec))
}

// GET /api/attendance/records/:id
func (ctl *AttendanceRecordController) GetAttendanceRecord(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	var rec recModel.AttendanceRecordModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("attendance_record_id = ?", id).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("attendance record not found"))
		}
		return helper.FromError(c, err)
	}

	var entries []recModel.StudentEntry
	if err := json.Unmarshal(rec.AttendanceRecordEntries, &entries); err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, "OK", fiber.Map{
		"record":  recDTO.ToResponse(&rec),
		"entries": entries,
	})
}

// GET /api/attendance/records?roster_id=&date_from=&date_to=
func (ctl *AttendanceRecordController) ListAttendanceRecords(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&recModel.AttendanceRecordModel{})

	if v := c.Query("roster_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "invalid roster_id")
		}
		tx = tx.Where("attendance_record_roster_slot_id = ?", id)
	}
	if v := c.Query("teacher_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "invalid teacher_id")
		}
		tx = tx.Where("attendance_record_teacher_id = ?", id)
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_from invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("attendance_record_date >= ?", t)
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_to invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("attendance_record_date <= ?", t)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}

	var rows []recModel.AttendanceRecordModel
	if err := tx.Order("attendance_record_date DESC, attendance_record_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	out := make([]recDTO.AttendanceRecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, recDTO.ToResponse(&rows[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"records":    out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

func (ctl *AttendanceRecordController) permissionFor(c *fiber.Ctx, rosterID uuid.UUID, date time.Time) (*permModel.PermissionRequestModel, error) {
	var req permModel.PermissionRequestModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("permission_request_roster_slot_id = ? AND permission_request_period_date = ?", rosterID, date).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
