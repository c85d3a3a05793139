package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/configs"
	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	ssDTO "github.com/Tresorbana/school-sub000/internals/features/attendance/selfstudy/dto"
	ssModel "github.com/Tresorbana/school-sub000/internals/features/attendance/selfstudy/model"
	auditSvc "github.com/Tresorbana/school-sub000/internals/features/audit/service"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

const dateLayout = "2006-01-02"

type SelfStudySessionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Rules     schedule.WeeklyRules
	Audit     *auditSvc.Service
	Now       func() time.Time
}

func NewSelfStudySessionController(db *gorm.DB) *SelfStudySessionController {
	return &SelfStudySessionController{
		DB:        db,
		Validator: validator.New(),
		Rules:     schedule.RulesWithSaturdayStart(configs.SaturdayPrepStart),
		Audit:     auditSvc.New(db),
		Now:       time.Now,
	}
}

// POST /api/self-study-sessions
// Creates an all-present session. Without an explicit period the currently
// active prep window is used; with one, the key must be scheduled on the
// session date. The total is the class's active headcount at creation time.
func (ctl *SelfStudySessionController) CreateSession(c *fiber.Ctx) error {
	var in ssDTO.CreateSelfStudySessionDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	createdBy, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	now := ctl.Now()
	date := now
	if in.AttendanceDate != nil {
		date, err = time.ParseInLocation(dateLayout, *in.AttendanceDate, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "attendance_date invalid format, expected YYYY-MM-DD")
		}
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)

	var period schedule.PeriodKey
	if in.Period != nil {
		period = schedule.PeriodKey(*in.Period)
		if !period.Valid() {
			return helper.FromError(c, errs.Validation("unknown period %q", *in.Period))
		}
		if _, ok := ctl.Rules.WindowFor(date.Weekday(), period); !ok {
			return helper.FromError(c, errs.Validation("period %s is not scheduled on %s", period, date.Weekday()))
		}
	} else {
		w, ok := ctl.Rules.ActiveWindow(now)
		if !ok {
			return helper.FromError(c, errs.Validation("no self-study window is active now; supply a period explicitly"))
		}
		period = w.Key
	}

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("students").
		Where("student_class_id = ? AND student_is_active AND student_deleted_at IS NULL", in.ClassID).
		Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	if total == 0 {
		return helper.FromError(c, errs.Validation("class has no active students"))
	}

	session := ssModel.SelfStudySessionModel{
		SelfStudySessionClassID:         in.ClassID,
		SelfStudySessionPeriod:          period,
		SelfStudySessionDate:            date,
		SelfStudySessionTotalStudents:   int(total),
		SelfStudySessionPresentStudents: int(total),
		SelfStudySessionAbsentStudents:  []byte("[]"),
		SelfStudySessionNotes:           in.Notes,
		SelfStudySessionCreatedBy:       createdBy,
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&session).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return helper.FromError(c, errs.Conflict("a session already exists for this class, period and date"))
		}
		return helper.FromError(c, err)
	}

	ctl.Audit.Log(c.UserContext(), createdBy, "self_study_session", session.SelfStudySessionID.String(), "create",
		map[string]interface{}{"class_id": in.ClassID, "period": period, "date": date.Format(dateLayout), "total": total})

	out, err := ssDTO.ToResponse(&session)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session created", out)
}

// PUT /api/self-study-sessions/:id/submit
func (ctl *SelfStudySessionController) SubmitAttendance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid session id")
	}

	var in ssDTO.SubmitSelfStudyAttendanceDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var session ssModel.SelfStudySessionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("self_study_session_id = ?", id).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("self-study session not found"))
		}
		return helper.FromError(c, err)
	}

	if err := session.ApplySubmission(in.AbsentList(), ctl.Now()); err != nil {
		return helper.FromError(c, err)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(&session).Error; err != nil {
		return helper.FromError(c, err)
	}

	ctl.Audit.Log(c.UserContext(), callerID, "self_study_session", session.SelfStudySessionID.String(), "submit",
		map[string]interface{}{"absent": len(in.AbsentStudents), "present": session.SelfStudySessionPresentStudents})

	out, err := ssDTO.ToResponse(&session)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Attendance submitted", out)
}

// GET /api/self-study-sessions?class_id=&period=&date_from=&date_to=
func (ctl *SelfStudySessionController) ListSessions(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&ssModel.SelfStudySessionModel{})

	if v := c.Query("class_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "invalid class_id")
		}
		tx = tx.Where("self_study_session_class_id = ?", id)
	}
	if v := c.Query("period"); v != "" {
		if !schedule.PeriodKey(v).Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "invalid period")
		}
		tx = tx.Where("self_study_session_period = ?", v)
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_from invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("self_study_session_date >= ?", t)
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_to invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("self_study_session_date <= ?", t)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}

	var rows []ssModel.SelfStudySessionModel
	if err := tx.Order("self_study_session_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	out := make([]ssDTO.SelfStudySessionResponse, 0, len(rows))
	for i := range rows {
		resp, err := ssDTO.ToResponse(&rows[i])
		if err != nil {
			return helper.FromError(c, err)
		}
		out = append(out, resp)
	}

	return helper.Success(c, "OK", fiber.Map{
		"sessions":   out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

// DELETE /api/self-study-sessions/:id
func (ctl *SelfStudySessionController) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid session id")
	}

	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("self_study_session_id = ?", id).
		Delete(&ssModel.SelfStudySessionModel{})
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, errs.NotFound("self-study session not found"))
	}

	ctl.Audit.Log(c.UserContext(), callerID, "self_study_session", id.String(), "delete", nil)

	return helper.Success(c, "Session deleted", fiber.Map{"self_study_session_id": id})
}
