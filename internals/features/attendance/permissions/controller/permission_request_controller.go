package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/configs"
	permDTO "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/dto"
	permModel "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/model"
	permSvc "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/service"
	"github.com/Tresorbana/school-sub000/internals/features/attendance/schedule"
	auditSvc "github.com/Tresorbana/school-sub000/internals/features/audit/service"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
)

const dateLayout = "2006-01-02"

type PermissionRequestController struct {
	Validator *validator.Validate
	Service   *permSvc.Service
	Audit     *auditSvc.Service
	Now       func() time.Time
}

func NewPermissionRequestController(db *gorm.DB) *PermissionRequestController {
	rules := schedule.RulesWithSaturdayStart(configs.SaturdayPrepStart)
	return &PermissionRequestController{
		Validator: validator.New(),
		Service:   permSvc.New(permSvc.NewGormStore(db), rules),
		Audit:     auditSvc.New(db),
		Now:       time.Now,
	}
}

// POST /api/attendance/permission-requests
func (ctl *PermissionRequestController) RequestPermission(c *fiber.Ctx) error {
	var in permDTO.CreatePermissionRequestDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	periodDate, err := time.ParseInLocation(dateLayout, in.PeriodDate, time.Local)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "period_date invalid format, expected YYYY-MM-DD")
	}

	teacherID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	req, err := ctl.Service.RequestPermission(c.UserContext(), permSvc.RequestInput{
		RosterSlotID: in.RosterID,
		ClassID:      in.ClassID,
		TeacherID:    teacherID,
		PeriodDate:   periodDate,
		Reason:       permModel.ReasonCategory(in.Reason),
		ReasonNotes:  in.ReasonNotes,
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	ctl.Audit.Log(c.UserContext(), teacherID, "permission_request", req.PermissionRequestID.String(), "create",
		map[string]interface{}{"roster_id": in.RosterID, "period_date": in.PeriodDate, "reason": in.Reason})

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Permission requested", permDTO.ToResponse(req, ctl.Now()))
}

// POST /api/attendance/permission-requests/:id/approve
func (ctl *PermissionRequestController) ApproveRequest(c *fiber.Ctx) error {
	return ctl.resolve(c, "approve")
}

// POST /api/attendance/permission-requests/:id/deny
func (ctl *PermissionRequestController) DenyRequest(c *fiber.Ctx) error {
	return ctl.resolve(c, "deny")
}

func (ctl *PermissionRequestController) resolve(c *fiber.Ctx, action string) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid request id")
	}

	adminID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req *permModel.PermissionRequestModel
	if action == "approve" {
		req, err = ctl.Service.ApproveRequest(c.UserContext(), requestID, adminID)
	} else {
		req, err = ctl.Service.DenyRequest(c.UserContext(), requestID, adminID)
	}
	if err != nil {
		return helper.FromError(c, err)
	}

	ctl.Audit.Log(c.UserContext(), adminID, "permission_request", requestID.String(), action, nil)

	return helper.Success(c, "Request "+string(req.PermissionRequestStatus), permDTO.ToResponse(req, ctl.Now()))
}

// GET /api/attendance/permission-requests/pending?teacher_id=&class_id=&date_from=&date_to=
func (ctl *PermissionRequestController) ListPendingRequests(c *fiber.Ctx) error {
	var f permSvc.PendingFilter

	if v := c.Query("teacher_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "invalid teacher_id")
		}
		f.TeacherID = &id
	}
	if v := c.Query("class_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "invalid class_id")
		}
		f.ClassID = &id
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_from invalid format, expected YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_to invalid format, expected YYYY-MM-DD")
		}
		f.DateTo = &t
	}

	rows, err := ctl.Service.ListPendingRequests(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}

	now := ctl.Now()
	out := make([]permDTO.PermissionRequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, permDTO.ToResponse(&rows[i].PermissionRequestModel, now))
	}

	return helper.Success(c, "OK", fiber.Map{
		"requests": out,
		"count":    len(out),
	})
}
