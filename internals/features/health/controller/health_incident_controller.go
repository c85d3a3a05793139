package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditSvc "github.com/Tresorbana/school-sub000/internals/features/audit/service"
	healthDTO "github.com/Tresorbana/school-sub000/internals/features/health/dto"
	healthModel "github.com/Tresorbana/school-sub000/internals/features/health/model"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

type HealthIncidentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Service
	Now       func() time.Time
}

func NewHealthIncidentController(db *gorm.DB) *HealthIncidentController {
	return &HealthIncidentController{
		DB:        db,
		Validator: validator.New(),
		Audit:     auditSvc.New(db),
		Now:       time.Now,
	}
}

// POST /api/health-incidents
func (ctl *HealthIncidentController) CreateIncident(c *fiber.Ctx) error {
	var in healthDTO.CreateHealthIncidentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	reporterID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	occurredAt := ctl.Now()
	if in.OccurredAt != nil {
		occurredAt, err = time.Parse(time.RFC3339, *in.OccurredAt)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "occurred_at invalid format, expected RFC3339")
		}
	}

	incident := healthModel.HealthIncidentModel{
		HealthIncidentStudentID:   in.StudentID,
		HealthIncidentReportedBy:  reporterID,
		HealthIncidentCategory:    healthModel.IncidentCategory(in.Category),
		HealthIncidentDescription: in.Description,
		HealthIncidentOccurredAt:  occurredAt,
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&incident).Error; err != nil {
		return helper.FromError(c, err)
	}

	ctl.Audit.Log(c.UserContext(), reporterID, "health_incident", incident.HealthIncidentID.String(), "create",
		map[string]interface{}{"student_id": in.StudentID, "category": in.Category})

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Incident logged", incident)
}

// POST /api/health-incidents/:id/resolve
func (ctl *HealthIncidentController) ResolveIncident(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid incident id")
	}

	var in healthDTO.ResolveHealthIncidentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var incident healthModel.HealthIncidentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("health_incident_id = ?", id).
		First(&incident).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("health incident not found"))
		}
		return helper.FromError(c, err)
	}

	if incident.HealthIncidentResolvedAt != nil {
		return helper.FromError(c, errs.State("incident is already resolved"))
	}

	now := ctl.Now()
	incident.HealthIncidentResolvedAt = &now
	incident.HealthIncidentResolvedNote = in.Note

	if err := ctl.DB.WithContext(c.UserContext()).Save(&incident).Error; err != nil {
		return helper.FromError(c, err)
	}

	ctl.Audit.Log(c.UserContext(), callerID, "health_incident", id.String(), "resolve", nil)

	return helper.Success(c, "Incident resolved", incident)
}

// GET /api/health-incidents?student_id=&category=&unresolved=
func (ctl *HealthIncidentController) ListIncidents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&healthModel.HealthIncidentModel{})

	if v := c.Query("student_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "invalid student_id")
		}
		tx = tx.Where("health_incident_student_id = ?", id)
	}
	if v := c.Query("category"); v != "" {
		if !healthModel.IncidentCategory(v).Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "invalid category")
		}
		tx = tx.Where("health_incident_category = ?", v)
	}
	if c.QueryBool("unresolved") {
		tx = tx.Where("health_incident_resolved_at IS NULL")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}

	var rows []healthModel.HealthIncidentModel
	if err := tx.Order("health_incident_occurred_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, "OK", fiber.Map{
		"incidents":  rows,
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}
