package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	healthCtrl "github.com/Tresorbana/school-sub000/internals/features/health/controller"
	"github.com/Tresorbana/school-sub000/internals/constants"
	authMw "github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

func HealthIncidentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := healthCtrl.NewHealthIncidentController(db)

	g := r.Group("/health-incidents")
	g.Get("/", ctl.ListIncidents)
	g.Post("/",
		authMw.OnlyRoles(constants.RoleErrorStaff("health incidents"), constants.AllRoles...),
		ctl.CreateIncident)
	g.Post("/:id/resolve",
		authMw.OnlyRoles(constants.RoleErrorStaff("health incidents"), constants.DisciplineAndAbove...),
		ctl.ResolveIncident)
}
