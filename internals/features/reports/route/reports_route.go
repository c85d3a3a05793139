package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportsCtrl "github.com/Tresorbana/school-sub000/internals/features/reports/controller"
	"github.com/Tresorbana/school-sub000/internals/constants"
	authMw "github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

func ReportsRoutes(r fiber.Router, db *gorm.DB) {
	ctl := reportsCtrl.NewReportsController(db)

	g := r.Group("/reports",
		authMw.OnlyRoles(constants.RoleErrorStaff("reports"), constants.DisciplineAndAbove...))
	g.Get("/class-attendance", ctl.ClassAttendanceSummary)
	g.Get("/teacher-compliance", ctl.TeacherComplianceSummary)
}
