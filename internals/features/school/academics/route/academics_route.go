package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/constants"
	academicsController "github.com/Tresorbana/school-sub000/internals/features/school/academics/controller"
	"github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

// AcademicsRoutes mounts the class/student/course/roster administration
// endpoints. Reads are open to all staff; writes are admin only.
func AcademicsRoutes(router fiber.Router, db *gorm.DB) {
	ctl := academicsController.NewAcademicsController(db)

	adminOnly := auth.OnlyRoles(constants.RoleErrorAdmin("academic administration"), constants.AdminOnly...)

	classes := router.Group("/classes")
	classes.Get("/", ctl.ListClasses)
	classes.Post("/", adminOnly, ctl.CreateClass)

	students := router.Group("/students")
	students.Get("/", ctl.ListStudents)
	students.Post("/", adminOnly, ctl.CreateStudent)

	courses := router.Group("/courses")
	courses.Get("/", ctl.ListCourses)
	courses.Post("/", adminOnly, ctl.CreateCourse)

	rosterSlots := router.Group("/roster-slots")
	rosterSlots.Get("/", ctl.ListRosterSlots)
	rosterSlots.Post("/", adminOnly, ctl.CreateRosterSlot)
	rosterSlots.Delete("/:id", adminOnly, ctl.DeactivateRosterSlot)
}
