package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ssCtrl "github.com/Tresorbana/school-sub000/internals/features/attendance/selfstudy/controller"
	"github.com/Tresorbana/school-sub000/internals/constants"
	authMw "github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

func SelfStudySessionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := ssCtrl.NewSelfStudySessionController(db)

	g := r.Group("/self-study-sessions")
	g.Get("/", ctl.ListSessions)
	g.Post("/",
		authMw.OnlyRoles(constants.RoleErrorTeacher("self-study sessions"), constants.TeacherAndAbove...),
		ctl.CreateSession)
	g.Put("/:id/submit",
		authMw.OnlyRoles(constants.RoleErrorTeacher("self-study attendance"), constants.TeacherAndAbove...),
		ctl.SubmitAttendance)
	g.Delete("/:id",
		authMw.OnlyRoles(constants.RoleErrorTeacher("self-study sessions"), constants.TeacherAndAbove...),
		ctl.DeleteSession)
}
