package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permCtrl "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/controller"
	"github.com/Tresorbana/school-sub000/internals/constants"
	authMw "github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

func PermissionRequestRoutes(r fiber.Router, db *gorm.DB) {
	ctl := permCtrl.NewPermissionRequestController(db)

	g := r.Group("/attendance/permission-requests")
	g.Post("/",
		authMw.OnlyRoles(constants.RoleErrorTeacher("permission requests"), constants.TeacherAndAbove...),
		ctl.RequestPermission)
	g.Get("/pending",
		authMw.OnlyRoles(constants.RoleErrorAdmin("pending permission requests"), constants.AdminOnly...),
		ctl.ListPendingRequests)
	g.Post("/:id/approve",
		authMw.OnlyRoles(constants.RoleErrorAdmin("request approval"), constants.AdminOnly...),
		ctl.ApproveRequest)
	g.Post("/:id/deny",
		authMw.OnlyRoles(constants.RoleErrorAdmin("request denial"), constants.AdminOnly...),
		ctl.DenyRequest)
}
