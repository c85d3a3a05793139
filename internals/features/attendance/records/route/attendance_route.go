package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	recCtrl "github.com/Tresorbana/school-sub000/internals/features/attendance/records/controller"
	"github.com/Tresorbana/school-sub000/internals/constants"
	authMw "github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

func AttendanceRecordRoutes(r fiber.Router, db *gorm.DB) {
	ctl := recCtrl.NewAttendanceRecordController(db)

	g := r.Group("/attendance")
	g.Get("/schedule-status", ctl.GetScheduleStatus)
	g.Get("/records", ctl.ListAttendanceRecords)
	g.Get("/records/:id", ctl.GetAttendanceRecord)
	g.Post("/records",
		authMw.OnlyRoles(constants.RoleErrorTeacher("attendance recording"), constants.TeacherAndAbove...),
		ctl.CreateAttendanceRecord)
}
