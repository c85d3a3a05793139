package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permissionRoute "github.com/Tresorbana/school-sub000/internals/features/attendance/permissions/route"
	attendanceRoute "github.com/Tresorbana/school-sub000/internals/features/attendance/records/route"
	selfStudyRoute "github.com/Tresorbana/school-sub000/internals/features/attendance/selfstudy/route"
	healthRoute "github.com/Tresorbana/school-sub000/internals/features/health/route"
	reportsRoute "github.com/Tresorbana/school-sub000/internals/features/reports/route"
	academicsRoute "github.com/Tresorbana/school-sub000/internals/features/school/academics/route"
	authRoute "github.com/Tresorbana/school-sub000/internals/features/users/auth/route"
	"github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	authRoute.AuthPublicRoutes(public, db)

	// ===================== PRIVATE (JWT) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", auth.AuthMiddleware())

	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthProtectedRoutes(private, db)

	log.Println("[INFO] Mounting Academics routes...")
	academicsRoute.AcademicsRoutes(private, db)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceRecordRoutes(private, db)
	permissionRoute.PermissionRequestRoutes(private, db)
	selfStudyRoute.SelfStudySessionRoutes(private, db)

	log.Println("[INFO] Mounting Health incident routes...")
	healthRoute.HealthIncidentRoutes(private, db)

	log.Println("[INFO] Mounting Reports routes...")
	reportsRoute.ReportsRoutes(private, db)
}
