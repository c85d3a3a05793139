package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/constants"
	authController "github.com/Tresorbana/school-sub000/internals/features/users/auth/controller"
	"github.com/Tresorbana/school-sub000/internals/middlewares"
	"github.com/Tresorbana/school-sub000/internals/middlewares/auth"
)

// AuthPublicRoutes mounts the unauthenticated endpoints.
func AuthPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	router.Post("/auth/login", middlewares.LoginRateLimiter(), ctl.Login)
}

// AuthProtectedRoutes mounts the endpoints behind the JWT middleware.
func AuthProtectedRoutes(router fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	router.Get("/auth/me", ctl.Me)
	router.Post("/auth/users",
		auth.OnlyRoles(constants.RoleErrorAdmin("manage users"), constants.AdminOnly...),
		ctl.CreateUser,
	)
}
