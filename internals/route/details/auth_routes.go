// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	masterController "nitihub_backend/internals/features/masters/controller"
	middlewares "nitihub_backend/internals/middlewares"
)

func AuthPublicRoutes(r fiber.Router, _ *gorm.DB) {
	h := masterController.NewAuthHandler()
	r.Post("/auth/login", middlewares.LoginRateLimiter(), h.Login)
}

func AuthProtectedRoutes(r fiber.Router, _ *gorm.DB) {
	h := masterController.NewAuthHandler()
	r.Get("/auth/verify", h.Verify)
}
