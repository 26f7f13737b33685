// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internals/features/users/auth/controller"
	"hostelhub_backend/internals/features/users/auth/service"
	rateLimiter "hostelhub_backend/internals/middlewares"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /api/auth. Login and register are public and rate limited.
func AuthRoutes(app *fiber.App, db *gorm.DB, s *service.AuthService) {
	h := controller.NewAuthController(s)

	auth := app.Group("/api/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), h.Login)
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), h.Register)
	auth.Get("/verify", h.VerifyEmail)

	auth.Get("/me", authMiddleware.AuthMiddleware(db), h.Me)
}
