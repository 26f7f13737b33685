package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	visitRoute "hostelhub_backend/internals/features/operations/visits/route"
	authRoute "hostelhub_backend/internals/features/users/auth/route"
	authService "hostelhub_backend/internals/features/users/auth/service"
	"hostelhub_backend/internals/helpers/dbtime"
)

// PublicRoutes are reachable without a token.
func PublicRoutes(app *fiber.App, db *gorm.DB, auth *authService.AuthService, clock dbtime.Clock) {
	authRoute.AuthRoutes(app, db, auth)
	visitRoute.VisitPublicRoutes(app.Group("/api"), db, clock)
}
