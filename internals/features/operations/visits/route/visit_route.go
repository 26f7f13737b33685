package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/visits/controller"
	"hostelhub_backend/internals/helpers/dbtime"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// VisitPublicRoutes mounts the booking form, reachable without a token.
func VisitPublicRoutes(r fiber.Router, db *gorm.DB, clock dbtime.Clock) {
	h := controller.NewVisitController(db, clock)
	r.Post("/visits", h.CreateVisit)
}

// VisitRoutes mounts the staff side of /visits.
func VisitRoutes(r fiber.Router, db *gorm.DB, clock dbtime.Clock) {
	h := controller.NewVisitController(db, clock)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("manage visits"), constants.StaffAndAbove...)

	g := r.Group("/visits")
	g.Get("/", staff, h.ListVisits)
	g.Get("/stats", staff, h.VisitStats)
	g.Get("/:id", staff, h.GetVisit)
	g.Put("/:id", staff, h.UpdateVisit)
	g.Put("/:id/status", staff, h.UpdateVisitStatus)
	g.Delete("/:id", staff, h.DeleteVisit)
}
