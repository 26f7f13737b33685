package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/complaints/controller"
	"hostelhub_backend/internals/helpers/dbtime"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// ComplaintRoutes mounts /complaints. Residents file and read their own
// complaints; staff triage them.
func ComplaintRoutes(r fiber.Router, db *gorm.DB, clock dbtime.Clock) {
	h := controller.NewComplaintController(db, clock)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("manage complaints"), constants.StaffAndAbove...)

	g := r.Group("/complaints")
	g.Get("/", h.ListComplaints)
	g.Get("/stats", staff, h.ComplaintStats)
	g.Get("/:id", h.GetComplaint)
	g.Post("/", h.CreateComplaint)

	g.Put("/:id", staff, h.UpdateComplaint)
	g.Put("/:id/status", staff, h.UpdateComplaintStatus)
	g.Delete("/:id", staff, h.DeleteComplaint)
}
