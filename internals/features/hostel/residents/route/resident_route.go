package route

import (
	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/hostel/residents/controller"
	"hostelhub_backend/internals/features/hostel/residents/service"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// ResidentRoutes mounts /residents. Reads are open to staff, writes to admins.
func ResidentRoutes(r fiber.Router, s *service.ResidentService) {
	h := controller.NewResidentController(s)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("residents"), constants.StaffAndAbove...)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manage residents"), constants.AdminOnly...)

	res := r.Group("/residents", staff)
	res.Get("/", h.ListResidents)
	res.Get("/stats", h.ResidentStats)
	res.Get("/:id", h.GetResident)

	res.Post("/", adminOnly, h.CreateResident)
	res.Patch("/:id", adminOnly, h.UpdateResident)
	res.Put("/:id", adminOnly, h.UpdateResident)
	res.Delete("/:id", adminOnly, h.DeleteResident)
	res.Put("/:id/assign-room/:roomId", adminOnly, h.AssignRoom)
	res.Put("/:id/remove-room", adminOnly, h.RemoveFromRoom)
}
