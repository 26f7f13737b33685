package route

import (
	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/hostel/rooms/controller"
	"hostelhub_backend/internals/features/hostel/rooms/service"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// RoomRoutes mounts /rooms on an already authenticated router.
func RoomRoutes(r fiber.Router, s *service.RoomService) {
	h := controller.NewRoomController(s)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manage rooms"), constants.AdminOnly...)

	rooms := r.Group("/rooms")
	rooms.Get("/", h.ListRooms)
	rooms.Get("/available", h.ListAvailableRooms)
	rooms.Get("/stats", h.RoomStats)
	rooms.Get("/:id", h.GetRoom)

	rooms.Post("/", adminOnly, h.CreateRoom)
	rooms.Put("/:id", adminOnly, h.UpdateRoom)
	rooms.Delete("/:id", adminOnly, h.DeleteRoom)
}
