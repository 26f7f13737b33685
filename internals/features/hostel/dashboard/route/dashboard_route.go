package route

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/constants"
	paymentService "hostelhub_backend/internals/features/finance/payments/service"
	"hostelhub_backend/internals/features/hostel/dashboard/controller"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
	"hostelhub_backend/internals/helpers/cache"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// DashboardRoutes mounts the staff dashboard. kv may be nil.
func DashboardRoutes(r fiber.Router, rooms *roomService.RoomService, residents *residentService.ResidentService, payments *paymentService.PaymentService, kv cache.KV, ttl time.Duration) {
	h := controller.NewDashboardController(rooms, residents, payments, kv, ttl)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("view the dashboard"), constants.StaffAndAbove...)

	r.Get("/dashboard/stats", staff, h.Stats)
}
