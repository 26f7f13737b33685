package details

import (
	"time"

	"github.com/gofiber/fiber/v2"

	paymentService "hostelhub_backend/internals/features/finance/payments/service"
	dashboardRoute "hostelhub_backend/internals/features/hostel/dashboard/route"
	residentRoute "hostelhub_backend/internals/features/hostel/residents/route"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomRoute "hostelhub_backend/internals/features/hostel/rooms/route"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
	"hostelhub_backend/internals/helpers/cache"
)

func HostelRoutes(r fiber.Router, rooms *roomService.RoomService, residents *residentService.ResidentService, payments *paymentService.PaymentService, kv cache.KV, statsTTL time.Duration) {
	roomRoute.RoomRoutes(r, rooms)
	residentRoute.ResidentRoutes(r, residents)
	dashboardRoute.DashboardRoutes(r, rooms, residents, payments, kv, statsTTL)
}
