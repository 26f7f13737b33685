package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	paymentService "hostelhub_backend/internals/features/finance/payments/service"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
	authService "hostelhub_backend/internals/features/users/auth/service"
	"hostelhub_backend/internals/helpers/cache"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
	routeDetails "hostelhub_backend/internals/route/details"
)

var startTime time.Time

// Deps is everything the route tree needs from the serve command.
type Deps struct {
	DB     *gorm.DB
	Runner *txretry.Runner
	Clock  dbtime.Clock
	Auth   *authService.AuthService
	Log    *zap.Logger

	// Cache backs the dashboard stats when set; StatsTTL bounds staleness.
	Cache    cache.KV
	StatsTTL time.Duration
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	rooms := roomService.NewRoomService(d.DB, d.Runner)
	residents := d.Auth.Residents
	if residents == nil {
		residents = residentService.NewResidentService(d.DB, d.Runner, d.Clock)
	}
	payments := paymentService.NewPaymentService(d.DB, d.Runner, d.Clock)

	BaseRoutes(app, d.DB)

	// public routes go first; the /api group below guards everything else
	d.Log.Info("[ROUTES] mounting public routes")
	routeDetails.PublicRoutes(app, d.DB, d.Auth, d.Clock)

	d.Log.Info("[ROUTES] mounting protected routes")
	api := app.Group("/api", authMiddleware.AuthMiddleware(d.DB))
	routeDetails.HostelRoutes(api, rooms, residents, payments, d.Cache, d.StatsTTL)
	routeDetails.FinanceRoutes(api, payments)
	routeDetails.OperationsRoutes(api, d.DB, d.Runner, d.Clock)
}
