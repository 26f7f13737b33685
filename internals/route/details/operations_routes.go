package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "hostelhub_backend/internals/features/operations/attendance/route"
	cleaningRoute "hostelhub_backend/internals/features/operations/cleaning/route"
	complaintRoute "hostelhub_backend/internals/features/operations/complaints/route"
	foodRoute "hostelhub_backend/internals/features/operations/food_preferences/route"
	visitRoute "hostelhub_backend/internals/features/operations/visits/route"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
)

func OperationsRoutes(r fiber.Router, db *gorm.DB, runner *txretry.Runner, clock dbtime.Clock) {
	complaintRoute.ComplaintRoutes(r, db, clock)
	visitRoute.VisitRoutes(r, db, clock)
	cleaningRoute.CleaningTaskRoutes(r, db)
	foodRoute.FoodPreferenceRoutes(r, db, runner, clock)
	attendanceRoute.AttendanceRoutes(r, db, runner, clock)
}
