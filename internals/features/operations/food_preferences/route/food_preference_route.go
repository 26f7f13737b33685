package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/food_preferences/controller"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// FoodPreferenceRoutes mounts /food. Residents set and read their own
// preferences; the kitchen views use the staff guard.
func FoodPreferenceRoutes(r fiber.Router, db *gorm.DB, runner *txretry.Runner, clock dbtime.Clock) {
	h := controller.NewFoodPreferenceController(db, runner, clock)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("view meal planning"), constants.StaffAndAbove...)

	g := r.Group("/food")
	g.Post("/", h.UpsertPreference)
	g.Get("/resident/:residentId", h.ListByResident)
	g.Get("/resident/:residentId/today", h.TodayForResident)

	g.Get("/", staff, h.ListPreferences)
	g.Get("/today", staff, h.ListToday)
	g.Get("/stats", staff, h.FoodStats)
	g.Get("/date/:date", staff, h.ListByDate)
	g.Delete("/:id", staff, h.DeletePreference)
}
