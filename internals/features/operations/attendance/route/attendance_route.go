package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/attendance/controller"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB, runner *txretry.Runner, clock dbtime.Clock) {
	h := controller.NewAttendanceController(db, runner, clock)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("record attendance"), constants.StaffAndAbove...)

	g := r.Group("/attendance")
	g.Get("/resident/:residentId", h.ListByResident)

	g.Get("/", staff, h.ListAttendance)
	g.Get("/today", staff, h.ListToday)
	g.Get("/stats", staff, h.AttendanceStats)
	g.Get("/date/:date", staff, h.ListByDate)
	g.Post("/", staff, h.CreateAttendance)
	g.Post("/mark/:residentId", staff, h.MarkAttendance)
	g.Put("/:id", staff, h.UpdateAttendance)
	g.Delete("/:id", staff, h.DeleteAttendance)
}
