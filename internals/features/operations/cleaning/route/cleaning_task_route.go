package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/cleaning/controller"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

func CleaningTaskRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewCleaningTaskController(db)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("manage the cleaning schedule"), constants.StaffAndAbove...)

	g := r.Group("/cleaning")
	g.Get("/", h.ListTasks)
	g.Get("/:id", h.GetTask)
	g.Post("/", staff, h.CreateTask)
	g.Put("/:id", staff, h.UpdateTask)
	g.Delete("/:id", staff, h.DeleteTask)
}
