package route

import (
	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/finance/payments/controller"
	"hostelhub_backend/internals/features/finance/payments/service"
	authMiddleware "hostelhub_backend/internals/middlewares/auth"
)

// PaymentRoutes mounts /payments for staff; settlement and edits are admin only.
func PaymentRoutes(r fiber.Router, s *service.PaymentService) {
	h := controller.NewPaymentController(s)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("payments"), constants.StaffAndAbove...)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manage payments"), constants.AdminOnly...)

	p := r.Group("/payments", staff)
	p.Get("/", h.ListPayments)
	p.Get("/stats", h.PaymentStats)
	p.Get("/export", h.ExportPayments)
	p.Get("/:id", h.GetPayment)

	p.Post("/", adminOnly, h.CreatePayment)
	p.Patch("/:id", adminOnly, h.UpdatePayment)
	p.Put("/:id", adminOnly, h.UpdatePayment)
	p.Delete("/:id", adminOnly, h.DeletePayment)
	p.Put("/:id/mark-paid", adminOnly, h.MarkAsPaid)
	p.Put("/resident/:residentId/pay-all", adminOnly, h.PayAllPending)
}
