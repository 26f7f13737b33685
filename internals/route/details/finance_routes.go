package details

import (
	"github.com/gofiber/fiber/v2"

	paymentRoute "hostelhub_backend/internals/features/finance/payments/route"
	paymentService "hostelhub_backend/internals/features/finance/payments/service"
)

func FinanceRoutes(r fiber.Router, payments *paymentService.PaymentService) {
	paymentRoute.PaymentRoutes(r, payments)
}
