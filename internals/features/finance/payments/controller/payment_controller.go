// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/features/finance/payments/dto"
	"hostelhub_backend/internals/features/finance/payments/export"
	"hostelhub_backend/internals/features/finance/payments/model"
	"hostelhub_backend/internals/features/finance/payments/repository"
	"hostelhub_backend/internals/features/finance/payments/service"
	helper "hostelhub_backend/internals/helpers"
)

type PaymentController struct {
	Service   *service.PaymentService
	Validator *validator.Validate
}

func NewPaymentController(s *service.PaymentService) *PaymentController {
	return &PaymentController{Service: s, Validator: helper.NewValidator()}
}

// methodQuery reads ?method=, empty means the default.
func methodQuery(c *fiber.Ctx) (*model.PaymentMethod, error) {
	raw := helper.LowerQuery(c, "method")
	if raw == "" {
		return nil, nil
	}
	m := model.PaymentMethod(raw)
	if !m.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid method")
	}
	return &m, nil
}

// POST /payments
func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := h.Service.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Payment created successfully", dto.ToPaymentResponse(p))
}

// PATCH|PUT /payments/:id
func (h *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := h.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Payment updated successfully", dto.ToPaymentResponse(p))
}

// DELETE /payments/:id
func (h *PaymentController) DeletePayment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Payment deleted successfully", fiber.Map{"payment_id": id})
}

// GET /payments/:id
func (h *PaymentController) GetPayment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	p, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToPaymentResponse(p))
}

// paymentFilter reads ?resident_id= and ?status=.
func paymentFilter(c *fiber.Ctx) (repository.PaymentFilter, error) {
	var f repository.PaymentFilter
	rid, err := helper.ParseUUIDQuery(c, "resident_id")
	if err != nil {
		return f, err
	}
	f.ResidentID = rid
	if s := helper.LowerQuery(c, "status"); s != "" {
		st := model.PaymentStatus(s)
		if !st.Valid() {
			return f, fiber.NewError(fiber.StatusBadRequest, "invalid status")
		}
		f.Status = &st
	}
	return f, nil
}

// GET /payments?resident_id=&status=
func (h *PaymentController) ListPayments(c *fiber.Ctx) error {
	f, err := paymentFilter(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Service.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "", dto.ToPaymentResponses(rows), nil)
}

// GET /payments/export?resident_id=&status=
func (h *PaymentController) ExportPayments(c *fiber.Ctx) error {
	f, err := paymentFilter(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Service.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	b, err := export.WritePayments(rows)
	if err != nil {
		return helper.FromError(c, err)
	}

	c.Attachment("payments.xlsx")
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Status(fiber.StatusOK).Send(b)
}

// PUT /payments/:id/mark-paid?method=
func (h *PaymentController) MarkAsPaid(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := methodQuery(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	p, err := h.Service.MarkAsPaid(c.UserContext(), id, m)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Payment marked as paid", dto.ToPaymentResponse(p))
}

// PUT /payments/resident/:residentId/pay-all?method=
func (h *PaymentController) PayAllPending(c *fiber.Ctx) error {
	rid, err := helper.ParseUUIDParam(c, "residentId")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := methodQuery(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Service.PayAllPending(c.UserContext(), rid, m)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "All pending payments settled", dto.ToPaymentResponses(rows))
}

// GET /payments/stats
func (h *PaymentController) PaymentStats(c *fiber.Ctx) error {
	st, err := h.Service.Stats(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", st)
}
