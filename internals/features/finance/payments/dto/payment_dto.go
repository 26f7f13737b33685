package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hostelhub_backend/internals/features/finance/payments/model"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type CreatePaymentRequest struct {
	ResidentID        uuid.UUID            `json:"resident_id" validate:"required"`
	PaymentMonth      string               `json:"payment_month" validate:"required,max=40"`
	PaymentAmount     *decimal.Decimal     `json:"payment_amount" validate:"required"`
	PaymentFoodCharge *decimal.Decimal     `json:"payment_food_charge,omitempty"`
	PaymentLateFee    *decimal.Decimal     `json:"payment_late_fee,omitempty"`
	PaymentStatus     *model.PaymentStatus `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid late"`
	PaymentMethod     *model.PaymentMethod `json:"payment_method,omitempty" validate:"omitempty,oneof=cash bank_transfer card online"`
	PaymentDate       *dbtime.Date         `json:"payment_date,omitempty"`
	PaymentPaidDate   *dbtime.Date         `json:"payment_paid_date,omitempty"`
}

// UpdatePaymentRequest is sparse; resident and month are fixed after creation.
type UpdatePaymentRequest struct {
	PaymentAmount     *decimal.Decimal     `json:"payment_amount,omitempty"`
	PaymentFoodCharge *decimal.Decimal     `json:"payment_food_charge,omitempty"`
	PaymentLateFee    *decimal.Decimal     `json:"payment_late_fee,omitempty"`
	PaymentStatus     *model.PaymentStatus `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid late"`
	PaymentMethod     *model.PaymentMethod `json:"payment_method,omitempty" validate:"omitempty,oneof=cash bank_transfer card online"`
	PaymentPaidDate   *dbtime.Date         `json:"payment_paid_date,omitempty"`
}

func lowerStatus(s *model.PaymentStatus) *model.PaymentStatus {
	if s == nil {
		return nil
	}
	v := model.PaymentStatus(strings.ToLower(strings.TrimSpace(string(*s))))
	return &v
}

func lowerMethod(m *model.PaymentMethod) *model.PaymentMethod {
	if m == nil {
		return nil
	}
	v := model.PaymentMethod(strings.ToLower(strings.TrimSpace(string(*m))))
	return &v
}

func nonNegative(field string, v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return apperror.Invalid(field + " must be zero or positive")
	}
	return nil
}

func (r *CreatePaymentRequest) Normalize() {
	r.PaymentMonth = strings.TrimSpace(r.PaymentMonth)
	r.PaymentStatus = lowerStatus(r.PaymentStatus)
	r.PaymentMethod = lowerMethod(r.PaymentMethod)
}

// CheckAmounts rejects negative money fields.
func (r *CreatePaymentRequest) CheckAmounts() error {
	if err := nonNegative("payment_amount", r.PaymentAmount); err != nil {
		return err
	}
	if err := nonNegative("payment_food_charge", r.PaymentFoodCharge); err != nil {
		return err
	}
	return nonNegative("payment_late_fee", r.PaymentLateFee)
}

func (r *UpdatePaymentRequest) Normalize() {
	r.PaymentStatus = lowerStatus(r.PaymentStatus)
	r.PaymentMethod = lowerMethod(r.PaymentMethod)
}

func (r *UpdatePaymentRequest) CheckAmounts() error {
	if err := nonNegative("payment_amount", r.PaymentAmount); err != nil {
		return err
	}
	if err := nonNegative("payment_food_charge", r.PaymentFoodCharge); err != nil {
		return err
	}
	return nonNegative("payment_late_fee", r.PaymentLateFee)
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type PaymentResponse struct {
	PaymentID    uuid.UUID `json:"payment_id"`
	ResidentID   uuid.UUID `json:"resident_id"`
	ResidentName string    `json:"resident_name"`
	RoomNumber   *string   `json:"room_number"`

	PaymentMonth      string              `json:"payment_month"`
	PaymentAmount     decimal.Decimal     `json:"payment_amount"`
	PaymentFoodCharge decimal.Decimal     `json:"payment_food_charge"`
	PaymentLateFee    decimal.Decimal     `json:"payment_late_fee"`
	PaymentTotal      decimal.Decimal     `json:"payment_total"`
	PaymentStatus     model.PaymentStatus `json:"payment_status"`
	PaymentMethod     model.PaymentMethod `json:"payment_method"`
	PaymentDate       dbtime.Date         `json:"payment_date"`
	PaymentPaidDate   *dbtime.Date        `json:"payment_paid_date"`

	PaymentCreatedAt time.Time `json:"payment_created_at"`
	PaymentUpdatedAt time.Time `json:"payment_updated_at"`
}

func ToPaymentResponse(p *model.Payment) PaymentResponse {
	out := PaymentResponse{
		PaymentID:         p.PaymentID,
		ResidentID:        p.PaymentResidentID,
		PaymentMonth:      p.PaymentMonth,
		PaymentAmount:     p.PaymentAmount,
		PaymentFoodCharge: p.PaymentFoodCharge,
		PaymentLateFee:    p.PaymentLateFee,
		PaymentTotal:      p.PaymentTotal,
		PaymentStatus:     p.PaymentStatus,
		PaymentMethod:     p.PaymentMethod,
		PaymentDate:       p.PaymentDate,
		PaymentPaidDate:   p.PaymentPaidDate,
		PaymentCreatedAt:  p.PaymentCreatedAt,
		PaymentUpdatedAt:  p.PaymentUpdatedAt,
	}
	if p.Resident != nil {
		out.ResidentName = p.Resident.ResidentName
		if p.Resident.Room != nil {
			num := p.Resident.Room.RoomNumber
			out.RoomNumber = &num
		}
	}
	return out
}

func ToPaymentResponses(rows []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToPaymentResponse(&rows[i]))
	}
	return out
}

type PaymentStats struct {
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
	PendingCount int64           `json:"pending_count"`
	LateCount    int64           `json:"late_count"`
}
