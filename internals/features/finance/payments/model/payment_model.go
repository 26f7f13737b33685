// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

/* ===================== Enums (string) ===================== */

type PaymentStatus string
type PaymentMethod string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusLate    PaymentStatus = "late"
)

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOnline       PaymentMethod = "online"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusLate:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodOnline:
		return true
	}
	return false
}

/* ===================== Model ===================== */

// Payment is one billing period of a resident. (resident, month) is unique
// and payment_total always equals amount + food charge + late fee.
type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	PaymentResidentID uuid.UUID               `gorm:"column:payment_resident_id;type:uuid;not null;uniqueIndex:uq_payments_resident_month,priority:1" json:"payment_resident_id"`
	Resident          *residentModel.Resident `gorm:"foreignKey:PaymentResidentID;references:ResidentID;constraint:OnDelete:CASCADE" json:"-"`

	// free-text label, e.g. "March 2025"
	PaymentMonth string `gorm:"column:payment_month;type:varchar(40);not null;uniqueIndex:uq_payments_resident_month,priority:2" json:"payment_month"`

	PaymentAmount     decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null;default:0" json:"payment_amount"`
	PaymentFoodCharge decimal.Decimal `gorm:"column:payment_food_charge;type:numeric(12,2);not null;default:0" json:"payment_food_charge"`
	PaymentLateFee    decimal.Decimal `gorm:"column:payment_late_fee;type:numeric(12,2);not null;default:0" json:"payment_late_fee"`
	PaymentTotal      decimal.Decimal `gorm:"column:payment_total;type:numeric(12,2);not null;default:0" json:"payment_total"`

	PaymentStatus PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index:idx_payments_status" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null;default:'cash'" json:"payment_method"`

	PaymentDate     dbtime.Date  `gorm:"column:payment_date;not null" json:"payment_date"`
	PaymentPaidDate *dbtime.Date `gorm:"column:payment_paid_date" json:"payment_paid_date,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentStatusPending
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = PaymentMethodCash
	}
	return nil
}

/* ===================== Helpers ===================== */

// Recalculate re-derives the total from its parts.
func (p *Payment) Recalculate() {
	p.PaymentTotal = p.PaymentAmount.Add(p.PaymentFoodCharge).Add(p.PaymentLateFee)
}

func (p *Payment) IsPaid() bool {
	return p.PaymentStatus == PaymentStatusPaid
}

// Settle marks the payment paid on the given day, overwriting any paid date.
func (p *Payment) Settle(method PaymentMethod, on dbtime.Date) {
	p.PaymentStatus = PaymentStatusPaid
	p.PaymentMethod = method
	p.PaymentPaidDate = on.Ptr()
}
