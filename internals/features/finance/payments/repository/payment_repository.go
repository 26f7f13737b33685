// internals/features/finance/payments/repository/payment_repository.go
package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelhub_backend/internals/features/finance/payments/model"
	"hostelhub_backend/internals/helpers/apperror"
)

type PaymentFilter struct {
	ResidentID *uuid.UUID
	Status     *model.PaymentStatus
}

func withResident(db *gorm.DB) *gorm.DB {
	return db.Preload("Resident").Preload("Resident.Room")
}

func FindPaymentByID(db *gorm.DB, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	if err := withResident(db).Where("payment_id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Payment", id)
		}
		return nil, err
	}
	return &p, nil
}

func FindPaymentForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("payment_id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Payment", id)
		}
		return nil, err
	}
	return &p, nil
}

// PeriodOf is the unlocked read used to pick the period lock key.
func PeriodOf(db *gorm.DB, id uuid.UUID) (uuid.UUID, string, error) {
	var p model.Payment
	err := db.Select("payment_id", "payment_resident_id", "payment_month").Where("payment_id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, "", apperror.NotFound("Payment", id)
		}
		return uuid.Nil, "", err
	}
	return p.PaymentResidentID, p.PaymentMonth, nil
}

func ExistsPeriod(db *gorm.DB, residentID uuid.UUID, month string) (bool, error) {
	var n int64
	err := db.Model(&model.Payment{}).
		Where("payment_resident_id = ? AND payment_month = ?", residentID, month).
		Count(&n).Error
	return n > 0, err
}

func ListPayments(db *gorm.DB, f PaymentFilter) ([]model.Payment, error) {
	q := withResident(db).Model(&model.Payment{})
	if f.ResidentID != nil {
		q = q.Where("payment_resident_id = ?", *f.ResidentID)
	}
	if f.Status != nil {
		q = q.Where("payment_status = ?", *f.Status)
	}
	var out []model.Payment
	err := q.Order("payment_created_at DESC").Find(&out).Error
	return out, err
}

func FindPendingForUpdate(tx *gorm.DB, residentID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_resident_id = ? AND payment_status = ?", residentID, model.PaymentStatusPending).
		Order("payment_created_at ASC").
		Find(&out).Error
	return out, err
}

// SumTotalByStatus returns 0 when nothing matches.
func SumTotalByStatus(db *gorm.DB, status model.PaymentStatus) (decimal.Decimal, error) {
	var row struct {
		Total decimal.NullDecimal
	}
	err := db.Model(&model.Payment{}).
		Select("SUM(payment_total) AS total").
		Where("payment_status = ?", status).
		Scan(&row).Error
	if err != nil || !row.Total.Valid {
		return decimal.Zero, err
	}
	return row.Total.Decimal, nil
}

func CountByStatus(db *gorm.DB, status model.PaymentStatus) (int64, error) {
	var n int64
	err := db.Model(&model.Payment{}).Where("payment_status = ?", status).Count(&n).Error
	return n, err
}

func CreatePayment(tx *gorm.DB, p *model.Payment) error {
	return tx.Omit(clause.Associations).Create(p).Error
}

func SavePayment(tx *gorm.DB, p *model.Payment) error {
	return tx.Omit(clause.Associations).Save(p).Error
}

func DeletePaymentByID(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Where("payment_id = ?", id).Delete(&model.Payment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Payment", id)
	}
	return nil
}
