// file: internals/features/finance/payments/service/payment_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hostelhub_backend/internals/features/finance/payments/dto"
	"hostelhub_backend/internals/features/finance/payments/model"
	"hostelhub_backend/internals/features/finance/payments/repository"
	residentRepo "hostelhub_backend/internals/features/hostel/residents/repository"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
)

// PaymentService is the ledger. Writes to one billing period are serialized
// on its period key; bulk settlement takes the resident's ledger key.
type PaymentService struct {
	DB     *gorm.DB
	Runner *txretry.Runner
	Clock  dbtime.Clock
}

func NewPaymentService(db *gorm.DB, runner *txretry.Runner, clock dbtime.Clock) *PaymentService {
	return &PaymentService{DB: db, Runner: runner, Clock: clock}
}

func PeriodKey(residentID uuid.UUID, month string) string {
	return "period:" + residentID.String() + ":" + month
}

func LedgerKey(residentID uuid.UUID) string {
	return "ledger:" + residentID.String()
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func methodOrCash(m *model.PaymentMethod) model.PaymentMethod {
	if m == nil || *m == "" {
		return model.PaymentMethodCash
	}
	return *m
}

/* ===================== Create ===================== */

func (s *PaymentService) Create(ctx context.Context, req dto.CreatePaymentRequest) (*model.Payment, error) {
	req.Normalize()
	if err := req.CheckAmounts(); err != nil {
		return nil, err
	}
	if req.PaymentMonth == "" {
		return nil, apperror.Invalid("payment_month is required")
	}

	var p *model.Payment
	keys := []string{PeriodKey(req.ResidentID, req.PaymentMonth), LedgerKey(req.ResidentID)}
	err := s.Runner.Run(ctx, keys, func(tx *gorm.DB) error {
		res, err := residentRepo.FindResidentForUpdate(tx, req.ResidentID)
		if err != nil {
			return err
		}
		exists, err := repository.ExistsPeriod(tx, req.ResidentID, req.PaymentMonth)
		if err != nil {
			return err
		}
		if exists {
			return apperror.DuplicatePaymentPeriod(res.ResidentName, req.PaymentMonth)
		}

		today := s.Clock.Today()
		p = &model.Payment{
			PaymentResidentID: req.ResidentID,
			PaymentMonth:      req.PaymentMonth,
			PaymentAmount:     orZero(req.PaymentAmount),
			PaymentFoodCharge: orZero(req.PaymentFoodCharge),
			PaymentLateFee:    orZero(req.PaymentLateFee),
			PaymentStatus:     model.PaymentStatusPending,
			PaymentMethod:     methodOrCash(req.PaymentMethod),
			PaymentDate:       today,
			PaymentPaidDate:   req.PaymentPaidDate,
		}
		if req.PaymentStatus != nil {
			p.PaymentStatus = *req.PaymentStatus
		}
		if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
			p.PaymentDate = *req.PaymentDate
		}
		if p.IsPaid() && p.PaymentPaidDate == nil {
			p.PaymentPaidDate = today.Ptr()
		}
		p.Recalculate()

		if err := repository.CreatePayment(tx, p); err != nil {
			if txretry.IsUniqueViolation(err) {
				return apperror.DuplicatePaymentPeriod(res.ResidentName, req.PaymentMonth)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, p.PaymentID)
}

/* ===================== Single-payment mutations ===================== */

// mutate locks the payment's period. Resident and month never change after
// creation, so the unlocked read is enough to pick the key.
func (s *PaymentService) mutate(ctx context.Context, id uuid.UUID, fn func(tx *gorm.DB, p *model.Payment) error) error {
	residentID, month, err := repository.PeriodOf(s.DB.WithContext(ctx), id)
	if err != nil {
		return err
	}
	keys := []string{PeriodKey(residentID, month), LedgerKey(residentID)}
	return s.Runner.Run(ctx, keys, func(tx *gorm.DB) error {
		p, err := repository.FindPaymentForUpdate(tx, id)
		if err != nil {
			return err
		}
		return fn(tx, p)
	})
}

// Update is sparse. The total is always recomputed; moving to paid without
// any paid date stamps today. Paid is terminal.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePaymentRequest) (*model.Payment, error) {
	req.Normalize()
	if err := req.CheckAmounts(); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, id, func(tx *gorm.DB, p *model.Payment) error {
		if p.IsPaid() && req.PaymentStatus != nil && *req.PaymentStatus != model.PaymentStatusPaid {
			return apperror.PaymentAlreadyPaid()
		}

		if req.PaymentAmount != nil {
			p.PaymentAmount = *req.PaymentAmount
		}
		if req.PaymentFoodCharge != nil {
			p.PaymentFoodCharge = *req.PaymentFoodCharge
		}
		if req.PaymentLateFee != nil {
			p.PaymentLateFee = *req.PaymentLateFee
		}
		if req.PaymentStatus != nil {
			p.PaymentStatus = *req.PaymentStatus
		}
		if req.PaymentMethod != nil {
			p.PaymentMethod = *req.PaymentMethod
		}
		if req.PaymentPaidDate != nil && !req.PaymentPaidDate.IsZero() {
			p.PaymentPaidDate = req.PaymentPaidDate
		}
		p.Recalculate()

		if req.PaymentStatus != nil && *req.PaymentStatus == model.PaymentStatusPaid && p.PaymentPaidDate == nil {
			p.PaymentPaidDate = s.Clock.Today().Ptr()
		}
		return repository.SavePayment(tx, p)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// MarkAsPaid always stamps today as the paid date, even over an existing one.
func (s *PaymentService) MarkAsPaid(ctx context.Context, id uuid.UUID, method *model.PaymentMethod) (*model.Payment, error) {
	err := s.mutate(ctx, id, func(tx *gorm.DB, p *model.Payment) error {
		p.Settle(methodOrCash(method), s.Clock.Today())
		return repository.SavePayment(tx, p)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, func(tx *gorm.DB, p *model.Payment) error {
		return repository.DeletePaymentByID(tx, p.PaymentID)
	})
}

/* ===================== Bulk settlement ===================== */

// PayAllPending settles every pending payment of the resident with one
// shared paid date. Late payments are left alone.
func (s *PaymentService) PayAllPending(ctx context.Context, residentID uuid.UUID, method *model.PaymentMethod) ([]model.Payment, error) {
	var ids []uuid.UUID
	err := s.Runner.Run(ctx, []string{LedgerKey(residentID)}, func(tx *gorm.DB) error {
		ids = ids[:0]
		pending, err := repository.FindPendingForUpdate(tx, residentID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return apperror.NoPendingPayments()
		}

		today := s.Clock.Today()
		m := methodOrCash(method)
		for i := range pending {
			pending[i].Settle(m, today)
			if err := repository.SavePayment(tx, &pending[i]); err != nil {
				return err
			}
			ids = append(ids, pending[i].PaymentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.Payment, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

/* ===================== Reads ===================== */

func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return repository.FindPaymentByID(s.DB.WithContext(ctx), id)
}

func (s *PaymentService) List(ctx context.Context, f repository.PaymentFilter) ([]model.Payment, error) {
	return repository.ListPayments(s.DB.WithContext(ctx), f)
}

func (s *PaymentService) Stats(ctx context.Context) (dto.PaymentStats, error) {
	db := s.DB.WithContext(ctx)
	var (
		st  dto.PaymentStats
		err error
	)
	if st.TotalPaid, err = repository.SumTotalByStatus(db, model.PaymentStatusPaid); err != nil {
		return st, err
	}
	if st.TotalPending, err = repository.SumTotalByStatus(db, model.PaymentStatusPending); err != nil {
		return st, err
	}
	if st.PendingCount, err = repository.CountByStatus(db, model.PaymentStatusPending); err != nil {
		return st, err
	}
	if st.LateCount, err = repository.CountByStatus(db, model.PaymentStatusLate); err != nil {
		return st, err
	}
	return st, nil
}
