package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostelhub_backend/internals/features/finance/payments/dto"
	"hostelhub_backend/internals/features/finance/payments/model"
	"hostelhub_backend/internals/features/finance/payments/repository"
	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	residentRepo "hostelhub_backend/internals/features/hostel/residents/repository"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/testkit"
)

func newService(t *testing.T) (*PaymentService, *gorm.DB) {
	db := testkit.OpenDB(t)
	return NewPaymentService(db, testkit.Runner(db), testkit.Clock()), db
}

func seedResident(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	r := &residentModel.Resident{ResidentName: name, ResidentJoinDate: dbtime.NewDate(2025, 1, 10)}
	require.NoError(t, residentRepo.CreateResident(db, r))
	return r.ResidentID
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func method(m model.PaymentMethod) *model.PaymentMethod { return &m }

var today = dbtime.DateOf(testkit.Today)

// create, settle, then try the same period again
func TestCreateAndMarkPaidScenario(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "Amal")

	p, err := s.Create(ctx, dto.CreatePaymentRequest{
		ResidentID:        rid,
		PaymentMonth:      "March 2025",
		PaymentAmount:     dec(100),
		PaymentFoodCharge: dec(10),
	})
	require.NoError(t, err)
	assert.True(t, p.PaymentTotal.Equal(decimal.NewFromInt(110)))
	assert.True(t, p.PaymentLateFee.IsZero())
	assert.Equal(t, model.PaymentStatusPending, p.PaymentStatus)
	assert.Equal(t, model.PaymentMethodCash, p.PaymentMethod)
	assert.True(t, p.PaymentDate.Equal(today))
	assert.Nil(t, p.PaymentPaidDate)
	assert.Equal(t, "Amal", dto.ToPaymentResponse(p).ResidentName)

	paid, err := s.MarkAsPaid(ctx, p.PaymentID, method(model.PaymentMethodCash))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, model.PaymentMethodCash, paid.PaymentMethod)
	require.NotNil(t, paid.PaymentPaidDate)
	assert.True(t, paid.PaymentPaidDate.Equal(today))

	_, err = s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "March 2025", PaymentAmount: dec(1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrDuplicatePaymentPeriod))
	assert.Contains(t, err.Error(), "Amal")

	// other month or other resident is fine
	_, err = s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "April 2025", PaymentAmount: dec(1)})
	require.NoError(t, err)
	other := seedResident(t, db, "Bimal")
	_, err = s.Create(ctx, dto.CreatePaymentRequest{ResidentID: other, PaymentMonth: "March 2025", PaymentAmount: dec(1)})
	require.NoError(t, err)
}

func TestCreatePaymentValidation(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "C")

	_, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: uuid.New(), PaymentMonth: "May 2025", PaymentAmount: dec(10)})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "May 2025", PaymentAmount: dec(-1)})
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	// created already paid gets today's paid date
	paid := model.PaymentStatusPaid
	p, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "May 2025", PaymentAmount: dec(10), PaymentStatus: &paid})
	require.NoError(t, err)
	require.NotNil(t, p.PaymentPaidDate)
	assert.True(t, p.PaymentPaidDate.Equal(today))
}

func TestUpdateRecomputesTotal(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "D")

	p, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "June 2025", PaymentAmount: dec(200), PaymentFoodCharge: dec(20)})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		p, err = s.Update(ctx, p.PaymentID, dto.UpdatePaymentRequest{PaymentLateFee: dec(15)})
		require.NoError(t, err)
		assert.True(t, p.PaymentTotal.Equal(decimal.NewFromInt(235)), "got %s", p.PaymentTotal)
	}

	late := model.PaymentStatusLate
	p, err = s.Update(ctx, p.PaymentID, dto.UpdatePaymentRequest{PaymentStatus: &late})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusLate, p.PaymentStatus)
	assert.Nil(t, p.PaymentPaidDate)

	_, err = s.Update(ctx, p.PaymentID, dto.UpdatePaymentRequest{PaymentAmount: dec(-5)})
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestUpdateToPaidKeepsSuppliedDate(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "E")
	paid := model.PaymentStatusPaid
	pending := model.PaymentStatusPending

	a, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "July 2025", PaymentAmount: dec(50)})
	require.NoError(t, err)
	a, err = s.Update(ctx, a.PaymentID, dto.UpdatePaymentRequest{PaymentStatus: &paid})
	require.NoError(t, err)
	require.NotNil(t, a.PaymentPaidDate)
	assert.True(t, a.PaymentPaidDate.Equal(today))

	_, err = s.Update(ctx, a.PaymentID, dto.UpdatePaymentRequest{PaymentStatus: &pending})
	assert.True(t, errors.Is(err, apperror.ErrPaymentAlreadyPaid))

	supplied := dbtime.NewDate(2025, 3, 1)
	b, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "August 2025", PaymentAmount: dec(50)})
	require.NoError(t, err)
	b, err = s.Update(ctx, b.PaymentID, dto.UpdatePaymentRequest{PaymentStatus: &paid, PaymentPaidDate: &supplied})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", b.PaymentPaidDate.String())

	// mark-as-paid overwrites it regardless
	b, err = s.MarkAsPaid(ctx, b.PaymentID, nil)
	require.NoError(t, err)
	assert.True(t, b.PaymentPaidDate.Equal(today))
	assert.Equal(t, model.PaymentMethodCash, b.PaymentMethod)
}

func TestLatePaymentsCanBeSettled(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "Late")
	late := model.PaymentStatusLate
	paid := model.PaymentStatusPaid

	a, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "October 2024", PaymentAmount: dec(80), PaymentLateFee: dec(5), PaymentStatus: &late})
	require.NoError(t, err)
	assert.Nil(t, a.PaymentPaidDate)

	a, err = s.MarkAsPaid(ctx, a.PaymentID, method(model.PaymentMethodCard))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, a.PaymentStatus)
	assert.Equal(t, model.PaymentMethodCard, a.PaymentMethod)
	require.NotNil(t, a.PaymentPaidDate)
	assert.True(t, a.PaymentPaidDate.Equal(today))
	assert.True(t, a.PaymentTotal.Equal(decimal.NewFromInt(85)))

	b, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "November 2024", PaymentAmount: dec(80), PaymentStatus: &late})
	require.NoError(t, err)
	b, err = s.Update(ctx, b.PaymentID, dto.UpdatePaymentRequest{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, b.PaymentStatus)
	require.NotNil(t, b.PaymentPaidDate)
	assert.True(t, b.PaymentPaidDate.Equal(today))
}

// two pending payments settled in one batch, second call has nothing left
func TestPayAllPendingScenario(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "F")
	late := model.PaymentStatusLate

	_, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "January 2025", PaymentAmount: dec(50)})
	require.NoError(t, err)
	_, err = s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "February 2025", PaymentAmount: dec(60), PaymentFoodCharge: dec(10)})
	require.NoError(t, err)
	lateOne, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "December 2024", PaymentAmount: dec(5), PaymentStatus: &late})
	require.NoError(t, err)

	settled, err := s.PayAllPending(ctx, rid, method(model.PaymentMethodBankTransfer))
	require.NoError(t, err)
	require.Len(t, settled, 2)
	sum := decimal.Zero
	for _, p := range settled {
		assert.Equal(t, model.PaymentStatusPaid, p.PaymentStatus)
		assert.Equal(t, model.PaymentMethodBankTransfer, p.PaymentMethod)
		require.NotNil(t, p.PaymentPaidDate)
		assert.True(t, p.PaymentPaidDate.Equal(today))
		sum = sum.Add(p.PaymentTotal)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(120)))

	_, err = s.PayAllPending(ctx, rid, nil)
	assert.True(t, errors.Is(err, apperror.ErrNoPendingPayments))

	got, err := s.Get(ctx, lateOne.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusLate, got.PaymentStatus)
}

func TestListDeleteAndStats(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	a := seedResident(t, db, "G")
	b := seedResident(t, db, "H")
	late := model.PaymentStatusLate

	p1, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: a, PaymentMonth: "March 2025", PaymentAmount: dec(100), PaymentFoodCharge: dec(10)})
	require.NoError(t, err)
	_, err = s.Create(ctx, dto.CreatePaymentRequest{ResidentID: a, PaymentMonth: "April 2025", PaymentAmount: dec(70)})
	require.NoError(t, err)
	_, err = s.Create(ctx, dto.CreatePaymentRequest{ResidentID: b, PaymentMonth: "March 2025", PaymentAmount: dec(30), PaymentStatus: &late})
	require.NoError(t, err)
	_, err = s.MarkAsPaid(ctx, p1.PaymentID, nil)
	require.NoError(t, err)

	rows, err := s.List(ctx, repository.PaymentFilter{ResidentID: &a})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	rows, err = s.List(ctx, repository.PaymentFilter{Status: &late})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	pending := model.PaymentStatusPending
	rows, err = s.List(ctx, repository.PaymentFilter{ResidentID: &a, Status: &pending})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "April 2025", rows[0].PaymentMonth)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, st.TotalPaid.Equal(decimal.NewFromInt(110)))
	assert.True(t, st.TotalPending.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, int64(1), st.PendingCount)
	assert.Equal(t, int64(1), st.LateCount)

	require.NoError(t, s.Delete(ctx, p1.PaymentID))
	_, err = s.Get(ctx, p1.PaymentID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, p1.PaymentID), apperror.ErrNotFound))
}

func TestConcurrentDuplicatePeriodYieldsOnePayment(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "I")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "September 2025", PaymentAmount: dec(40)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperror.ErrDuplicatePaymentPeriod):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 7, dups)
	rows, err := s.List(ctx, repository.PaymentFilter{ResidentID: &rid})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDeletingResidentCascadesPayments(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	rid := seedResident(t, db, "J")
	p, err := s.Create(ctx, dto.CreatePaymentRequest{ResidentID: rid, PaymentMonth: "October 2025", PaymentAmount: dec(10)})
	require.NoError(t, err)

	require.NoError(t, residentRepo.DeleteResidentByID(db, rid))
	_, err = s.Get(ctx, p.PaymentID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
