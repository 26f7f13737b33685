package seeds

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	paymentModel "hostelhub_backend/internals/features/finance/payments/model"
	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	cleaningModel "hostelhub_backend/internals/features/operations/cleaning/model"
	complaintModel "hostelhub_backend/internals/features/operations/complaints/model"
	visitModel "hostelhub_backend/internals/features/operations/visits/model"
	authModel "hostelhub_backend/internals/features/users/auth/model"
	authService "hostelhub_backend/internals/features/users/auth/service"
	"hostelhub_backend/internals/testkit"
)

func TestRunAllSeedsLoadsOnce(t *testing.T) {
	db := testkit.OpenDB(t)
	ctx := context.Background()
	hasher := authService.NewBcryptHasher(bcrypt.MinCost)

	loaded, err := RunAllSeeds(ctx, db, testkit.Runner(db), hasher, testkit.Clock(), zap.NewNop())
	require.NoError(t, err)
	assert.True(t, loaded)

	counts := map[string]struct {
		model any
		want  int64
	}{
		"rooms":      {&roomModel.Room{}, 8},
		"residents":  {&residentModel.Resident{}, 4},
		"payments":   {&paymentModel.Payment{}, 3},
		"complaints": {&complaintModel.Complaint{}, 2},
		"visits":     {&visitModel.Visit{}, 2},
		"cleaning":   {&cleaningModel.CleaningTask{}, 6},
		"users":      {&authModel.UserModel{}, 4},
	}
	for name, c := range counts {
		var n int64
		require.NoError(t, db.Model(c.model).Count(&n).Error, name)
		assert.Equal(t, c.want, n, name)
	}

	var r101, r103 roomModel.Room
	require.NoError(t, db.Where("room_number = ?", "101").First(&r101).Error)
	assert.Equal(t, 1, r101.RoomOccupancy)
	require.NoError(t, db.Where("room_number = ?", "103").First(&r103).Error)
	assert.Equal(t, roomModel.RoomStatusMaintenance, r103.RoomStatus)

	var late paymentModel.Payment
	require.NoError(t, db.Where("payment_status = ?", paymentModel.PaymentStatusLate).First(&late).Error)
	assert.True(t, late.PaymentTotal.Equal(decimal.NewFromInt(52000)), late.PaymentTotal.String())

	loaded, err = RunAllSeeds(ctx, db, testkit.Runner(db), hasher, testkit.Clock(), zap.NewNop())
	require.NoError(t, err)
	assert.False(t, loaded)

	var n int64
	require.NoError(t, db.Model(&roomModel.Room{}).Count(&n).Error)
	assert.EqualValues(t, 8, n)
}
