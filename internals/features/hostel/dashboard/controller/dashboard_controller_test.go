package controller_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub_backend/internals/constants"
	paymentDTO "hostelhub_backend/internals/features/finance/payments/dto"
	paymentService "hostelhub_backend/internals/features/finance/payments/service"
	"hostelhub_backend/internals/features/hostel/dashboard/controller"
	"hostelhub_backend/internals/features/hostel/dashboard/dto"
	"hostelhub_backend/internals/features/hostel/dashboard/route"
	residentDTO "hostelhub_backend/internals/features/hostel/residents/dto"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomDTO "hostelhub_backend/internals/features/hostel/rooms/dto"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
	"hostelhub_backend/internals/helpers/cache"
	"hostelhub_backend/internals/testkit"
)

func TestDashboardAggregatesStats(t *testing.T) {
	db := testkit.OpenDB(t)
	runner := testkit.Runner(db)
	rooms := roomService.NewRoomService(db, runner)
	residents := residentService.NewResidentService(db, runner, testkit.Clock())
	payments := paymentService.NewPaymentService(db, runner, testkit.Clock())
	ctx := context.Background()

	price := decimal.NewFromInt(250)
	room, err := rooms.Create(ctx, roomDTO.CreateRoomRequest{
		RoomNumber:        "A-101",
		RoomType:          roomModel.RoomTypeSingle,
		RoomPricePerMonth: &price,
		RoomCapacity:      1,
	})
	require.NoError(t, err)
	_, err = rooms.Create(ctx, roomDTO.CreateRoomRequest{
		RoomNumber:        "A-102",
		RoomType:          roomModel.RoomTypeDouble,
		RoomPricePerMonth: &price,
		RoomCapacity:      2,
	})
	require.NoError(t, err)

	res, err := residents.Create(ctx, residentDTO.CreateResidentRequest{ResidentName: "Nuwan", RoomID: &room.RoomID})
	require.NoError(t, err)
	_, err = payments.Create(ctx, paymentDTO.CreatePaymentRequest{
		ResidentID:    res.ResidentID,
		PaymentMonth:  "March 2025",
		PaymentAmount: &price,
	})
	require.NoError(t, err)

	app := testkit.App(constants.RoleStaff)
	route.DashboardRoutes(app, rooms, residents, payments, nil, 0)

	code, env := testkit.Do(t, app, http.MethodGet, "/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var stats dto.DashboardStats
	env.Decode(t, &stats)
	assert.EqualValues(t, 2, stats.Rooms.Total)
	assert.EqualValues(t, 1, stats.Rooms.Occupied)
	assert.EqualValues(t, 1, stats.Rooms.Available)
	assert.EqualValues(t, 1, stats.Residents.Active)
	assert.EqualValues(t, 1, stats.Payments.PendingCount)
	assert.True(t, stats.Payments.TotalPending.Equal(price), stats.Payments.TotalPending.String())

	resident := testkit.App(constants.RoleResident, res.ResidentID.String())
	route.DashboardRoutes(resident, rooms, residents, payments, nil, 0)
	code, _ = testkit.Do(t, resident, http.MethodGet, "/dashboard/stats", nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestDashboardStatsAreCached(t *testing.T) {
	db := testkit.OpenDB(t)
	runner := testkit.Runner(db)
	rooms := roomService.NewRoomService(db, runner)
	residents := residentService.NewResidentService(db, runner, testkit.Clock())
	payments := paymentService.NewPaymentService(db, runner, testkit.Clock())
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := cache.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	app := testkit.App(constants.RoleAdmin)
	route.DashboardRoutes(app, rooms, residents, payments, cache.NewRedisKV(client), 30*time.Second)

	price := decimal.NewFromInt(100)
	addRoom := func(number string) {
		_, err := rooms.Create(ctx, roomDTO.CreateRoomRequest{
			RoomNumber:        number,
			RoomType:          roomModel.RoomTypeSingle,
			RoomPricePerMonth: &price,
			RoomCapacity:      1,
		})
		require.NoError(t, err)
	}
	total := func() int64 {
		code, env := testkit.Do(t, app, http.MethodGet, "/dashboard/stats", nil)
		require.Equal(t, http.StatusOK, code, env.Message)
		var stats dto.DashboardStats
		env.Decode(t, &stats)
		return stats.Rooms.Total
	}

	addRoom("B-1")
	assert.EqualValues(t, 1, total())
	assert.True(t, mr.Exists(controller.StatsKey))

	// served from cache until the entry expires
	addRoom("B-2")
	assert.EqualValues(t, 1, total())

	mr.FastForward(31 * time.Second)
	assert.EqualValues(t, 2, total())
}
