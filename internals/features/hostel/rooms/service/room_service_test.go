package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub_backend/internals/features/hostel/rooms/dto"
	"hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/features/hostel/rooms/repository"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/testkit"
)

func newService(t *testing.T) *RoomService {
	db := testkit.OpenDB(t)
	return NewRoomService(db, testkit.Runner(db))
}

func roomReq(number string, capacity int) dto.CreateRoomRequest {
	price := decimal.NewFromInt(15000)
	facilities := dto.FacilityList{"WiFi", "Fan"}
	return dto.CreateRoomRequest{
		RoomNumber:        number,
		RoomType:          model.RoomTypeShared,
		RoomPricePerMonth: &price,
		RoomCapacity:      capacity,
		RoomFacilities:    &facilities,
	}
}

func TestCreateRoomDefaults(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	room, err := s.Create(ctx, roomReq(" 201 ", 4))
	require.NoError(t, err)
	assert.Equal(t, "201", room.RoomNumber)
	assert.Equal(t, 0, room.RoomOccupancy)
	assert.Equal(t, model.RoomStatusAvailable, room.RoomStatus)

	got, err := s.Get(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, []string{"WiFi", "Fan"}, []string(got.RoomFacilities))
	assert.True(t, got.RoomPricePerMonth.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, 4, dto.ToRoomResponse(got).RoomAvailable)

	_, err = s.Create(ctx, roomReq("201", 2))
	assert.True(t, errors.Is(err, apperror.ErrDuplicateRoomNumber))
}

func TestCreateRoomRejectsNegativePrice(t *testing.T) {
	s := newService(t)
	req := roomReq("202", 1)
	neg := decimal.NewFromInt(-1)
	req.RoomPricePerMonth = &neg

	_, err := s.Create(context.Background(), req)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestUpdateRoom(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	a, err := s.Create(ctx, roomReq("301", 2))
	require.NoError(t, err)
	_, err = s.Create(ctx, roomReq("302", 2))
	require.NoError(t, err)

	req := roomReq("302", 3)
	_, err = s.Update(ctx, a.RoomID, req)
	assert.True(t, errors.Is(err, apperror.ErrDuplicateRoomNumber))

	// keeping its own number is fine, optional attrs untouched when absent
	req = roomReq("301", 3)
	req.RoomFacilities = nil
	maintenance := model.RoomStatusMaintenance
	req.RoomStatus = &maintenance
	updated, err := s.Update(ctx, a.RoomID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.RoomCapacity)
	assert.Equal(t, model.RoomStatusMaintenance, updated.RoomStatus)
	assert.Equal(t, []string{"WiFi", "Fan"}, []string(updated.RoomFacilities))

	// lifting maintenance re-derives status
	available := model.RoomStatusAvailable
	req.RoomStatus = &available
	updated, err = s.Update(ctx, a.RoomID, req)
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusAvailable, updated.RoomStatus)
}

func TestUpdateCapacityBelowOccupancy(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	room, err := s.Create(ctx, roomReq("401", 2))
	require.NoError(t, err)
	require.NoError(t, s.DB.Model(&model.Room{}).Where("room_id = ?", room.RoomID).
		Update("room_current_occupancy", 2).Error)

	_, err = s.Update(ctx, room.RoomID, roomReq("401", 1))
	assert.True(t, errors.Is(err, apperror.ErrCapacityBelowOccupancy))

	// equal capacity flips to occupied
	updated, err := s.Update(ctx, room.RoomID, roomReq("401", 2))
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusOccupied, updated.RoomStatus)
}

func TestListAndStats(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	single := roomReq("501", 1)
	single.RoomType = model.RoomTypeSingle
	_, err := s.Create(ctx, single)
	require.NoError(t, err)

	maint := roomReq("502", 2)
	m := model.RoomStatusMaintenance
	maint.RoomStatus = &m
	_, err = s.Create(ctx, maint)
	require.NoError(t, err)

	_, err = s.Create(ctx, roomReq("503", 4))
	require.NoError(t, err)

	all, err := s.List(ctx, repository.RoomFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	st := model.RoomTypeShared
	shared, err := s.List(ctx, repository.RoomFilter{Type: &st})
	require.NoError(t, err)
	assert.Len(t, shared, 2)

	ms := model.RoomStatusMaintenance
	both, err := s.List(ctx, repository.RoomFilter{Type: &st, Status: &ms})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "502", both[0].RoomNumber)

	// a room under maintenance with free spots still counts as available
	avail, err := s.ListAvailable(ctx, false)
	require.NoError(t, err)
	assert.Len(t, avail, 3)

	avail, err = s.ListAvailable(ctx, true)
	require.NoError(t, err)
	assert.Len(t, avail, 2)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.RoomStats{Total: 3, Available: 2, Occupied: 0, Maintenance: 1}, stats)
}

func TestDeleteRoomThroughService(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	room, err := s.Create(ctx, roomReq("601", 1))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, room.RoomID))
	_, err = s.Get(ctx, room.RoomID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
