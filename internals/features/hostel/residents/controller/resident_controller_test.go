package controller_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/hostel/residents/dto"
	"hostelhub_backend/internals/features/hostel/residents/model"
	residentRoute "hostelhub_backend/internals/features/hostel/residents/route"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomDTO "hostelhub_backend/internals/features/hostel/rooms/dto"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	roomRoute "hostelhub_backend/internals/features/hostel/rooms/route"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
	"hostelhub_backend/internals/testkit"
)

func newApp(t *testing.T, role string) *fiber.App {
	db := testkit.OpenDB(t)
	runner := testkit.Runner(db)
	app := testkit.App(role)
	roomRoute.RoomRoutes(app, roomService.NewRoomService(db, runner))
	residentRoute.ResidentRoutes(app, residentService.NewResidentService(db, runner, testkit.Clock()))
	return app
}

func seedRoom(t *testing.T, app *fiber.App, number string, capacity int) roomDTO.RoomResponse {
	t.Helper()
	code, env := testkit.Do(t, app, http.MethodPost, "/rooms", map[string]any{
		"room_number":          number,
		"room_type":            "shared",
		"room_price_per_month": 12000,
		"room_capacity":        capacity,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var out roomDTO.RoomResponse
	env.Decode(t, &out)
	return out
}

func getRoom(t *testing.T, app *fiber.App, id uuid.UUID) roomDTO.RoomResponse {
	t.Helper()
	code, env := testkit.Do(t, app, http.MethodGet, "/rooms/"+id.String(), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var out roomDTO.RoomResponse
	env.Decode(t, &out)
	return out
}

func postResident(t *testing.T, app *fiber.App, body map[string]any) (int, testkit.Envelope) {
	t.Helper()
	return testkit.Do(t, app, http.MethodPost, "/residents", body)
}

func TestAdmitUpToCapacity(t *testing.T) {
	app := newApp(t, constants.RoleAdmin)
	room := seedRoom(t, app, "301", 2)

	for _, name := range []string{"Amal", "Bimal"} {
		code, env := postResident(t, app, map[string]any{"resident_name": name, "room_id": room.RoomID})
		require.Equal(t, http.StatusCreated, code, env.Message)
		var res dto.ResidentResponse
		env.Decode(t, &res)
		require.NotNil(t, res.RoomID)
		assert.Equal(t, room.RoomID, *res.RoomID)
	}

	full := getRoom(t, app, room.RoomID)
	assert.Equal(t, 2, full.RoomOccupancy)
	assert.Equal(t, roomModel.RoomStatusOccupied, full.RoomStatus)

	code, env := postResident(t, app, map[string]any{"resident_name": "Chamara", "room_id": room.RoomID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "CAPACITY_EXCEEDED", env.ErrorCode)
	assert.Equal(t, 2, getRoom(t, app, room.RoomID).RoomOccupancy)

	code, env = testkit.Do(t, app, http.MethodGet, "/residents", nil)
	require.Equal(t, http.StatusOK, code)
	var all []dto.ResidentResponse
	env.Decode(t, &all)
	assert.Len(t, all, 2)
}

func TestAssignAndRemoveRoom(t *testing.T) {
	app := newApp(t, constants.RoleAdmin)
	room := seedRoom(t, app, "302", 3)

	code, env := postResident(t, app, map[string]any{"resident_name": "Dinesh"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var res dto.ResidentResponse
	env.Decode(t, &res)
	assert.Nil(t, res.RoomID)

	path := "/residents/" + res.ResidentID.String()
	code, env = testkit.Do(t, app, http.MethodPut, path+"/assign-room/"+room.RoomID.String(), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "Room assigned successfully", env.Message)
	env.Decode(t, &res)
	require.NotNil(t, res.RoomNumber)
	assert.Equal(t, "302", *res.RoomNumber)
	assert.Equal(t, 1, getRoom(t, app, room.RoomID).RoomOccupancy)

	code, env = testkit.Do(t, app, http.MethodPut, path+"/remove-room", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	env.Decode(t, &res)
	assert.Nil(t, res.RoomID)
	assert.Equal(t, 0, getRoom(t, app, room.RoomID).RoomOccupancy)

	code, env = testkit.Do(t, app, http.MethodPut, path+"/remove-room", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NOT_ASSIGNED", env.ErrorCode)

	code, env = testkit.Do(t, app, http.MethodPut, path+"/assign-room/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestResidentErrorsAndSparsePatch(t *testing.T) {
	app := newApp(t, constants.RoleAdmin)

	code, env := postResident(t, app, map[string]any{
		"resident_name":   "Erandi",
		"resident_nic":    "200011223344",
		"resident_course": "Physics",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var res dto.ResidentResponse
	env.Decode(t, &res)

	code, env = postResident(t, app, map[string]any{"resident_name": "Other", "resident_nic": "200011223344"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DUPLICATE_IDENTITY", env.ErrorCode)

	code, env = testkit.Do(t, app, http.MethodPatch, "/residents/"+res.ResidentID.String(), map[string]any{
		"resident_course": "Chemistry",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var patched dto.ResidentResponse
	env.Decode(t, &patched)
	assert.Equal(t, "Erandi", patched.ResidentName)
	require.NotNil(t, patched.ResidentNIC)
	assert.Equal(t, "200011223344", *patched.ResidentNIC)
	require.NotNil(t, patched.ResidentCourse)
	assert.Equal(t, "Chemistry", *patched.ResidentCourse)
	assert.Equal(t, model.ResidentStatusActive, patched.ResidentStatus)

	code, env = testkit.Do(t, app, http.MethodPatch, "/residents/"+res.ResidentID.String(), map[string]any{
		"resident_rating": 9,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "resident_rating")

	code, env = testkit.Do(t, app, http.MethodGet, "/residents/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)

	code, _ = testkit.Do(t, app, http.MethodGet, "/residents/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	staff := newApp(t, constants.RoleStaff)
	code, _ = postResident(t, staff, map[string]any{"resident_name": "Nope"})
	assert.Equal(t, http.StatusForbidden, code)
}
