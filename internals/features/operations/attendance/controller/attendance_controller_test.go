package controller_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/attendance/dto"
	"hostelhub_backend/internals/features/operations/attendance/route"
	"hostelhub_backend/internals/testkit"
)

func newApp(db *gorm.DB, role string, residentID ...string) *fiber.App {
	app := testkit.App(role, residentID...)
	route.AttendanceRoutes(app, db, testkit.Runner(db), testkit.Clock())
	return app
}

func TestCreateRejectsSecondEntryForSameDay(t *testing.T) {
	db := testkit.OpenDB(t)
	rid := testkit.SeedResident(t, db, "Kusal")
	app := newApp(db, constants.RoleStaff)

	code, env := testkit.Do(t, app, http.MethodPost, "/attendance", map[string]any{
		"resident_id":       rid,
		"attendance_status": "Absent",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var a dto.AttendanceResponse
	env.Decode(t, &a)
	assert.Equal(t, "2025-03-15", a.Date.String())
	assert.EqualValues(t, "absent", a.Status)
	assert.Equal(t, "Kusal", a.ResidentName)

	code, env = testkit.Do(t, app, http.MethodPost, "/attendance", map[string]any{
		"resident_id":       rid,
		"attendance_status": "present",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DUPLICATE_RECORD", env.ErrorCode)

	code, env = testkit.Do(t, app, http.MethodPost, "/attendance", map[string]any{
		"resident_id":       rid,
		"attendance_date":   "2025-03-14",
		"attendance_status": "leave",
	})
	assert.Equal(t, http.StatusCreated, code, env.Message)

	code, env = testkit.Do(t, app, http.MethodPost, "/attendance", map[string]any{
		"resident_id":       rid,
		"attendance_status": "sleeping",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "attendance_status")
}

func TestMarkStampsCheckInOnce(t *testing.T) {
	db := testkit.OpenDB(t)
	rid := testkit.SeedResident(t, db, "Pathum")
	app := newApp(db, constants.RoleAdmin)
	path := "/attendance/mark/" + rid.String()

	code, env := testkit.Do(t, app, http.MethodPost, path+"?status=absent", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var first dto.AttendanceResponse
	env.Decode(t, &first)
	assert.Nil(t, first.CheckInTime)

	code, env = testkit.Do(t, app, http.MethodPost, path+"?status=present", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var second dto.AttendanceResponse
	env.Decode(t, &second)
	assert.Equal(t, first.AttendanceID, second.AttendanceID)
	require.NotNil(t, second.CheckInTime)
	assert.Equal(t, "10:30", *second.CheckInTime)

	code, _ = testkit.Do(t, app, http.MethodPost, path+"?status=unknown", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = testkit.Do(t, app, http.MethodPost, "/attendance/mark/not-a-uuid?status=present", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = testkit.Do(t, app, http.MethodGet, "/attendance/stats", nil)
	require.Equal(t, http.StatusOK, code)
	var stats dto.AttendanceStats
	env.Decode(t, &stats)
	assert.EqualValues(t, 1, stats.Total)
	assert.EqualValues(t, 1, stats.Present)
	assert.EqualValues(t, 0, stats.Absent)
}

func TestAttendanceQueriesAndScope(t *testing.T) {
	db := testkit.OpenDB(t)
	mine := testkit.SeedResident(t, db, "Charith")
	other := testkit.SeedResident(t, db, "Janith")
	staff := newApp(db, constants.RoleStaff)

	for _, body := range []map[string]any{
		{"resident_id": mine, "attendance_status": "present"},
		{"resident_id": mine, "attendance_date": "2025-03-10", "attendance_status": "leave"},
		{"resident_id": other, "attendance_status": "absent"},
	} {
		code, env := testkit.Do(t, staff, http.MethodPost, "/attendance", body)
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, env := testkit.Do(t, staff, http.MethodGet, "/attendance/today", nil)
	require.Equal(t, http.StatusOK, code)
	var today []dto.AttendanceResponse
	env.Decode(t, &today)
	assert.Len(t, today, 2)

	code, env = testkit.Do(t, staff, http.MethodGet, "/attendance/date/2025-03-10", nil)
	require.Equal(t, http.StatusOK, code)
	var past []dto.AttendanceResponse
	env.Decode(t, &past)
	require.Len(t, past, 1)

	code, env = testkit.Do(t, staff, http.MethodPut, "/attendance/"+past[0].AttendanceID.String(), map[string]any{
		"attendance_remarks": "family event",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var updated dto.AttendanceResponse
	env.Decode(t, &updated)
	require.NotNil(t, updated.Remarks)
	assert.Equal(t, "family event", *updated.Remarks)
	assert.EqualValues(t, "leave", updated.Status)

	code, env = testkit.Do(t, staff, http.MethodGet, "/attendance?per_page=2", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 3, env.Pagination.Total)

	resident := newApp(db, constants.RoleResident, mine.String())
	code, env = testkit.Do(t, resident, http.MethodGet, "/attendance/resident/"+mine.String(), nil)
	require.Equal(t, http.StatusOK, code)
	var own []dto.AttendanceResponse
	env.Decode(t, &own)
	assert.Len(t, own, 2)

	code, _ = testkit.Do(t, resident, http.MethodGet, "/attendance/resident/"+other.String(), nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = testkit.Do(t, resident, http.MethodPost, "/attendance/mark/"+mine.String()+"?status=present", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = testkit.Do(t, staff, http.MethodDelete, "/attendance/"+past[0].AttendanceID.String(), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = testkit.Do(t, staff, http.MethodDelete, "/attendance/"+past[0].AttendanceID.String(), nil)
	assert.Equal(t, http.StatusNotFound, code)
}
