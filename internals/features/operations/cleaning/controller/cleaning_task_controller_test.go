package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/cleaning/model"
	"hostelhub_backend/internals/features/operations/cleaning/route"
	"hostelhub_backend/internals/testkit"
)

func TestCleaningSchedule(t *testing.T) {
	db := testkit.OpenDB(t)
	app := testkit.App(constants.RoleStaff)
	route.CleaningTaskRoutes(app, db)

	for _, body := range []map[string]any{
		{"cleaning_task_area": "Kitchen", "cleaning_task_day_of_week": "Wednesday", "cleaning_task_time_slot": "08:00", "cleaning_task_assigned_staff": "Saman"},
		{"cleaning_task_area": "Lobby", "cleaning_task_day_of_week": "monday", "cleaning_task_time_slot": "09:00", "cleaning_task_assigned_staff": "Saman"},
		{"cleaning_task_area": "Corridor", "cleaning_task_day_of_week": "MONDAY", "cleaning_task_time_slot": "07:00", "cleaning_task_assigned_staff": "Nuwan"},
	} {
		code, env := testkit.Do(t, app, http.MethodPost, "/cleaning", body)
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, env := testkit.Do(t, app, http.MethodGet, "/cleaning", nil)
	require.Equal(t, http.StatusOK, code)
	var all []model.CleaningTask
	env.Decode(t, &all)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Corridor", "Lobby", "Kitchen"},
		[]string{all[0].CleaningTaskArea, all[1].CleaningTaskArea, all[2].CleaningTaskArea})
	assert.Equal(t, model.CleaningPending, all[0].CleaningTaskStatus)

	code, env = testkit.Do(t, app, http.MethodGet, "/cleaning?day_of_week=Monday", nil)
	require.Equal(t, http.StatusOK, code)
	var monday []model.CleaningTask
	env.Decode(t, &monday)
	assert.Len(t, monday, 2)

	id := all[2].CleaningTaskID.String()
	code, env = testkit.Do(t, app, http.MethodPut, "/cleaning/"+id, map[string]any{"cleaning_task_status": "completed"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var done model.CleaningTask
	env.Decode(t, &done)
	assert.Equal(t, model.CleaningCompleted, done.CleaningTaskStatus)
	assert.Equal(t, "Kitchen", done.CleaningTaskArea)

	code, _ = testkit.Do(t, app, http.MethodPut, "/cleaning/"+id, map[string]any{"cleaning_task_status": "half-done"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = testkit.Do(t, app, http.MethodDelete, "/cleaning/"+id, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = testkit.Do(t, app, http.MethodGet, "/cleaning/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCleaningWritesNeedStaff(t *testing.T) {
	db := testkit.OpenDB(t)
	app := testkit.App(constants.RoleResident)
	route.CleaningTaskRoutes(app, db)

	code, _ := testkit.Do(t, app, http.MethodPost, "/cleaning", map[string]any{"cleaning_task_area": "Roof"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = testkit.Do(t, app, http.MethodGet, "/cleaning?day_of_week=someday", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
