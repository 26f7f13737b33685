package controller_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostelhub_backend/internals/constants"
	"hostelhub_backend/internals/features/operations/food_preferences/dto"
	"hostelhub_backend/internals/features/operations/food_preferences/model"
	"hostelhub_backend/internals/features/operations/food_preferences/route"
	"hostelhub_backend/internals/testkit"
)

func newApp(db *gorm.DB, role string, residentID ...string) *fiber.App {
	app := testkit.App(role, residentID...)
	route.FoodPreferenceRoutes(app, db, testkit.Runner(db), testkit.Clock())
	return app
}

func TestUpsertKeepsOneRowPerDay(t *testing.T) {
	db := testkit.OpenDB(t)
	rid := testkit.SeedResident(t, db, "Chamari")
	app := newApp(db, constants.RoleAdmin)

	code, env := testkit.Do(t, app, http.MethodPost, "/food", map[string]any{
		"resident_id":               rid,
		"food_preference_breakfast": true,
		"food_preference_dinner":    true,
		"food_preference_meal_type": "Veg",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var first dto.FoodPreferenceResponse
	env.Decode(t, &first)
	assert.Equal(t, "2025-03-15", first.Date.String())
	assert.True(t, first.Breakfast)
	assert.False(t, first.Lunch)
	assert.Equal(t, "Chamari", first.ResidentName)

	code, env = testkit.Do(t, app, http.MethodPost, "/food", map[string]any{
		"resident_id":            rid,
		"food_preference_lunch":  true,
		"food_preference_dinner": false,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var second dto.FoodPreferenceResponse
	env.Decode(t, &second)
	assert.Equal(t, first.FoodPreferenceID, second.FoodPreferenceID)
	assert.True(t, second.Breakfast)
	assert.True(t, second.Lunch)
	assert.False(t, second.Dinner)
	require.NotNil(t, second.MealType)
	assert.Equal(t, "veg", *second.MealType)

	var n int64
	require.NoError(t, db.Model(&model.FoodPreference{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	code, env = testkit.Do(t, app, http.MethodGet, "/food/stats", nil)
	require.Equal(t, http.StatusOK, code)
	var stats dto.FoodStats
	env.Decode(t, &stats)
	assert.EqualValues(t, 1, stats.Total)
	assert.EqualValues(t, 1, stats.Breakfast)
	assert.EqualValues(t, 1, stats.Lunch)
	assert.EqualValues(t, 0, stats.Dinner)
}

func TestConcurrentUpsertsSameDay(t *testing.T) {
	db := testkit.OpenDB(t)
	rid := testkit.SeedResident(t, db, "Lasith")
	app := newApp(db, constants.RoleStaff)

	var wg sync.WaitGroup
	codes := make([]int, 6)
	errs := make([]error, 6)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i], errs[i] = testkit.Status(app, http.MethodPost, "/food", map[string]any{
				"resident_id":           rid,
				"food_preference_date":  "2025-03-16",
				"food_preference_lunch": i%2 == 0,
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	created := 0
	for _, c := range codes {
		require.Contains(t, []int{http.StatusCreated, http.StatusOK}, c)
		if c == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)

	var n int64
	require.NoError(t, db.Model(&model.FoodPreference{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestFoodQueries(t *testing.T) {
	db := testkit.OpenDB(t)
	mine := testkit.SeedResident(t, db, "Avishka")
	other := testkit.SeedResident(t, db, "Dunith")
	admin := newApp(db, constants.RoleAdmin)

	for _, body := range []map[string]any{
		{"resident_id": mine, "food_preference_date": "2025-03-14", "food_preference_lunch": true},
		{"resident_id": mine, "food_preference_breakfast": true},
		{"resident_id": other, "food_preference_dinner": true},
	} {
		code, env := testkit.Do(t, admin, http.MethodPost, "/food", body)
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, env := testkit.Do(t, admin, http.MethodGet, "/food/today", nil)
	require.Equal(t, http.StatusOK, code)
	var today []dto.FoodPreferenceResponse
	env.Decode(t, &today)
	assert.Len(t, today, 2)

	code, env = testkit.Do(t, admin, http.MethodGet, "/food/date/2025-03-14", nil)
	require.Equal(t, http.StatusOK, code)
	var yesterday []dto.FoodPreferenceResponse
	env.Decode(t, &yesterday)
	require.Len(t, yesterday, 1)
	assert.Equal(t, mine, yesterday[0].ResidentID)

	code, _ = testkit.Do(t, admin, http.MethodGet, "/food/date/14-03-2025", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	app := newApp(db, constants.RoleResident, mine.String())
	code, env = testkit.Do(t, app, http.MethodGet, "/food/resident/"+mine.String(), nil)
	require.Equal(t, http.StatusOK, code)
	var own []dto.FoodPreferenceResponse
	env.Decode(t, &own)
	assert.Len(t, own, 2)

	code, _ = testkit.Do(t, app, http.MethodGet, "/food/resident/"+other.String(), nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = testkit.Do(t, app, http.MethodGet, "/food/stats", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = testkit.Do(t, admin, http.MethodGet, "/food/resident/"+other.String()+"/today", nil)
	require.Equal(t, http.StatusOK, code)
	var todays dto.FoodPreferenceResponse
	env.Decode(t, &todays)
	assert.True(t, todays.Dinner)

	quiet := testkit.SeedResident(t, db, "Maheesh")
	code, env = testkit.Do(t, admin, http.MethodGet, "/food/resident/"+quiet.String()+"/today", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "No preference set for today.", env.Message)
	assert.Equal(t, "null", string(env.Data))

	code, _ = testkit.Do(t, admin, http.MethodDelete, "/food/"+todays.FoodPreferenceID.String(), nil)
	assert.Equal(t, http.StatusOK, code)
}
