package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hostelhub_backend/internals/features/operations/food_preferences/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

// UpsertFoodPreferenceRequest creates or updates the (resident, date) row.
// On update only supplied fields change; on create missing flags are false.
type UpsertFoodPreferenceRequest struct {
	ResidentID          uuid.UUID    `json:"resident_id"`
	Date                *dbtime.Date `json:"food_preference_date,omitempty"`
	Breakfast           *bool        `json:"food_preference_breakfast,omitempty"`
	Lunch               *bool        `json:"food_preference_lunch,omitempty"`
	Dinner              *bool        `json:"food_preference_dinner,omitempty"`
	MealType            *string      `json:"food_preference_meal_type,omitempty" validate:"omitempty,max=30"`
	SpecialRequirements *string      `json:"food_preference_special_requirements,omitempty" validate:"omitempty,max=500"`
}

func (r *UpsertFoodPreferenceRequest) Normalize() {
	if r.MealType != nil {
		v := strings.ToLower(strings.TrimSpace(*r.MealType))
		r.MealType = &v
	}
	if r.SpecialRequirements != nil {
		v := strings.TrimSpace(*r.SpecialRequirements)
		r.SpecialRequirements = &v
	}
	if r.Date != nil && r.Date.IsZero() {
		r.Date = nil
	}
}

func (r UpsertFoodPreferenceRequest) Apply(m *model.FoodPreference) {
	if r.Breakfast != nil {
		m.FoodPreferenceBreakfast = *r.Breakfast
	}
	if r.Lunch != nil {
		m.FoodPreferenceLunch = *r.Lunch
	}
	if r.Dinner != nil {
		m.FoodPreferenceDinner = *r.Dinner
	}
	if r.MealType != nil {
		m.FoodPreferenceMealType = r.MealType
	}
	if r.SpecialRequirements != nil {
		m.FoodPreferenceSpecialRequirements = r.SpecialRequirements
	}
}

type FoodPreferenceResponse struct {
	FoodPreferenceID    uuid.UUID   `json:"food_preference_id"`
	ResidentID          uuid.UUID   `json:"resident_id"`
	ResidentName        string      `json:"resident_name"`
	RoomNumber          *string     `json:"room_number"`
	Date                dbtime.Date `json:"food_preference_date"`
	Breakfast           bool        `json:"food_preference_breakfast"`
	Lunch               bool        `json:"food_preference_lunch"`
	Dinner              bool        `json:"food_preference_dinner"`
	MealType            *string     `json:"food_preference_meal_type,omitempty"`
	SpecialRequirements *string     `json:"food_preference_special_requirements,omitempty"`
	UpdatedAt           time.Time   `json:"food_preference_updated_at"`
}

func ToFoodPreferenceResponse(m *model.FoodPreference) FoodPreferenceResponse {
	out := FoodPreferenceResponse{
		FoodPreferenceID:    m.FoodPreferenceID,
		ResidentID:          m.FoodPreferenceResidentID,
		Date:                m.FoodPreferenceDate,
		Breakfast:           m.FoodPreferenceBreakfast,
		Lunch:               m.FoodPreferenceLunch,
		Dinner:              m.FoodPreferenceDinner,
		MealType:            m.FoodPreferenceMealType,
		SpecialRequirements: m.FoodPreferenceSpecialRequirements,
		UpdatedAt:           m.FoodPreferenceUpdatedAt,
	}
	if m.Resident != nil {
		out.ResidentName = m.Resident.ResidentName
		if m.Resident.Room != nil {
			num := m.Resident.Room.RoomNumber
			out.RoomNumber = &num
		}
	}
	return out
}

func ToFoodPreferenceResponses(rows []model.FoodPreference) []FoodPreferenceResponse {
	out := make([]FoodPreferenceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToFoodPreferenceResponse(&rows[i]))
	}
	return out
}

// FoodStats counts today's opt-ins per meal, for the kitchen.
type FoodStats struct {
	Date      dbtime.Date `json:"date"`
	Total     int64       `json:"total"`
	Breakfast int64       `json:"breakfast"`
	Lunch     int64       `json:"lunch"`
	Dinner    int64       `json:"dinner"`
}
