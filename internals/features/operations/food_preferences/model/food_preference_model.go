package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

// FoodPreference holds one resident's meal opt-ins for one day.
type FoodPreference struct {
	FoodPreferenceID uuid.UUID `gorm:"column:food_preference_id;type:uuid;primaryKey" json:"food_preference_id"`

	FoodPreferenceResidentID uuid.UUID               `gorm:"column:food_preference_resident_id;type:uuid;not null;uniqueIndex:uq_food_preferences_resident_date,priority:1" json:"food_preference_resident_id"`
	Resident                 *residentModel.Resident `gorm:"foreignKey:FoodPreferenceResidentID;references:ResidentID;constraint:OnDelete:CASCADE" json:"-"`
	FoodPreferenceDate       dbtime.Date             `gorm:"column:food_preference_date;not null;uniqueIndex:uq_food_preferences_resident_date,priority:2;index:idx_food_preferences_date" json:"food_preference_date"`

	FoodPreferenceBreakfast bool `gorm:"column:food_preference_breakfast;not null;default:false" json:"food_preference_breakfast"`
	FoodPreferenceLunch     bool `gorm:"column:food_preference_lunch;not null;default:false" json:"food_preference_lunch"`
	FoodPreferenceDinner    bool `gorm:"column:food_preference_dinner;not null;default:false" json:"food_preference_dinner"`

	// free text, e.g. "veg", "non_veg", "vegan"
	FoodPreferenceMealType            *string `gorm:"column:food_preference_meal_type;type:varchar(30)" json:"food_preference_meal_type,omitempty"`
	FoodPreferenceSpecialRequirements *string `gorm:"column:food_preference_special_requirements;type:varchar(500)" json:"food_preference_special_requirements,omitempty"`

	FoodPreferenceCreatedAt time.Time `gorm:"column:food_preference_created_at;autoCreateTime" json:"food_preference_created_at"`
	FoodPreferenceUpdatedAt time.Time `gorm:"column:food_preference_updated_at;autoUpdateTime" json:"food_preference_updated_at"`
}

func (FoodPreference) TableName() string { return "food_preferences" }

func (m *FoodPreference) BeforeCreate(tx *gorm.DB) error {
	if m.FoodPreferenceID == uuid.Nil {
		m.FoodPreferenceID = uuid.New()
	}
	return nil
}
