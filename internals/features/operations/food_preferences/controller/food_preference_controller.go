// file: internals/features/operations/food_preferences/controller/food_preference_controller.go
package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	residentRepo "hostelhub_backend/internals/features/hostel/residents/repository"
	"hostelhub_backend/internals/features/operations/food_preferences/dto"
	"hostelhub_backend/internals/features/operations/food_preferences/model"
	helper "hostelhub_backend/internals/helpers"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
)

type FoodPreferenceController struct {
	DB        *gorm.DB
	Runner    *txretry.Runner
	Validator *validator.Validate
	Clock     dbtime.Clock
}

func NewFoodPreferenceController(db *gorm.DB, runner *txretry.Runner, clock dbtime.Clock) *FoodPreferenceController {
	return &FoodPreferenceController{DB: db, Runner: runner, Validator: helper.NewValidator(), Clock: clock}
}

// DayKey serializes writers of one (resident, date) row.
func DayKey(residentID uuid.UUID, date dbtime.Date) string {
	return fmt.Sprintf("food:%s:%s", residentID, date)
}

func findForDay(tx *gorm.DB, residentID uuid.UUID, date dbtime.Date) (*model.FoodPreference, error) {
	var m model.FoodPreference
	err := tx.Where("food_preference_resident_id = ? AND food_preference_date = ?", residentID, date).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

/* ===================== Commands ===================== */

// POST /food
func (h *FoodPreferenceController) UpsertPreference(c *fiber.Ctx) error {
	var req dto.UpsertFoodPreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	scope, err := helper.ResidentScope(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if scope != nil {
		req.ResidentID = *scope
	}
	if req.ResidentID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "resident_id is required")
	}
	date := h.Clock.Today()
	if req.Date != nil {
		date = *req.Date
	}

	var saved *model.FoodPreference
	created := false
	err = h.Runner.Run(c.UserContext(), []string{DayKey(req.ResidentID, date)}, func(tx *gorm.DB) error {
		if _, err := residentRepo.FindResidentByID(tx, req.ResidentID); err != nil {
			return err
		}
		m, err := findForDay(tx, req.ResidentID, date)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			m = &model.FoodPreference{FoodPreferenceResidentID: req.ResidentID, FoodPreferenceDate: date}
			req.Apply(m)
			if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
				// another process won the insert; retry as an update
				if txretry.IsUniqueViolation(err) {
					return apperror.Conflict(err)
				}
				return err
			}
			created = true
		case err != nil:
			return err
		default:
			created = false
			req.Apply(m)
			if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
				return err
			}
		}
		saved = m
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	var out model.FoodPreference
	if err := h.DB.WithContext(c.UserContext()).Preload("Resident.Room").
		Where("food_preference_id = ?", saved.FoodPreferenceID).First(&out).Error; err != nil {
		return helper.FromError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Food preference saved", dto.ToFoodPreferenceResponse(&out))
	}
	return helper.JsonUpdated(c, "Food preference saved", dto.ToFoodPreferenceResponse(&out))
}

// DELETE /food/:id
func (h *FoodPreferenceController) DeletePreference(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(c.UserContext()).Where("food_preference_id = ?", id).Delete(&model.FoodPreference{})
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, apperror.NotFound("FoodPreference", id))
	}
	return helper.JsonDeleted(c, "Preference deleted", fiber.Map{"food_preference_id": id})
}

/* ===================== Queries ===================== */

func (h *FoodPreferenceController) list(c *fiber.Ctx, scope func(*gorm.DB) *gorm.DB) error {
	var rows []model.FoodPreference
	q := h.DB.WithContext(c.UserContext()).Preload("Resident.Room")
	if err := scope(q).Order("food_preference_date DESC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "", dto.ToFoodPreferenceResponses(rows), nil)
}

// GET /food
func (h *FoodPreferenceController) ListPreferences(c *fiber.Ctx) error {
	return h.list(c, func(q *gorm.DB) *gorm.DB { return q })
}

// GET /food/date/:date
func (h *FoodPreferenceController) ListByDate(c *fiber.Ctx) error {
	d, err := dbtime.ParseDate(c.Params("date"))
	if err != nil || d.IsZero() {
		return helper.JsonError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return h.list(c, func(q *gorm.DB) *gorm.DB { return q.Where("food_preference_date = ?", d) })
}

// GET /food/today
func (h *FoodPreferenceController) ListToday(c *fiber.Ctx) error {
	today := h.Clock.Today()
	return h.list(c, func(q *gorm.DB) *gorm.DB { return q.Where("food_preference_date = ?", today) })
}

// residentParam reads :residentId and enforces ownership for resident callers.
func residentParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := helper.ParseUUIDParam(c, "residentId")
	if err != nil {
		return uuid.Nil, err
	}
	scope, err := helper.ResidentScope(c)
	if err != nil {
		return uuid.Nil, err
	}
	if scope != nil && *scope != id {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "You can only view your own preferences")
	}
	return id, nil
}

// GET /food/resident/:residentId
func (h *FoodPreferenceController) ListByResident(c *fiber.Ctx) error {
	rid, err := residentParam(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	return h.list(c, func(q *gorm.DB) *gorm.DB { return q.Where("food_preference_resident_id = ?", rid) })
}

// GET /food/resident/:residentId/today
func (h *FoodPreferenceController) TodayForResident(c *fiber.Ctx) error {
	rid, err := residentParam(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := findForDay(h.DB.WithContext(c.UserContext()).Preload("Resident.Room"), rid, h.Clock.Today())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonOK(c, "No preference set for today.", nil)
	}
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToFoodPreferenceResponse(m))
}

// GET /food/stats
func (h *FoodPreferenceController) FoodStats(c *fiber.Ctx) error {
	today := h.Clock.Today()
	var row struct {
		Total     int64
		Breakfast int64
		Lunch     int64
		Dinner    int64
	}
	err := h.DB.WithContext(c.UserContext()).Model(&model.FoodPreference{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN food_preference_breakfast THEN 1 ELSE 0 END), 0) AS breakfast,
			COALESCE(SUM(CASE WHEN food_preference_lunch THEN 1 ELSE 0 END), 0) AS lunch,
			COALESCE(SUM(CASE WHEN food_preference_dinner THEN 1 ELSE 0 END), 0) AS dinner`).
		Where("food_preference_date = ?", today).
		Scan(&row).Error
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.FoodStats{
		Date:      today,
		Total:     row.Total,
		Breakfast: row.Breakfast,
		Lunch:     row.Lunch,
		Dinner:    row.Dinner,
	})
}
