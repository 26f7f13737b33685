package controller

import (
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internals/features/operations/cleaning/dto"
	"hostelhub_backend/internals/features/operations/cleaning/model"
	helper "hostelhub_backend/internals/helpers"
	"hostelhub_backend/internals/helpers/apperror"
)

type CleaningTaskController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCleaningTaskController(db *gorm.DB) *CleaningTaskController {
	return &CleaningTaskController{DB: db, Validator: helper.NewValidator()}
}

// POST /cleaning
func (h *CleaningTaskController) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateCleaningTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Cleaning task created", m)
}

// PUT /cleaning/:id
func (h *CleaningTaskController) UpdateTask(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateCleaningTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := h.DB.WithContext(c.UserContext())
	var m model.CleaningTask
	if err := db.Where("cleaning_task_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, apperror.NotFound("CleaningTask", id))
		}
		return helper.FromError(c, err)
	}
	req.Apply(&m)
	if err := db.Save(&m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Cleaning task updated", m)
}

// DELETE /cleaning/:id
func (h *CleaningTaskController) DeleteTask(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(c.UserContext()).Where("cleaning_task_id = ?", id).Delete(&model.CleaningTask{})
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, apperror.NotFound("CleaningTask", id))
	}
	return helper.JsonDeleted(c, "Cleaning task deleted", fiber.Map{"cleaning_task_id": id})
}

// GET /cleaning/:id
func (h *CleaningTaskController) GetTask(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var m model.CleaningTask
	if err := h.DB.WithContext(c.UserContext()).Where("cleaning_task_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, apperror.NotFound("CleaningTask", id))
		}
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

// GET /cleaning?day_of_week=
func (h *CleaningTaskController) ListTasks(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&model.CleaningTask{})
	if day := helper.LowerQuery(c, "day_of_week"); day != "" {
		if !model.ValidDay(day) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid day_of_week")
		}
		q = q.Where("cleaning_task_day_of_week = ?", day)
	}

	var rows []model.CleaningTask
	if err := q.Order("cleaning_task_time_slot ASC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	slices.SortStableFunc(rows, func(a, b model.CleaningTask) int {
		return model.DayIndex(a.CleaningTaskDayOfWeek) - model.DayIndex(b.CleaningTaskDayOfWeek)
	})
	return helper.JsonList(c, "", rows, nil)
}
