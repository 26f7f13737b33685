package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub_backend/internals/features/operations/visits/dto"
	"hostelhub_backend/internals/features/operations/visits/model"
	helper "hostelhub_backend/internals/helpers"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
)

type VisitController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Clock     dbtime.Clock
}

func NewVisitController(db *gorm.DB, clock dbtime.Clock) *VisitController {
	return &VisitController{DB: db, Validator: helper.NewValidator(), Clock: clock}
}

func (h *VisitController) parse(c *fiber.Ctx) (*dto.VisitRequest, error) {
	var req dto.VisitRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *VisitController) find(db *gorm.DB, id uuid.UUID) (*model.Visit, error) {
	var m model.Visit
	if err := db.Where("visit_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Visit", id)
		}
		return nil, err
	}
	return &m, nil
}

// POST /visits (public booking form)
func (h *VisitController) CreateVisit(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if req.VisitorName == nil {
		return helper.JsonValidationError(c, map[string][]string{"visit_visitor_name": {"is required"}})
	}

	m := model.Visit{VisitDate: h.Clock.Today(), VisitStatus: model.VisitNew}
	req.Apply(&m)
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Visit request received. We will contact you soon.", m)
}

// PUT /visits/:id
func (h *VisitController) UpdateVisit(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	req, err := h.parse(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := h.DB.WithContext(c.UserContext())
	m, err := h.find(db, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	req.Apply(m)
	if err := db.Save(m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Visit updated successfully", m)
}

// PUT /visits/:id/status?status=&admin_notes=
func (h *VisitController) UpdateVisitStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	status := model.VisitStatus(helper.LowerQuery(c, "status"))
	if !status.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be one of: new contacted closed")
	}

	db := h.DB.WithContext(c.UserContext())
	m, err := h.find(db, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	m.VisitStatus = status
	if notes := c.Query("admin_notes"); notes != "" {
		m.VisitAdminNotes = &notes
	}
	if err := db.Save(m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Visit status updated", m)
}

// DELETE /visits/:id
func (h *VisitController) DeleteVisit(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(c.UserContext()).Where("visit_id = ?", id).Delete(&model.Visit{})
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, apperror.NotFound("Visit", id))
	}
	return helper.JsonDeleted(c, "Visit deleted successfully", fiber.Map{"visit_id": id})
}

// GET /visits/:id
func (h *VisitController) GetVisit(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := h.find(h.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

// GET /visits?status=
func (h *VisitController) ListVisits(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&model.Visit{})
	if s := helper.LowerQuery(c, "status"); s != "" {
		st := model.VisitStatus(s)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		q = q.Where("visit_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 200)
	var rows []model.Visit
	if err := q.Order("visit_date DESC, visit_created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	pagination := helper.BuildPagination(total, pg, len(rows))
	return helper.JsonList(c, "", rows, &pagination)
}

// GET /visits/stats
func (h *VisitController) VisitStats(c *fiber.Ctx) error {
	byStatus, total, err := helper.CountBy(h.DB.WithContext(c.UserContext()).Model(&model.Visit{}), "visit_status")
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.VisitStats{
		Total:       total,
		NewRequests: byStatus[string(model.VisitNew)],
		Contacted:   byStatus[string(model.VisitContacted)],
		Closed:      byStatus[string(model.VisitClosed)],
	})
}
