// file: internals/features/operations/complaints/controller/complaint_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	residentRepo "hostelhub_backend/internals/features/hostel/residents/repository"
	"hostelhub_backend/internals/features/operations/complaints/dto"
	"hostelhub_backend/internals/features/operations/complaints/model"
	helper "hostelhub_backend/internals/helpers"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
)

type ComplaintController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Clock     dbtime.Clock
}

func NewComplaintController(db *gorm.DB, clock dbtime.Clock) *ComplaintController {
	return &ComplaintController{DB: db, Validator: helper.NewValidator(), Clock: clock}
}

func (h *ComplaintController) find(db *gorm.DB, id uuid.UUID) (*model.Complaint, error) {
	var m model.Complaint
	if err := db.Preload("Resident.Room").Where("complaint_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Complaint", id)
		}
		return nil, err
	}
	return &m, nil
}

// findOwned hides other residents' complaints behind a 404.
func (h *ComplaintController) findOwned(c *fiber.Ctx, id uuid.UUID) (*model.Complaint, error) {
	scope, err := helper.ResidentScope(c)
	if err != nil {
		return nil, err
	}
	m, err := h.find(h.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return nil, err
	}
	if scope != nil && *scope != m.ComplaintResidentID {
		return nil, apperror.NotFound("Complaint", id)
	}
	return m, nil
}

/* ===================== Commands ===================== */

// POST /complaints
func (h *ComplaintController) CreateComplaint(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
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

	db := h.DB.WithContext(c.UserContext())
	if _, err := residentRepo.FindResidentByID(db, req.ResidentID); err != nil {
		return helper.FromError(c, err)
	}

	m := model.Complaint{
		ComplaintResidentID:  req.ResidentID,
		ComplaintTitle:       req.Title,
		ComplaintDescription: req.Description,
		ComplaintCategory:    req.Category,
		ComplaintPriority:    model.PriorityLow,
		ComplaintStatus:      model.ComplaintPending,
		ComplaintDate:        h.Clock.Today(),
	}
	if req.Priority != nil {
		m.ComplaintPriority = *req.Priority
	}
	if err := db.Create(&m).Error; err != nil {
		return helper.FromError(c, err)
	}

	out, err := h.find(db, m.ComplaintID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Complaint submitted successfully", dto.ToComplaintResponse(out))
}

// PUT /complaints/:id
func (h *ComplaintController) UpdateComplaint(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := h.DB.WithContext(c.UserContext())
	m, err := h.find(db, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	req.Apply(m)
	if err := db.Omit(clause.Associations).Save(m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Complaint updated successfully", dto.ToComplaintResponse(m))
}

// PUT /complaints/:id/status?status=&resolution=
func (h *ComplaintController) UpdateComplaintStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	status := model.ComplaintStatus(helper.LowerQuery(c, "status"))
	if !status.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be one of: pending in_progress resolved")
	}

	db := h.DB.WithContext(c.UserContext())
	m, err := h.find(db, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	m.SetStatus(status, h.Clock.Today())
	if res := c.Query("resolution"); res != "" {
		m.ComplaintResolution = &res
	}
	if err := db.Omit(clause.Associations).Save(m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Complaint status updated", dto.ToComplaintResponse(m))
}

// DELETE /complaints/:id
func (h *ComplaintController) DeleteComplaint(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(c.UserContext()).Where("complaint_id = ?", id).Delete(&model.Complaint{})
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, apperror.NotFound("Complaint", id))
	}
	return helper.JsonDeleted(c, "Complaint deleted successfully", fiber.Map{"complaint_id": id})
}

/* ===================== Queries ===================== */

// GET /complaints/:id
func (h *ComplaintController) GetComplaint(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := h.findOwned(c, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToComplaintResponse(m))
}

// GET /complaints?resident_id=&status=&page=&per_page=
func (h *ComplaintController) ListComplaints(c *fiber.Ctx) error {
	residentID, err := helper.ParseUUIDQuery(c, "resident_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	scope, err := helper.ResidentScope(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if scope != nil {
		residentID = scope
	}

	q := h.DB.WithContext(c.UserContext()).Model(&model.Complaint{})
	if residentID != nil {
		q = q.Where("complaint_resident_id = ?", *residentID)
	}
	if s := helper.LowerQuery(c, "status"); s != "" {
		st := model.ComplaintStatus(s)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		q = q.Where("complaint_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 200)
	var rows []model.Complaint
	if err := q.Preload("Resident.Room").
		Order("complaint_created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	pagination := helper.BuildPagination(total, pg, len(rows))
	return helper.JsonList(c, "", dto.ToComplaintResponses(rows), &pagination)
}

// GET /complaints/stats
func (h *ComplaintController) ComplaintStats(c *fiber.Ctx) error {
	byStatus, total, err := helper.CountBy(h.DB.WithContext(c.UserContext()).Model(&model.Complaint{}), "complaint_status")
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ComplaintStats{
		Total:      total,
		Pending:    byStatus[string(model.ComplaintPending)],
		InProgress: byStatus[string(model.ComplaintInProgress)],
		Resolved:   byStatus[string(model.ComplaintResolved)],
	})
}
