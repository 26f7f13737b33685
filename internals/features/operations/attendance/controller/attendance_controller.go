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
	"hostelhub_backend/internals/features/operations/attendance/dto"
	"hostelhub_backend/internals/features/operations/attendance/model"
	helper "hostelhub_backend/internals/helpers"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
)

const clockLayout = "15:04"

type AttendanceController struct {
	DB        *gorm.DB
	Runner    *txretry.Runner
	Validator *validator.Validate
	Clock     dbtime.Clock
}

func NewAttendanceController(db *gorm.DB, runner *txretry.Runner, clock dbtime.Clock) *AttendanceController {
	return &AttendanceController{DB: db, Runner: runner, Validator: helper.NewValidator(), Clock: clock}
}

func DayKey(residentID uuid.UUID, date dbtime.Date) string {
	return fmt.Sprintf("attendance:%s:%s", residentID, date)
}

func duplicateDay(date dbtime.Date) error {
	return apperror.DuplicateRecord(fmt.Sprintf("Attendance for %s is already recorded.", date))
}

func findForDay(tx *gorm.DB, residentID uuid.UUID, date dbtime.Date) (*model.Attendance, error) {
	var m model.Attendance
	if err := tx.Where("attendance_resident_id = ? AND attendance_date = ?", residentID, date).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *AttendanceController) reload(c *fiber.Ctx, id uuid.UUID) (*model.Attendance, error) {
	var m model.Attendance
	if err := h.DB.WithContext(c.UserContext()).Preload("Resident.Room").Where("attendance_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Attendance", id)
		}
		return nil, err
	}
	return &m, nil
}

/* ===================== Commands ===================== */

// POST /attendance
func (h *AttendanceController) CreateAttendance(c *fiber.Ctx) error {
	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	date := h.Clock.Today()
	if req.Date != nil {
		date = *req.Date
	}

	m := model.Attendance{
		AttendanceResidentID:   req.ResidentID,
		AttendanceDate:         date,
		AttendanceStatus:       req.Status,
		AttendanceCheckInTime:  req.CheckInTime,
		AttendanceCheckOutTime: req.CheckOutTime,
		AttendanceRemarks:      req.Remarks,
	}
	err := h.Runner.Run(c.UserContext(), []string{DayKey(req.ResidentID, date)}, func(tx *gorm.DB) error {
		if _, err := residentRepo.FindResidentByID(tx, req.ResidentID); err != nil {
			return err
		}
		if _, err := findForDay(tx, req.ResidentID, date); err == nil {
			return duplicateDay(date)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			if txretry.IsUniqueViolation(err) {
				return duplicateDay(date)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	out, err := h.reload(c, m.AttendanceID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Attendance marked", dto.ToAttendanceResponse(out))
}

// POST /attendance/mark/:residentId?status=
// Upserts today's entry. Marking present stamps the check-in time once.
func (h *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	rid, err := helper.ParseUUIDParam(c, "residentId")
	if err != nil {
		return helper.FromError(c, err)
	}
	status := model.AttendanceStatus(helper.LowerQuery(c, "status"))
	if !status.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be one of: present absent leave")
	}

	now := h.Clock.Now()
	today := dbtime.DateOf(now)
	var id uuid.UUID
	err = h.Runner.Run(c.UserContext(), []string{DayKey(rid, today)}, func(tx *gorm.DB) error {
		if _, err := residentRepo.FindResidentByID(tx, rid); err != nil {
			return err
		}
		m, err := findForDay(tx, rid, today)
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return err
		}
		if isNew {
			m = &model.Attendance{AttendanceResidentID: rid, AttendanceDate: today}
		}
		m.AttendanceStatus = status
		if status == model.AttendancePresent && m.AttendanceCheckInTime == nil {
			stamp := now.Format(clockLayout)
			m.AttendanceCheckInTime = &stamp
		}

		if isNew {
			err = tx.Omit(clause.Associations).Create(m).Error
			if txretry.IsUniqueViolation(err) {
				return apperror.Conflict(err)
			}
		} else {
			err = tx.Omit(clause.Associations).Save(m).Error
		}
		id = m.AttendanceID
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	out, err := h.reload(c, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Attendance marked", dto.ToAttendanceResponse(out))
}

// PUT /attendance/:id
func (h *AttendanceController) UpdateAttendance(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.reload(c, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	req.Apply(m)
	if err := h.DB.WithContext(c.UserContext()).Omit(clause.Associations).Save(m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Attendance updated", dto.ToAttendanceResponse(m))
}

// DELETE /attendance/:id
func (h *AttendanceController) DeleteAttendance(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(c.UserContext()).Where("attendance_id = ?", id).Delete(&model.Attendance{})
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, apperror.NotFound("Attendance", id))
	}
	return helper.JsonDeleted(c, "Attendance deleted", fiber.Map{"attendance_id": id})
}

/* ===================== Queries ===================== */

func (h *AttendanceController) list(c *fiber.Ctx, q *gorm.DB) error {
	var total int64
	if err := q.Model(&model.Attendance{}).Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.ResolvePaging(c, 50, 500)
	var rows []model.Attendance
	if err := q.Preload("Resident.Room").
		Order("attendance_date DESC, attendance_created_at ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	pagination := helper.BuildPagination(total, pg, len(rows))
	return helper.JsonList(c, "", dto.ToAttendanceResponses(rows), &pagination)
}

// GET /attendance
func (h *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	return h.list(c, h.DB.WithContext(c.UserContext()))
}

// GET /attendance/date/:date
func (h *AttendanceController) ListByDate(c *fiber.Ctx) error {
	d, err := dbtime.ParseDate(c.Params("date"))
	if err != nil || d.IsZero() {
		return helper.JsonError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return h.list(c, h.DB.WithContext(c.UserContext()).Where("attendance_date = ?", d))
}

// GET /attendance/today
func (h *AttendanceController) ListToday(c *fiber.Ctx) error {
	return h.list(c, h.DB.WithContext(c.UserContext()).Where("attendance_date = ?", h.Clock.Today()))
}

// GET /attendance/resident/:residentId
func (h *AttendanceController) ListByResident(c *fiber.Ctx) error {
	rid, err := helper.ParseUUIDParam(c, "residentId")
	if err != nil {
		return helper.FromError(c, err)
	}
	scope, err := helper.ResidentScope(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if scope != nil && *scope != rid {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only view your own attendance")
	}
	return h.list(c, h.DB.WithContext(c.UserContext()).Where("attendance_resident_id = ?", rid))
}

// GET /attendance/stats
func (h *AttendanceController) AttendanceStats(c *fiber.Ctx) error {
	today := h.Clock.Today()
	q := h.DB.WithContext(c.UserContext()).Model(&model.Attendance{}).Where("attendance_date = ?", today)
	byStatus, total, err := helper.CountBy(q, "attendance_status")
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.AttendanceStats{
		Date:    today,
		Total:   total,
		Present: byStatus[string(model.AttendancePresent)],
		Absent:  byStatus[string(model.AttendanceAbsent)],
		Leave:   byStatus[string(model.AttendanceLeave)],
	})
}
