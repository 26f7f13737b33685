// file: internals/features/hostel/residents/controller/resident_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/features/hostel/residents/dto"
	"hostelhub_backend/internals/features/hostel/residents/model"
	"hostelhub_backend/internals/features/hostel/residents/service"
	helper "hostelhub_backend/internals/helpers"
)

type ResidentController struct {
	Service   *service.ResidentService
	Validator *validator.Validate
}

func NewResidentController(s *service.ResidentService) *ResidentController {
	return &ResidentController{Service: s, Validator: helper.NewValidator()}
}

// POST /residents
func (h *ResidentController) CreateResident(c *fiber.Ctx) error {
	var req dto.CreateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := h.Service.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	// reload for the room join
	if res.ResidentRoomID != nil {
		if full, err := h.Service.Get(c.UserContext(), res.ResidentID); err == nil {
			res = full
		}
	}
	return helper.JsonCreated(c, "Resident created successfully", dto.ToResidentResponse(res))
}

// PATCH|PUT /residents/:id
func (h *ResidentController) UpdateResident(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := h.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Resident updated successfully", dto.ToResidentResponse(res))
}

// DELETE /residents/:id
func (h *ResidentController) DeleteResident(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Resident deleted successfully", fiber.Map{"resident_id": id})
}

// GET /residents/:id
func (h *ResidentController) GetResident(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToResidentResponse(res))
}

// GET /residents?name=&status=
func (h *ResidentController) ListResidents(c *fiber.Ctx) error {
	var status *model.ResidentStatus
	if s := helper.LowerQuery(c, "status"); s != "" {
		st := model.ResidentStatus(s)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		status = &st
	}

	rows, err := h.Service.List(c.UserContext(), c.Query("name"), status)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "", dto.ToResidentResponses(rows), nil)
}

// PUT /residents/:id/assign-room/:roomId
func (h *ResidentController) AssignRoom(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	roomID, err := helper.ParseUUIDParam(c, "roomId")
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := h.Service.AssignRoom(c.UserContext(), id, roomID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Room assigned successfully", dto.ToResidentResponse(res))
}

// PUT /residents/:id/remove-room
func (h *ResidentController) RemoveFromRoom(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := h.Service.RemoveFromRoom(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Resident removed from room", dto.ToResidentResponse(res))
}

// GET /residents/stats
func (h *ResidentController) ResidentStats(c *fiber.Ctx) error {
	stats, err := h.Service.Stats(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", stats)
}
