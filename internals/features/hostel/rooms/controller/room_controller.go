// file: internals/features/hostel/rooms/controller/room_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/features/hostel/rooms/dto"
	"hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/features/hostel/rooms/repository"
	"hostelhub_backend/internals/features/hostel/rooms/service"
	helper "hostelhub_backend/internals/helpers"
)

type RoomController struct {
	Service   *service.RoomService
	Validator *validator.Validate
}

func NewRoomController(s *service.RoomService) *RoomController {
	return &RoomController{Service: s, Validator: helper.NewValidator()}
}

func (h *RoomController) parseBody(c *fiber.Ctx) (*dto.CreateRoomRequest, error) {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// POST /rooms
func (h *RoomController) CreateRoom(c *fiber.Ctx) error {
	req, err := h.parseBody(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	room, err := h.Service.Create(c.UserContext(), *req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Room created successfully", dto.ToRoomResponse(room))
}

// PUT /rooms/:id
func (h *RoomController) UpdateRoom(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	req, err := h.parseBody(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	room, err := h.Service.Update(c.UserContext(), id, *req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Room updated successfully", dto.ToRoomResponse(room))
}

// DELETE /rooms/:id
func (h *RoomController) DeleteRoom(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Room deleted successfully", fiber.Map{"room_id": id})
}

// GET /rooms/:id
func (h *RoomController) GetRoom(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	room, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToRoomResponse(room))
}

// GET /rooms?status=&type=
func (h *RoomController) ListRooms(c *fiber.Ctx) error {
	var f repository.RoomFilter
	if s := helper.LowerQuery(c, "status"); s != "" {
		st := model.RoomStatus(s)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		f.Status = &st
	}
	if t := helper.LowerQuery(c, "type"); t != "" {
		rt := model.RoomType(t)
		if !rt.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid type")
		}
		f.Type = &rt
	}

	rooms, err := h.Service.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "", dto.ToRoomResponses(rooms), nil)
}

// GET /rooms/available?exclude_maintenance=true
func (h *RoomController) ListAvailableRooms(c *fiber.Ctx) error {
	rooms, err := h.Service.ListAvailable(c.UserContext(), c.QueryBool("exclude_maintenance", false))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "", dto.ToRoomResponses(rooms), nil)
}

// GET /rooms/stats
func (h *RoomController) RoomStats(c *fiber.Ctx) error {
	stats, err := h.Service.Stats(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", stats)
}
