package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hostelhub_backend/internals/features/hostel/residents/model"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type CreateResidentRequest struct {
	ResidentName     string                `json:"resident_name" validate:"required,max=120"`
	ResidentNIC      *string               `json:"resident_nic,omitempty" validate:"omitempty,max=32"`
	ResidentContact  *string               `json:"resident_contact,omitempty" validate:"omitempty,phone"`
	ResidentEmail    *string               `json:"resident_email,omitempty" validate:"omitempty,email"`
	ResidentCourse   *string               `json:"resident_course,omitempty" validate:"omitempty,max=120"`
	ResidentRating   *int                  `json:"resident_rating,omitempty" validate:"omitempty,min=1,max=5"`
	ResidentJoinDate *dbtime.Date          `json:"resident_join_date,omitempty"`
	ResidentStatus   *model.ResidentStatus `json:"resident_status,omitempty" validate:"omitempty,oneof=active pending inactive"`
	RoomID           *uuid.UUID            `json:"room_id,omitempty"`
}

// UpdateResidentRequest is sparse: nil fields are left untouched.
type UpdateResidentRequest struct {
	ResidentName      *string               `json:"resident_name,omitempty" validate:"omitempty,min=1,max=120"`
	ResidentNIC       *string               `json:"resident_nic,omitempty" validate:"omitempty,max=32"`
	ResidentContact   *string               `json:"resident_contact,omitempty" validate:"omitempty,phone"`
	ResidentEmail     *string               `json:"resident_email,omitempty" validate:"omitempty,email"`
	ResidentCourse    *string               `json:"resident_course,omitempty" validate:"omitempty,max=120"`
	ResidentRating    *int                  `json:"resident_rating,omitempty" validate:"omitempty,min=1,max=5"`
	ResidentJoinDate  *dbtime.Date          `json:"resident_join_date,omitempty"`
	ResidentLeaveDate *dbtime.Date          `json:"resident_leave_date,omitempty"`
	ResidentStatus    *model.ResidentStatus `json:"resident_status,omitempty" validate:"omitempty,oneof=active pending inactive"`
	RoomID            *uuid.UUID            `json:"room_id,omitempty"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// blankToNil: an empty optional string is treated as absent.
func blankToNil(p *string) *string {
	p = trimPtr(p)
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func lowerStatus(s *model.ResidentStatus) *model.ResidentStatus {
	if s == nil {
		return nil
	}
	v := model.ResidentStatus(strings.ToLower(strings.TrimSpace(string(*s))))
	return &v
}

func (r *CreateResidentRequest) Normalize() {
	r.ResidentName = strings.TrimSpace(r.ResidentName)
	r.ResidentNIC = blankToNil(r.ResidentNIC)
	r.ResidentContact = blankToNil(r.ResidentContact)
	r.ResidentEmail = blankToNil(r.ResidentEmail)
	r.ResidentCourse = blankToNil(r.ResidentCourse)
	r.ResidentStatus = lowerStatus(r.ResidentStatus)
}

func (r *UpdateResidentRequest) Normalize() {
	r.ResidentName = trimPtr(r.ResidentName)
	r.ResidentNIC = blankToNil(r.ResidentNIC)
	r.ResidentContact = blankToNil(r.ResidentContact)
	r.ResidentEmail = blankToNil(r.ResidentEmail)
	r.ResidentCourse = blankToNil(r.ResidentCourse)
	r.ResidentStatus = lowerStatus(r.ResidentStatus)
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type ResidentResponse struct {
	ResidentID        uuid.UUID            `json:"resident_id"`
	ResidentName      string               `json:"resident_name"`
	ResidentNIC       *string              `json:"resident_nic,omitempty"`
	ResidentContact   *string              `json:"resident_contact,omitempty"`
	ResidentEmail     *string              `json:"resident_email,omitempty"`
	ResidentCourse    *string              `json:"resident_course,omitempty"`
	ResidentRating    int                  `json:"resident_rating"`
	ResidentJoinDate  dbtime.Date          `json:"resident_join_date"`
	ResidentLeaveDate *dbtime.Date         `json:"resident_leave_date,omitempty"`
	ResidentStatus    model.ResidentStatus `json:"resident_status"`

	RoomID     *uuid.UUID          `json:"room_id"`
	RoomNumber *string             `json:"room_number"`
	RoomType   *roomModel.RoomType `json:"room_type"`

	ResidentCreatedAt time.Time `json:"resident_created_at"`
	ResidentUpdatedAt time.Time `json:"resident_updated_at"`
}

func ToResidentResponse(m *model.Resident) ResidentResponse {
	out := ResidentResponse{
		ResidentID:        m.ResidentID,
		ResidentName:      m.ResidentName,
		ResidentNIC:       m.ResidentNIC,
		ResidentContact:   m.ResidentContact,
		ResidentEmail:     m.ResidentEmail,
		ResidentCourse:    m.ResidentCourse,
		ResidentRating:    m.ResidentRating,
		ResidentJoinDate:  m.ResidentJoinDate,
		ResidentLeaveDate: m.ResidentLeaveDate,
		ResidentStatus:    m.ResidentStatus,
		RoomID:            m.ResidentRoomID,
		ResidentCreatedAt: m.ResidentCreatedAt,
		ResidentUpdatedAt: m.ResidentUpdatedAt,
	}
	if m.Room != nil {
		num := m.Room.RoomNumber
		typ := m.Room.RoomType
		out.RoomNumber = &num
		out.RoomType = &typ
	}
	return out
}

func ToResidentResponses(rows []model.Resident) []ResidentResponse {
	out := make([]ResidentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToResidentResponse(&rows[i]))
	}
	return out
}

type ResidentStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Pending  int64 `json:"pending"`
	Inactive int64 `json:"inactive"`
}
