package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

// FacilityList accepts either ["AC","WiFi"] or "AC,WiFi".
type FacilityList []string

func (f *FacilityList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = cleanFacilities(list)
		return nil
	}
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*f = nil
		return nil
	}
	*f = cleanFacilities(strings.Split(*s, ","))
	return nil
}

func cleanFacilities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

/* =========================================================
   REQUEST DTOs
========================================================= */

// CreateRoomRequest is also the PUT body: required attrs are replaced,
// optional ones only when present.
type CreateRoomRequest struct {
	RoomNumber        string           `json:"room_number" validate:"required,max=20"`
	RoomType          model.RoomType   `json:"room_type" validate:"required,oneof=single double shared"`
	RoomPricePerMonth *decimal.Decimal `json:"room_price_per_month" validate:"required"`
	RoomCapacity      int              `json:"room_capacity" validate:"required,min=1"`

	RoomFacilities  *FacilityList     `json:"room_facilities,omitempty"`
	RoomImageURL    *string           `json:"room_image_url,omitempty" validate:"omitempty,url"`
	RoomStatus      *model.RoomStatus `json:"room_status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
	RoomVacancyDate *dbtime.Date      `json:"room_vacancy_date,omitempty"`
}

type UpdateRoomRequest = CreateRoomRequest

func (r *CreateRoomRequest) Normalize() {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	r.RoomType = model.RoomType(strings.ToLower(strings.TrimSpace(string(r.RoomType))))
	if r.RoomStatus != nil {
		s := model.RoomStatus(strings.ToLower(strings.TrimSpace(string(*r.RoomStatus))))
		r.RoomStatus = &s
	}
}

type ListRoomsQuery struct {
	Status string `query:"status"`
	Type   string `query:"type"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type RoomResponse struct {
	RoomID            uuid.UUID        `json:"room_id"`
	RoomNumber        string           `json:"room_number"`
	RoomType          model.RoomType   `json:"room_type"`
	RoomPricePerMonth decimal.Decimal  `json:"room_price_per_month"`
	RoomCapacity      int              `json:"room_capacity"`
	RoomOccupancy     int              `json:"room_current_occupancy"`
	RoomAvailable     int              `json:"room_available_spots"`
	RoomFacilities    []string         `json:"room_facilities"`
	RoomImageURL      *string          `json:"room_image_url,omitempty"`
	RoomStatus        model.RoomStatus `json:"room_status"`
	RoomVacancyDate   *dbtime.Date     `json:"room_vacancy_date,omitempty"`
	RoomCreatedAt     time.Time        `json:"room_created_at"`
	RoomUpdatedAt     time.Time        `json:"room_updated_at"`
}

func ToRoomResponse(m *model.Room) RoomResponse {
	facilities := []string(m.RoomFacilities)
	if facilities == nil {
		facilities = []string{}
	}
	return RoomResponse{
		RoomID:            m.RoomID,
		RoomNumber:        m.RoomNumber,
		RoomType:          m.RoomType,
		RoomPricePerMonth: m.RoomPricePerMonth,
		RoomCapacity:      m.RoomCapacity,
		RoomOccupancy:     m.RoomOccupancy,
		RoomAvailable:     m.AvailableSpots(),
		RoomFacilities:    facilities,
		RoomImageURL:      m.RoomImageURL,
		RoomStatus:        m.RoomStatus,
		RoomVacancyDate:   m.RoomVacancyDate,
		RoomCreatedAt:     m.RoomCreatedAt,
		RoomUpdatedAt:     m.RoomUpdatedAt,
	}
}

func ToRoomResponses(rows []model.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToRoomResponse(&rows[i]))
	}
	return out
}

type RoomStats struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Occupied    int64 `json:"occupied"`
	Maintenance int64 `json:"maintenance"`
}
