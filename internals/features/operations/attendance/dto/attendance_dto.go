package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hostelhub_backend/internals/features/operations/attendance/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

type CreateAttendanceRequest struct {
	ResidentID   uuid.UUID              `json:"resident_id" validate:"required"`
	Date         *dbtime.Date           `json:"attendance_date,omitempty"`
	Status       model.AttendanceStatus `json:"attendance_status" validate:"required,oneof=present absent leave"`
	CheckInTime  *string                `json:"attendance_check_in_time,omitempty" validate:"omitempty,max=10"`
	CheckOutTime *string                `json:"attendance_check_out_time,omitempty" validate:"omitempty,max=10"`
	Remarks      *string                `json:"attendance_remarks,omitempty" validate:"omitempty,max=500"`
}

type UpdateAttendanceRequest struct {
	Status       *model.AttendanceStatus `json:"attendance_status,omitempty" validate:"omitempty,oneof=present absent leave"`
	CheckInTime  *string                 `json:"attendance_check_in_time,omitempty" validate:"omitempty,max=10"`
	CheckOutTime *string                 `json:"attendance_check_out_time,omitempty" validate:"omitempty,max=10"`
	Remarks      *string                 `json:"attendance_remarks,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateAttendanceRequest) Normalize() {
	r.Status = model.AttendanceStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if r.Date != nil && r.Date.IsZero() {
		r.Date = nil
	}
}

func (r *UpdateAttendanceRequest) Normalize() {
	if r.Status != nil {
		v := model.AttendanceStatus(strings.ToLower(strings.TrimSpace(string(*r.Status))))
		r.Status = &v
	}
}

func (r UpdateAttendanceRequest) Apply(m *model.Attendance) {
	if r.Status != nil {
		m.AttendanceStatus = *r.Status
	}
	if r.CheckInTime != nil {
		m.AttendanceCheckInTime = r.CheckInTime
	}
	if r.CheckOutTime != nil {
		m.AttendanceCheckOutTime = r.CheckOutTime
	}
	if r.Remarks != nil {
		m.AttendanceRemarks = r.Remarks
	}
}

type AttendanceResponse struct {
	AttendanceID uuid.UUID              `json:"attendance_id"`
	ResidentID   uuid.UUID              `json:"resident_id"`
	ResidentName string                 `json:"resident_name"`
	RoomNumber   *string                `json:"room_number"`
	Date         dbtime.Date            `json:"attendance_date"`
	Status       model.AttendanceStatus `json:"attendance_status"`
	CheckInTime  *string                `json:"attendance_check_in_time,omitempty"`
	CheckOutTime *string                `json:"attendance_check_out_time,omitempty"`
	Remarks      *string                `json:"attendance_remarks,omitempty"`
	UpdatedAt    time.Time              `json:"attendance_updated_at"`
}

func ToAttendanceResponse(m *model.Attendance) AttendanceResponse {
	out := AttendanceResponse{
		AttendanceID: m.AttendanceID,
		ResidentID:   m.AttendanceResidentID,
		Date:         m.AttendanceDate,
		Status:       m.AttendanceStatus,
		CheckInTime:  m.AttendanceCheckInTime,
		CheckOutTime: m.AttendanceCheckOutTime,
		Remarks:      m.AttendanceRemarks,
		UpdatedAt:    m.AttendanceUpdatedAt,
	}
	if m.Resident != nil {
		out.ResidentName = m.Resident.ResidentName
		if m.Resident.Room != nil {
			num := m.Resident.Room.RoomNumber
			out.RoomNumber = &num
		}
	}
	return out
}

func ToAttendanceResponses(rows []model.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAttendanceResponse(&rows[i]))
	}
	return out
}

type AttendanceStats struct {
	Date    dbtime.Date `json:"date"`
	Total   int64       `json:"total"`
	Present int64       `json:"present"`
	Absent  int64       `json:"absent"`
	Leave   int64       `json:"leave"`
}
