package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hostelhub_backend/internals/features/operations/complaints/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

type CreateComplaintRequest struct {
	ResidentID  uuid.UUID                `json:"resident_id"`
	Title       string                   `json:"complaint_title" validate:"required,max=200"`
	Description string                   `json:"complaint_description" validate:"required,max=2000"`
	Category    *string                  `json:"complaint_category,omitempty" validate:"omitempty,max=60"`
	Priority    *model.ComplaintPriority `json:"complaint_priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// UpdateComplaintRequest is sparse. Status changes go through the status endpoint.
type UpdateComplaintRequest struct {
	Title       *string                  `json:"complaint_title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string                  `json:"complaint_description,omitempty" validate:"omitempty,max=2000"`
	Category    *string                  `json:"complaint_category,omitempty" validate:"omitempty,max=60"`
	Priority    *model.ComplaintPriority `json:"complaint_priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

func lowerPriority(p *model.ComplaintPriority) *model.ComplaintPriority {
	if p == nil {
		return nil
	}
	v := model.ComplaintPriority(strings.ToLower(strings.TrimSpace(string(*p))))
	return &v
}

func (r *CreateComplaintRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Priority = lowerPriority(r.Priority)
}

func (r *UpdateComplaintRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	r.Priority = lowerPriority(r.Priority)
}

func (r UpdateComplaintRequest) Apply(m *model.Complaint) {
	if r.Title != nil {
		m.ComplaintTitle = *r.Title
	}
	if r.Description != nil {
		m.ComplaintDescription = *r.Description
	}
	if r.Category != nil {
		m.ComplaintCategory = r.Category
	}
	if r.Priority != nil {
		m.ComplaintPriority = *r.Priority
	}
}

type ComplaintResponse struct {
	ComplaintID           uuid.UUID               `json:"complaint_id"`
	ResidentID            uuid.UUID               `json:"resident_id"`
	ResidentName          string                  `json:"resident_name"`
	RoomNumber            *string                 `json:"room_number"`
	ComplaintTitle        string                  `json:"complaint_title"`
	ComplaintDescription  string                  `json:"complaint_description"`
	ComplaintCategory     *string                 `json:"complaint_category,omitempty"`
	ComplaintPriority     model.ComplaintPriority `json:"complaint_priority"`
	ComplaintStatus       model.ComplaintStatus   `json:"complaint_status"`
	ComplaintResolution   *string                 `json:"complaint_resolution,omitempty"`
	ComplaintDate         dbtime.Date             `json:"complaint_date"`
	ComplaintResolvedDate *dbtime.Date            `json:"complaint_resolved_date,omitempty"`
	ComplaintCreatedAt    time.Time               `json:"complaint_created_at"`
	ComplaintUpdatedAt    time.Time               `json:"complaint_updated_at"`
}

func ToComplaintResponse(m *model.Complaint) ComplaintResponse {
	out := ComplaintResponse{
		ComplaintID:           m.ComplaintID,
		ResidentID:            m.ComplaintResidentID,
		ComplaintTitle:        m.ComplaintTitle,
		ComplaintDescription:  m.ComplaintDescription,
		ComplaintCategory:     m.ComplaintCategory,
		ComplaintPriority:     m.ComplaintPriority,
		ComplaintStatus:       m.ComplaintStatus,
		ComplaintResolution:   m.ComplaintResolution,
		ComplaintDate:         m.ComplaintDate,
		ComplaintResolvedDate: m.ComplaintResolvedDate,
		ComplaintCreatedAt:    m.ComplaintCreatedAt,
		ComplaintUpdatedAt:    m.ComplaintUpdatedAt,
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

func ToComplaintResponses(rows []model.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToComplaintResponse(&rows[i]))
	}
	return out
}

type ComplaintStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}
