package dto

import (
	"strings"

	"hostelhub_backend/internals/features/operations/visits/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

// VisitRequest serves both create and sparse update. Name is only
// required on create, which the controller checks.
type VisitRequest struct {
	VisitorName       *string      `json:"visit_visitor_name,omitempty" validate:"omitempty,min=1,max=120"`
	VisitorContact    *string      `json:"visit_visitor_contact,omitempty" validate:"omitempty,max=32"`
	VisitorEmail      *string      `json:"visit_visitor_email,omitempty" validate:"omitempty,email"`
	PreferredRoomType *string      `json:"visit_preferred_room_type,omitempty" validate:"omitempty,oneof=single double shared"`
	Message           *string      `json:"visit_message,omitempty" validate:"omitempty,max=1000"`
	VisitDate         *dbtime.Date `json:"visit_date,omitempty"`
	VisitTime         *string      `json:"visit_time,omitempty" validate:"omitempty,max=20"`
}

func blankToNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (r *VisitRequest) Normalize() {
	r.VisitorName = blankToNil(r.VisitorName)
	r.VisitorContact = blankToNil(r.VisitorContact)
	r.VisitorEmail = blankToNil(r.VisitorEmail)
	if t := blankToNil(r.PreferredRoomType); t != nil {
		v := strings.ToLower(*t)
		r.PreferredRoomType = &v
	} else {
		r.PreferredRoomType = nil
	}
	r.Message = blankToNil(r.Message)
	r.VisitTime = blankToNil(r.VisitTime)
	if r.VisitDate != nil && r.VisitDate.IsZero() {
		r.VisitDate = nil
	}
}

func (r VisitRequest) Apply(m *model.Visit) {
	if r.VisitorName != nil {
		m.VisitVisitorName = *r.VisitorName
	}
	if r.VisitorContact != nil {
		m.VisitVisitorContact = r.VisitorContact
	}
	if r.VisitorEmail != nil {
		m.VisitVisitorEmail = r.VisitorEmail
	}
	if r.PreferredRoomType != nil {
		m.VisitPreferredRoomType = r.PreferredRoomType
	}
	if r.Message != nil {
		m.VisitMessage = r.Message
	}
	if r.VisitDate != nil {
		m.VisitDate = *r.VisitDate
	}
	if r.VisitTime != nil {
		m.VisitTime = r.VisitTime
	}
}

type VisitStats struct {
	Total       int64 `json:"total"`
	NewRequests int64 `json:"new_requests"`
	Contacted   int64 `json:"contacted"`
	Closed      int64 `json:"closed"`
}
