package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub_backend/internals/helpers/dbtime"
)

type VisitStatus string

const (
	VisitNew       VisitStatus = "new"
	VisitContacted VisitStatus = "contacted"
	VisitClosed    VisitStatus = "closed"
)

func (s VisitStatus) Valid() bool {
	switch s {
	case VisitNew, VisitContacted, VisitClosed:
		return true
	}
	return false
}

// Visit is a prospective resident's viewing request.
type Visit struct {
	VisitID uuid.UUID `gorm:"column:visit_id;type:uuid;primaryKey" json:"visit_id"`

	VisitVisitorName       string  `gorm:"column:visit_visitor_name;type:varchar(120);not null" json:"visit_visitor_name"`
	VisitVisitorContact    *string `gorm:"column:visit_visitor_contact;type:varchar(32)" json:"visit_visitor_contact,omitempty"`
	VisitVisitorEmail      *string `gorm:"column:visit_visitor_email;type:varchar(160)" json:"visit_visitor_email,omitempty"`
	VisitPreferredRoomType *string `gorm:"column:visit_preferred_room_type;type:varchar(20)" json:"visit_preferred_room_type,omitempty"`
	VisitMessage           *string `gorm:"column:visit_message;type:varchar(1000)" json:"visit_message,omitempty"`

	VisitDate dbtime.Date `gorm:"column:visit_date;not null;index:idx_visits_date" json:"visit_date"`
	// free text, e.g. "10:30"
	VisitTime *string `gorm:"column:visit_time;type:varchar(20)" json:"visit_time,omitempty"`

	VisitStatus     VisitStatus `gorm:"column:visit_status;type:varchar(20);not null;default:'new';index:idx_visits_status" json:"visit_status"`
	VisitAdminNotes *string     `gorm:"column:visit_admin_notes;type:varchar(1000)" json:"visit_admin_notes,omitempty"`

	VisitCreatedAt time.Time `gorm:"column:visit_created_at;autoCreateTime" json:"visit_created_at"`
	VisitUpdatedAt time.Time `gorm:"column:visit_updated_at;autoUpdateTime" json:"visit_updated_at"`
}

func (Visit) TableName() string { return "visits" }

func (m *Visit) BeforeCreate(tx *gorm.DB) error {
	if m.VisitID == uuid.Nil {
		m.VisitID = uuid.New()
	}
	if m.VisitStatus == "" {
		m.VisitStatus = VisitNew
	}
	return nil
}
