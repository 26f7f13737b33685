package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

type ComplaintPriority string
type ComplaintStatus string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
)

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

func (p ComplaintPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved:
		return true
	}
	return false
}

type Complaint struct {
	ComplaintID uuid.UUID `gorm:"column:complaint_id;type:uuid;primaryKey" json:"complaint_id"`

	ComplaintResidentID uuid.UUID               `gorm:"column:complaint_resident_id;type:uuid;not null;index:idx_complaints_resident" json:"complaint_resident_id"`
	Resident            *residentModel.Resident `gorm:"foreignKey:ComplaintResidentID;references:ResidentID;constraint:OnDelete:CASCADE" json:"-"`

	ComplaintTitle       string            `gorm:"column:complaint_title;type:varchar(200);not null" json:"complaint_title"`
	ComplaintDescription string            `gorm:"column:complaint_description;type:varchar(2000)" json:"complaint_description"`
	ComplaintCategory    *string           `gorm:"column:complaint_category;type:varchar(60)" json:"complaint_category,omitempty"`
	ComplaintPriority    ComplaintPriority `gorm:"column:complaint_priority;type:varchar(10);not null;default:'low'" json:"complaint_priority"`
	ComplaintStatus      ComplaintStatus   `gorm:"column:complaint_status;type:varchar(20);not null;default:'pending';index:idx_complaints_status" json:"complaint_status"`
	ComplaintResolution  *string           `gorm:"column:complaint_resolution;type:varchar(2000)" json:"complaint_resolution,omitempty"`

	ComplaintDate         dbtime.Date  `gorm:"column:complaint_date;not null" json:"complaint_date"`
	ComplaintResolvedDate *dbtime.Date `gorm:"column:complaint_resolved_date" json:"complaint_resolved_date,omitempty"`

	ComplaintCreatedAt time.Time `gorm:"column:complaint_created_at;autoCreateTime" json:"complaint_created_at"`
	ComplaintUpdatedAt time.Time `gorm:"column:complaint_updated_at;autoUpdateTime" json:"complaint_updated_at"`
}

func (Complaint) TableName() string { return "complaints" }

func (m *Complaint) BeforeCreate(tx *gorm.DB) error {
	if m.ComplaintID == uuid.Nil {
		m.ComplaintID = uuid.New()
	}
	if m.ComplaintPriority == "" {
		m.ComplaintPriority = PriorityLow
	}
	if m.ComplaintStatus == "" {
		m.ComplaintStatus = ComplaintPending
	}
	return nil
}

// SetStatus records today as the resolved date when moving to resolved.
func (m *Complaint) SetStatus(s ComplaintStatus, today dbtime.Date) {
	m.ComplaintStatus = s
	if s == ComplaintResolved {
		m.ComplaintResolvedDate = today.Ptr()
	}
}
