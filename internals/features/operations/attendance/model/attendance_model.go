package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

// Attendance is one resident's roll-call entry for one day.
type Attendance struct {
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`

	AttendanceResidentID uuid.UUID               `gorm:"column:attendance_resident_id;type:uuid;not null;uniqueIndex:uq_attendances_resident_date,priority:1" json:"attendance_resident_id"`
	Resident             *residentModel.Resident `gorm:"foreignKey:AttendanceResidentID;references:ResidentID;constraint:OnDelete:CASCADE" json:"-"`
	AttendanceDate       dbtime.Date             `gorm:"column:attendance_date;not null;uniqueIndex:uq_attendances_resident_date,priority:2;index:idx_attendances_date" json:"attendance_date"`

	AttendanceStatus       AttendanceStatus `gorm:"column:attendance_status;type:varchar(10);not null" json:"attendance_status"`
	AttendanceCheckInTime  *string          `gorm:"column:attendance_check_in_time;type:varchar(10)" json:"attendance_check_in_time,omitempty"`
	AttendanceCheckOutTime *string          `gorm:"column:attendance_check_out_time;type:varchar(10)" json:"attendance_check_out_time,omitempty"`
	AttendanceRemarks      *string          `gorm:"column:attendance_remarks;type:varchar(500)" json:"attendance_remarks,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
}

func (Attendance) TableName() string { return "attendances" }

func (m *Attendance) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
