// file: internals/features/hostel/residents/model/resident_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

type ResidentStatus string

const (
	ResidentStatusActive   ResidentStatus = "active"
	ResidentStatusPending  ResidentStatus = "pending"
	ResidentStatusInactive ResidentStatus = "inactive"
)

func (s ResidentStatus) Valid() bool {
	switch s {
	case ResidentStatusActive, ResidentStatusPending, ResidentStatusInactive:
		return true
	}
	return false
}

const DefaultRating = 3

type Resident struct {
	ResidentID uuid.UUID `gorm:"column:resident_id;type:uuid;primaryKey" json:"resident_id"`

	ResidentName    string  `gorm:"column:resident_name;type:varchar(120);not null" json:"resident_name"`
	ResidentNIC     *string `gorm:"column:resident_nic;type:varchar(32);uniqueIndex:uq_residents_nic" json:"resident_nic,omitempty"`
	ResidentContact *string `gorm:"column:resident_contact;type:varchar(32)" json:"resident_contact,omitempty"`
	ResidentEmail   *string `gorm:"column:resident_email;type:varchar(160);index:idx_residents_email" json:"resident_email,omitempty"`
	ResidentCourse  *string `gorm:"column:resident_course;type:varchar(120)" json:"resident_course,omitempty"`
	ResidentRating  int     `gorm:"column:resident_rating;not null;default:3" json:"resident_rating"`

	ResidentJoinDate  dbtime.Date    `gorm:"column:resident_join_date;not null" json:"resident_join_date"`
	ResidentLeaveDate *dbtime.Date   `gorm:"column:resident_leave_date" json:"resident_leave_date,omitempty"`
	ResidentStatus    ResidentStatus `gorm:"column:resident_status;type:varchar(20);not null;default:'active';index:idx_residents_status" json:"resident_status"`

	// set and cleared by the allocation engine only
	ResidentRoomID *uuid.UUID      `gorm:"column:resident_room_id;type:uuid;index:idx_residents_room" json:"resident_room_id,omitempty"`
	Room           *roomModel.Room `gorm:"foreignKey:ResidentRoomID;references:RoomID;constraint:OnDelete:RESTRICT" json:"-"`

	ResidentCreatedAt time.Time `gorm:"column:resident_created_at;autoCreateTime" json:"resident_created_at"`
	ResidentUpdatedAt time.Time `gorm:"column:resident_updated_at;autoUpdateTime" json:"resident_updated_at"`
}

func (Resident) TableName() string { return "residents" }

func (r *Resident) BeforeCreate(tx *gorm.DB) error {
	if r.ResidentID == uuid.Nil {
		r.ResidentID = uuid.New()
	}
	if r.ResidentStatus == "" {
		r.ResidentStatus = ResidentStatusActive
	}
	if r.ResidentRating == 0 {
		r.ResidentRating = DefaultRating
	}
	return nil
}

// InRoom reports whether the resident currently points at roomID.
func (r *Resident) InRoom(roomID uuid.UUID) bool {
	return r.ResidentRoomID != nil && *r.ResidentRoomID == roomID
}
