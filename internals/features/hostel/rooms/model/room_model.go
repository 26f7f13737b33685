// file: internals/features/hostel/rooms/model/room_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hostelhub_backend/internals/helpers/dbtime"
)

/* ===================== Enums ===================== */

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeShared RoomType = "shared"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeShared:
		return true
	}
	return false
}

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

/* ===================== Model ===================== */

// Room: room_current_occupancy and room_status are maintained by the
// allocation engine only.
type Room struct {
	RoomID uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey" json:"room_id"`

	RoomNumber        string          `gorm:"column:room_number;type:varchar(20);not null;uniqueIndex:uq_rooms_number" json:"room_number"`
	RoomType          RoomType        `gorm:"column:room_type;type:varchar(20);not null;index:idx_rooms_type" json:"room_type"`
	RoomPricePerMonth decimal.Decimal `gorm:"column:room_price_per_month;type:numeric(12,2);not null;default:0" json:"room_price_per_month"`
	RoomCapacity      int             `gorm:"column:room_capacity;not null" json:"room_capacity"`
	RoomOccupancy     int             `gorm:"column:room_current_occupancy;not null;default:0" json:"room_current_occupancy"`
	RoomStatus        RoomStatus      `gorm:"column:room_status;type:varchar(20);not null;default:'available';index:idx_rooms_status" json:"room_status"`

	RoomFacilities  datatypes.JSONSlice[string] `gorm:"column:room_facilities" json:"room_facilities"`
	RoomImageURL    *string                     `gorm:"column:room_image_url;type:text" json:"room_image_url,omitempty"`
	RoomVacancyDate *dbtime.Date                `gorm:"column:room_vacancy_date" json:"room_vacancy_date,omitempty"`

	RoomCreatedAt time.Time `gorm:"column:room_created_at;autoCreateTime" json:"room_created_at"`
	RoomUpdatedAt time.Time `gorm:"column:room_updated_at;autoUpdateTime" json:"room_updated_at"`
}

func (Room) TableName() string { return "rooms" }

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.RoomID == uuid.Nil {
		r.RoomID = uuid.New()
	}
	if r.RoomStatus == "" {
		r.RoomStatus = RoomStatusAvailable
	}
	return nil
}

func (r *Room) AvailableSpots() int {
	if n := r.RoomCapacity - r.RoomOccupancy; n > 0 {
		return n
	}
	return 0
}

func (r *Room) IsFull() bool { return r.RoomOccupancy >= r.RoomCapacity }
