// internals/features/hostel/rooms/repository/room_repository.go
package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/helpers/apperror"
)

type RoomFilter struct {
	Status *model.RoomStatus
	Type   *model.RoomType
}

func FindRoomByID(db *gorm.DB, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := db.Where("room_id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Room", id)
		}
		return nil, err
	}
	return &room, nil
}

// FindRoomForUpdate row-locks the room on postgres; sqlite ignores the clause.
func FindRoomForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Room, error) {
	return FindRoomByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func ExistsRoomNumber(db *gorm.DB, number string) (bool, error) {
	var n int64
	err := db.Model(&model.Room{}).Where("room_number = ?", number).Count(&n).Error
	return n > 0, err
}

func ListRooms(db *gorm.DB, f RoomFilter) ([]model.Room, error) {
	q := db.Model(&model.Room{})
	if f.Status != nil {
		q = q.Where("room_status = ?", *f.Status)
	}
	if f.Type != nil {
		q = q.Where("room_type = ?", *f.Type)
	}
	var rooms []model.Room
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

// ListAvailableRooms: rooms with a free spot (occupancy < capacity). Rooms
// under maintenance are included unless excludeMaintenance is set.
func ListAvailableRooms(db *gorm.DB, excludeMaintenance bool) ([]model.Room, error) {
	q := db.Where("room_current_occupancy < room_capacity")
	if excludeMaintenance {
		q = q.Where("room_status <> ?", model.RoomStatusMaintenance)
	}
	var rooms []model.Room
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func CountRoomsByStatus(db *gorm.DB) (map[model.RoomStatus]int64, int64, error) {
	type row struct {
		Status model.RoomStatus
		N      int64
	}
	var rows []row
	if err := db.Model(&model.Room{}).
		Select("room_status AS status, COUNT(*) AS n").
		Group("room_status").
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make(map[model.RoomStatus]int64, len(rows))
	var total int64
	for _, r := range rows {
		out[r.Status] = r.N
		total += r.N
	}
	return out, total, nil
}

// SaveOccupancy persists only the allocation-owned columns.
func SaveOccupancy(tx *gorm.DB, room *model.Room) error {
	return tx.Model(&model.Room{}).
		Where("room_id = ?", room.RoomID).
		Updates(map[string]any{
			"room_current_occupancy": room.RoomOccupancy,
			"room_status":            room.RoomStatus,
		}).Error
}

func DeleteRoomByID(tx *gorm.DB, id uuid.UUID) error {
	return tx.Where("room_id = ?", id).Delete(&model.Room{}).Error
}
