// internals/features/hostel/residents/repository/resident_repository.go
package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelhub_backend/internals/features/hostel/residents/model"
	"hostelhub_backend/internals/helpers/apperror"
)

func FindResidentByID(db *gorm.DB, id uuid.UUID) (*model.Resident, error) {
	var r model.Resident
	if err := db.Preload("Room").Where("resident_id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Resident", id)
		}
		return nil, err
	}
	return &r, nil
}

// FindResidentForUpdate loads without the room join so the row lock stays on residents.
func FindResidentForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Resident, error) {
	var r model.Resident
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("resident_id = ?", id).
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Resident", id)
		}
		return nil, err
	}
	return &r, nil
}

// CurrentRoomID is the unlocked read used to pick lock keys before a tx.
func CurrentRoomID(db *gorm.DB, id uuid.UUID) (*uuid.UUID, error) {
	var r model.Resident
	err := db.Select("resident_id", "resident_room_id").Where("resident_id = ?", id).First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Resident", id)
		}
		return nil, err
	}
	return r.ResidentRoomID, nil
}

func ExistsNIC(db *gorm.DB, nic string) (bool, error) {
	var n int64
	err := db.Model(&model.Resident{}).Where("resident_nic = ?", nic).Count(&n).Error
	return n > 0, err
}

// ListResidents honors at most one filter; name wins over status.
func ListResidents(db *gorm.DB, name string, status *model.ResidentStatus) ([]model.Resident, error) {
	q := db.Preload("Room").Model(&model.Resident{})
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("LOWER(resident_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	} else if status != nil {
		q = q.Where("resident_status = ?", *status)
	}
	var out []model.Resident
	err := q.Order("resident_name ASC").Find(&out).Error
	return out, err
}

func CountResidentsByStatus(db *gorm.DB) (map[model.ResidentStatus]int64, int64, error) {
	type row struct {
		Status model.ResidentStatus
		N      int64
	}
	var rows []row
	if err := db.Model(&model.Resident{}).
		Select("resident_status AS status, COUNT(*) AS n").
		Group("resident_status").
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make(map[model.ResidentStatus]int64, len(rows))
	var total int64
	for _, r := range rows {
		out[r.Status] = r.N
		total += r.N
	}
	return out, total, nil
}

// CountResidentsInRoom is the source of truth occupancy is checked against.
func CountResidentsInRoom(db *gorm.DB, roomID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&model.Resident{}).Where("resident_room_id = ?", roomID).Count(&n).Error
	return n, err
}

func CreateResident(tx *gorm.DB, r *model.Resident) error {
	return tx.Omit(clause.Associations).Create(r).Error
}

func SaveResident(tx *gorm.DB, r *model.Resident) error {
	return tx.Omit(clause.Associations).Save(r).Error
}

func DeleteResidentByID(tx *gorm.DB, id uuid.UUID) error {
	return tx.Where("resident_id = ?", id).Delete(&model.Resident{}).Error
}
