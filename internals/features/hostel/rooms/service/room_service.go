// file: internals/features/hostel/rooms/service/room_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub_backend/internals/features/hostel/allocation"
	"hostelhub_backend/internals/features/hostel/rooms/dto"
	"hostelhub_backend/internals/features/hostel/rooms/model"
	"hostelhub_backend/internals/features/hostel/rooms/repository"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/txretry"
)

type RoomService struct {
	DB     *gorm.DB
	Runner *txretry.Runner
	Engine *allocation.Engine
}

func NewRoomService(db *gorm.DB, runner *txretry.Runner) *RoomService {
	return &RoomService{DB: db, Runner: runner, Engine: allocation.NewEngine(runner)}
}

func roomNumberKey(number string) string { return "room-number:" + number }

func validateAttrs(req *dto.CreateRoomRequest) error {
	if req.RoomPricePerMonth != nil && req.RoomPricePerMonth.IsNegative() {
		return apperror.Invalid("Price per month must be zero or positive.")
	}
	if !req.RoomType.Valid() {
		return apperror.Invalid("Room type must be one of single, double, shared.")
	}
	if req.RoomCapacity < 1 {
		return apperror.Invalid("Capacity must be at least 1.")
	}
	return nil
}

func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*model.Room, error) {
	req.Normalize()
	if err := validateAttrs(&req); err != nil {
		return nil, err
	}

	room := &model.Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		RoomCapacity:  req.RoomCapacity,
		RoomOccupancy: 0,
		RoomStatus:    model.RoomStatusAvailable,
		RoomImageURL:  req.RoomImageURL,
	}
	if req.RoomPricePerMonth != nil {
		room.RoomPricePerMonth = *req.RoomPricePerMonth
	}
	if req.RoomFacilities != nil {
		room.RoomFacilities = []string(*req.RoomFacilities)
	}
	if req.RoomVacancyDate != nil {
		room.RoomVacancyDate = req.RoomVacancyDate
	}
	if req.RoomStatus != nil {
		room.RoomStatus = *req.RoomStatus
	}
	allocation.RefreshStatus(room)

	err := s.Runner.Run(ctx, []string{roomNumberKey(room.RoomNumber)}, func(tx *gorm.DB) error {
		exists, err := repository.ExistsRoomNumber(tx, room.RoomNumber)
		if err != nil {
			return err
		}
		if exists {
			return apperror.DuplicateRoomNumber(room.RoomNumber)
		}
		if err := tx.Create(room).Error; err != nil {
			if txretry.IsUniqueViolation(err) {
				return apperror.DuplicateRoomNumber(room.RoomNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Update replaces number/type/price/capacity and applies optional attrs when
// present, then re-derives status.
func (s *RoomService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRoomRequest) (*model.Room, error) {
	req.Normalize()
	if err := validateAttrs(&req); err != nil {
		return nil, err
	}

	var out *model.Room
	keys := []string{allocation.RoomKey(id), roomNumberKey(req.RoomNumber)}
	err := s.Runner.Run(ctx, keys, func(tx *gorm.DB) error {
		room, err := repository.FindRoomForUpdate(tx, id)
		if err != nil {
			return err
		}

		if room.RoomNumber != req.RoomNumber {
			exists, err := repository.ExistsRoomNumber(tx, req.RoomNumber)
			if err != nil {
				return err
			}
			if exists {
				return apperror.DuplicateRoomNumber(req.RoomNumber)
			}
		}
		if req.RoomCapacity < room.RoomOccupancy {
			return apperror.CapacityBelowOccupancy(room.RoomNumber, req.RoomCapacity, room.RoomOccupancy)
		}

		room.RoomNumber = req.RoomNumber
		room.RoomType = req.RoomType
		if req.RoomPricePerMonth != nil {
			room.RoomPricePerMonth = *req.RoomPricePerMonth
		}
		room.RoomCapacity = req.RoomCapacity
		if req.RoomFacilities != nil {
			room.RoomFacilities = []string(*req.RoomFacilities)
		}
		if req.RoomImageURL != nil {
			room.RoomImageURL = req.RoomImageURL
		}
		if req.RoomStatus != nil {
			room.RoomStatus = *req.RoomStatus
		}
		if req.RoomVacancyDate != nil {
			room.RoomVacancyDate = req.RoomVacancyDate
		}
		allocation.RefreshStatus(room)

		if err := tx.Save(room).Error; err != nil {
			if txretry.IsUniqueViolation(err) {
				return apperror.DuplicateRoomNumber(req.RoomNumber)
			}
			return err
		}
		out = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Engine.DeleteRoom(ctx, id)
}

func (s *RoomService) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return repository.FindRoomByID(s.DB.WithContext(ctx), id)
}

func (s *RoomService) List(ctx context.Context, f repository.RoomFilter) ([]model.Room, error) {
	return repository.ListRooms(s.DB.WithContext(ctx), f)
}

func (s *RoomService) ListAvailable(ctx context.Context, excludeMaintenance bool) ([]model.Room, error) {
	return repository.ListAvailableRooms(s.DB.WithContext(ctx), excludeMaintenance)
}

func (s *RoomService) Stats(ctx context.Context) (dto.RoomStats, error) {
	byStatus, total, err := repository.CountRoomsByStatus(s.DB.WithContext(ctx))
	if err != nil {
		return dto.RoomStats{}, err
	}
	return dto.RoomStats{
		Total:       total,
		Available:   byStatus[model.RoomStatusAvailable],
		Occupied:    byStatus[model.RoomStatusOccupied],
		Maintenance: byStatus[model.RoomStatusMaintenance],
	}, nil
}
