// file: internals/features/hostel/residents/service/resident_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelhub_backend/internals/features/hostel/allocation"
	"hostelhub_backend/internals/features/hostel/residents/dto"
	"hostelhub_backend/internals/features/hostel/residents/model"
	"hostelhub_backend/internals/features/hostel/residents/repository"
	roomRepo "hostelhub_backend/internals/features/hostel/rooms/repository"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
)

var errRoomMoved = errors.New("resident room changed before lock")

// ResidentService keeps resident rows and room occupancy consistent. Every
// mutation that touches a room runs under that room's lock key.
type ResidentService struct {
	DB     *gorm.DB
	Runner *txretry.Runner
	Clock  dbtime.Clock
}

func NewResidentService(db *gorm.DB, runner *txretry.Runner, clock dbtime.Clock) *ResidentService {
	return &ResidentService{DB: db, Runner: runner, Clock: clock}
}

// NICKey guards the uniqueness check of a national identity number.
func NICKey(nic string) string { return "resident-nic:" + nic }

func sameRoom(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

/* ===================== Create ===================== */

func (s *ResidentService) Create(ctx context.Context, req dto.CreateResidentRequest) (*model.Resident, error) {
	req.Normalize()
	var res *model.Resident
	err := s.Runner.Run(ctx, createKeys(req), func(tx *gorm.DB) error {
		r, err := s.CreateTx(tx, req)
		res = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func createKeys(req dto.CreateResidentRequest) []string {
	var keys []string
	if req.ResidentNIC != nil {
		keys = append(keys, NICKey(*req.ResidentNIC))
	}
	if req.RoomID != nil {
		keys = append(keys, allocation.RoomKey(*req.RoomID))
	}
	return keys
}

// CreateTx creates a resident inside an existing transaction. Callers that
// pass a room id must already hold its lock key.
func (s *ResidentService) CreateTx(tx *gorm.DB, req dto.CreateResidentRequest) (*model.Resident, error) {
	req.Normalize()
	if req.ResidentNIC != nil {
		exists, err := repository.ExistsNIC(tx, *req.ResidentNIC)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperror.DuplicateIdentity(*req.ResidentNIC)
		}
	}

	res := &model.Resident{
		ResidentName:     req.ResidentName,
		ResidentNIC:      req.ResidentNIC,
		ResidentContact:  req.ResidentContact,
		ResidentEmail:    req.ResidentEmail,
		ResidentCourse:   req.ResidentCourse,
		ResidentRating:   model.DefaultRating,
		ResidentJoinDate: s.Clock.Today(),
		ResidentStatus:   model.ResidentStatusActive,
	}
	if req.ResidentRating != nil {
		res.ResidentRating = *req.ResidentRating
	}
	if req.ResidentJoinDate != nil && !req.ResidentJoinDate.IsZero() {
		res.ResidentJoinDate = *req.ResidentJoinDate
	}
	if req.ResidentStatus != nil {
		res.ResidentStatus = *req.ResidentStatus
	}

	if req.RoomID != nil {
		room, err := roomRepo.FindRoomForUpdate(tx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if err := allocation.Admit(tx, room, res); err != nil {
			return nil, err
		}
	}

	if err := repository.CreateResident(tx, res); err != nil {
		if txretry.IsUniqueViolation(err) && req.ResidentNIC != nil {
			return nil, apperror.DuplicateIdentity(*req.ResidentNIC)
		}
		return nil, err
	}
	return res, nil
}

/* ===================== Room-touching mutations ===================== */

// mutate runs fn on the locked resident. The current room is read before
// locking to pick keys, then re-checked under the lock; a mismatch retries.
func (s *ResidentService) mutate(ctx context.Context, id uuid.UUID, extraKeys []string, fn func(tx *gorm.DB, res *model.Resident) error) error {
	return s.Runner.Retry(ctx, func() error {
		current, err := repository.CurrentRoomID(s.DB.WithContext(ctx), id)
		if err != nil {
			return err
		}
		keys := append([]string{allocation.ResidentKey(id)}, extraKeys...)
		if current != nil {
			keys = append(keys, allocation.RoomKey(*current))
		}

		return s.Runner.InTx(ctx, keys, func(tx *gorm.DB) error {
			res, err := repository.FindResidentForUpdate(tx, id)
			if err != nil {
				return err
			}
			if !sameRoom(res.ResidentRoomID, current) {
				return apperror.Conflict(errRoomMoved)
			}
			return fn(tx, res)
		})
	})
}

// Update applies only supplied fields. A room id different from the current
// one moves the resident; the same room id leaves room state alone.
func (s *ResidentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateResidentRequest) (*model.Resident, error) {
	req.Normalize()
	var extra []string
	if req.RoomID != nil {
		extra = append(extra, allocation.RoomKey(*req.RoomID))
	}
	if req.ResidentNIC != nil {
		extra = append(extra, NICKey(*req.ResidentNIC))
	}

	err := s.mutate(ctx, id, extra, func(tx *gorm.DB, res *model.Resident) error {
		if req.ResidentNIC != nil && (res.ResidentNIC == nil || *res.ResidentNIC != *req.ResidentNIC) {
			exists, err := repository.ExistsNIC(tx, *req.ResidentNIC)
			if err != nil {
				return err
			}
			if exists {
				return apperror.DuplicateIdentity(*req.ResidentNIC)
			}
		}

		if req.ResidentName != nil && *req.ResidentName != "" {
			res.ResidentName = *req.ResidentName
		}
		if req.ResidentNIC != nil {
			res.ResidentNIC = req.ResidentNIC
		}
		if req.ResidentContact != nil {
			res.ResidentContact = req.ResidentContact
		}
		if req.ResidentEmail != nil {
			res.ResidentEmail = req.ResidentEmail
		}
		if req.ResidentCourse != nil {
			res.ResidentCourse = req.ResidentCourse
		}
		if req.ResidentRating != nil {
			res.ResidentRating = *req.ResidentRating
		}
		if req.ResidentJoinDate != nil && !req.ResidentJoinDate.IsZero() {
			res.ResidentJoinDate = *req.ResidentJoinDate
		}
		if req.ResidentLeaveDate != nil && !req.ResidentLeaveDate.IsZero() {
			res.ResidentLeaveDate = req.ResidentLeaveDate
		}
		if req.ResidentStatus != nil {
			res.ResidentStatus = *req.ResidentStatus
		}

		if req.RoomID != nil && !res.InRoom(*req.RoomID) {
			room, err := roomRepo.FindRoomForUpdate(tx, *req.RoomID)
			if err != nil {
				return err
			}
			if err := allocation.Reassign(tx, res, room); err != nil {
				return err
			}
		}

		if err := repository.SaveResident(tx, res); err != nil {
			if txretry.IsUniqueViolation(err) && req.ResidentNIC != nil {
				return apperror.DuplicateIdentity(*req.ResidentNIC)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete releases the resident's room before removing the row.
func (s *ResidentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, nil, func(tx *gorm.DB, res *model.Resident) error {
		if err := allocation.ReleaseCurrent(tx, res); err != nil {
			return err
		}
		return repository.DeleteResidentByID(tx, id)
	})
}

func (s *ResidentService) AssignRoom(ctx context.Context, residentID, roomID uuid.UUID) (*model.Resident, error) {
	err := s.mutate(ctx, residentID, []string{allocation.RoomKey(roomID)}, func(tx *gorm.DB, res *model.Resident) error {
		room, err := roomRepo.FindRoomForUpdate(tx, roomID)
		if err != nil {
			return err
		}
		if err := allocation.Reassign(tx, res, room); err != nil {
			return err
		}
		return repository.SaveResident(tx, res)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, residentID)
}

func (s *ResidentService) RemoveFromRoom(ctx context.Context, residentID uuid.UUID) (*model.Resident, error) {
	err := s.mutate(ctx, residentID, nil, func(tx *gorm.DB, res *model.Resident) error {
		if res.ResidentRoomID == nil {
			return apperror.NotAssigned()
		}
		if err := allocation.ReleaseCurrent(tx, res); err != nil {
			return err
		}
		return repository.SaveResident(tx, res)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, residentID)
}

/* ===================== Reads ===================== */

func (s *ResidentService) Get(ctx context.Context, id uuid.UUID) (*model.Resident, error) {
	return repository.FindResidentByID(s.DB.WithContext(ctx), id)
}

func (s *ResidentService) List(ctx context.Context, name string, status *model.ResidentStatus) ([]model.Resident, error) {
	return repository.ListResidents(s.DB.WithContext(ctx), name, status)
}

func (s *ResidentService) Stats(ctx context.Context) (dto.ResidentStats, error) {
	byStatus, total, err := repository.CountResidentsByStatus(s.DB.WithContext(ctx))
	if err != nil {
		return dto.ResidentStats{}, err
	}
	return dto.ResidentStats{
		Total:    total,
		Active:   byStatus[model.ResidentStatusActive],
		Pending:  byStatus[model.ResidentStatusPending],
		Inactive: byStatus[model.ResidentStatusInactive],
	}, nil
}
