// Package allocation owns room occupancy and status. Every change to
// room_current_occupancy, room_status (outside manual maintenance edits) and
// resident_room_id goes through these functions, always inside the caller's
// transaction.
package allocation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	residentRepo "hostelhub_backend/internals/features/hostel/residents/repository"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	roomRepo "hostelhub_backend/internals/features/hostel/rooms/repository"
	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/txretry"
)

// RoomKey and ResidentKey name the lock set entries guarding a room or resident.
func RoomKey(id uuid.UUID) string     { return "room:" + id.String() }
func ResidentKey(id uuid.UUID) string { return "resident:" + id.String() }

// RefreshStatus re-derives status from occupancy. Maintenance is sticky.
func RefreshStatus(room *roomModel.Room) {
	if room.RoomStatus == roomModel.RoomStatusMaintenance {
		return
	}
	if room.IsFull() {
		room.RoomStatus = roomModel.RoomStatusOccupied
	} else {
		room.RoomStatus = roomModel.RoomStatusAvailable
	}
}

// CheckAdmission reports why room cannot take one more resident, if it cannot.
func CheckAdmission(room *roomModel.Room) error {
	if room.RoomStatus == roomModel.RoomStatusMaintenance {
		return apperror.RoomUnderMaintenance(room.RoomNumber)
	}
	if room.IsFull() {
		return apperror.CapacityExceeded(room.RoomNumber)
	}
	return nil
}

// Admit links resident to room and persists the room. The resident row is
// the caller's to persist.
func Admit(tx *gorm.DB, room *roomModel.Room, resident *residentModel.Resident) error {
	if err := CheckAdmission(room); err != nil {
		return err
	}
	room.RoomOccupancy++
	RefreshStatus(room)
	if err := roomRepo.SaveOccupancy(tx, room); err != nil {
		return fmt.Errorf("admit into room %s: %w", room.RoomNumber, err)
	}
	id := room.RoomID
	resident.ResidentRoomID = &id
	resident.Room = room
	return nil
}

// Release unlinks resident from room. Occupancy floors at zero so a resident
// that was already detached does not drive the count negative.
func Release(tx *gorm.DB, room *roomModel.Room, resident *residentModel.Resident) error {
	if room.RoomOccupancy > 0 {
		room.RoomOccupancy--
	}
	RefreshStatus(room)
	if err := roomRepo.SaveOccupancy(tx, room); err != nil {
		return fmt.Errorf("release from room %s: %w", room.RoomNumber, err)
	}
	resident.ResidentRoomID = nil
	resident.Room = nil
	return nil
}

// Reassign moves resident into newRoom, releasing the current room first.
// Both steps share tx: a failed admission aborts the transaction and the
// resident keeps the previous room. Moving into the current room is a no-op.
func Reassign(tx *gorm.DB, resident *residentModel.Resident, newRoom *roomModel.Room) error {
	if resident.InRoom(newRoom.RoomID) {
		resident.Room = newRoom
		return nil
	}
	if resident.ResidentRoomID != nil {
		old, err := roomRepo.FindRoomForUpdate(tx, *resident.ResidentRoomID)
		if err != nil {
			return err
		}
		if err := Release(tx, old, resident); err != nil {
			return err
		}
	}
	return Admit(tx, newRoom, resident)
}

// ReleaseCurrent releases whatever room resident points at, if any.
func ReleaseCurrent(tx *gorm.DB, resident *residentModel.Resident) error {
	if resident.ResidentRoomID == nil {
		return nil
	}
	room, err := roomRepo.FindRoomForUpdate(tx, *resident.ResidentRoomID)
	if err != nil {
		return err
	}
	return Release(tx, room, resident)
}

/* ===================== Room deletion ===================== */

type Engine struct {
	Runner *txretry.Runner
}

func NewEngine(runner *txretry.Runner) *Engine {
	return &Engine{Runner: runner}
}

// DeleteRoom removes an empty room.
func (e *Engine) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return e.Runner.Run(ctx, []string{RoomKey(id)}, func(tx *gorm.DB) error {
		room, err := roomRepo.FindRoomForUpdate(tx, id)
		if err != nil {
			return err
		}
		if room.RoomOccupancy > 0 {
			return apperror.RoomNotEmpty(room.RoomNumber, room.RoomOccupancy)
		}
		// occupancy is the maintained count; guard against a stale row anyway
		n, err := residentRepo.CountResidentsInRoom(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.RoomNotEmpty(room.RoomNumber, int(n))
		}
		return roomRepo.DeleteRoomByID(tx, id)
	})
}
