package seeds

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	paymentService "hostelhub_backend/internals/features/finance/payments/service"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
	authService "hostelhub_backend/internals/features/users/auth/service"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/txretry"
	"hostelhub_backend/internals/seeds/hostel"
	"hostelhub_backend/internals/seeds/operations"
	users "hostelhub_backend/internals/seeds/users/auth"
)

// RunAllSeeds loads the demo data set. It does nothing when any room exists,
// so it is safe to run on every start. The admin account is not created here.
func RunAllSeeds(ctx context.Context, db *gorm.DB, runner *txretry.Runner, hasher authService.Hasher, clock dbtime.Clock, log *zap.Logger) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&roomModel.Room{}).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		log.Info("[SEED] rooms already present, skipping demo data")
		return false, nil
	}

	rooms := roomService.NewRoomService(db, runner)
	residents := residentService.NewResidentService(db, runner, clock)
	payments := paymentService.NewPaymentService(db, runner, clock)

	//* Hostel
	roomIDs, err := hostel.SeedRooms(ctx, rooms, log)
	if err != nil {
		return false, err
	}
	residentIDs, err := hostel.SeedResidents(ctx, residents, roomIDs, log)
	if err != nil {
		return false, err
	}
	if err := hostel.SeedPayments(ctx, payments, residentIDs, log); err != nil {
		return false, err
	}

	//* Operations
	if err := operations.SeedComplaints(ctx, db, clock, residentIDs, log); err != nil {
		return false, err
	}
	if err := operations.SeedVisits(ctx, db, clock, log); err != nil {
		return false, err
	}
	if err := operations.SeedCleaningTasks(ctx, db, log); err != nil {
		return false, err
	}

	//* Users
	if err := users.SeedResidentUsers(ctx, db, hasher, residentIDs, log); err != nil {
		return false, err
	}

	log.Info("[SEED] demo data loaded")
	return true, nil
}
