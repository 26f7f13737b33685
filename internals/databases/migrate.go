package database

import (
	"gorm.io/gorm"

	paymentModel "hostelhub_backend/internals/features/finance/payments/model"
	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	roomModel "hostelhub_backend/internals/features/hostel/rooms/model"
	attendanceModel "hostelhub_backend/internals/features/operations/attendance/model"
	cleaningModel "hostelhub_backend/internals/features/operations/cleaning/model"
	complaintModel "hostelhub_backend/internals/features/operations/complaints/model"
	foodModel "hostelhub_backend/internals/features/operations/food_preferences/model"
	visitModel "hostelhub_backend/internals/features/operations/visits/model"
	authModel "hostelhub_backend/internals/features/users/auth/model"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&roomModel.Room{},
		&residentModel.Resident{},
		&paymentModel.Payment{},
		&authModel.UserModel{},
		&complaintModel.Complaint{},
		&visitModel.Visit{},
		&cleaningModel.CleaningTask{},
		&foodModel.FoodPreference{},
		&attendanceModel.Attendance{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
