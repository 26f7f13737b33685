package testkit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	residentModel "hostelhub_backend/internals/features/hostel/residents/model"
	residentRepo "hostelhub_backend/internals/features/hostel/residents/repository"
	"hostelhub_backend/internals/helpers/dbtime"
)

// SeedResident inserts a roomless active resident directly.
func SeedResident(t testing.TB, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	r := &residentModel.Resident{ResidentName: name, ResidentJoinDate: dbtime.NewDate(2025, time.January, 10)}
	require.NoError(t, residentRepo.CreateResident(db, r))
	return r.ResidentID
}
