// Package operations seeds complaints, visit bookings and the cleaning rota.
package operations

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cleaningModel "hostelhub_backend/internals/features/operations/cleaning/model"
	complaintModel "hostelhub_backend/internals/features/operations/complaints/model"
	visitModel "hostelhub_backend/internals/features/operations/visits/model"
	"hostelhub_backend/internals/helpers/dbtime"
)

var (
	//go:embed data_complaints.json
	complaintsJSON []byte
	//go:embed data_visits.json
	visitsJSON []byte
	//go:embed data_cleaning_tasks.json
	cleaningJSON []byte
)

type ComplaintSeed struct {
	ResidentEmail string                           `json:"resident_email"`
	Title         string                           `json:"title"`
	Description   string                           `json:"description"`
	Category      string                           `json:"category"`
	Priority      complaintModel.ComplaintPriority `json:"priority"`
	Status        complaintModel.ComplaintStatus   `json:"status"`
	DaysAgo       int                              `json:"days_ago"`
}

type VisitSeed struct {
	VisitorName       string                 `json:"visitor_name"`
	Contact           string                 `json:"contact"`
	Email             string                 `json:"email"`
	PreferredRoomType string                 `json:"preferred_room_type"`
	Message           string                 `json:"message"`
	DaysAhead         int                    `json:"days_ahead"`
	Time              string                 `json:"time"`
	Status            visitModel.VisitStatus `json:"status"`
}

type CleaningTaskSeed struct {
	Area          string `json:"area"`
	DayOfWeek     string `json:"day_of_week"`
	TimeSlot      string `json:"time_slot"`
	AssignedStaff string `json:"assigned_staff"`
}

func strPtr(s string) *string { return &s }

func daysFrom(today dbtime.Date, n int) dbtime.Date {
	return dbtime.DateOf(today.AddDate(0, 0, n))
}

func SeedComplaints(ctx context.Context, db *gorm.DB, clock dbtime.Clock, residents map[string]uuid.UUID, log *zap.Logger) error {
	var inputs []ComplaintSeed
	if err := sonic.Unmarshal(complaintsJSON, &inputs); err != nil {
		return fmt.Errorf("decode complaints: %w", err)
	}

	today := clock.Today()
	rows := make([]complaintModel.Complaint, 0, len(inputs))
	for _, in := range inputs {
		rid, ok := residents[in.ResidentEmail]
		if !ok {
			return fmt.Errorf("complaint %q: unknown resident %s", in.Title, in.ResidentEmail)
		}
		rows = append(rows, complaintModel.Complaint{
			ComplaintResidentID:  rid,
			ComplaintTitle:       in.Title,
			ComplaintDescription: in.Description,
			ComplaintCategory:    strPtr(in.Category),
			ComplaintPriority:    in.Priority,
			ComplaintStatus:      in.Status,
			ComplaintDate:        daysFrom(today, -in.DaysAgo),
		})
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	log.Info("[SEED] complaints", zap.Int("count", len(rows)))
	return nil
}

func SeedVisits(ctx context.Context, db *gorm.DB, clock dbtime.Clock, log *zap.Logger) error {
	var inputs []VisitSeed
	if err := sonic.Unmarshal(visitsJSON, &inputs); err != nil {
		return fmt.Errorf("decode visits: %w", err)
	}

	today := clock.Today()
	rows := make([]visitModel.Visit, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, visitModel.Visit{
			VisitVisitorName:       in.VisitorName,
			VisitVisitorContact:    strPtr(in.Contact),
			VisitVisitorEmail:      strPtr(in.Email),
			VisitPreferredRoomType: strPtr(in.PreferredRoomType),
			VisitMessage:           strPtr(in.Message),
			VisitDate:              daysFrom(today, in.DaysAhead),
			VisitTime:              strPtr(in.Time),
			VisitStatus:            in.Status,
		})
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	log.Info("[SEED] visits", zap.Int("count", len(rows)))
	return nil
}

func SeedCleaningTasks(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var inputs []CleaningTaskSeed
	if err := sonic.Unmarshal(cleaningJSON, &inputs); err != nil {
		return fmt.Errorf("decode cleaning tasks: %w", err)
	}

	rows := make([]cleaningModel.CleaningTask, 0, len(inputs))
	for _, in := range inputs {
		if !cleaningModel.ValidDay(in.DayOfWeek) {
			return fmt.Errorf("cleaning task %s: bad day %q", in.Area, in.DayOfWeek)
		}
		rows = append(rows, cleaningModel.CleaningTask{
			CleaningTaskArea:          in.Area,
			CleaningTaskDayOfWeek:     in.DayOfWeek,
			CleaningTaskTimeSlot:      in.TimeSlot,
			CleaningTaskAssignedStaff: in.AssignedStaff,
			CleaningTaskStatus:        cleaningModel.CleaningPending,
		})
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	log.Info("[SEED] cleaning tasks", zap.Int("count", len(rows)))
	return nil
}
