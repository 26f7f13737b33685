package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompletionStatus string

const (
	CleaningPending   CompletionStatus = "pending"
	CleaningCompleted CompletionStatus = "completed"
	CleaningSkipped   CompletionStatus = "skipped"
)

func (s CompletionStatus) Valid() bool {
	switch s {
	case CleaningPending, CleaningCompleted, CleaningSkipped:
		return true
	}
	return false
}

// Weekdays in schedule order; day_of_week is stored lower-case.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayIndex is the position of d in Weekdays, or -1.
func DayIndex(d string) int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

func ValidDay(d string) bool { return DayIndex(d) >= 0 }

type CleaningTask struct {
	CleaningTaskID uuid.UUID `gorm:"column:cleaning_task_id;type:uuid;primaryKey" json:"cleaning_task_id"`

	CleaningTaskArea          string           `gorm:"column:cleaning_task_area;type:varchar(120);not null" json:"cleaning_task_area"`
	CleaningTaskDayOfWeek     string           `gorm:"column:cleaning_task_day_of_week;type:varchar(10);not null;index:idx_cleaning_tasks_day" json:"cleaning_task_day_of_week"`
	CleaningTaskTimeSlot      string           `gorm:"column:cleaning_task_time_slot;type:varchar(40);not null" json:"cleaning_task_time_slot"`
	CleaningTaskAssignedStaff string           `gorm:"column:cleaning_task_assigned_staff;type:varchar(120);not null" json:"cleaning_task_assigned_staff"`
	CleaningTaskNotes         *string          `gorm:"column:cleaning_task_notes;type:varchar(500)" json:"cleaning_task_notes,omitempty"`
	CleaningTaskStatus        CompletionStatus `gorm:"column:cleaning_task_status;type:varchar(20);not null;default:'pending'" json:"cleaning_task_status"`

	CleaningTaskCreatedAt time.Time `gorm:"column:cleaning_task_created_at;autoCreateTime" json:"cleaning_task_created_at"`
	CleaningTaskUpdatedAt time.Time `gorm:"column:cleaning_task_updated_at;autoUpdateTime" json:"cleaning_task_updated_at"`
}

func (CleaningTask) TableName() string { return "cleaning_tasks" }

func (m *CleaningTask) BeforeCreate(tx *gorm.DB) error {
	if m.CleaningTaskID == uuid.Nil {
		m.CleaningTaskID = uuid.New()
	}
	if m.CleaningTaskStatus == "" {
		m.CleaningTaskStatus = CleaningPending
	}
	return nil
}
