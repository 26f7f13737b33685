package dto

import (
	"strings"

	"hostelhub_backend/internals/features/operations/cleaning/model"
)

type CreateCleaningTaskRequest struct {
	Area          string                  `json:"cleaning_task_area" validate:"required,max=120"`
	DayOfWeek     string                  `json:"cleaning_task_day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlot      string                  `json:"cleaning_task_time_slot" validate:"required,max=40"`
	AssignedStaff string                  `json:"cleaning_task_assigned_staff" validate:"required,max=120"`
	Notes         *string                 `json:"cleaning_task_notes,omitempty" validate:"omitempty,max=500"`
	Status        *model.CompletionStatus `json:"cleaning_task_status,omitempty" validate:"omitempty,oneof=pending completed skipped"`
}

type UpdateCleaningTaskRequest struct {
	Area          *string                 `json:"cleaning_task_area,omitempty" validate:"omitempty,min=1,max=120"`
	DayOfWeek     *string                 `json:"cleaning_task_day_of_week,omitempty" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlot      *string                 `json:"cleaning_task_time_slot,omitempty" validate:"omitempty,min=1,max=40"`
	AssignedStaff *string                 `json:"cleaning_task_assigned_staff,omitempty" validate:"omitempty,min=1,max=120"`
	Notes         *string                 `json:"cleaning_task_notes,omitempty" validate:"omitempty,max=500"`
	Status        *model.CompletionStatus `json:"cleaning_task_status,omitempty" validate:"omitempty,oneof=pending completed skipped"`
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func lowerStatus(s *model.CompletionStatus) *model.CompletionStatus {
	if s == nil {
		return nil
	}
	v := model.CompletionStatus(lower(string(*s)))
	return &v
}

func (r *CreateCleaningTaskRequest) Normalize() {
	r.Area = strings.TrimSpace(r.Area)
	r.DayOfWeek = lower(r.DayOfWeek)
	r.TimeSlot = strings.TrimSpace(r.TimeSlot)
	r.AssignedStaff = strings.TrimSpace(r.AssignedStaff)
	r.Status = lowerStatus(r.Status)
}

func (r *UpdateCleaningTaskRequest) Normalize() {
	if r.DayOfWeek != nil {
		v := lower(*r.DayOfWeek)
		r.DayOfWeek = &v
	}
	r.Status = lowerStatus(r.Status)
}

func (r CreateCleaningTaskRequest) ToModel() model.CleaningTask {
	m := model.CleaningTask{
		CleaningTaskArea:          r.Area,
		CleaningTaskDayOfWeek:     r.DayOfWeek,
		CleaningTaskTimeSlot:      r.TimeSlot,
		CleaningTaskAssignedStaff: r.AssignedStaff,
		CleaningTaskNotes:         r.Notes,
		CleaningTaskStatus:        model.CleaningPending,
	}
	if r.Status != nil {
		m.CleaningTaskStatus = *r.Status
	}
	return m
}

func (r UpdateCleaningTaskRequest) Apply(m *model.CleaningTask) {
	if r.Area != nil {
		m.CleaningTaskArea = *r.Area
	}
	if r.DayOfWeek != nil {
		m.CleaningTaskDayOfWeek = *r.DayOfWeek
	}
	if r.TimeSlot != nil {
		m.CleaningTaskTimeSlot = *r.TimeSlot
	}
	if r.AssignedStaff != nil {
		m.CleaningTaskAssignedStaff = *r.AssignedStaff
	}
	if r.Notes != nil {
		m.CleaningTaskNotes = r.Notes
	}
	if r.Status != nil {
		m.CleaningTaskStatus = *r.Status
	}
}
