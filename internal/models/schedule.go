package models

import (
	"fmt"
	"time"
)

// ScheduleEntry is one class slot for a group. Ordering by start time is a
// display concern; the client enforces nothing beyond shape.
type ScheduleEntry struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Subject   string    `json:"subject"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// CreateScheduleEntry holds payload for creating schedule slots.
type CreateScheduleEntry struct {
	GroupID   int64     `json:"group_id" validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// UpdateScheduleEntry holds a partial PATCH payload.
type UpdateScheduleEntry struct {
	GroupID   *int64     `json:"group_id,omitempty"`
	Subject   *string    `json:"subject,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// ScheduleFilter narrows schedule reads to one group.
type ScheduleFilter struct {
	GroupID int64
}

// Values maps the filter onto query parameters.
func (f ScheduleFilter) Values() map[string]any {
	return map[string]any{"group_id": f.GroupID}
}

// Key is the canonical cache-key fragment for this filter.
func (f ScheduleFilter) Key() string {
	if f.GroupID == 0 {
		return ""
	}
	return fmt.Sprintf("group=%d", f.GroupID)
}
