package models

import (
	"fmt"
)

// AttendanceRecord marks one (student, subject, day) visit. Uniqueness is
// enforced server-side. Student names are optionally denormalised onto the
// record by the service for display.
type AttendanceRecord struct {
	ID               int64   `json:"id"`
	SubjectName      string  `json:"subject_name"`
	VisitDay         DayDate `json:"visit_day"`
	Visited          bool    `json:"visited"`
	StudentID        int64   `json:"student_id"`
	StudentFirstName string  `json:"student_firstname,omitempty"`
	StudentSurname   string  `json:"student_surname,omitempty"`
}

// CreateAttendance holds payload for recording a visit.
type CreateAttendance struct {
	SubjectName string  `json:"subject_name" validate:"required"`
	StudentID   int64   `json:"student_id" validate:"required"`
	VisitDay    DayDate `json:"visit_day" validate:"required"`
	Visited     bool    `json:"visited"`
}

// UpdateAttendance holds a partial PATCH payload; in practice only the
// visited flag is toggled after the fact.
type UpdateAttendance struct {
	SubjectName *string  `json:"subject_name,omitempty"`
	StudentID   *int64   `json:"student_id,omitempty"`
	VisitDay    *DayDate `json:"visit_day,omitempty"`
	Visited     *bool    `json:"visited,omitempty"`
}

// AttendanceFilter selects records by student or by subject. A zero filter
// is the "no selection" sentinel: stores issue no read for it.
type AttendanceFilter struct {
	StudentID   int64
	SubjectName string
}

// Empty reports whether no selection has been made.
func (f AttendanceFilter) Empty() bool {
	return f.StudentID == 0 && f.SubjectName == ""
}

// Values maps the filter onto query parameters.
func (f AttendanceFilter) Values() map[string]any {
	return map[string]any{
		"student_id":   f.StudentID,
		"subject_name": f.SubjectName,
	}
}

// Key is the canonical cache-key fragment for this filter.
func (f AttendanceFilter) Key() string {
	if f.StudentID != 0 {
		return fmt.Sprintf("student=%d", f.StudentID)
	}
	if f.SubjectName != "" {
		return "subject=" + f.SubjectName
	}
	return ""
}
