package models

import (
	"fmt"
	"strings"
	"time"
)

// Student is a directory record. The group id references an external
// grouping concept the client never resolves locally.
type Student struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	GroupID    int64     `json:"group_id"`
	Major      string    `json:"major"`
	CourseYear int       `json:"course_year"`
	Gender     string    `json:"gender"`
	BirthDate  time.Time `json:"birth_date"`
}

// CreateStudent holds payload for creating students. Range checks mirror the
// server's rules as a pre-submission convenience only.
type CreateStudent struct {
	Name       string    `json:"name" validate:"required"`
	GroupID    int64     `json:"group_id" validate:"required"`
	Major      string    `json:"major" validate:"required"`
	CourseYear int       `json:"course_year" validate:"required,min=1,max=6"`
	Gender     string    `json:"gender" validate:"required"`
	BirthDate  time.Time `json:"birth_date" validate:"required"`
}

// UpdateStudent holds a partial PATCH payload; nil fields are omitted.
type UpdateStudent struct {
	Name       *string    `json:"name,omitempty"`
	GroupID    *int64     `json:"group_id,omitempty"`
	Major      *string    `json:"major,omitempty"`
	CourseYear *int       `json:"course_year,omitempty" validate:"omitempty,min=1,max=6"`
	Gender     *string    `json:"gender,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
}

// StudentGPA is the server-computed aggregate for one student.
type StudentGPA struct {
	GPA float64 `json:"gpa"`
}

// StudentFilter narrows directory reads; zero fields are omitted from the
// query string and the cache key alike.
type StudentFilter struct {
	GroupID    int64
	Major      string
	CourseYear int
	Limit      int
}

// Values maps the filter onto query parameters.
func (f StudentFilter) Values() map[string]any {
	return map[string]any{
		"group_id":    f.GroupID,
		"major":       f.Major,
		"course_year": f.CourseYear,
		"limit":       f.Limit,
	}
}

// Key is the canonical cache-key fragment for this filter.
func (f StudentFilter) Key() string {
	parts := make([]string, 0, 4)
	if f.GroupID != 0 {
		parts = append(parts, fmt.Sprintf("group=%d", f.GroupID))
	}
	if f.Major != "" {
		parts = append(parts, "major="+f.Major)
	}
	if f.CourseYear != 0 {
		parts = append(parts, fmt.Sprintf("year=%d", f.CourseYear))
	}
	if f.Limit != 0 {
		parts = append(parts, fmt.Sprintf("limit=%d", f.Limit))
	}
	return strings.Join(parts, "&")
}
