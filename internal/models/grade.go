package models

import (
	"fmt"
	"strings"
)

// SentinelSubject is the "no selection" value used by subject-dependent
// reads; a filter carrying it suppresses the fetch entirely.
const SentinelSubject = "all"

// Assignment is a graded task within a subject. Weight is a percentage the
// server validates against the subject's total.
type Assignment struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	SubjectName string  `json:"subject_name"`
	Weight      int     `json:"weight"`
	Date        DayDate `json:"date"`
}

// CreateAssignment holds payload for creating assignments.
type CreateAssignment struct {
	Name        string  `json:"name" validate:"required"`
	SubjectName string  `json:"subject_name" validate:"required"`
	Weight      int     `json:"weight" validate:"required,min=1,max=100"`
	Date        DayDate `json:"date" validate:"required"`
}

// Grade is one student's mark on one assignment.
type Grade struct {
	ID           int64 `json:"id"`
	StudentID    int64 `json:"student_id"`
	AssignmentID int64 `json:"assignment_id"`
	Mark         int   `json:"mark"`
}

// CreateGrade holds payload for recording a mark.
type CreateGrade struct {
	StudentID    int64 `json:"student_id" validate:"required"`
	AssignmentID int64 `json:"assignment_id" validate:"required"`
	Mark         int   `json:"mark" validate:"min=0,max=100"`
}

// RankingEntry is a server-computed GPA aggregate, never persisted locally.
type RankingEntry struct {
	StudentID int64   `json:"student_id"`
	GPA       float64 `json:"gpa"`
}

// AssignmentFilter narrows assignment reads to one subject.
type AssignmentFilter struct {
	SubjectName string
}

// Empty reports whether the dependent subject selection is unset or the
// sentinel, in which case no read is issued.
func (f AssignmentFilter) Empty() bool {
	return f.SubjectName == "" || f.SubjectName == SentinelSubject
}

// Values maps the filter onto query parameters.
func (f AssignmentFilter) Values() map[string]any {
	return map[string]any{"subject_name": f.SubjectName}
}

// Key is the canonical cache-key fragment for this filter.
func (f AssignmentFilter) Key() string {
	if f.Empty() {
		return ""
	}
	return "subject=" + f.SubjectName
}

// RankingFilter keys ranking reads by group and/or subject.
type RankingFilter struct {
	GroupID     int64
	SubjectName string
}

// Empty reports whether both dimensions are unset or sentinel.
func (f RankingFilter) Empty() bool {
	return f.GroupID == 0 && (f.SubjectName == "" || f.SubjectName == SentinelSubject)
}

// Values maps the filter onto query parameters.
func (f RankingFilter) Values() map[string]any {
	subject := f.SubjectName
	if subject == SentinelSubject {
		subject = ""
	}
	return map[string]any{
		"group_id":     f.GroupID,
		"subject_name": subject,
	}
}

// Key is the canonical cache-key fragment for this filter.
func (f RankingFilter) Key() string {
	parts := make([]string, 0, 2)
	if f.GroupID != 0 {
		parts = append(parts, fmt.Sprintf("group=%d", f.GroupID))
	}
	if f.SubjectName != "" && f.SubjectName != SentinelSubject {
		parts = append(parts, "subject="+f.SubjectName)
	}
	return strings.Join(parts, "&")
}
