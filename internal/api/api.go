// Package api contains the resource clients: one thin type per remote
// entity, each a fixed mapping from a domain verb to a method, path and
// optional query or body. No caching, retries or validation happens here.
package api

import "github.com/unirecords/client-go/internal/transport"

// Set bundles every resource client over one transport.
type Set struct {
	Auth       *AuthAPI
	Students   *StudentsAPI
	Schedules  *SchedulesAPI
	Attendance *AttendanceAPI
	Gradebook  *GradebookAPI
	Subjects   *SubjectsAPI
}

// NewSet wires all resource clients to the given transport.
func NewSet(client *transport.Client) *Set {
	return &Set{
		Auth:       NewAuthAPI(client),
		Students:   NewStudentsAPI(client),
		Schedules:  NewSchedulesAPI(client),
		Attendance: NewAttendanceAPI(client),
		Gradebook:  NewGradebookAPI(client),
		Subjects:   NewSubjectsAPI(client),
	}
}
