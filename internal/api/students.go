package api

import (
	"context"
	"fmt"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/transport"
)

// StudentsAPI maps directory verbs onto /students routes.
type StudentsAPI struct {
	client *transport.Client
}

func NewStudentsAPI(client *transport.Client) *StudentsAPI {
	return &StudentsAPI{client: client}
}

func (a *StudentsAPI) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	var students []models.Student
	path := "/students" + transport.BuildQuery(filter.Values())
	if err := a.client.Get(ctx, path, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (a *StudentsAPI) Get(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := a.client.Get(ctx, fmt.Sprintf("/students/%d", id), &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (a *StudentsAPI) Create(ctx context.Context, payload models.CreateStudent) (*models.Student, error) {
	var student models.Student
	if err := a.client.Post(ctx, "/students", payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (a *StudentsAPI) Update(ctx context.Context, id int64, payload models.UpdateStudent) (*models.Student, error) {
	var student models.Student
	if err := a.client.Patch(ctx, fmt.Sprintf("/students/%d", id), payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (a *StudentsAPI) Delete(ctx context.Context, id int64) error {
	return a.client.Delete(ctx, fmt.Sprintf("/students/%d", id))
}

// GPA fetches the server-computed grade point average for one student.
func (a *StudentsAPI) GPA(ctx context.Context, id int64) (float64, error) {
	var out models.StudentGPA
	if err := a.client.Get(ctx, fmt.Sprintf("/students/%d/gpa", id), &out); err != nil {
		return 0, err
	}
	return out.GPA, nil
}
