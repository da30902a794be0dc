package api

import (
	"context"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/transport"
)

// GradebookAPI covers assignments, grades and rankings, which the service
// treats as one gradebook concept.
type GradebookAPI struct {
	client *transport.Client
}

func NewGradebookAPI(client *transport.Client) *GradebookAPI {
	return &GradebookAPI{client: client}
}

func (a *GradebookAPI) ListAssignments(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	var assignments []models.Assignment
	path := "/assignments" + transport.BuildQuery(filter.Values())
	if err := a.client.Get(ctx, path, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (a *GradebookAPI) CreateAssignment(ctx context.Context, payload models.CreateAssignment) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := a.client.Post(ctx, "/assignments", payload, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a *GradebookAPI) CreateGrade(ctx context.Context, payload models.CreateGrade) (*models.Grade, error) {
	var grade models.Grade
	if err := a.client.Post(ctx, "/grades", payload, &grade); err != nil {
		return nil, err
	}
	return &grade, nil
}

func (a *GradebookAPI) Rankings(ctx context.Context, filter models.RankingFilter) ([]models.RankingEntry, error) {
	var rankings []models.RankingEntry
	path := "/rankings" + transport.BuildQuery(filter.Values())
	if err := a.client.Get(ctx, path, &rankings); err != nil {
		return nil, err
	}
	return rankings, nil
}
