package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unirecords/client-go/internal/models"
	appErrors "github.com/unirecords/client-go/pkg/errors"
)

type gradebookClient interface {
	ListAssignments(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	CreateAssignment(ctx context.Context, payload models.CreateAssignment) (*models.Assignment, error)
	CreateGrade(ctx context.Context, payload models.CreateGrade) (*models.Grade, error)
	Rankings(ctx context.Context, filter models.RankingFilter) ([]models.RankingEntry, error)
}

// GradebookStore covers assignments, grades and rankings. Assignment and
// ranking reads are dependent reads: they issue nothing while their filter
// is unset or sentinel.
type GradebookStore struct {
	client    gradebookClient
	cache     *Cache
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradebookStore constructs the gradebook store.
func NewGradebookStore(client gradebookClient, cache *Cache, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *GradebookStore {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradebookStore{client: client, cache: cache, ttl: ttl, validator: validate, logger: logger}
}

// Assignments returns assignments for the selected subject; no selection
// (or the "all" sentinel) yields empty without a network call.
func (s *GradebookStore) Assignments(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	if filter.Empty() {
		return nil, nil
	}
	return cached(ctx, s.cache, EntityAssignments, "list:"+filter.Key(), s.ttl, func(ctx context.Context) ([]models.Assignment, error) {
		return s.client.ListAssignments(ctx, filter)
	})
}

// Rankings returns the GPA ranking for the filter pair; both dimensions
// unset or sentinel yields empty without a network call.
func (s *GradebookStore) Rankings(ctx context.Context, filter models.RankingFilter) ([]models.RankingEntry, error) {
	if filter.Empty() {
		return nil, nil
	}
	return cached(ctx, s.cache, EntityRankings, "list:"+filter.Key(), s.ttl, func(ctx context.Context) ([]models.RankingEntry, error) {
		return s.client.Rankings(ctx, filter)
	})
}

// CreateAssignment validates and submits a new assignment, invalidating the
// assignments entity on success.
func (s *GradebookStore) CreateAssignment(ctx context.Context, payload models.CreateAssignment) (*models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.NewValidation(err, "invalid assignment payload")
	}
	assignment, err := s.client.CreateAssignment(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntityAssignments)
	return assignment, nil
}

// CreateGrade validates and submits a mark. Rankings are the derived data
// set a grade write affects, so that entity is invalidated.
func (s *GradebookStore) CreateGrade(ctx context.Context, payload models.CreateGrade) (*models.Grade, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.NewValidation(err, "invalid grade payload")
	}
	grade, err := s.client.CreateGrade(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntityRankings)
	return grade, nil
}
