package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unirecords/client-go/internal/models"
	appErrors "github.com/unirecords/client-go/pkg/errors"
)

type studentsClient interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, payload models.CreateStudent) (*models.Student, error)
	Update(ctx context.Context, id int64, payload models.UpdateStudent) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
	GPA(ctx context.Context, id int64) (float64, error)
}

// StudentStore serves directory reads from the keyed cache and invalidates
// the students entity on every successful write.
type StudentStore struct {
	client    studentsClient
	cache     *Cache
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentStore constructs the student store.
func NewStudentStore(client studentsClient, cache *Cache, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *StudentStore {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentStore{client: client, cache: cache, ttl: ttl, validator: validate, logger: logger}
}

// List returns students for the filter, cached per filter tuple.
func (s *StudentStore) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return cached(ctx, s.cache, EntityStudents, "list:"+filter.Key(), s.ttl, func(ctx context.Context) ([]models.Student, error) {
		return s.client.List(ctx, filter)
	})
}

// Get returns one student by id, cached per id.
func (s *StudentStore) Get(ctx context.Context, id int64) (*models.Student, error) {
	return cached(ctx, s.cache, EntityStudents, fmt.Sprintf("id=%d", id), s.ttl, func(ctx context.Context) (*models.Student, error) {
		return s.client.Get(ctx, id)
	})
}

// GPA is a server-computed aggregate; it changes whenever grades are
// written, so it lives under the rankings entity and follows its
// invalidation.
func (s *StudentStore) GPA(ctx context.Context, id int64) (float64, error) {
	return cached(ctx, s.cache, EntityRankings, fmt.Sprintf("gpa=%d", id), s.ttl, func(ctx context.Context) (float64, error) {
		return s.client.GPA(ctx, id)
	})
}

// Create validates and submits a new student, then discards every cached
// students entry.
func (s *StudentStore) Create(ctx context.Context, payload models.CreateStudent) (*models.Student, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.NewValidation(err, "invalid student payload")
	}
	student, err := s.client.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntityStudents)
	return student, nil
}

// Update submits a partial student change and invalidates on success.
func (s *StudentStore) Update(ctx context.Context, id int64, payload models.UpdateStudent) (*models.Student, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.NewValidation(err, "invalid student payload")
	}
	student, err := s.client.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntityStudents)
	return student, nil
}

// Delete removes a student and invalidates on success.
func (s *StudentStore) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateEntity(EntityStudents)
	return nil
}
