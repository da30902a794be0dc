package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unirecords/client-go/internal/models"
	appErrors "github.com/unirecords/client-go/pkg/errors"
)

type attendanceClient interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	Create(ctx context.Context, payload models.CreateAttendance) (*models.AttendanceRecord, error)
	Update(ctx context.Context, id int64, payload models.UpdateAttendance) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, id int64) error
}

// AttendanceStore serves attendance reads keyed by the student-or-subject
// filter. A write invalidates every attendance key regardless of filter:
// the affected filter set is unknown client-side, so correctness wins over
// efficiency.
type AttendanceStore struct {
	client    attendanceClient
	cache     *Cache
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceStore constructs the attendance store.
func NewAttendanceStore(client attendanceClient, cache *Cache, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *AttendanceStore {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceStore{client: client, cache: cache, ttl: ttl, validator: validate, logger: logger}
}

// List returns attendance records for the selection. With no selection it
// returns empty without touching the network.
func (s *AttendanceStore) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if filter.Empty() {
		return nil, nil
	}
	return cached(ctx, s.cache, EntityAttendance, "list:"+filter.Key(), s.ttl, func(ctx context.Context) ([]models.AttendanceRecord, error) {
		return s.client.List(ctx, filter)
	})
}

// Create validates and records a visit, invalidating on success.
func (s *AttendanceStore) Create(ctx context.Context, payload models.CreateAttendance) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.NewValidation(err, "invalid attendance payload")
	}
	record, err := s.client.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntityAttendance)
	return record, nil
}

// SetVisited toggles the visited flag on an existing record.
func (s *AttendanceStore) SetVisited(ctx context.Context, id int64, visited bool) (*models.AttendanceRecord, error) {
	record, err := s.client.Update(ctx, id, models.UpdateAttendance{Visited: &visited})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntityAttendance)
	return record, nil
}

// Delete removes a record, invalidating on success.
func (s *AttendanceStore) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateEntity(EntityAttendance)
	return nil
}
