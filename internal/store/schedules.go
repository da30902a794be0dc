package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unirecords/client-go/internal/models"
	appErrors "github.com/unirecords/client-go/pkg/errors"
)

type schedulesClient interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error)
	Create(ctx context.Context, payload models.CreateScheduleEntry) (*models.ScheduleEntry, error)
	Update(ctx context.Context, id int64, payload models.UpdateScheduleEntry) (*models.ScheduleEntry, error)
	Delete(ctx context.Context, id int64) error
}

// ScheduleStore serves group schedules from the keyed cache.
type ScheduleStore struct {
	client    schedulesClient
	cache     *Cache
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleStore constructs the schedule store.
func NewScheduleStore(client schedulesClient, cache *Cache, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *ScheduleStore {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleStore{client: client, cache: cache, ttl: ttl, validator: validate, logger: logger}
}

// List returns schedule entries, cached per group filter. An unset group id
// lists every group.
func (s *ScheduleStore) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	return cached(ctx, s.cache, EntitySchedules, "list:"+filter.Key(), s.ttl, func(ctx context.Context) ([]models.ScheduleEntry, error) {
		return s.client.List(ctx, filter)
	})
}

// Create validates and submits a new slot, invalidating on success.
func (s *ScheduleStore) Create(ctx context.Context, payload models.CreateScheduleEntry) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.NewValidation(err, "invalid schedule payload")
	}
	entry, err := s.client.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntitySchedules)
	return entry, nil
}

// Update submits a partial change, invalidating on success.
func (s *ScheduleStore) Update(ctx context.Context, id int64, payload models.UpdateScheduleEntry) (*models.ScheduleEntry, error) {
	entry, err := s.client.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateEntity(EntitySchedules)
	return entry, nil
}

// Delete removes a slot, invalidating on success.
func (s *ScheduleStore) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateEntity(EntitySchedules)
	return nil
}
