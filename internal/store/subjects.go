package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/unirecords/client-go/internal/models"
)

type subjectsClient interface {
	List(ctx context.Context) ([]models.Subject, error)
}

// SubjectStore serves the subject list. Subjects change rarely and have no
// client-side write path, so they get a longer staleness window than the
// write-invalidated entities.
type SubjectStore struct {
	client subjectsClient
	cache  *Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewSubjectStore constructs the subject store.
func NewSubjectStore(client subjectsClient, cache *Cache, ttl time.Duration, logger *zap.Logger) *SubjectStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectStore{client: client, cache: cache, ttl: ttl, logger: logger}
}

// List returns all subjects, cached under a single key.
func (s *SubjectStore) List(ctx context.Context) ([]models.Subject, error) {
	return cached(ctx, s.cache, EntitySubjects, "list", s.ttl, func(ctx context.Context) ([]models.Subject, error) {
		return s.client.List(ctx)
	})
}
