package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ucetportal/campus-api/internal/api/metrics"
	"github.com/ucetportal/campus-api/internal/core/domain"
	"github.com/ucetportal/campus-api/internal/core/ports"
)

// ListCache abstracts the list cache (Redis). Get returns (nil, nil) on a
// cache miss.
type ListCache interface {
	Get(ctx context.Context, collection string) ([]*domain.ContentRecord, error)
	Set(ctx context.Context, collection string, records []*domain.ContentRecord) error
	Invalidate(ctx context.Context, collection string) error
}

// ContentService implements CRUD for one content collection. One instance is
// built per collection (news, resources); they share nothing but code.
type ContentService struct {
	repo       ports.ContentRepository
	cache      ListCache
	collection string
	log        zerolog.Logger
}

func NewContentService(repo ports.ContentRepository, cache ListCache, collection string, log zerolog.Logger) *ContentService {
	return &ContentService{repo: repo, cache: cache, collection: collection, log: log}
}

// List returns every record newest first, served from the cache when warm.
// Cache failures degrade to a store read, never to a request failure.
func (s *ContentService) List(ctx context.Context) ([]*domain.ContentRecord, error) {
	cached, err := s.cache.Get(ctx, s.collection)
	if err != nil {
		s.log.Warn().Err(err).Str("collection", s.collection).Msg("cache read failed, falling back to store")
	} else if cached != nil {
		metrics.ContentCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.ContentCacheTotal.WithLabelValues("miss").Inc()

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.collection, err)
	}

	if err := s.cache.Set(ctx, s.collection, records); err != nil {
		s.log.Warn().Err(err).Str("collection", s.collection).Msg("cache write failed")
	}
	return records, nil
}

// Create persists a new record attributed to the authenticated caller.
func (s *ContentService) Create(ctx context.Context, in ports.CreateContentInput) (*domain.ContentRecord, error) {
	if in.Title == "" || in.Body == "" {
		return nil, domain.ErrMissingFields
	}

	created, err := s.repo.Create(ctx, &domain.ContentRecord{
		Title:         in.Title,
		Body:          in.Body,
		CreatedBy:     in.CreatorID,
		CreatedByName: in.CreatorName,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.collection, err)
	}

	s.invalidate(ctx)
	metrics.ContentMutationsTotal.WithLabelValues(s.collection, "create").Inc()
	s.log.Info().Str("collection", s.collection).Str("id", created.ID).Str("created_by", in.CreatorID).Msg("content created")

	return created, nil
}

// Update rewrites title and body of an existing record.
func (s *ContentService) Update(ctx context.Context, id, title, body string) error {
	if title == "" || body == "" {
		return domain.ErrMissingFields
	}
	if err := s.repo.Update(ctx, id, title, body); err != nil {
		return err
	}

	s.invalidate(ctx)
	metrics.ContentMutationsTotal.WithLabelValues(s.collection, "update").Inc()
	return nil
}

// Delete removes a record by id.
func (s *ContentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	metrics.ContentMutationsTotal.WithLabelValues(s.collection, "delete").Inc()
	return nil
}

func (s *ContentService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, s.collection); err != nil {
		s.log.Warn().Err(err).Str("collection", s.collection).Msg("cache invalidation failed")
	}
}
