package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-remote-media/internal/identity"
	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

const recordResource = "remote resource"

// Store keeps local references to remote resources together with the crop
// coordinates chosen per variation.
type Store struct {
	repo   repository.Repository[*Record]
	logger interfaces.Logger
	now    func() time.Time
}

// StoreOption customises a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	logger       interfaces.Logger
	now          func() time.Time
}

// WithCache wraps the repository with go-repository-cache.
func WithCache(cacheService cache.CacheService, serializer cache.KeySerializer) StoreOption {
	return func(o *storeOptions) {
		o.cacheService = cacheService
		o.serializer = serializer
	}
}

func WithLogger(logger interfaces.Logger) StoreOption {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewStore builds a store over db.
func NewStore(db *bun.DB, opts ...StoreOption) (*Store, error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	options := storeOptions{
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	base := NewRecordRepository(db)
	if options.cacheService != nil && options.serializer != nil {
		base = repositorycache.New(base, options.cacheService, options.serializer)
	}
	return &Store{repo: base, logger: options.logger, now: options.now}, nil
}

// Save inserts or refreshes the reference for resource. Stored variation
// coordinates are kept unless resource carries its own for the same name.
func (s *Store) Save(ctx context.Context, resource *resources.RemoteResource) (*resources.RemoteResource, error) {
	if resource.IsNull() {
		return nil, resources.ErrNullResource
	}
	record := recordFromResource(resource)
	now := s.now()
	record.UpdatedAt = now

	existing, err := s.repo.GetByID(ctx, record.ID.String())
	if err != nil {
		if !isNotFound(err) {
			return nil, mapRepositoryError(err, record.ResourceKey)
		}
		record.CreatedAt = now
		created, err := s.repo.Create(ctx, record)
		if err != nil {
			return nil, mapRepositoryError(err, record.ResourceKey)
		}
		s.logger.Debug("storage.resource.created", logging.FieldResourceID, record.RemoteID, logging.FieldResourceType, record.ResourceType)
		return created.Resource(), nil
	}

	record.CreatedAt = existing.CreatedAt
	for name, coords := range existing.Variations {
		if _, ok := record.Variations[name]; !ok {
			record.Variations[name] = coords
		}
	}
	updated, err := s.update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("storage.resource.updated", logging.FieldResourceID, record.RemoteID, logging.FieldResourceType, record.ResourceType)
	return updated.Resource(), nil
}

// Get loads a stored reference.
func (s *Store) Get(ctx context.Context, remoteID string, resourceType resources.ResourceType) (*resources.RemoteResource, error) {
	record, err := s.get(ctx, remoteID, resourceType)
	if err != nil {
		return nil, err
	}
	return record.Resource(), nil
}

// Delete removes a stored reference.
func (s *Store) Delete(ctx context.Context, remoteID string, resourceType resources.ResourceType) error {
	record, err := s.get(ctx, remoteID, resourceType)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, record); err != nil {
		return mapRepositoryError(err, record.ResourceKey)
	}
	s.logger.Debug("storage.resource.deleted", logging.FieldResourceID, record.RemoteID, logging.FieldResourceType, record.ResourceType)
	return nil
}

// SaveVariationCoordinates stores the crop chosen for one variation of a
// stored resource and returns the updated resource.
func (s *Store) SaveVariationCoordinates(ctx context.Context, remoteID string, resourceType resources.ResourceType, variation string, coords resources.Coordinates) (*resources.RemoteResource, error) {
	variation = strings.TrimSpace(variation)
	if variation == "" {
		return nil, fmt.Errorf("storage: variation name is required")
	}
	record, err := s.get(ctx, remoteID, resourceType)
	if err != nil {
		return nil, err
	}
	if record.Variations == nil {
		record.Variations = map[string]resources.Coordinates{}
	}
	record.Variations[variation] = coords
	record.UpdatedAt = s.now()

	updated, err := s.update(ctx, record)
	if err != nil {
		return nil, err
	}
	logging.WithVariation(s.logger, "", variation).Debug("storage.variation.saved", logging.FieldResourceID, record.RemoteID)
	return updated.Resource(), nil
}

// List returns stored references ordered by key, with the total count.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*resources.RemoteResource, int, error) {
	ordered := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.resource_key ASC")
	})

	var (
		records []*Record
		total   int
		err     error
	)
	if limit > 0 {
		records, total, err = s.repo.List(ctx, ordered, repository.SelectPaginate(limit, max(offset, 0)))
	} else {
		records, total, err = s.repo.List(ctx, ordered)
	}
	if err != nil {
		return nil, 0, mapRepositoryError(err, "")
	}
	out := make([]*resources.RemoteResource, 0, len(records))
	for _, record := range records {
		out = append(out, record.Resource())
	}
	return out, total, nil
}

func (s *Store) get(ctx context.Context, remoteID string, resourceType resources.ResourceType) (*Record, error) {
	key := identity.ResourceKey(string(resourceType), remoteID)
	id := identity.RemoteResourceUUID(string(resourceType), remoteID)
	if id == uuid.Nil {
		return nil, &NotFoundError{Resource: recordResource, Key: key}
	}
	record, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (s *Store) update(ctx context.Context, record *Record) (*Record, error) {
	updated, err := s.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"remote_id",
			"resource_type",
			"media_type",
			"url",
			"secure_url",
			"size",
			"format",
			"metadata",
			"variations",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ResourceKey)
	}
	return updated, nil
}

func isNotFound(err error) bool {
	return errors.IsCategory(err, repository.CategoryDatabaseNotFound)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return &NotFoundError{Resource: recordResource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", recordResource, err)
}
