package landingpages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunLandingPageRepository persists landing pages through bun.
type BunLandingPageRepository struct {
	repo repository.Repository[*LandingPage]
}

func NewBunLandingPageRepository(db *bun.DB) *BunLandingPageRepository {
	return NewBunLandingPageRepositoryWithCache(db, nil, nil)
}

// NewBunLandingPageRepositoryWithCache constructs a LandingPageRepository backed by bun with optional caching.
func NewBunLandingPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLandingPageRepository {
	base := NewLandingPageRepository(db)
	return &BunLandingPageRepository{
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunLandingPageRepository) Create(ctx context.Context, record *LandingPage) (*LandingPage, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("landing page repository error: %w", err)
	}
	return created, nil
}

func (r *BunLandingPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*LandingPage, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunLandingPageRepository) GetBySlug(ctx context.Context, slug string) (*LandingPage, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Key: slug}
	}
	return records[0], nil
}

func (r *BunLandingPageRepository) List(ctx context.Context, userID uuid.UUID) ([]*LandingPage, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if userID != uuid.Nil {
			q = q.Where("?TableAlias.user_id = ?", userID)
		}
		return q.OrderExpr("?TableAlias.created_at DESC").OrderExpr("?TableAlias.slug ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, userID.String())
	}
	return records, nil
}

// Update writes every mutable column in one statement so content and
// generated HTML never diverge.
func (r *BunLandingPageRepository) Update(ctx context.Context, record *LandingPage) (*LandingPage, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"description",
			"slug",
			"status",
			"content_json",
			"generated_html",
			"content_document_url",
			"wireframe_url",
			"design_inspiration_url",
			"source_text",
			"tone",
			"language",
			"target_audience",
			"external_id",
			"published_url",
			"published_at",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

// Delete removes the record through the repository so cached reads by id and
// slug are invalidated with it.
func (r *BunLandingPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return mapRepositoryError(err, id.String())
	}
	if err := r.repo.Delete(ctx, record); err != nil {
		return fmt.Errorf("delete landing page: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("landing page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
