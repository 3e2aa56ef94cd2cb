package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"bookmark/internal/metrics"
	"bookmark/internal/models"
	"bookmark/internal/repositories"
)

// SlugCache remembers slug -> category name resolutions.
type SlugCache interface {
	GetCategoryName(ctx context.Context, slug string) (string, bool, error)
	SetCategoryName(ctx context.Context, slug, name string) error
	Flush(ctx context.Context) error
}

// NopSlugCache never hits; used when Redis is not configured.
type NopSlugCache struct{}

func (NopSlugCache) GetCategoryName(context.Context, string) (string, bool, error) {
	return "", false, nil
}
func (NopSlugCache) SetCategoryName(context.Context, string, string) error { return nil }
func (NopSlugCache) Flush(context.Context) error                          { return nil }

type categoryResolver struct {
	categoryRepo repositories.CategoryRepository
	cache        SlugCache
}

// resolve returns the category behind slug, or nil when no category matches.
// Cache hits carry only the name.
func (r categoryResolver) resolve(ctx context.Context, slug string) (*models.Category, error) {
	name, ok, err := r.cache.GetCategoryName(ctx, slug)
	switch {
	case err != nil:
		metrics.SlugCacheLookupsTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("slug", slug).Msg("Slug cache lookup failed, falling back to database")
	case ok:
		metrics.SlugCacheLookupsTotal.WithLabelValues("hit").Inc()
		return &models.Category{Name: name, Slug: slug}, nil
	default:
		metrics.SlugCacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	category, err := r.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve category slug %q: %w", slug, err)
	}

	if err := r.cache.SetCategoryName(ctx, slug, category.Name); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("Failed to cache slug resolution")
	}
	return category, nil
}

func (r categoryResolver) flush(ctx context.Context) {
	if err := r.cache.Flush(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush slug cache")
	}
}
