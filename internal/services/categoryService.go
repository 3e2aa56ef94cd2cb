package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookmark/internal/metrics"
	"bookmark/internal/models"
	"bookmark/internal/repositories"
)

// CategoryService defines the interface for category-related business logic.
type CategoryService interface {
	GetCategoryNames(ctx context.Context, query string) ([]string, error)
	AddCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error)
	RecalculateCounts(ctx context.Context) (int, error)
	FixMissingParents(ctx context.Context) ([]string, error)
	SeedHierarchy(ctx context.Context, hierarchy Hierarchy) (SeedResult, error)
}

// SeedResult reports how many rows a seed inserted and how many it updated.
type SeedResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	bookmarkRepo repositories.BookmarkRepository
	resolver     categoryResolver
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, bookmarkRepo repositories.BookmarkRepository, cache SlugCache) CategoryService {
	if cache == nil {
		cache = NopSlugCache{}
	}
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		bookmarkRepo: bookmarkRepo,
		resolver:     categoryResolver{categoryRepo: categoryRepo, cache: cache},
	}
}

// GetCategoryNames returns all category names in ascending order. A non-empty
// query keeps only names fuzzily matching it, best match first.
func (s *categoryServiceImpl) GetCategoryNames(ctx context.Context, query string) ([]string, error) {
	log.Debug().Str("query", query).Msg("Attempting to retrieve category names")
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error finding categories")
		return nil, err
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)

	query = strings.TrimSpace(query)
	if query == "" {
		return names, nil
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Stable(ranks)
	matched := make([]string, 0, len(ranks))
	for _, r := range ranks {
		matched = append(matched, r.Target)
	}
	log.Debug().Str("query", query).Int("count", len(matched)).Msg("Filtered category names")
	return matched, nil
}

func (s *categoryServiceImpl) AddCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	log.Debug().Str("categoryName", name).Str("contextSlug", req.ContextSlug).Msg("Attempting to add category")
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	slug := GenerateSlug(name)
	if slug == "" {
		log.Warn().Str("categoryName", name).Msg("Category name yields an empty slug")
		return nil, ErrInvalidCategoryName
	}

	category := models.Category{Name: name, Slug: slug}

	if req.ContextSlug != "" {
		contextCategory, err := s.categoryRepo.FindBySlug(ctx, req.ContextSlug)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				log.Warn().Str("contextSlug", req.ContextSlug).Msg("Context category not found")
				return nil, ErrContextNotFound
			}
			log.Error().Err(err).Str("contextSlug", req.ContextSlug).Msg("Failed to resolve context category")
			return nil, err
		}
		// keep the tree two levels deep: a child context files under its own parent
		parent := contextCategory.Name
		if p := contextCategory.Parent(); p != "" {
			parent = p
		}
		category.ParentCategory = &parent
	}

	created, err := s.categoryRepo.Create(ctx, &category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn().Err(err).Str("categoryName", name).Msg("Category name already exists")
			return nil, ErrCategoryExists
		}
		log.Error().Err(err).Str("category_name", name).Msg("Failed to insert category")
		return nil, err
	}
	metrics.CategoryCreatedTotal.Inc()
	s.resolver.flush(ctx)

	log.Info().Str("categoryID", created.ID.Hex()).Str("categoryName", created.Name).Str("slug", created.Slug).Msg("Category added successfully")
	return created, nil
}

// RecalculateCounts rewrites bookmarks_count of every category with the
// number of bookmarks listing it. It returns the number of categories updated.
func (s *categoryServiceImpl) RecalculateCounts(ctx context.Context) (int, error) {
	log.Info().Msg("Recalculating category counts")
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching categories for recount")
		return 0, err
	}

	updated := 0
	for _, c := range categories {
		count, err := s.bookmarkRepo.Count(ctx, bson.M{"categories": c.Name})
		if err != nil {
			log.Error().Err(err).Str("category", c.Name).Msg("Error counting bookmarks for category")
			return updated, fmt.Errorf("count for %q: %w", c.Name, err)
		}
		if err := s.categoryRepo.UpdateCount(ctx, c.Name, count); err != nil {
			log.Error().Err(err).Str("category", c.Name).Msg("Error updating category count")
			return updated, fmt.Errorf("update count for %q: %w", c.Name, err)
		}
		updated++
		metrics.CategoryCountsRecalculatedTotal.Inc()
		log.Debug().Str("category", c.Name).Int64("count", count).Msg("Category count updated")
	}

	log.Info().Int("updated", updated).Msg("Category counts recalculated")
	return updated, nil
}

// FixMissingParents creates every parent category that is referenced but
// absent, with a count equal to the sum of its children's counts. It returns
// the created names in ascending order.
func (s *categoryServiceImpl) FixMissingParents(ctx context.Context) ([]string, error) {
	log.Info().Msg("Looking for missing parent categories")
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch categories")
		return nil, err
	}

	existing := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		existing[c.Name] = struct{}{}
	}
	sums := make(map[string]int64)
	for _, c := range categories {
		parent := c.Parent()
		if parent == "" {
			continue
		}
		if _, ok := existing[parent]; ok {
			continue
		}
		sums[parent] += c.BookmarksCount
	}

	missing := make([]string, 0, len(sums))
	for name := range sums {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	if len(missing) == 0 {
		log.Info().Msg("No missing parent categories")
		return missing, nil
	}

	for _, name := range missing {
		parent := models.Category{Name: name, Slug: GenerateSlug(name), BookmarksCount: 0}
		if _, err := s.categoryRepo.Upsert(ctx, &parent); err != nil {
			log.Error().Err(err).Str("category", name).Msg("Failed to insert missing parent")
			return nil, err
		}
		if err := s.categoryRepo.UpdateCount(ctx, name, sums[name]); err != nil {
			log.Error().Err(err).Str("category", name).Msg("Failed to update parent count")
			return nil, err
		}
		log.Info().Str("category", name).Int64("count", sums[name]).Msg("Missing parent category created")
	}
	s.resolver.flush(ctx)
	return missing, nil
}

// SeedHierarchy upserts every parent of the hierarchy as a root category and
// every child under its parent.
func (s *categoryServiceImpl) SeedHierarchy(ctx context.Context, hierarchy Hierarchy) (SeedResult, error) {
	var result SeedResult
	parents := hierarchy.Parents()
	log.Info().Int("parents", len(parents)).Msg("Seeding category hierarchy")

	upsert := func(c models.Category) error {
		inserted, err := s.categoryRepo.Upsert(ctx, &c)
		if err != nil {
			log.Error().Err(err).Str("category", c.Name).Msg("Failed to upsert category")
			return err
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		return nil
	}

	for _, parent := range parents {
		if err := upsert(models.Category{Name: parent, Slug: GenerateSlug(parent)}); err != nil {
			return result, err
		}
	}
	for _, parent := range parents {
		for _, child := range hierarchy[parent] {
			p := parent
			if err := upsert(models.Category{Name: child, Slug: GenerateSlug(child), ParentCategory: &p}); err != nil {
				return result, err
			}
		}
	}
	s.resolver.flush(ctx)

	log.Info().Int("inserted", result.Inserted).Int("updated", result.Updated).Msg("Category hierarchy seeded")
	return result, nil
}
