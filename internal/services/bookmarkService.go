package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookmark/internal/metrics"
	"bookmark/internal/models"
	"bookmark/internal/repositories"
)

const (
	// PageSize is the number of bookmarks on one listing page.
	PageSize = 16
	// ImportBatchSize is the number of bookmarks written per insert during an import.
	ImportBatchSize = 50
)

type BookmarkService interface {
	GetBookmarks(ctx context.Context, page int) (models.BookmarkPage, error)
	GetBookmarksByCategory(ctx context.Context, slug string, page int) (models.BookmarkPage, error)
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	AddBookmark(ctx context.Context, reqBody models.AddBookmarkRequestBody) (*models.Bookmark, error)
	ImportBookmarks(ctx context.Context, links []models.ImportedLink) (models.ImportResult, error)
	DeleteBookmark(ctx context.Context, bookmarkID primitive.ObjectID) error
}

type bookmarkServiceImpl struct {
	bookmarkRepo repositories.BookmarkRepository
	resolver     categoryResolver
}

func NewBookmarkService(bookmarkRepo repositories.BookmarkRepository, categoryRepo repositories.CategoryRepository, cache SlugCache) BookmarkService {
	if cache == nil {
		cache = NopSlugCache{}
	}
	return &bookmarkServiceImpl{
		bookmarkRepo: bookmarkRepo,
		resolver:     categoryResolver{categoryRepo: categoryRepo, cache: cache},
	}
}

func processedFilter() bson.M {
	return bson.M{"is_processed": true}
}

func (s *bookmarkServiceImpl) GetBookmarks(ctx context.Context, page int) (models.BookmarkPage, error) {
	log.Debug().Int("page", page).Msg("Attempting to retrieve bookmarks page")
	result, err := s.findPage(ctx, processedFilter(), page)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Error retrieving bookmarks page")
		return models.EmptyPage(), err
	}
	log.Debug().Int("page", page).Int("returned", len(result.Data)).Int64("total", result.Count).Msg("Successfully retrieved bookmarks page")
	return result, nil
}

func (s *bookmarkServiceImpl) GetBookmarksByCategory(ctx context.Context, slug string, page int) (models.BookmarkPage, error) {
	log.Debug().Str("slug", slug).Int("page", page).Msg("Attempting to retrieve bookmarks by category")
	if page < 1 {
		return models.EmptyPage(), ErrInvalidPage
	}

	category, err := s.resolver.resolve(ctx, slug)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("Error fetching category")
		return models.EmptyPage(), err
	}
	if category == nil {
		log.Warn().Str("slug", slug).Msg("Category not found")
		return models.EmptyPage(), nil
	}

	filter := processedFilter()
	filter["categories"] = category.Name

	result, err := s.findPage(ctx, filter, page)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Str("category", category.Name).Msg("Error retrieving bookmarks by category")
		return models.EmptyPage(), err
	}
	log.Debug().Str("slug", slug).Int("returned", len(result.Data)).Int64("total", result.Count).Msg("Successfully retrieved bookmarks by category")
	return result, nil
}

// findPage counts the matching bookmarks, then fetches the requested slice.
func (s *bookmarkServiceImpl) findPage(ctx context.Context, filter bson.M, page int) (models.BookmarkPage, error) {
	if page < 1 {
		return models.EmptyPage(), ErrInvalidPage
	}

	total, err := s.bookmarkRepo.Count(ctx, filter)
	if err != nil {
		return models.EmptyPage(), fmt.Errorf("error fetching total bookmark count: %w", err)
	}

	skip := int64(page-1) * PageSize
	data, err := s.bookmarkRepo.FindPage(ctx, filter, skip, PageSize)
	if err != nil {
		return models.EmptyPage(), fmt.Errorf("error fetching bookmarks: %w", err)
	}
	for i := range data {
		data[i].DateAddFormatted = FormatDate(data[i].DateAdd)
	}
	return models.BookmarkPage{Data: data, Count: total}, nil
}

func (s *bookmarkServiceImpl) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	log.Debug().Msg("Attempting to list all bookmarks")
	bookmarks, err := s.bookmarkRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error listing bookmarks")
		return nil, err
	}
	for i := range bookmarks {
		bookmarks[i].DateAddFormatted = FormatDate(bookmarks[i].DateAdd)
	}
	log.Debug().Int("count", len(bookmarks)).Msg("Successfully listed bookmarks")
	return bookmarks, nil
}

func validBookmarkURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *bookmarkServiceImpl) AddBookmark(ctx context.Context, reqBody models.AddBookmarkRequestBody) (*models.Bookmark, error) {
	log.Debug().Interface("reqBody", reqBody).Msg("Attempting to add bookmark")
	title := strings.TrimSpace(reqBody.Title)
	rawURL := strings.TrimSpace(reqBody.URL)
	if title == "" || !validBookmarkURL(rawURL) {
		log.Warn().Str("title", title).Str("url", rawURL).Msg("Rejected bookmark payload")
		return nil, ErrInvalidBookmark
	}

	bm := models.Bookmark{
		ID:          primitive.NewObjectID(),
		Title:       title,
		URL:         rawURL,
		Categories:  []string{},
		IsProcessed: false,
		DateAdd:     time.Now().Unix(),
	}

	created, err := s.bookmarkRepo.Create(ctx, &bm)
	if err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("Error inserting bookmark")
		return nil, err
	}
	created.DateAddFormatted = FormatDate(created.DateAdd)
	metrics.BookmarkCreatedTotal.Inc()

	log.Info().Str("bookmarkID", created.ID.Hex()).Msg("Bookmark added successfully")
	return created, nil
}

// storedURLKey is the form urls are compared in when importing.
func storedURLKey(u string) string {
	return strings.TrimRight(u, "/")
}

// ImportBookmarks stores the links whose url is not stored yet, ignoring
// trailing slashes, as unprocessed bookmarks dated by their add_date. Inserts
// go in batches of ImportBatchSize and stop at the first failed batch.
func (s *bookmarkServiceImpl) ImportBookmarks(ctx context.Context, links []models.ImportedLink) (models.ImportResult, error) {
	log.Debug().Int("links", len(links)).Msg("Attempting to import bookmarks")
	result := models.ImportResult{Parsed: len(links)}

	stored, err := s.bookmarkRepo.FindURLs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching stored bookmark urls")
		return result, fmt.Errorf("error fetching stored urls: %w", err)
	}
	known := make(map[string]struct{}, len(stored)+len(links))
	for _, u := range stored {
		known[storedURLKey(u)] = struct{}{}
	}

	fresh := make([]models.Bookmark, 0, len(links))
	for _, link := range links {
		key := storedURLKey(link.URL)
		if _, ok := known[key]; ok {
			result.Skipped++
			continue
		}
		known[key] = struct{}{}
		fresh = append(fresh, models.Bookmark{
			ID:          primitive.NewObjectID(),
			Title:       link.Title,
			URL:         link.URL,
			Categories:  []string{},
			IsProcessed: false,
			DateAdd:     link.AddDate,
		})
	}

	for start := 0; start < len(fresh); start += ImportBatchSize {
		end := min(start+ImportBatchSize, len(fresh))
		n, err := s.bookmarkRepo.InsertMany(ctx, fresh[start:end])
		result.Imported += n
		metrics.BookmarkCreatedTotal.Add(float64(n))
		if err != nil {
			log.Error().Err(err).Int("imported", result.Imported).Int("pending", len(fresh)).Msg("Error importing bookmarks")
			return result, fmt.Errorf("error importing bookmarks: %w", err)
		}
		log.Debug().Int("imported", result.Imported).Int("pending", len(fresh)).Msg("Import progress")
	}

	log.Info().Int("parsed", result.Parsed).Int("skipped", result.Skipped).Int("imported", result.Imported).Msg("Bookmarks imported")
	return result, nil
}

func (s *bookmarkServiceImpl) DeleteBookmark(ctx context.Context, bookmarkID primitive.ObjectID) error {
	log.Debug().Str("bookmarkID", bookmarkID.Hex()).Msg("Attempting to delete bookmark")
	result, err := s.bookmarkRepo.DeleteOne(ctx, bson.M{"_id": bookmarkID})
	if err != nil {
		log.Error().Err(err).Str("bookmark_id", bookmarkID.Hex()).Msg("Error deleting bookmark")
		return err
	}
	if result.DeletedCount == 0 {
		log.Warn().Str("bookmark_id", bookmarkID.Hex()).Msg("Bookmark not found")
		return ErrBookmarkNotFound
	}
	metrics.BookmarkDeletedTotal.Inc()
	log.Info().Str("bookmarkID", bookmarkID.Hex()).Msg("Bookmark deleted successfully")
	return nil
}
