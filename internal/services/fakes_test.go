package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookmark/internal/models"
)

var errBoom = errors.New("boom")

type pageCall struct {
	filter bson.M
	skip   int64
	limit  int64
}

type fakeBookmarkRepo struct {
	mu        sync.Mutex
	bookmarks []models.Bookmark
	total     int64
	countErr  error
	findErr   error
	deleted   int64

	countFilters []bson.M
	pageCalls    []pageCall
	created      []models.Bookmark
	countByName  map[string]int64

	urls      []string
	urlsErr   error
	batches   [][]models.Bookmark
	failBatch int // 1-based; 0 never fails
}

func (f *fakeBookmarkRepo) Create(_ context.Context, bm *models.Bookmark) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *bm)
	return bm, nil
}

func (f *fakeBookmarkRepo) Count(_ context.Context, filter bson.M) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countFilters = append(f.countFilters, filter)
	if f.countErr != nil {
		return 0, f.countErr
	}
	if name, ok := filter["categories"].(string); ok && f.countByName != nil {
		return f.countByName[name], nil
	}
	return f.total, nil
}

func (f *fakeBookmarkRepo) FindPage(_ context.Context, filter bson.M, skip, limit int64) ([]models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls = append(f.pageCalls, pageCall{filter: filter, skip: skip, limit: limit})
	if f.findErr != nil {
		return nil, f.findErr
	}
	if skip >= int64(len(f.bookmarks)) {
		return []models.Bookmark{}, nil
	}
	end := skip + limit
	if end > int64(len(f.bookmarks)) {
		end = int64(len(f.bookmarks))
	}
	out := make([]models.Bookmark, end-skip)
	copy(out, f.bookmarks[skip:end])
	return out, nil
}

func (f *fakeBookmarkRepo) FindAll(context.Context) ([]models.Bookmark, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]models.Bookmark, len(f.bookmarks))
	copy(out, f.bookmarks)
	return out, nil
}

func (f *fakeBookmarkRepo) FindURLs(context.Context) ([]string, error) {
	if f.urlsErr != nil {
		return nil, f.urlsErr
	}
	return f.urls, nil
}

func (f *fakeBookmarkRepo) InsertMany(_ context.Context, bms []models.Bookmark) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBatch == len(f.batches)+1 {
		return 0, errBoom
	}
	batch := make([]models.Bookmark, len(bms))
	copy(batch, bms)
	f.batches = append(f.batches, batch)
	return len(bms), nil
}

func (f *fakeBookmarkRepo) DeleteOne(context.Context, bson.M) (*mongo.DeleteResult, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &mongo.DeleteResult{DeletedCount: f.deleted}, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories []models.Category
	findErr    error
	createErr  error

	slugLookups int
	counts      map[string]int64
	upserted    []models.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.categories = append(f.categories, *c)
	return c, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slugLookups++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, c := range f.categories {
		if c.Slug == slug {
			found := c
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCategoryRepo) FindWithBookmarks(ctx context.Context) ([]models.Category, error) {
	all, err := f.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Category{}
	for _, c := range all {
		if c.BookmarksCount > 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindAll(context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]models.Category, len(f.categories))
	copy(out, f.categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) UpdateCount(_ context.Context, name string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[name] = count
	for i := range f.categories {
		if f.categories[i].Name == name {
			f.categories[i].BookmarksCount = count
		}
	}
	return nil
}

func (f *fakeCategoryRepo) Upsert(_ context.Context, c *models.Category) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, *c)
	for i := range f.categories {
		if f.categories[i].Name == c.Name {
			f.categories[i].Slug = c.Slug
			f.categories[i].ParentCategory = c.ParentCategory
			return false, nil
		}
	}
	f.categories = append(f.categories, *c)
	return true, nil
}

type fakeSlugCache struct {
	names   map[string]string
	getErr  error
	flushed int
}

func (f *fakeSlugCache) GetCategoryName(_ context.Context, slug string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	name, ok := f.names[slug]
	return name, ok, nil
}

func (f *fakeSlugCache) SetCategoryName(_ context.Context, slug, name string) error {
	if f.names == nil {
		f.names = map[string]string{}
	}
	f.names[slug] = name
	return nil
}

func (f *fakeSlugCache) Flush(context.Context) error {
	f.flushed++
	f.names = map[string]string{}
	return nil
}

func strPtr(s string) *string { return &s }

func makeBookmarks(n int) []models.Bookmark {
	out := make([]models.Bookmark, n)
	for i := range out {
		out[i] = models.Bookmark{Title: "bookmark", URL: "https://example.com", IsProcessed: true, DateAdd: int64(1300000000 + i)}
	}
	return out
}
