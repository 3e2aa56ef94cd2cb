package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookmark/internal/database"
	"bookmark/internal/models"
	"bookmark/internal/utils"
)

type BookmarkRepository interface {
	Create(ctx context.Context, bm *models.Bookmark) (*models.Bookmark, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindPage(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Bookmark, error)
	FindAll(ctx context.Context) ([]models.Bookmark, error)
	FindURLs(ctx context.Context) ([]string, error)
	InsertMany(ctx context.Context, bms []models.Bookmark) (int, error)
	DeleteOne(ctx context.Context, filter bson.M) (*mongo.DeleteResult, error)
}

type bookmarkRepository struct {
	db database.Service
}

func NewBookmarkRepository(db database.Service) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) collection() *mongo.Collection {
	return r.db.Database().Collection(database.BookmarksCollection)
}

func (r *bookmarkRepository) Create(ctx context.Context, bm *models.Bookmark) (*models.Bookmark, error) {
	q := utils.ObserveQuery("create", "bookmark")
	defer q.Done()

	result, err := r.collection().InsertOne(ctx, bm)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to add bookmark: %w", err)
	}
	bm.ID = result.InsertedID.(primitive.ObjectID)
	return bm, nil
}

func (r *bookmarkRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	q := utils.ObserveQuery("count", "bookmark")
	defer q.Done()

	count, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		q.Fail()
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}

// FindPage returns bookmarks matching filter, newest date_add first.
func (r *bookmarkRepository) FindPage(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Bookmark, error) {
	q := utils.ObserveQuery("findPage", "bookmark")
	defer q.Done()

	opts := options.Find().
		SetSort(bson.D{{Key: "date_add", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to retrieve bookmarks: %w", err)
	}
	defer cursor.Close(ctx)

	bookmarks := []models.Bookmark{}
	if err := cursor.All(ctx, &bookmarks); err != nil {
		q.Fail()
		return nil, fmt.Errorf("error decoding bookmarks: %w", err)
	}
	return bookmarks, nil
}

// FindAll returns every bookmark, most recently inserted first.
func (r *bookmarkRepository) FindAll(ctx context.Context) ([]models.Bookmark, error) {
	q := utils.ObserveQuery("findAll", "bookmark")
	defer q.Done()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to retrieve bookmarks: %w", err)
	}
	defer cursor.Close(ctx)

	bookmarks := []models.Bookmark{}
	if err := cursor.All(ctx, &bookmarks); err != nil {
		q.Fail()
		return nil, fmt.Errorf("error decoding bookmarks: %w", err)
	}
	return bookmarks, nil
}

// FindURLs returns the url of every stored bookmark.
func (r *bookmarkRepository) FindURLs(ctx context.Context) ([]string, error) {
	q := utils.ObserveQuery("findURLs", "bookmark")
	defer q.Done()

	opts := options.Find().SetProjection(bson.M{"url": 1, "_id": 0})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to retrieve bookmark urls: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		URL string `bson:"url"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		q.Fail()
		return nil, fmt.Errorf("error decoding bookmark urls: %w", err)
	}
	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		urls = append(urls, row.URL)
	}
	return urls, nil
}

// InsertMany inserts bms in one ordered write and returns how many were
// stored. A failed write reports zero.
func (r *bookmarkRepository) InsertMany(ctx context.Context, bms []models.Bookmark) (int, error) {
	if len(bms) == 0 {
		return 0, nil
	}
	q := utils.ObserveQuery("insertMany", "bookmark")
	defer q.Done()

	docs := make([]interface{}, len(bms))
	for i := range bms {
		docs[i] = bms[i]
	}
	result, err := r.collection().InsertMany(ctx, docs)
	if err != nil {
		q.Fail()
		return 0, fmt.Errorf("failed to insert bookmarks: %w", err)
	}
	return len(result.InsertedIDs), nil
}

func (r *bookmarkRepository) DeleteOne(ctx context.Context, filter bson.M) (*mongo.DeleteResult, error) {
	q := utils.ObserveQuery("deleteOne", "bookmark")
	defer q.Done()

	deleteResult, err := r.collection().DeleteOne(ctx, filter)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return deleteResult, nil
}
