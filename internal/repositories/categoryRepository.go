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

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindWithBookmarks(ctx context.Context) ([]models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	UpdateCount(ctx context.Context, name string, count int64) error
	Upsert(ctx context.Context, category *models.Category) (bool, error)
}

type categoryRepository struct {
	db database.Service
}

func NewCategoryRepository(db database.Service) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) collection() *mongo.Collection {
	return r.db.Database().Collection(database.CategoriesCollection)
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	q := utils.ObserveQuery("create", "category")
	defer q.Done()

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	_, err := r.collection().InsertOne(ctx, category)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return category, nil
}

// FindBySlug returns mongo.ErrNoDocuments unwrapped when no category matches.
func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	q := utils.ObserveQuery("findBySlug", "category")
	defer q.Done()

	var category models.Category
	err := r.collection().FindOne(ctx, bson.M{"slug": slug}).Decode(&category)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			q.Fail()
		}
		return nil, err
	}
	return &category, nil
}

// FindWithBookmarks returns categories with a positive bookmarks_count,
// ordered by name.
func (r *categoryRepository) FindWithBookmarks(ctx context.Context) ([]models.Category, error) {
	q := utils.ObserveQuery("findWithBookmarks", "category")
	defer q.Done()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return r.find(ctx, q, bson.M{"bookmarks_count": bson.M{"$gt": 0}}, opts)
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	q := utils.ObserveQuery("findAll", "category")
	defer q.Done()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return r.find(ctx, q, bson.M{}, opts)
}

func (r *categoryRepository) find(ctx context.Context, q *utils.QueryObserver, filter bson.M, opts *options.FindOptions) ([]models.Category, error) {
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		q.Fail()
		return nil, fmt.Errorf("error decoding categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) UpdateCount(ctx context.Context, name string, count int64) error {
	q := utils.ObserveQuery("updateCount", "category")
	defer q.Done()

	update := bson.M{"$set": bson.M{"bookmarks_count": count}}
	if _, err := r.collection().UpdateOne(ctx, bson.M{"name": name}, update); err != nil {
		q.Fail()
		return fmt.Errorf("failed to update category count: %w", err)
	}
	return nil
}

// Upsert writes slug and parent of the category keyed by name. A new row
// starts with the given count; existing counts are left untouched. It
// reports whether a new row was inserted.
func (r *categoryRepository) Upsert(ctx context.Context, category *models.Category) (bool, error) {
	q := utils.ObserveQuery("upsert", "category")
	defer q.Done()

	update := bson.M{
		"$set": bson.M{
			"slug":            category.Slug,
			"parent_category": category.ParentCategory,
		},
		"$setOnInsert": bson.M{
			"bookmarks_count": category.BookmarksCount,
		},
	}
	opts := options.Update().SetUpsert(true)
	result, err := r.collection().UpdateOne(ctx, bson.M{"name": category.Name}, update, opts)
	if err != nil {
		q.Fail()
		return false, fmt.Errorf("failed to upsert category: %w", err)
	}
	return result.UpsertedCount > 0, nil
}
