package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BookmarksCollection  = "bookmarks"
	CategoriesCollection = "categories"
)

type Service interface {
	Health() map[string]string
	Database() *mongo.Database
	EnsureIndexes(ctx context.Context) error
	Close() error
}

type service struct {
	db     *mongo.Client
	dbName string
}

func New(mongoURI, dbName string) (Service, error) {
	if mongoURI == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB")
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info().Str("database", dbName).Msg("Connected to MongoDB")
	return &service{
		db:     client,
		dbName: dbName,
	}, nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := s.db.Ping(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"message": "db down",
			"error":   err.Error(),
		}
	}

	return map[string]string{
		"message": "It's healthy",
	}
}

func (s *service) Database() *mongo.Database {
	return s.db.Database(s.dbName)
}

// EnsureIndexes creates the unique keys categories are addressed by and the
// sort index used by the bookmark listing.
func (s *service) EnsureIndexes(ctx context.Context) error {
	categories := s.Database().Collection(CategoriesCollection)
	_, err := categories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookmarks_count", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}

	bookmarks := s.Database().Collection(BookmarksCollection)
	_, err = bookmarks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_processed", Value: 1}, {Key: "date_add", Value: -1}}},
		{Keys: bson.D{{Key: "categories", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create bookmark indexes: %w", err)
	}
	log.Debug().Msg("Database indexes ensured")
	return nil
}

func (s *service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("Disconnecting from MongoDB")
	return s.db.Disconnect(ctx)
}
