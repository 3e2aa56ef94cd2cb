package database

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

var mongoURI string

func mustStartMongoContainer() (func(context.Context) error, error) {
	dbContainer, err := mongodb.Run(context.Background(), "mongo:7")
	if err != nil {
		return nil, err
	}

	uri, err := dbContainer.ConnectionString(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}
	mongoURI = uri

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	teardown, err := mustStartMongoContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not start mongodb container")
	}

	code := m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatal().Msg("Could not teardown mongodb container")
	}
	os.Exit(code)
}

func TestNew(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}
	srv, err := New(mongoURI, "bookmarks_test")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer srv.Close()
	if srv.Database().Name() != "bookmarks_test" {
		t.Fatalf("expected database bookmarks_test, got %s", srv.Database().Name())
	}
}

func TestNewRejectsEmptyURI(t *testing.T) {
	if _, err := New("", "bookmarks"); err == nil {
		t.Fatal("expected error for empty URI")
	}
}

func TestHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}
	srv, err := New(mongoURI, "bookmarks_test")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer srv.Close()

	stats := srv.Health()

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestEnsureIndexes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}
	srv, err := New(mongoURI, "bookmarks_test")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer srv.Close()

	if err := srv.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("EnsureIndexes() returned error: %v", err)
	}
	// second call is a no-op
	if err := srv.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("EnsureIndexes() second call returned error: %v", err)
	}
}
