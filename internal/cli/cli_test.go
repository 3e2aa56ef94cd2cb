package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmark/internal/config"
	"bookmark/internal/models"
	"bookmark/internal/services"
)

type fakeCategoryService struct {
	services.CategoryService

	updated int
	created []string
	seeded  services.Hierarchy
	err     error
}

func (f *fakeCategoryService) RecalculateCounts(context.Context) (int, error) {
	return f.updated, f.err
}

func (f *fakeCategoryService) FixMissingParents(context.Context) ([]string, error) {
	return f.created, f.err
}

func (f *fakeCategoryService) SeedHierarchy(_ context.Context, h services.Hierarchy) (services.SeedResult, error) {
	f.seeded = h
	return services.SeedResult{Inserted: len(h)}, f.err
}

type fakeBookmarkService struct {
	services.BookmarkService

	links  []models.ImportedLink
	result models.ImportResult
	err    error
}

func (f *fakeBookmarkService) ImportBookmarks(_ context.Context, links []models.ImportedLink) (models.ImportResult, error) {
	f.links = links
	return f.result, f.err
}

type fakeMenuService struct {
	menu []*models.MenuNode
}

func (f *fakeMenuService) GetMenu(context.Context) ([]*models.MenuNode, error) {
	return f.menu, nil
}

func fakeOpener(categories *fakeCategoryService, menu *fakeMenuService, opened *int) backendOpener {
	return func(context.Context, *GlobalFlags, *config.Config) (*backend, func(), error) {
		*opened++
		return &backend{categories: categories, menu: menu}, func() {}, nil
	}
}

func fakeImportOpener(bookmarks *fakeBookmarkService, opened *int) backendOpener {
	return func(context.Context, *GlobalFlags, *config.Config) (*backend, func(), error) {
		*opened++
		return &backend{bookmarks: bookmarks, categories: &fakeCategoryService{}, menu: &fakeMenuService{}}, func() {}, nil
	}
}

func run(t *testing.T, open backendOpener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := runWithArgs("test", args, open, &out)
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, nil, "--version")
	assert.NoError(t, err)
	assert.Equal(t, "bookmarkctl test\n", out)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	_, err := run(t, nil, "--help")
	assert.NoError(t, err)
}

func TestAllSubcommandsExist(t *testing.T) {
	parser, _, _ := buildParser(&config.Config{}, nil, &bytes.Buffer{})
	for _, name := range []string{"recount", "fix-parents", "seed", "import", "menu", "categories"} {
		assert.NotNil(t, parser.Find(name), "subcommand %q should exist", name)
	}
	categories := parser.Find("categories")
	require.NotNil(t, categories)
	assert.NotNil(t, categories.Find("list"))
	assert.NotNil(t, categories.Find("add"))
}

func TestUnknownSubcommandFails(t *testing.T) {
	_, err := run(t, nil, "nonexistent")
	assert.Error(t, err)
}

func TestGlobalFlags(t *testing.T) {
	opened := 0
	parser, globals, _ := buildParser(&config.Config{}, fakeOpener(&fakeCategoryService{}, &fakeMenuService{}, &opened), &bytes.Buffer{})
	_, err := parser.ParseArgs([]string{"--mongo-uri", "mongodb://db:27017", "--json", "recount"})
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", globals.MongoURI)
	assert.True(t, globals.JSON)
	assert.Equal(t, 1, opened)
}

func TestAPIURLFallsBackToEnvironment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"categories":["Go"]}`))
	}))
	defer server.Close()
	t.Setenv("API_BASE_URL", server.URL+"/")

	out, err := run(t, nil, "categories", "list")
	require.NoError(t, err)
	assert.Equal(t, "Go\n", out)
}

func TestRecount(t *testing.T) {
	opened := 0
	open := fakeOpener(&fakeCategoryService{updated: 7}, &fakeMenuService{}, &opened)

	out, err := run(t, open, "recount")
	require.NoError(t, err)
	assert.Equal(t, "Updated 7 categories\n", out)

	out, err = run(t, open, "--json", "recount")
	require.NoError(t, err)
	assert.JSONEq(t, `{"updated": 7}`, out)
}

func TestRecountError(t *testing.T) {
	opened := 0
	_, err := run(t, fakeOpener(&fakeCategoryService{err: assert.AnError}, &fakeMenuService{}, &opened), "recount")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFixParents(t *testing.T) {
	opened := 0
	out, err := run(t, fakeOpener(&fakeCategoryService{created: []string{"Databases", "Programming"}}, &fakeMenuService{}, &opened), "fix-parents")
	require.NoError(t, err)
	assert.Equal(t, "Created Databases\nCreated Programming\n", out)

	out, err = run(t, fakeOpener(&fakeCategoryService{}, &fakeMenuService{}, &opened), "fix-parents")
	require.NoError(t, err)
	assert.Equal(t, "No missing parent categories\n", out)
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Programming:\n  - Go\n"), 0o600))

	categories := &fakeCategoryService{}
	opened := 0
	out, err := run(t, fakeOpener(categories, &fakeMenuService{}, &opened), "seed", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "Inserted 1, updated 0 categories\n", out)
	assert.Equal(t, services.Hierarchy{"Programming": {"Go"}}, categories.seeded)
}

func TestSeedDefaultsToBuiltInTaxonomy(t *testing.T) {
	categories := &fakeCategoryService{}
	opened := 0
	out, err := run(t, fakeOpener(categories, &fakeMenuService{}, &opened), "seed")
	require.NoError(t, err)
	assert.Equal(t, "Inserted 8, updated 0 categories\n", out)
	assert.Len(t, categories.seeded, 8)
	assert.Contains(t, categories.seeded["Базы Данных"], "PostgreSQL")
	assert.Equal(t, 1, opened)
}

func TestSeedMissingFile(t *testing.T) {
	opened := 0
	_, err := run(t, fakeOpener(&fakeCategoryService{}, &fakeMenuService{}, &opened), "seed", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Zero(t, opened)
}

const exportFixture = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Разработка</H3>
    <DL><p>
        <DT><A HREF="https://go.dev/" ADD_DATE="1700000000">Go</A>
    </DL><p>
    <DT><H3>Reading</H3>
    <DL><p>
        <DT><A HREF="https://example.com/a" ADD_DATE="1700000001">A</A>
        <DT><A HREF="https://example.com/b" ADD_DATE="1700000002">B</A>
    </DL><p>
</DL><p>
`

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte(exportFixture), 0o600))
	return path
}

func TestImport(t *testing.T) {
	path := writeExport(t)
	bookmarks := &fakeBookmarkService{result: models.ImportResult{Parsed: 1, Imported: 1}}
	opened := 0

	out, err := run(t, fakeImportOpener(bookmarks, &opened), "import", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "Read 1 links, 0 already stored, imported 1\n", out)
	require.Len(t, bookmarks.links, 1)
	assert.Equal(t, "https://go.dev/", bookmarks.links[0].URL)

	out, err = run(t, fakeImportOpener(bookmarks, &opened), "--json", "import", "-f", path, "--folder", "Reading")
	require.NoError(t, err)
	assert.JSONEq(t, `{"parsed":1,"skipped":0,"imported":1}`, out)
	require.Len(t, bookmarks.links, 2)
	assert.Equal(t, "https://example.com/b", bookmarks.links[1].URL)
}

func TestImportRequiresFile(t *testing.T) {
	opened := 0
	_, err := run(t, fakeImportOpener(&fakeBookmarkService{}, &opened), "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file is required")
	assert.Zero(t, opened)
}

func TestImportError(t *testing.T) {
	bookmarks := &fakeBookmarkService{result: models.ImportResult{Imported: 50}, err: assert.AnError}
	opened := 0
	_, err := run(t, fakeImportOpener(bookmarks, &opened), "import", "--file", writeExport(t))
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "50 imported")
}

func TestMenu(t *testing.T) {
	menu := []*models.MenuNode{{
		Category: models.Category{Name: "Go", BookmarksCount: 5},
		Children: []*models.MenuNode{{Category: models.Category{Name: "Go/CLI", BookmarksCount: 2}}},
	}}
	opened := 0
	out, err := run(t, fakeOpener(&fakeCategoryService{}, &fakeMenuService{menu: menu}, &opened), "menu")
	require.NoError(t, err)
	assert.Equal(t, "Go (5)\n  Go/CLI (2)\n", out)
}

func TestOpenBackendRequiresMongoURI(t *testing.T) {
	_, _, err := openBackend(context.Background(), &GlobalFlags{}, &config.Config{})
	assert.Error(t, err)
}

func TestCategoriesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"categories":["Go","Golang","Rust"]}`))
	}))
	defer server.Close()

	out, err := run(t, nil, "--api-url", server.URL, "categories", "list")
	require.NoError(t, err)
	assert.Equal(t, "Go\nGolang\nRust\n", out)

	out, err = run(t, nil, "--api-url", server.URL, "categories", "list", "--query", "go")
	require.NoError(t, err)
	assert.Equal(t, "Go\nGolang\n", out)
}

func TestCategoriesAdd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateCategoryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		parent := "Programming"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Category{Name: req.Name, Slug: "rust", ParentCategory: &parent})
	}))
	defer server.Close()

	out, err := run(t, nil, "--api-url", server.URL, "categories", "add", "--name", "Rust", "--context", "go")
	require.NoError(t, err)
	assert.Equal(t, "Created Rust (rust) under Programming\n", out)
}

func TestCategoriesAddRequiresName(t *testing.T) {
	_, err := run(t, nil, "categories", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name is required")
}

func TestCategoriesAddFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	_, err := run(t, nil, "--api-url", server.URL, "categories", "add", "--name", "Go")
	assert.Error(t, err)
}
