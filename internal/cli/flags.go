package cli

import (
	"io"

	"bookmark/internal/config"
)

// GlobalFlags holds flags available to all subcommands. Empty connection
// flags fall back to the environment configuration.
type GlobalFlags struct {
	MongoURI  string `long:"mongo-uri" description:"MongoDB connection string (default: MONGO_URI)"`
	Database  string `long:"database" description:"MongoDB database name (default: MONGO_DATABASE)"`
	RedisAddr string `long:"redis-addr" description:"Redis address of the slug cache to flush after changes (default: REDIS_ADDR)"`
	APIURL    string `long:"api-url" description:"Base URL of the bookmark API (default: API_BASE_URL)"`
	JSON      bool   `long:"json" description:"Output in JSON format"`
	Version   bool   `long:"version" description:"Show version and exit"`
}

// env is shared by every command.
type env struct {
	globals *GlobalFlags
	cfg     *config.Config
	open    backendOpener
	out     io.Writer
}

// RecountCommand recalculates bookmarks_count of every category.
type RecountCommand struct {
	env *env
}

// FixParentsCommand creates parent categories that are referenced but missing.
type FixParentsCommand struct {
	env *env
}

// SeedCommand upserts a category hierarchy from a YAML file, or the built-in
// taxonomy when no file is given.
type SeedCommand struct {
	File string `long:"file" short:"f" description:"YAML file mapping parent names to child names (default: built-in taxonomy)"`

	env *env
}

// ImportCommand imports links from a browser bookmark export.
type ImportCommand struct {
	File    string   `long:"file" short:"f" description:"Bookmark export in Netscape HTML format (required)"`
	Folders []string `long:"folder" description:"Export folder to import, repeatable (default: Услуги, Разработка, Полезное)"`

	env *env
}

// MenuCommand prints the navigation menu.
type MenuCommand struct {
	env *env
}

// CategoriesListCommand lists category names through the API.
type CategoriesListCommand struct {
	Query string `long:"query" short:"q" description:"Fuzzy filter applied locally to the fetched names"`

	env *env
}

// CategoriesAddCommand creates a category through the API.
type CategoriesAddCommand struct {
	Name    string `long:"name" description:"Category name (required)"`
	Context string `long:"context" description:"Slug of the category the new one is created next to"`

	env *env
}
