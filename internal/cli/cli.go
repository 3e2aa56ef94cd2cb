package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	goflags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"bookmark/internal/cache"
	"bookmark/internal/config"
	"bookmark/internal/database"
	"bookmark/internal/repositories"
	"bookmark/internal/services"
)

// backend is what the maintenance commands run against.
type backend struct {
	bookmarks  services.BookmarkService
	categories services.CategoryService
	menu       services.MenuService
}

type backendOpener func(ctx context.Context, globals *GlobalFlags, cfg *config.Config) (*backend, func(), error)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Recount        *RecountCommand
	FixParents     *FixParentsCommand
	Seed           *SeedCommand
	Import         *ImportCommand
	Menu           *MenuCommand
	CategoriesList *CategoriesListCommand
	CategoriesAdd  *CategoriesAddCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(cfg *config.Config, open backendOpener, out io.Writer) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags
	e := &env{globals: &globals, cfg: cfg, open: open, out: out}

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "bookmarkctl"
	parser.LongDescription = "Maintenance tool for the bookmark catalogue."

	cmds := &commands{
		Recount:        &RecountCommand{env: e},
		FixParents:     &FixParentsCommand{env: e},
		Seed:           &SeedCommand{env: e},
		Import:         &ImportCommand{env: e},
		Menu:           &MenuCommand{env: e},
		CategoriesList: &CategoriesListCommand{env: e},
		CategoriesAdd:  &CategoriesAddCommand{env: e},
	}

	parser.AddCommand("recount", "Recalculate category counts", "Count the bookmarks of every category and store the result in bookmarks_count.", cmds.Recount)
	parser.AddCommand("fix-parents", "Create missing parent categories", "Create every parent category that is referenced but missing, with the sum of its children's counts.", cmds.FixParents)
	parser.AddCommand("seed", "Seed the category hierarchy", "Upsert parent and child categories from a YAML file or the built-in taxonomy.", cmds.Seed)
	parser.AddCommand("import", "Import a browser bookmark export", "Import the links of the chosen folders of a Netscape HTML bookmark export that are not stored yet, as unprocessed bookmarks.", cmds.Import)
	parser.AddCommand("menu", "Print the navigation menu", "Build the two-level navigation menu and print it.", cmds.Menu)

	categories, _ := parser.AddCommand("categories", "Manage categories through the API", "List or create categories through a running bookmark API.", &struct{}{})
	categories.AddCommand("list", "List category names", "List category names sorted ascending.", cmds.CategoriesList)
	categories.AddCommand("add", "Create a category", "Create a category, optionally next to an existing one.", cmds.CategoriesAdd)

	return parser, &globals, cmds
}

// Run is the main entry point for the CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	return runWithArgs(version, args, openBackend, os.Stdout)
}

func runWithArgs(version string, args []string, open backendOpener, out io.Writer) error {
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Fprintf(out, "bookmarkctl %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	parser, _, _ := buildParser(cfg, open, out)

	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

// openBackend connects to MongoDB and, when configured, to the Redis slug
// cache so that changes invalidate it.
func openBackend(ctx context.Context, globals *GlobalFlags, cfg *config.Config) (*backend, func(), error) {
	mongoURI := firstNonEmpty(globals.MongoURI, cfg.MongoURI)
	if mongoURI == "" {
		return nil, nil, fmt.Errorf("--mongo-uri (or MONGO_URI) is required")
	}

	db, err := database.New(mongoURI, firstNonEmpty(globals.Database, cfg.MongoDatabase))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	closers := []func() error{db.Close}

	var slugCache services.SlugCache
	if redisAddr := firstNonEmpty(globals.RedisAddr, cfg.RedisAddr); redisAddr != "" {
		client, err := cache.Connect(ctx, cache.DefaultConnectOptions(redisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisConnectTimeout))
		if err != nil {
			log.Warn().Err(err).Msg("Slug cache unavailable, it will not be flushed")
		} else {
			slugCache = cache.NewSlugCache(client, 0)
			closers = append(closers, client.Close)
		}
	}

	categoryRepo := repositories.NewCategoryRepository(db)
	bookmarkRepo := repositories.NewBookmarkRepository(db)

	b := &backend{
		bookmarks:  services.NewBookmarkService(bookmarkRepo, categoryRepo, slugCache),
		categories: services.NewCategoryService(categoryRepo, bookmarkRepo, slugCache),
		menu:       services.NewMenuService(categoryRepo),
	}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn().Err(err).Msg("Error closing connection")
			}
		}
	}
	return b, closeAll, nil
}

func (e *env) withBackend(fn func(ctx context.Context, b *backend) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	b, closeFn, err := e.open(ctx, e.globals, e.cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, b)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
