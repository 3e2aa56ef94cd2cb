package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"bookmark/internal/models"
	"bookmark/internal/services"
)

// Execute implements the go-flags Commander interface for RecountCommand.
func (c *RecountCommand) Execute(args []string) error {
	return c.env.withBackend(func(ctx context.Context, b *backend) error {
		updated, err := b.categories.RecalculateCounts(ctx)
		if err != nil {
			return fmt.Errorf("recalculating counts: %w", err)
		}
		if c.env.globals.JSON {
			return c.env.printJSON(map[string]int{"updated": updated})
		}
		fmt.Fprintf(c.env.out, "Updated %d categories\n", updated)
		return nil
	})
}

func (c *FixParentsCommand) Execute(args []string) error {
	return c.env.withBackend(func(ctx context.Context, b *backend) error {
		created, err := b.categories.FixMissingParents(ctx)
		if err != nil {
			return fmt.Errorf("fixing parents: %w", err)
		}
		if c.env.globals.JSON {
			return c.env.printJSON(map[string][]string{"created": created})
		}
		if len(created) == 0 {
			fmt.Fprintln(c.env.out, "No missing parent categories")
			return nil
		}
		for _, name := range created {
			fmt.Fprintf(c.env.out, "Created %s\n", name)
		}
		return nil
	})
}

func (c *SeedCommand) Execute(args []string) error {
	var (
		hierarchy services.Hierarchy
		err       error
	)
	if c.File == "" {
		hierarchy, err = services.DefaultHierarchy()
	} else {
		hierarchy, err = services.LoadHierarchy(c.File)
	}
	if err != nil {
		return err
	}

	return c.env.withBackend(func(ctx context.Context, b *backend) error {
		result, err := b.categories.SeedHierarchy(ctx, hierarchy)
		if err != nil {
			return fmt.Errorf("seeding categories: %w", err)
		}
		if c.env.globals.JSON {
			return c.env.printJSON(result)
		}
		fmt.Fprintf(c.env.out, "Inserted %d, updated %d categories\n", result.Inserted, result.Updated)
		return nil
	})
}

func (c *ImportCommand) Execute(args []string) error {
	if c.File == "" {
		return fmt.Errorf("--file is required for import command")
	}
	links, err := services.LoadBookmarkExport(c.File, c.Folders)
	if err != nil {
		return err
	}

	return c.env.withBackend(func(ctx context.Context, b *backend) error {
		result, err := b.bookmarks.ImportBookmarks(ctx, links)
		if err != nil {
			return fmt.Errorf("importing bookmarks (%d imported): %w", result.Imported, err)
		}
		if c.env.globals.JSON {
			return c.env.printJSON(result)
		}
		fmt.Fprintf(c.env.out, "Read %d links, %d already stored, imported %d\n", result.Parsed, result.Skipped, result.Imported)
		return nil
	})
}

func (c *MenuCommand) Execute(args []string) error {
	return c.env.withBackend(func(ctx context.Context, b *backend) error {
		menu, err := b.menu.GetMenu(ctx)
		if err != nil {
			return fmt.Errorf("building menu: %w", err)
		}
		if c.env.globals.JSON {
			return c.env.printJSON(menu)
		}
		printMenu(c.env.out, menu)
		return nil
	})
}

func printMenu(out io.Writer, menu []*models.MenuNode) {
	for _, root := range menu {
		fmt.Fprintf(out, "%s (%d)\n", root.Name, root.BookmarksCount)
		for _, child := range root.Children {
			fmt.Fprintf(out, "  %s (%d)\n", child.Name, child.BookmarksCount)
		}
	}
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
