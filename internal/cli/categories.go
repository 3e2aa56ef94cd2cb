package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"bookmark/internal/client"
)

func (e *env) categoryClient() *client.CategoryClient {
	return client.NewCategoryClient(firstNonEmpty(e.globals.APIURL, e.cfg.APIBaseURL), nil)
}

// Execute implements the go-flags Commander interface for CategoriesListCommand.
func (c *CategoriesListCommand) Execute(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := c.env.categoryClient().FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("fetching categories: %w", err)
	}
	if c.Query != "" {
		names = fuzzy.FindFold(c.Query, names)
	}

	if c.env.globals.JSON {
		return c.env.printJSON(map[string][]string{"categories": names})
	}
	for _, name := range names {
		fmt.Fprintln(c.env.out, name)
	}
	return nil
}

func (c *CategoriesAddCommand) Execute(args []string) error {
	if c.Name == "" {
		return fmt.Errorf("--name is required for categories add command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := c.env.categoryClient().CreateCategory(ctx, c.Name, c.Context)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}
	if c.env.globals.JSON {
		return c.env.printJSON(created)
	}
	if parent := created.Parent(); parent != "" {
		fmt.Fprintf(c.env.out, "Created %s (%s) under %s\n", created.Name, created.Slug, parent)
	} else {
		fmt.Fprintf(c.env.out, "Created %s (%s)\n", created.Name, created.Slug)
	}
	return nil
}
