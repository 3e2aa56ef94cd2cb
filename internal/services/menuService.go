package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"bookmark/internal/metrics"
	"bookmark/internal/models"
	"bookmark/internal/repositories"
)

type MenuService interface {
	GetMenu(ctx context.Context) ([]*models.MenuNode, error)
}

type menuServiceImpl struct {
	categoryRepo repositories.CategoryRepository
}

func NewMenuService(categoryRepo repositories.CategoryRepository) MenuService {
	return &menuServiceImpl{categoryRepo: categoryRepo}
}

func (s *menuServiceImpl) GetMenu(ctx context.Context) ([]*models.MenuNode, error) {
	log.Debug().Msg("Attempting to build menu")
	categories, err := s.categoryRepo.FindWithBookmarks(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching categories for menu")
		return []*models.MenuNode{}, err
	}

	menu := BuildMenu(categories)
	metrics.MenuBuildsTotal.Inc()
	log.Debug().Int("categories", len(categories)).Int("roots", len(menu)).Msg("Menu built successfully")
	return menu, nil
}

// BuildMenu turns name-ordered category rows into a two-level forest. Only
// categories with bookmarks take part. A category whose parent is among them
// becomes that parent's child, a category without a parent becomes a root,
// and one whose parent is missing is left out. Roots keep the input order,
// as do the children of each root. Anything below the second level is dropped.
func BuildMenu(categories []models.Category) []*models.MenuNode {
	nodes := make(map[string]*models.MenuNode, len(categories))
	order := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.BookmarksCount <= 0 {
			continue
		}
		if _, seen := nodes[c.Name]; !seen {
			order = append(order, c.Name)
		}
		nodes[c.Name] = &models.MenuNode{Category: c, Children: []*models.MenuNode{}}
	}

	menu := []*models.MenuNode{}
	for _, name := range order {
		node := nodes[name]
		parentName := node.Parent()
		if parentName == "" {
			menu = append(menu, node)
			continue
		}
		if parent, ok := nodes[parentName]; ok && parent != node {
			parent.Children = append(parent.Children, node)
		}
	}

	for _, root := range menu {
		children := root.Children[:0]
		for _, child := range root.Children {
			if child.BookmarksCount > 0 {
				// grandchildren are never rendered
				child.Children = []*models.MenuNode{}
				children = append(children, child)
			}
		}
		root.Children = children
	}
	return menu
}
