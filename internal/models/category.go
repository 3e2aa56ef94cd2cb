package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Slug           string             `json:"slug" bson:"slug"`
	ParentCategory *string            `json:"parent_category" bson:"parent_category"`
	BookmarksCount int64              `json:"bookmarks_count" bson:"bookmarks_count"`
}

// Parent returns the declared parent name, or "" for a root category.
func (c Category) Parent() string {
	if c.ParentCategory == nil {
		return ""
	}
	return *c.ParentCategory
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	ContextSlug string `json:"context_slug,omitempty"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
