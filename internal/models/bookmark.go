package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bookmark struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	URL         string             `json:"url" bson:"url"`
	Categories  []string           `json:"categories" bson:"categories"`
	Summary     string             `json:"summary,omitempty" bson:"summary,omitempty"`
	IsProcessed bool               `json:"is_processed" bson:"is_processed"`
	DateAdd     int64              `json:"date_add" bson:"date_add"` // unix seconds

	DateAddFormatted string `json:"date_add_formatted,omitempty" bson:"-"`
}

// BookmarkPage is one page of a listing plus the total number of matching rows.
type BookmarkPage struct {
	Data  []Bookmark `json:"data"`
	Count int64      `json:"count"`
}

// EmptyPage is returned when nothing matches.
func EmptyPage() BookmarkPage {
	return BookmarkPage{Data: []Bookmark{}, Count: 0}
}

// AddBookmarkRequestBody is the payload of the legacy POST /bookmarks endpoint.
type AddBookmarkRequestBody struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ImportedLink is one link read from a browser bookmark export.
type ImportedLink struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	AddDate int64  `json:"add_date"`
}

type ImportResult struct {
	Parsed   int `json:"parsed"`
	Skipped  int `json:"skipped"`
	Imported int `json:"imported"`
}
