package services

import "errors"

var (
	ErrInvalidPage          = errors.New("page must be a positive integer")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrInvalidCategoryName  = errors.New("category name produces an empty slug")
	ErrCategoryExists       = errors.New("category already exists")
	ErrContextNotFound      = errors.New("context category not found")
	ErrInvalidBookmark      = errors.New("title and a valid absolute url are required")
	ErrBookmarkNotFound     = errors.New("bookmark not found")
)
