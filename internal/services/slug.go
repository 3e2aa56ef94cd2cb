package services

import (
	"github.com/gosimple/slug"
)

func init() {
	slug.CustomSub = map[string]string{
		"+": "-plus-",
		"/": "-or-",
		"(": "",
		")": "",
	}
}

// GenerateSlug turns a category name into its URL-safe identifier.
// Non-latin scripts are transliterated.
func GenerateSlug(name string) string {
	return slug.Make(name)
}
