package services

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaultHierarchy.yaml
var defaultHierarchy []byte

// Hierarchy maps a parent category name to its child category names.
type Hierarchy map[string][]string

// Parents returns the parent names in ascending order.
func (h Hierarchy) Parents() []string {
	parents := make([]string, 0, len(h))
	for p := range h {
		parents = append(parents, p)
	}
	sort.Strings(parents)
	return parents
}

// LoadHierarchy reads a YAML document of the form
//
//	Programming:
//	  - Go
//	  - Rust
func LoadHierarchy(path string) (Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file: %w", err)
	}
	return ParseHierarchy(data)
}

func ParseHierarchy(data []byte) (Hierarchy, error) {
	var h Hierarchy
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse hierarchy yaml: %w", err)
	}
	if h == nil {
		h = Hierarchy{}
	}
	return h, nil
}

// DefaultHierarchy is the built-in category taxonomy.
func DefaultHierarchy() (Hierarchy, error) {
	return ParseHierarchy(defaultHierarchy)
}
