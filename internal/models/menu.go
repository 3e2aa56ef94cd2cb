package models

// MenuNode is a category projected into the navigation menu. Only roots carry
// children; the menu is never deeper than two levels.
type MenuNode struct {
	Category
	Children []*MenuNode `json:"children"`
}
