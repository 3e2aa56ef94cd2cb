package uistate

import (
	"fmt"
	"sync"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// DarkClass is put on the bound class list while the dark theme is active.
	DarkClass = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// ClassList is the set of CSS classes of the document body.
type ClassList interface {
	Add(class string)
	Remove(class string)
}

// ThemeState holds the current theme. It starts dark.
type ThemeState struct {
	mu    sync.Mutex
	theme Theme
	body  ClassList
}

func NewThemeState() *ThemeState {
	return &ThemeState{theme: ThemeDark}
}

func (t *ThemeState) Current() Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.theme
}

// Toggle flips between light and dark and returns the new theme.
func (t *ThemeState) Toggle() Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.theme == ThemeLight {
		t.theme = ThemeDark
	} else {
		t.theme = ThemeLight
	}
	t.reflect()
	return t.theme
}

func (t *ThemeState) Set(theme Theme) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.theme = theme
	t.reflect()
}

// Bind attaches a class list and applies the current theme to it right away.
// Without a bound list, theme changes touch nothing else.
func (t *ThemeState) Bind(body ClassList) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.body = body
	t.reflect()
}

// BodyClass is the class the body should carry for the current theme.
func (t *ThemeState) BodyClass() string {
	if t.Current() == ThemeDark {
		return DarkClass
	}
	return ""
}

func (t *ThemeState) reflect() {
	if t.body == nil {
		return
	}
	if t.theme == ThemeDark {
		t.body.Add(DarkClass)
	} else {
		t.body.Remove(DarkClass)
	}
}
