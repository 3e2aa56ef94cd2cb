package uistate

import (
	"strconv"

	"bookmark/internal/models"
)

// CenterPosition returns the fixed-position style that centers an element of
// the given size in a window of the given size. Offsets go negative when the
// element is larger than the window.
func CenterPosition(windowWidth, windowHeight, elementWidth, elementHeight float64) models.CenterStyle {
	left := (windowWidth - elementWidth) / 2
	top := (windowHeight - elementHeight) / 2
	return models.CenterStyle{
		Position: "fixed",
		Left:     px(left),
		Top:      px(top),
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
