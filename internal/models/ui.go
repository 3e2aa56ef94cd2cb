package models

type ThemeResponse struct {
	Theme     string `json:"theme"`
	BodyClass string `json:"body_class"`
}

type SetThemeRequest struct {
	Theme string `json:"theme"`
}

type PopoverState struct {
	IsOpen           bool           `json:"is_open"`
	ContentComponent string         `json:"content_component"`
	Props            map[string]any `json:"props"`
}

type OpenPopoverRequest struct {
	ContentComponent string         `json:"content_component"`
	Props            map[string]any `json:"props"`
}

type ConveyorResponse struct {
	IsWorking bool `json:"is_working"`
}

type CenterStyle struct {
	Position string `json:"position"`
	Left     string `json:"left"`
	Top      string `json:"top"`
}
