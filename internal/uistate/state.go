// Package uistate holds the UI state cells shared between front-end clients:
// the theme, the popover and the conveyor flag.
package uistate

// State is owned by the server and injected into the handlers.
type State struct {
	Theme    *ThemeState
	Popover  *PopoverState
	Conveyor *ConveyorState
}

func New() *State {
	return &State{
		Theme:    NewThemeState(),
		Popover:  NewPopoverState(),
		Conveyor: &ConveyorState{},
	}
}
