package uistate

import (
	"maps"
	"sync"

	"bookmark/internal/models"
)

// PopoverState is the single shared popover. Close hides it but keeps the last
// component and props, so a later read still sees what was shown.
type PopoverState struct {
	mu    sync.Mutex
	state models.PopoverState
}

func NewPopoverState() *PopoverState {
	return &PopoverState{state: models.PopoverState{Props: map[string]any{}}}
}

func (p *PopoverState) Open(component string, props map[string]any) {
	if props == nil {
		props = map[string]any{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = models.PopoverState{
		IsOpen:           true,
		ContentComponent: component,
		Props:            maps.Clone(props),
	}
}

func (p *PopoverState) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsOpen = false
}

// Snapshot returns a copy that is safe to hand out.
func (p *PopoverState) Snapshot() models.PopoverState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Props = maps.Clone(p.state.Props)
	return s
}
