package uistate

import "sync/atomic"

// ConveyorState tracks whether the bookmark processing conveyor is running.
type ConveyorState struct {
	working atomic.Bool
}

// Start marks the conveyor as working; the front-end refreshes on it.
func (c *ConveyorState) Start() { c.working.Store(true) }

func (c *ConveyorState) Stop() { c.working.Store(false) }

func (c *ConveyorState) IsWorking() bool { return c.working.Load() }
