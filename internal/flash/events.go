// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"log"
	"time"
)

// DefaultEventBuffer is the capacity of the controller's event channel.
const DefaultEventBuffer = 64

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventState is sent after any state change.
	EventState EventKind = iota
	// EventBlink is sent after each SOS toggle.
	EventBlink
	// EventAutoOff is sent when the auto-off timer switched the torch off.
	EventAutoOff
	// EventClosed is the last event before the channel is closed.
	EventClosed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventState:
		return "state"
	case EventBlink:
		return "blink"
	case EventAutoOff:
		return "auto-off"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is a change notification from the controller.
type Event struct {
	Kind  EventKind
	State State // snapshot after the change (zero for EventBlink)
	Lit   bool  // torch lit after an SOS toggle
	At    time.Time

	// Seq orders events that carry a State; a larger Seq is a newer
	// snapshot. Blink events have Seq 0.
	Seq uint64
}

// emit sends ev without blocking. When the buffer is full the event is
// dropped; consumers re-sync from the next event's snapshot.
func (c *Controller) emit(ev Event) {
	ev.At = time.Now()
	select {
	case c.events <- ev:
	default:
		log.Printf("WARNING: Event channel full, dropped %s event", ev.Kind)
	}
}

// emitStateLocked numbers a snapshot of the current state and emits it.
// Must be called with lock held.
func (c *Controller) emitStateLocked(kind EventKind) State {
	c.seq++
	snap := c.state.Clone()
	c.emit(Event{Kind: kind, State: snap, Seq: c.seq})
	return snap
}
