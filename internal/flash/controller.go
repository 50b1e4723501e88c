// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flash holds the flashlight state and keeps the torch in step with it.
//
// The Controller is the single owner of State. Every handler mutates state
// under the controller lock and then reconciles the hardware:
//
//   - while Mode != SOS, any change of (On, Brightness, Mode) is pushed to the
//     torch through Sync
//   - while Mode == SOS and On, the Blinker owns the torch and toggles it
//     every 500ms
//   - when On flips, the auto-off timer is re-armed or cancelled
//
// Hardware failures are logged and never roll state back.
package flash

import (
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/jeranaias/smartflash-tui/internal/torch"
)

// Options configures a Controller.
type Options struct {
	// Initial is the starting state. A zero value uses DefaultState.
	Initial *State

	// BlinkPeriod is the SOS toggle interval (DefaultBlinkPeriod if zero).
	BlinkPeriod time.Duration

	// CallTimeout bounds each hardware call (DefaultCallTimeout if zero).
	CallTimeout time.Duration

	// AutoOff switches the torch off this long after it was turned on.
	// Zero disables the timer.
	AutoOff time.Duration

	// OffOnExit switches the torch off in Close.
	OffOnExit bool

	// SyncOnStart pushes the initial state to the torch in NewController.
	SyncOnStart bool

	// EventBuffer is the event channel capacity (DefaultEventBuffer if zero).
	EventBuffer int
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the flashlight state. It is safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	state State

	sync    *Sync
	blinker *Blinker
	events  chan Event

	autoOff      time.Duration
	autoOffTimer *time.Timer
	autoOffAt    time.Time
	autoOffGen   uint64

	offOnExit bool
	closed    bool

	// seq is the Seq of the last state-bearing event.
	seq uint64
}

// NewController creates a controller driving t.
func NewController(t torch.Torch, opts Options) *Controller {
	state := DefaultState()
	if opts.Initial != nil {
		state = opts.Initial.Clone()
		state.Brightness = ClampBrightness(state.Brightness)
	}
	buf := opts.EventBuffer
	if buf <= 0 {
		buf = DefaultEventBuffer
	}

	c := &Controller{
		state:     state,
		sync:      NewSync(t, opts.CallTimeout),
		events:    make(chan Event, buf),
		autoOff:   opts.AutoOff,
		offOnExit: opts.OffOnExit,
	}
	c.blinker = NewBlinker(c.sync, opts.BlinkPeriod, func(lit bool) {
		c.emit(Event{Kind: EventBlink, Lit: lit})
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Blinking() {
		c.blinker.Start()
	} else if opts.SyncOnStart && c.state.Mode != ModeSOS {
		c.sync.Apply(c.state.On, c.state.Brightness)
	}
	if c.state.On {
		c.rearmAutoOffLocked()
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Current returns a copy of the current state together with the Seq of the
// last event emitted for it. Events with a Seq at or below it are already
// reflected in the returned state.
func (c *Controller) Current() (State, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone(), c.seq
}

// Events returns the change notification channel. It is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// TorchInfo describes the underlying torch.
func (c *Controller) TorchInfo() torch.Info {
	return c.sync.Torch().Info()
}

// BlinkPeriod returns the SOS toggle interval.
func (c *Controller) BlinkPeriod() time.Duration {
	return c.blinker.Period()
}

// =============================================================================
// HANDLERS
// =============================================================================

// TogglePower flips On.
func (c *Controller) TogglePower() State {
	return c.update(func(s *State) { s.On = !s.On })
}

// SetPower sets On explicitly.
func (c *Controller) SetPower(on bool) State {
	return c.update(func(s *State) { s.On = on })
}

// SetBrightness sets the brightness clamped to [1, 100].
func (c *Controller) SetBrightness(v int) State {
	return c.update(func(s *State) { s.Brightness = ClampBrightness(v) })
}

// AdjustBrightness adds delta to the brightness, clamped to [1, 100].
func (c *Controller) AdjustBrightness(delta int) State {
	return c.update(func(s *State) { s.Brightness = ClampBrightness(s.Brightness + delta) })
}

// ToggleMode activates m, or returns to standard if m is already active.
func (c *Controller) ToggleMode(m Mode) State {
	return c.update(func(s *State) {
		if s.Mode == m {
			s.Mode = ModeStandard
		} else {
			s.Mode = m
		}
	})
}

// SetMode activates m without toggle semantics.
func (c *Controller) SetMode(m Mode) State {
	return c.update(func(s *State) { s.Mode = m })
}

// ApplyPreset sets the preset's brightness, powers on and returns to
// standard mode, overriding SOS or night.
func (c *Controller) ApplyPreset(p Preset) State {
	return c.update(func(s *State) {
		s.Brightness = ClampBrightness(p.Value)
		s.On = true
		s.Mode = ModeStandard
	})
}

// ApplyPresetID applies the preset with the given ID or label. Unknown
// presets change nothing and return false.
func (c *Controller) ApplyPresetID(idOrLabel string) (State, bool) {
	p, ok := c.FindPreset(idOrLabel)
	if !ok {
		return c.Snapshot(), false
	}
	return c.ApplyPreset(p), true
}

// SetReadings updates the battery and temperature readouts.
func (c *Controller) SetReadings(battery, temperature int) State {
	return c.update(func(s *State) {
		s.Battery = battery
		s.Temperature = temperature
	})
}

// update applies fn under the lock, reconciles the hardware and emits a
// state event if anything changed.
func (c *Controller) update(fn func(s *State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.state.Clone()
	}

	prev := c.state.Clone()
	fn(&c.state)
	if reflect.DeepEqual(prev, c.state) {
		return c.state.Clone()
	}

	c.reconcileLocked(prev)
	return c.emitStateLocked(EventState)
}

// reconcileLocked brings the hardware in line with c.state after a change
// from prev. Must be called with lock held.
//
// Order matters: a running blinker is stopped before the steady state is
// applied and before a new blinker is started.
func (c *Controller) reconcileLocked(prev State) {
	wasBlinking, blinking := prev.Blinking(), c.state.Blinking()

	if wasBlinking && !blinking {
		c.blinker.Stop()
	}

	if c.state.Mode != ModeSOS {
		changed := prev.On != c.state.On ||
			prev.Brightness != c.state.Brightness ||
			prev.Mode != c.state.Mode
		if changed {
			c.sync.Apply(c.state.On, c.state.Brightness)
		}
	}

	if blinking && !wasBlinking {
		c.blinker.Start()
	}

	if prev.On != c.state.On {
		c.rearmAutoOffLocked()
	}
}

// =============================================================================
// AUTO-OFF
// =============================================================================

// SetAutoOff changes the auto-off duration. Zero disables it. A running
// timer is re-armed with the new duration.
func (c *Controller) SetAutoOff(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	if d == c.autoOff {
		return
	}
	c.autoOff = d
	if c.state.On {
		c.rearmAutoOffLocked()
	}
}

// AutoOff returns the auto-off duration.
func (c *Controller) AutoOff() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoOff
}

// AutoOffDeadline returns when the pending auto-off fires, or false when no
// timer is armed.
func (c *Controller) AutoOffDeadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.autoOffTimer == nil {
		return time.Time{}, false
	}
	return c.autoOffAt, true
}

// rearmAutoOffLocked cancels any pending timer and, if the torch is on and
// auto-off is enabled, starts a new one. Must be called with lock held.
func (c *Controller) rearmAutoOffLocked() {
	if c.autoOffTimer != nil {
		c.autoOffTimer.Stop()
		c.autoOffTimer = nil
	}
	c.autoOffGen++

	if c.closed || !c.state.On || c.autoOff <= 0 {
		return
	}
	gen := c.autoOffGen
	c.autoOffAt = time.Now().Add(c.autoOff)
	c.autoOffTimer = time.AfterFunc(c.autoOff, func() { c.fireAutoOff(gen) })
}

func (c *Controller) fireAutoOff(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer arm or a Close superseded this timer.
	if c.closed || gen != c.autoOffGen || !c.state.On {
		return
	}

	log.Printf("auto-off: switching torch off after %s", c.autoOff)
	prev := c.state.Clone()
	c.state.On = false
	c.autoOffTimer = nil
	c.reconcileLocked(prev)
	c.emitStateLocked(EventAutoOff)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Close stops the blinker and the auto-off timer, optionally switches the
// torch off, and closes the event channel. Further handler calls are no-ops.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.blinker.Stop()
	if c.autoOffTimer != nil {
		c.autoOffTimer.Stop()
		c.autoOffTimer = nil
	}
	c.autoOffGen++

	if c.offOnExit {
		c.sync.Apply(false, c.state.Brightness)
	}

	c.emitStateLocked(EventClosed)
	close(c.events)
	return nil
}
