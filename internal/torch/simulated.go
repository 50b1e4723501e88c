// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package torch

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/smartflash-tui/internal/util"
)

// Call records one request made to a Simulated torch.
type Call struct {
	Op    string // "torch" or "brightness"
	On    bool
	Level int
	At    time.Time
}

// Simulated is an in-memory torch. It records every call and can be told to
// fail or stall, which makes it the fake of choice in tests.
type Simulated struct {
	mu sync.Mutex

	lit       bool
	level     int
	calls     []Call
	failWith  error
	delay     time.Duration
	noDimming bool
	closed    bool
}

// NewSimulated returns a dimmable simulated torch, initially off.
func NewSimulated() *Simulated {
	return &Simulated{level: 100}
}

// SetFailure makes every subsequent call return err (nil clears it).
func (s *Simulated) SetFailure(err error) {
	s.mu.Lock()
	s.failWith = err
	s.mu.Unlock()
}

// SetDelay makes every subsequent call block for d or until its context ends.
func (s *Simulated) SetDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// SetDimmable toggles level control. Without it SetBrightness returns
// ErrUnsupported, like an on/off-only LED.
func (s *Simulated) SetDimmable(dimmable bool) {
	s.mu.Lock()
	s.noDimming = !dimmable
	s.mu.Unlock()
}

func (s *Simulated) begin(ctx context.Context) error {
	s.mu.Lock()
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return ctx.Err()
}

// SetTorch records the call and switches the simulated LED.
func (s *Simulated) SetTorch(ctx context.Context, on bool) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Op: "torch", On: on, Level: s.level, At: time.Now()})
	if s.failWith != nil {
		return s.failWith
	}
	s.lit = on
	return nil
}

// SetBrightness records the call and sets the simulated level.
func (s *Simulated) SetBrightness(ctx context.Context, level int) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	level = util.Clamp(level, 0, 100)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Op: "brightness", On: level > 0, Level: level, At: time.Now()})
	if s.failWith != nil {
		return s.failWith
	}
	if s.noDimming {
		return ErrUnsupported
	}
	if level > 0 {
		s.level = level
	}
	s.lit = level > 0
	return nil
}

// Read returns the level in percent, 0 while off.
func (s *Simulated) Read(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lit {
		return 0, nil
	}
	return s.level, nil
}

// Lit reports whether the simulated LED is on.
func (s *Simulated) Lit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lit
}

// Level returns the last non-zero level.
func (s *Simulated) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Calls returns a copy of the recorded calls.
func (s *Simulated) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CountOp returns how many calls of the given op were recorded.
func (s *Simulated) CountOp(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset clears the call log.
func (s *Simulated) Reset() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

// Closed reports whether Close was called.
func (s *Simulated) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Info describes the simulated torch.
func (s *Simulated) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	maxLevel := 100
	if s.noDimming {
		maxLevel = 1
	}
	return Info{
		Driver:        DriverSimulated,
		Device:        "sim0",
		MaxBrightness: maxLevel,
		Dimmable:      !s.noDimming,
		Available:     true,
	}
}

// Close marks the torch closed.
func (s *Simulated) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
