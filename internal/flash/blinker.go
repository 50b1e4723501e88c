// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"context"
	"sync"
	"time"
)

// DefaultBlinkPeriod is the SOS toggle interval.
const DefaultBlinkPeriod = 500 * time.Millisecond

// =============================================================================
// SOS BLINKER
// =============================================================================

// Blinker toggles the torch on a fixed period. It is either idle or running
// exactly one ticker goroutine.
//
// The blinker only touches the hardware. It never mutates State.
type Blinker struct {
	mu     sync.Mutex
	sync   *Sync
	period time.Duration
	onTick func(lit bool)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewBlinker creates an idle blinker. onTick, if set, is called from the
// ticker goroutine after every toggle.
func NewBlinker(s *Sync, period time.Duration, onTick func(lit bool)) *Blinker {
	if period <= 0 {
		period = DefaultBlinkPeriod
	}
	return &Blinker{sync: s, period: period, onTick: onTick}
}

// Start lights the torch and begins toggling it every period. A running
// ticker is stopped first.
func (b *Blinker) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	b.sync.SetTorch(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.cancel = cancel
	b.done = done

	go b.run(ctx, done)
}

// Stop cancels the ticker, waits for its goroutine to exit and switches the
// torch off. No toggle happens after Stop returns. Safe to call when idle.
func (b *Blinker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *Blinker) stopLocked() {
	if b.cancel == nil {
		return
	}
	b.cancel()
	<-b.done
	b.cancel = nil
	b.done = nil

	b.sync.SetTorch(false)
}

// Running reports whether a ticker is active.
func (b *Blinker) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancel != nil
}

// Period returns the toggle interval.
func (b *Blinker) Period() time.Duration {
	return b.period
}

func (b *Blinker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(b.period)
	defer ticker.Stop()

	lit := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both cases may be ready; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			lit = !lit
			b.sync.SetTorch(lit)
			if b.onTick != nil {
				b.onTick(lit)
			}
		}
	}
}
