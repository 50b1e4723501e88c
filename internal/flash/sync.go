// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/smartflash-tui/internal/torch"
)

// DefaultCallTimeout bounds every hardware call.
const DefaultCallTimeout = 2 * time.Second

// =============================================================================
// HARDWARE SYNC
// =============================================================================

// Sync pushes state to the torch. Calls are serialized and best-effort: a
// failure is logged as a warning and returned, but never changes state.
type Sync struct {
	mu      sync.Mutex
	torch   torch.Torch
	timeout time.Duration

	limiter    *rate.Limiter
	suppressed int
}

// NewSync wraps t. A non-positive timeout uses DefaultCallTimeout.
func NewSync(t torch.Torch, timeout time.Duration) *Sync {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Sync{
		torch:   t,
		timeout: timeout,
		// One warning every 10s after a burst of 3.
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 3),
	}
}

// Torch returns the wrapped capability.
func (s *Sync) Torch() torch.Torch {
	return s.torch
}

// Apply sets the steady state: on at level, or off. Drivers without level
// control fall back to a plain on.
func (s *Sync) Apply(on bool, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if !on {
		return s.check("off", s.torch.SetTorch(ctx, false))
	}

	err := s.torch.SetBrightness(ctx, ClampBrightness(level))
	if errors.Is(err, torch.ErrUnsupported) {
		err = s.torch.SetTorch(ctx, true)
	}
	return s.check("on", err)
}

// SetTorch switches the torch without touching its level. The SOS blinker
// uses this directly.
func (s *Sync) SetTorch(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	op := "toggle off"
	if on {
		op = "toggle on"
	}
	return s.check(op, s.torch.SetTorch(ctx, on))
}

// check logs err as a rate-limited warning. Must be called with lock held.
func (s *Sync) check(op string, err error) error {
	if err == nil {
		return nil
	}
	if !s.limiter.Allow() {
		s.suppressed++
		return err
	}
	if s.suppressed > 0 {
		log.Printf("WARNING: torch %s failed: %v (%d similar warnings suppressed)", op, err, s.suppressed)
		s.suppressed = 0
		return err
	}
	log.Printf("WARNING: torch %s failed: %v", op, err)
	return err
}

// Suppressed returns the number of warnings dropped since the last one logged.
func (s *Sync) Suppressed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppressed
}
