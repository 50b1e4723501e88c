// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package torch

import (
	"context"
	"fmt"
)

// None is a torch that does not exist. Every call fails with ErrUnavailable.
type None struct {
	reason string
}

// NewNone returns an absent torch. reason is shown in Info.
func NewNone(reason string) *None {
	return &None{reason: reason}
}

func (n *None) err() error {
	if n.reason == "" {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %s", ErrUnavailable, n.reason)
}

// SetTorch always fails.
func (n *None) SetTorch(ctx context.Context, on bool) error { return n.err() }

// SetBrightness always fails.
func (n *None) SetBrightness(ctx context.Context, level int) error { return n.err() }

// Info reports the torch as unavailable.
func (n *None) Info() Info {
	return Info{Driver: DriverNone, Available: false, Reason: n.reason}
}

// Close is a no-op.
func (n *None) Close() error { return nil }
