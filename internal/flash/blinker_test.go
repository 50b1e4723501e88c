// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/smartflash-tui/internal/torch"
)

func TestBlinker_TogglesAndStops(t *testing.T) {
	sim := torch.NewSimulated()
	var ticks atomic.Int32
	b := NewBlinker(NewSync(sim, 0), testBlink, func(bool) { ticks.Add(1) })

	require.False(t, b.Running())
	b.Start()
	require.True(t, b.Running())
	require.True(t, sim.Lit(), "torch lit on start")

	time.Sleep(6 * testBlink)
	b.Stop()
	require.False(t, b.Running())
	require.False(t, sim.Lit(), "torch off after stop")
	require.GreaterOrEqual(t, ticks.Load(), int32(3))

	n := len(sim.Calls())
	seen := ticks.Load()
	time.Sleep(4 * testBlink)
	require.Equal(t, n, len(sim.Calls()))
	require.Equal(t, seen, ticks.Load())
}

func TestBlinker_Alternates(t *testing.T) {
	sim := torch.NewSimulated()
	lits := make(chan bool, 16)
	b := NewBlinker(NewSync(sim, 0), testBlink, func(lit bool) {
		select {
		case lits <- lit:
		default:
		}
	})
	b.Start()
	defer b.Stop()

	want := false
	for i := 0; i < 4; i++ {
		select {
		case got := <-lits:
			require.Equal(t, want, got, "tick %d", i)
			want = !want
		case <-time.After(time.Second):
			t.Fatal("blinker stalled")
		}
	}
}

func TestBlinker_RestartKeepsSingleTicker(t *testing.T) {
	sim := torch.NewSimulated()
	var ticks atomic.Int32
	b := NewBlinker(NewSync(sim, 0), 50*time.Millisecond, func(bool) { ticks.Add(1) })

	for i := 0; i < 5; i++ {
		b.Start()
	}
	time.Sleep(175 * time.Millisecond)
	b.Stop()

	// One ticker at 50ms yields about 3 ticks; five would yield about 15.
	require.LessOrEqual(t, ticks.Load(), int32(5))
}

func TestBlinker_StopIdle(t *testing.T) {
	sim := torch.NewSimulated()
	b := NewBlinker(NewSync(sim, 0), 0, nil)
	b.Stop()
	require.Empty(t, sim.Calls())
	require.Equal(t, DefaultBlinkPeriod, b.Period())
}
