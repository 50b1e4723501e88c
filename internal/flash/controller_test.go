// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/smartflash-tui/internal/torch"
)

const testBlink = 20 * time.Millisecond

func newTestController(t *testing.T, opts Options) (*Controller, *torch.Simulated) {
	t.Helper()
	sim := torch.NewSimulated()
	if opts.BlinkPeriod == 0 {
		opts.BlinkPeriod = testBlink
	}
	c := NewController(sim, opts)
	t.Cleanup(func() { c.Close() })
	return c, sim
}

// waitEvent returns the first event of the given kind or fails after timeout.
func waitEvent(t *testing.T, c *Controller, kind EventKind, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-c.Events():
			require.True(t, ok, "event channel closed")
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("no %s event within %s", kind, timeout)
		}
	}
}

// =============================================================================
// STATE HANDLERS
// =============================================================================

func TestNewController_Defaults(t *testing.T) {
	c, sim := newTestController(t, Options{})

	s := c.Snapshot()
	require.Equal(t, 50, s.Brightness)
	require.False(t, s.On)
	require.Equal(t, ModeStandard, s.Mode)
	require.Equal(t, DefaultPresets(), s.Presets)
	require.Equal(t, 85, s.Battery)
	require.Equal(t, 32, s.Temperature)
	require.Empty(t, sim.Calls(), "no hardware call without SyncOnStart")
}

func TestNewController_SyncOnStart(t *testing.T) {
	_, sim := newTestController(t, Options{SyncOnStart: true})

	calls := sim.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "torch", calls[0].Op)
	require.False(t, calls[0].On)
}

func TestToggleMode_TwiceReturnsStandard(t *testing.T) {
	for _, m := range []Mode{ModeSOS, ModeAuto, ModeNight} {
		t.Run(m.String(), func(t *testing.T) {
			c, _ := newTestController(t, Options{})
			require.Equal(t, m, c.ToggleMode(m).Mode)
			require.Equal(t, ModeStandard, c.ToggleMode(m).Mode)
		})
	}
}

func TestToggleMode_SwitchesBetweenModes(t *testing.T) {
	c, _ := newTestController(t, Options{})
	c.ToggleMode(ModeNight)
	require.Equal(t, ModeAuto, c.ToggleMode(ModeAuto).Mode)
	require.Equal(t, ModeStandard, c.ToggleMode(ModeStandard).Mode)
}

func TestSetBrightness_Clamps(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{50, 50}, {1, 1}, {100, 100}, {0, 1}, {-20, 1}, {101, 100}, {1000, 100},
	}
	c, _ := newTestController(t, Options{})
	for _, tt := range tests {
		if got := c.SetBrightness(tt.in).Brightness; got != tt.want {
			t.Errorf("SetBrightness(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAdjustBrightness(t *testing.T) {
	c, _ := newTestController(t, Options{})
	require.Equal(t, 51, c.AdjustBrightness(1).Brightness)
	require.Equal(t, 100, c.AdjustBrightness(200).Brightness)
	require.Equal(t, 1, c.AdjustBrightness(-500).Brightness)
}

func TestApplyPreset_OverridesMode(t *testing.T) {
	for _, m := range Modes {
		t.Run(m.String(), func(t *testing.T) {
			c, _ := newTestController(t, Options{})
			c.SetMode(m)
			c.SetPower(true)

			s := c.ApplyPreset(Preset{ID: "x", Label: "Dim", Value: 5})
			require.True(t, s.On)
			require.Equal(t, ModeStandard, s.Mode)
			require.Equal(t, 5, s.Brightness)
		})
	}
}

func TestApplyPresetID(t *testing.T) {
	c, sim := newTestController(t, Options{})

	s, ok := c.ApplyPresetID("3")
	require.True(t, ok)
	require.Equal(t, 100, s.Brightness)
	require.True(t, sim.Lit())

	s, ok = c.ApplyPresetID("reading")
	require.True(t, ok)
	require.Equal(t, 20, s.Brightness)

	before := c.Snapshot()
	s, ok = c.ApplyPresetID("nope")
	require.False(t, ok)
	require.Equal(t, before, s)
}

func TestSnapshot_IsCopy(t *testing.T) {
	c, _ := newTestController(t, Options{})
	s := c.Snapshot()
	s.Presets[0].Label = "changed"
	require.Equal(t, "Reading", c.Snapshot().Presets[0].Label)
}

// =============================================================================
// HARDWARE SYNC
// =============================================================================

func TestPower_SyncsHardware(t *testing.T) {
	c, sim := newTestController(t, Options{})

	c.TogglePower()
	require.True(t, sim.Lit())
	require.Equal(t, 50, sim.Level())

	c.SetBrightness(75)
	require.Equal(t, 75, sim.Level())

	c.TogglePower()
	require.False(t, sim.Lit())

	last := sim.Calls()[len(sim.Calls())-1]
	require.Equal(t, "torch", last.Op)
	require.False(t, last.On)
}

func TestNoChange_NoHardwareCall(t *testing.T) {
	c, sim := newTestController(t, Options{})
	c.SetBrightness(50)
	c.SetPower(false)
	require.Empty(t, sim.Calls())
}

func TestModeChange_Resyncs(t *testing.T) {
	c, sim := newTestController(t, Options{})
	c.SetPower(true)
	sim.Reset()

	c.ToggleMode(ModeNight)
	require.Equal(t, 1, sim.CountOp("brightness"))
	require.True(t, sim.Lit())
}

func TestHardwareFailure_StateUnchanged(t *testing.T) {
	c, sim := newTestController(t, Options{})
	sim.SetFailure(torch.ErrUnavailable)

	s := c.TogglePower()
	require.True(t, s.On)
	s = c.SetBrightness(80)
	require.Equal(t, 80, s.Brightness)
	require.True(t, c.Snapshot().On)
	require.False(t, sim.Lit())
}

func TestHardwareTimeout_DoesNotBlock(t *testing.T) {
	c, sim := newTestController(t, Options{CallTimeout: 20 * time.Millisecond})
	sim.SetDelay(5 * time.Second)

	start := time.Now()
	s := c.TogglePower()
	require.True(t, s.On)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestNonDimmable_FallsBackToOn(t *testing.T) {
	c, sim := newTestController(t, Options{})
	sim.SetDimmable(false)

	c.SetPower(true)
	require.True(t, sim.Lit())
	require.Equal(t, 1, sim.CountOp("brightness"))
	require.Equal(t, 1, sim.CountOp("torch"))
}

// =============================================================================
// SOS
// =============================================================================

func TestSOS_BlinksWhileOn(t *testing.T) {
	c, sim := newTestController(t, Options{})

	c.SetMode(ModeSOS)
	require.Empty(t, sim.Calls(), "SOS while off does nothing")

	c.SetPower(true)
	time.Sleep(8 * testBlink)
	require.GreaterOrEqual(t, sim.CountOp("torch"), 4)
	require.Zero(t, sim.CountOp("brightness"), "SOS bypasses brightness sync")

	c.SetPower(false)
	require.False(t, sim.Lit())
	n := len(sim.Calls())
	time.Sleep(5 * testBlink)
	require.Equal(t, n, len(sim.Calls()), "no toggles after power off")
}

func TestSOS_ModeChangeStopsBlinking(t *testing.T) {
	c, sim := newTestController(t, Options{})
	c.SetPower(true)
	c.ToggleMode(ModeSOS)
	time.Sleep(4 * testBlink)

	c.ToggleMode(ModeNight)
	require.True(t, sim.Lit(), "steady state re-applied after SOS")
	require.Equal(t, 50, sim.Level())

	n := len(sim.Calls())
	time.Sleep(5 * testBlink)
	require.Equal(t, n, len(sim.Calls()))
}

func TestSOS_BrightnessIgnoredByHardware(t *testing.T) {
	c, sim := newTestController(t, Options{})
	c.SetMode(ModeSOS)
	c.SetPower(true)

	c.SetBrightness(10)
	require.Equal(t, 10, c.Snapshot().Brightness)
	require.Zero(t, sim.CountOp("brightness"))
}

func TestSOS_PresetCancelsBlinking(t *testing.T) {
	c, sim := newTestController(t, Options{})
	c.SetMode(ModeSOS)
	c.SetPower(true)
	time.Sleep(3 * testBlink)

	c.ApplyPreset(DefaultPresets()[0])
	require.True(t, sim.Lit())
	require.Equal(t, 20, sim.Level())

	n := len(sim.Calls())
	time.Sleep(5 * testBlink)
	require.Equal(t, n, len(sim.Calls()))
}

func TestSOS_BlinkEvents(t *testing.T) {
	c, _ := newTestController(t, Options{})
	c.SetMode(ModeSOS)
	c.SetPower(true)

	ev := waitEvent(t, c, EventBlink, time.Second)
	require.False(t, ev.Lit, "first tick switches the torch off")
}

// =============================================================================
// EVENTS
// =============================================================================

func TestEvents_StateChange(t *testing.T) {
	c, _ := newTestController(t, Options{})
	c.SetBrightness(42)

	ev := waitEvent(t, c, EventState, time.Second)
	require.Equal(t, 42, ev.State.Brightness)
	require.False(t, ev.At.IsZero())
}

func TestEvents_SeqOrdersSnapshots(t *testing.T) {
	c, _ := newTestController(t, Options{})

	c.TogglePower()
	c.TogglePower()
	first := waitEvent(t, c, EventState, time.Second)
	second := waitEvent(t, c, EventState, time.Second)
	require.True(t, first.State.On)
	require.False(t, second.State.On)
	require.Less(t, first.Seq, second.Seq)

	st, seq := c.Current()
	require.False(t, st.On)
	require.Equal(t, second.Seq, seq)
}

func TestEvents_FullBufferDoesNotBlock(t *testing.T) {
	c, _ := newTestController(t, Options{EventBuffer: 1})

	done := make(chan struct{})
	go func() {
		for i := 1; i <= 20; i++ {
			c.SetBrightness(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers blocked on a full event channel")
	}
	require.Equal(t, 20, c.Snapshot().Brightness)
}

// =============================================================================
// AUTO-OFF
// =============================================================================

func TestAutoOff_SwitchesOff(t *testing.T) {
	c, sim := newTestController(t, Options{AutoOff: 30 * time.Millisecond})
	c.SetPower(true)

	ev := waitEvent(t, c, EventAutoOff, 2*time.Second)
	require.False(t, ev.State.On)
	require.False(t, c.Snapshot().On)
	require.False(t, sim.Lit())
}

func TestAutoOff_CancelledByPowerOff(t *testing.T) {
	c, _ := newTestController(t, Options{AutoOff: 40 * time.Millisecond})
	c.SetPower(true)
	c.SetPower(false)
	c.SetBrightness(10)

	time.Sleep(100 * time.Millisecond)
	for {
		select {
		case ev := <-c.Events():
			require.NotEqual(t, EventAutoOff, ev.Kind)
			continue
		default:
		}
		break
	}
}

func TestAutoOff_Disabled(t *testing.T) {
	c, _ := newTestController(t, Options{})
	c.SetPower(true)
	require.Zero(t, c.AutoOff())
	time.Sleep(50 * time.Millisecond)
	require.True(t, c.Snapshot().On)
}

func TestSetAutoOff_RearmsWhileOn(t *testing.T) {
	c, _ := newTestController(t, Options{})
	c.SetPower(true)
	c.SetAutoOff(20 * time.Millisecond)
	require.Equal(t, 20*time.Millisecond, c.AutoOff())

	waitEvent(t, c, EventAutoOff, 2*time.Second)
	require.False(t, c.Snapshot().On)
}

func TestAutoOffDeadline(t *testing.T) {
	c, _ := newTestController(t, Options{AutoOff: time.Minute})

	_, armed := c.AutoOffDeadline()
	require.False(t, armed)

	before := time.Now()
	c.SetPower(true)
	at, armed := c.AutoOffDeadline()
	require.True(t, armed)
	require.WithinDuration(t, before.Add(time.Minute), at, time.Second)

	c.SetPower(false)
	_, armed = c.AutoOffDeadline()
	require.False(t, armed)
}

// =============================================================================
// CLOSE
// =============================================================================

func TestClose_OffOnExit(t *testing.T) {
	sim := torch.NewSimulated()
	c := NewController(sim, Options{OffOnExit: true, BlinkPeriod: testBlink})
	c.SetMode(ModeSOS)
	c.SetPower(true)
	time.Sleep(2 * testBlink)

	require.NoError(t, c.Close())
	require.False(t, sim.Lit())

	n := len(sim.Calls())
	time.Sleep(4 * testBlink)
	require.Equal(t, n, len(sim.Calls()))

	// Drain until closed.
	for range c.Events() {
	}

	s := c.TogglePower()
	require.True(t, s.On, "state is frozen after close")
	require.NoError(t, c.Close(), "second close is a no-op")
}

func TestClose_KeepsTorchWithoutOffOnExit(t *testing.T) {
	sim := torch.NewSimulated()
	c := NewController(sim, Options{})
	c.SetPower(true)
	require.NoError(t, c.Close())
	require.True(t, sim.Lit())
}

func TestSetReadings(t *testing.T) {
	c, sim := newTestController(t, Options{})
	s := c.SetReadings(15, 45)
	require.Equal(t, 15, s.Battery)
	require.Equal(t, 45, s.Temperature)
	require.Empty(t, sim.Calls())
}

func TestTorchInfo(t *testing.T) {
	c, _ := newTestController(t, Options{})
	require.Equal(t, torch.DriverSimulated, c.TorchInfo().Driver)
	require.Equal(t, testBlink, c.BlinkPeriod())
}

func TestSync_RateLimitsWarnings(t *testing.T) {
	sim := torch.NewSimulated()
	sim.SetFailure(errors.New("boom"))
	s := NewSync(sim, 0)

	for i := 0; i < 10; i++ {
		require.Error(t, s.Apply(true, 50))
	}
	require.Equal(t, 7, s.Suppressed())
}
