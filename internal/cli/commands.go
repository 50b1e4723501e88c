// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - One-shot torch commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/torch"
)

// ErrNotApplied is returned when the torch reads back a different power
// state than the command set.
var ErrNotApplied = errors.New("torch did not accept the change")

// =============================================================================
// POWER AND BRIGHTNESS
// =============================================================================

// runOn handles "on [--level N]" and "on N".
func (a *App) runOn() (interface{}, error) {
	p := NewArgParser(a.Args.Raw)
	levelArg := p.Flag("level")
	if levelArg == "" {
		levelArg = p.Positional(0)
	}
	level := 0
	if levelArg != "" {
		var err error
		if level, err = ParseLevel(levelArg); err != nil {
			return nil, err
		}
	}

	s, err := a.oneShot()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if level > 0 {
		s.ctrl.SetBrightness(level)
	}
	st := s.ctrl.SetPower(true)
	if err := a.verify(s, st); err != nil {
		return nil, err
	}
	a.printState(st)
	return NewStateData(st), nil
}

// runOff handles "off".
func (a *App) runOff() (interface{}, error) {
	s, err := a.oneShot()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	st := s.ctrl.SetPower(false)
	if err := a.verify(s, st); err != nil {
		return nil, err
	}
	a.printState(st)
	return NewStateData(st), nil
}

// runSet handles "set <level>". Setting a level switches the torch on.
func (a *App) runSet() (interface{}, error) {
	p := NewArgParser(a.Args.Raw)
	if p.PositionalCount() == 0 {
		return nil, NewUsageError("usage: smartflash set <level>")
	}
	level, err := ParseLevel(p.Positional(0))
	if err != nil {
		return nil, err
	}

	s, err := a.oneShot()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	s.ctrl.SetBrightness(level)
	st := s.ctrl.SetPower(true)
	if err := a.verify(s, st); err != nil {
		return nil, err
	}
	a.printState(st)
	return NewStateData(st), nil
}

// verify reads the torch back when the driver supports it. Write failures
// are only logged by the controller, so this is where a one-shot command
// notices them.
func (a *App) verify(s *session, st flash.State) error {
	r, ok := s.torch.(torch.Reader)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()
	level, err := r.Read(ctx)
	if err != nil {
		return nil
	}
	if (level > 0) != st.On {
		return fmt.Errorf("%s: %w", s.ctrl.TorchInfo().Device, ErrNotApplied)
	}
	return nil
}

// =============================================================================
// MODES
// =============================================================================

// runMode handles "mode <standard|sos|auto|night>". SOS blinks in the
// foreground exactly like the sos command.
func (a *App) runMode() (interface{}, error) {
	p := NewArgParser(a.Args.Raw)
	if p.PositionalCount() == 0 {
		return nil, NewUsageError("usage: smartflash mode <standard|sos|auto|night>")
	}
	mode, err := flash.ParseMode(p.Positional(0))
	if err != nil {
		return nil, &UsageError{Message: err.Error()}
	}
	if mode == flash.ModeSOS {
		return a.runSOS(p.PositionalFrom(1))
	}

	s, err := a.oneShot()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	st := s.ctrl.SetMode(mode)
	a.printState(st)
	return NewStateData(st), nil
}

// runSOS blinks until the signal context ends or --duration elapses, then
// switches the torch off.
func (a *App) runSOS(raw []string) (interface{}, error) {
	p := NewArgParser(raw)
	var duration time.Duration
	if d := p.FlagOrDefault("duration", p.Positional(0)); d != "" {
		var err error
		if duration, err = ParseDuration(d); err != nil {
			return nil, err
		}
	}

	s, err := a.newSession(sessionOptions{offOnExit: true})
	if err != nil {
		return nil, err
	}
	if info := s.ctrl.TorchInfo(); !info.Available {
		s.Close()
		return nil, fmt.Errorf("%s: %w", info, torch.ErrUnavailable)
	}

	ctx, cancel := a.signalContext()
	defer cancel()
	if duration > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, duration)
		defer cancelTimeout()
	}

	// Count toggles and keep the event buffer drained while blinking.
	toggles := make(chan int, 1)
	go func(events <-chan flash.Event) {
		n := 0
		for ev := range events {
			if ev.Kind == flash.EventBlink {
				n++
			}
		}
		toggles <- n
	}(s.ctrl.Events())

	start := time.Now()
	s.ctrl.SetMode(flash.ModeSOS)
	s.ctrl.SetPower(true)
	log.Printf("SOS: blinking every %s", s.ctrl.BlinkPeriod())
	if duration > 0 {
		a.say("%s blinking for %s (Ctrl-C to stop)\n", AmberStyle.Render("SOS"), duration)
	} else {
		a.say("%s blinking (Ctrl-C to stop)\n", AmberStyle.Render("SOS"))
	}

	<-ctx.Done()
	elapsed := time.Since(start).Round(time.Millisecond)

	st := s.ctrl.SetPower(false)
	s.Close()
	n := <-toggles
	log.Printf("SOS: stopped after %s (%d toggles)", elapsed, n)
	a.say("%s stopped after %s\n", AmberStyle.Render("SOS"), elapsed)

	return SOSData{
		Duration:    elapsed.String(),
		BlinkPeriod: s.ctrl.BlinkPeriod().String(),
		Toggles:     n,
		State:       NewStateData(st),
	}, nil
}

// =============================================================================
// PRESETS
// =============================================================================

// runPresets lists the configured presets. It never touches the torch.
func (a *App) runPresets() (interface{}, error) {
	presets := a.Config.FlashPresets()
	data := PresetsData{Presets: presets}
	if len(presets) == 0 {
		a.say("%s\n", DimStyle.Render("No presets configured."))
		return data, nil
	}

	a.say("%s\n", TitleStyle.Render("Presets"))
	for _, p := range presets {
		a.say("  %-6s %-16s %s\n", DimStyle.Render(p.ID), p.Label, RenderLevel(p.Value))
	}
	return data, nil
}

// runPreset handles "preset <id|label>".
func (a *App) runPreset() (interface{}, error) {
	name := strings.TrimSpace(strings.Join(a.Args.Raw, " "))
	if name == "" {
		return nil, NewUsageError("usage: smartflash preset <id|label>")
	}

	s, err := a.oneShot()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	st, ok := s.ctrl.ApplyPresetID(name)
	if !ok {
		return nil, NewNotFoundError("preset", name)
	}
	if err := a.verify(s, st); err != nil {
		return nil, err
	}
	a.printState(st)
	return NewStateData(st), nil
}

// =============================================================================
// STATUS AND VERSION
// =============================================================================

// runStatus reports the torch, its current state and the sensors. An
// unavailable torch is reported, not treated as an error.
func (a *App) runStatus() (interface{}, error) {
	s, err := a.newSession(sessionOptions{})
	if err != nil {
		return nil, err
	}
	defer s.Close()

	st := s.ctrl.Snapshot()
	info := s.ctrl.TorchInfo()
	data := StatusData{
		State:          NewStateData(st),
		Torch:          info,
		AutoOffMinutes: a.Config.Flash.AutoOffMinutes,
		SensorsEnabled: a.Sensors != nil,
		ConfigPath:     a.ConfigPath,
	}
	data.State.Presets = st.Presets

	if a.Args.JSON {
		return data, nil
	}

	torchLine := ValueStyle.Render(info.String())
	if !info.Available {
		torchLine = WarningStyle.Render(info.String())
	}
	battery := fmt.Sprintf("%d%%", st.Battery)
	if data.State.LowBattery {
		battery = WarningStyle.Render(battery + " (low)")
	}
	temp := fmt.Sprintf("%d°C", st.Temperature)
	if data.State.Hot {
		temp = WarningStyle.Render(temp + " (hot)")
	}
	autoOff := "never"
	if data.AutoOffMinutes > 0 {
		autoOff = fmt.Sprintf("%d min", data.AutoOffMinutes)
	}

	fmt.Fprintln(a.Out, TitleStyle.Render("Smart Flash"))
	fmt.Fprintln(a.Out, RenderLabel("Torch", torchLine))
	fmt.Fprintln(a.Out, RenderLabel("Power", RenderPower(st.On)))
	fmt.Fprintln(a.Out, RenderLabel("Brightness", RenderLevel(st.DisplayBrightness())+" "+RenderBar(st.DisplayBrightness(), 20)))
	fmt.Fprintln(a.Out, RenderLabel("Mode", renderMode(st.Mode)))
	fmt.Fprintln(a.Out, RenderLabel("Battery", battery))
	fmt.Fprintln(a.Out, RenderLabel("Temperature", temp))
	fmt.Fprintln(a.Out, RenderLabel("Auto-off", autoOff))
	fmt.Fprintln(a.Out, RenderLabel("Config", DimStyle.Render(a.ConfigPath)))
	return data, nil
}

func (a *App) runVersion() (interface{}, error) {
	data := VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	if !a.Args.JSON {
		PrintVersion(a.Out)
	}
	return data, nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printState prints the one-line state summary used by every one-shot
// command.
func (a *App) printState(st flash.State) {
	a.say("%s %s  %s\n", RenderPower(st.On), RenderLevel(st.Brightness), renderMode(st.Mode))
}

func renderMode(m flash.Mode) string {
	if m == flash.ModeNight {
		return NightStyle.Render(m.Label())
	}
	return ValueStyle.Render(m.Label())
}
