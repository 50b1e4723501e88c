// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared command state and dispatch.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/smartflash-tui/internal/config"
	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/sensors"
	"github.com/jeranaias/smartflash-tui/internal/torch"
)

// readTimeout bounds the initial hardware level read.
const readTimeout = 500 * time.Millisecond

// =============================================================================
// APP
// =============================================================================

// App carries everything a command needs. Tests build one directly with a
// simulated torch and buffers for Out and Err.
type App struct {
	Args   Args
	Config *config.Config

	// ConfigPath is the file Config was loaded from, or the file config
	// init and config set would write.
	ConfigPath string

	Out io.Writer
	Err io.Writer

	// OpenTorch opens the hardware. Defaults to torch.Open.
	OpenTorch func(torch.Options) (torch.Torch, error)

	// Sensors is nil when sensors are disabled.
	Sensors *sensors.Reader

	// SignalContext returns the context long-running commands stop on.
	// Defaults to SIGINT/SIGTERM.
	SignalContext func() (context.Context, context.CancelFunc)

	// BlinkPeriod overrides the SOS interval in tests. Zero means
	// flash.DefaultBlinkPeriod.
	BlinkPeriod time.Duration
}

// NewApp loads the configuration named by args (or the default one) and
// applies the global flag overrides.
func NewApp(args Args) (*App, error) {
	cfg, path, err := loadConfig(args.ConfigPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		Args:       args,
		Config:     cfg,
		ConfigPath: path,
		Out:        os.Stdout,
		Err:        os.Stderr,
	}
	if err := a.applyOverrides(); err != nil {
		return nil, err
	}
	config.SetGlobal(a.Config)
	return a, nil
}

// loadConfig loads an explicit path strictly. Without one, a broken config
// file is reported as a warning and the defaults are used.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("WARNING: %v (using defaults)", err)
		}
		active, pathErr := config.ActivePath()
		if pathErr != nil {
			log.Printf("WARNING: %v", pathErr)
		}
		return cfg, active, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := config.Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, path, &ConfigError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, &ConfigError{Path: path, Err: err}
	}
	return cfg, path, nil
}

// applyOverrides applies --simulate, --driver and --led on top of the
// configuration.
func (a *App) applyOverrides() error {
	if a.Args.Driver != "" {
		if !torch.IsValidDriver(a.Args.Driver) {
			return NewUsageError("invalid driver %q (expected one of %v)", a.Args.Driver, torch.Drivers)
		}
		a.Config.Torch.Driver = a.Args.Driver
	}
	if a.Args.Simulate {
		a.Config.Torch.Driver = torch.DriverSimulated
	}
	if a.Args.LED != "" {
		a.Config.Torch.LED = a.Args.LED
	}
	if a.Config.Sensors.Enabled && a.Sensors == nil {
		a.Sensors = &sensors.Reader{
			PowerSupplyRoot: a.Config.Sensors.PowerSupplyRoot,
			ThermalRoot:     a.Config.Sensors.ThermalRoot,
		}
	}
	return nil
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes cmd and returns the process exit code.
func (a *App) Run(cmd Command) int {
	data, err := a.dispatch(cmd)

	if a.Args.JSON && cmd != CmdTUI && cmd != CmdShell && cmd != CmdHelp {
		resp := NewJSONResponse(cmd.String(), data)
		if err != nil {
			resp = NewJSONErrorResponse(cmd.String(), err)
		}
		if printErr := resp.Print(a.Out); printErr != nil {
			log.Printf("WARNING: failed to write JSON output: %v", printErr)
		}
		return GetExitCode(err)
	}

	if err != nil {
		DisplayError(a.Err, err)
	}
	return GetExitCode(err)
}

func (a *App) dispatch(cmd Command) (interface{}, error) {
	switch cmd {
	case CmdTUI:
		return nil, a.RunTUI()
	case CmdOn:
		return a.runOn()
	case CmdOff:
		return a.runOff()
	case CmdSet:
		return a.runSet()
	case CmdSOS:
		return a.runSOS(a.Args.Raw)
	case CmdMode:
		return a.runMode()
	case CmdPresets:
		return a.runPresets()
	case CmdPreset:
		return a.runPreset()
	case CmdStatus:
		return a.runStatus()
	case CmdShell:
		return nil, a.RunShell()
	case CmdConfig:
		return a.runConfig()
	case CmdVersion:
		return a.runVersion()
	case CmdHelp:
		return nil, a.runHelp()
	default:
		return nil, NewUsageError("unknown command: %s", cmd)
	}
}

// ReportError reports an error that happened before an App existed and
// returns the exit code.
func ReportError(args Args, cmd Command, err error, stdout, stderr io.Writer) int {
	if args.JSON {
		NewJSONErrorResponse(cmd.String(), err).Print(stdout)
	} else {
		DisplayError(stderr, err)
	}
	return GetExitCode(err)
}

// =============================================================================
// CONTROLLER SETUP
// =============================================================================

// session is an open torch and the controller driving it.
type session struct {
	ctrl  *flash.Controller
	torch torch.Torch
}

// Close closes the controller, then the torch.
func (s *session) Close() error {
	err := s.ctrl.Close()
	if closeErr := s.torch.Close(); err == nil {
		err = closeErr
	}
	return err
}

// sessionOptions are the controller settings that differ between the TUI,
// the shell and one-shot commands.
type sessionOptions struct {
	autoOff     time.Duration
	offOnExit   bool
	syncOnStart bool
}

func (a *App) openTorch() (torch.Torch, error) {
	open := a.OpenTorch
	if open == nil {
		open = torch.Open
	}
	return open(torch.Options{
		Driver:    a.Config.Torch.Driver,
		LED:       a.Config.Torch.LED,
		SysfsRoot: a.Config.Torch.SysfsRoot,
	})
}

// newSession opens the torch and starts a controller whose initial state
// reflects the hardware and the sensors.
func (a *App) newSession(opts sessionOptions) (*session, error) {
	t, err := a.openTorch()
	if err != nil {
		return nil, err
	}

	st := a.initialState(t)
	ctrl := flash.NewController(t, flash.Options{
		Initial:     &st,
		BlinkPeriod: a.BlinkPeriod,
		CallTimeout: a.Config.CallTimeout(),
		AutoOff:     opts.autoOff,
		OffOnExit:   opts.offOnExit,
		SyncOnStart: opts.syncOnStart,
	})
	return &session{ctrl: ctrl, torch: t}, nil
}

// initialState starts from the configuration and adopts the torch's
// current level and the latest sensor readings when available.
func (a *App) initialState(t torch.Torch) flash.State {
	st := a.Config.InitialState()

	if r, ok := t.(torch.Reader); ok {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		level, err := r.Read(ctx)
		cancel()
		switch {
		case err != nil:
			log.Printf("WARNING: failed to read torch level: %v", err)
		case level > 0:
			st.On = true
			st.Brightness = flash.ClampBrightness(level)
		}
	}

	if a.Sensors != nil {
		reading := a.Sensors.Update(sensors.Reading{Battery: st.Battery, Temperature: st.Temperature})
		st.Battery = reading.Battery
		st.Temperature = reading.Temperature
	}
	return st
}

// oneShot opens a session for a single command: no auto-off, and the
// torch is left as the command set it.
func (a *App) oneShot() (*session, error) {
	s, err := a.newSession(sessionOptions{})
	if err != nil {
		return nil, err
	}
	if info := s.ctrl.TorchInfo(); !info.Available {
		s.Close()
		return nil, fmt.Errorf("%s: %w", info, torch.ErrUnavailable)
	}
	return s, nil
}

func (a *App) signalContext() (context.Context, context.CancelFunc) {
	if a.SignalContext != nil {
		return a.SignalContext()
	}
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// say prints human output unless --json is set.
func (a *App) say(format string, args ...interface{}) {
	if a.Args.JSON {
		return
	}
	fmt.Fprintf(a.Out, format, args...)
}
