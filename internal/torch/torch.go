// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package torch provides access to a device torch (camera flash LED).
//
// All drivers implement the Torch interface. Calls are best-effort: callers
// are expected to log failures and carry on, never to roll back UI state.
//
// Drivers:
//   - sysfs: Linux LED class device under /sys/class/leds
//   - simulated: in-memory torch that records every call
//   - none: absent capability, every call fails with ErrUnavailable
//   - auto: sysfs when a flash LED can be discovered, otherwise none
package torch

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnavailable means the host has no usable torch.
	ErrUnavailable = errors.New("flash not available")

	// ErrPermission means the torch exists but cannot be written.
	ErrPermission = errors.New("permission denied")

	// ErrUnsupported means the driver cannot perform the requested operation
	// (for example, level control on an on/off-only LED) or the driver name
	// is unknown.
	ErrUnsupported = errors.New("unsupported")
)

// =============================================================================
// INTERFACE
// =============================================================================

// Driver names accepted by Open.
const (
	DriverAuto      = "auto"
	DriverSysfs     = "sysfs"
	DriverSimulated = "simulated"
	DriverNone      = "none"
)

// Drivers lists the valid driver names in display order.
var Drivers = []string{DriverAuto, DriverSysfs, DriverSimulated, DriverNone}

// Info describes an opened torch.
type Info struct {
	Driver        string `json:"driver"`
	Device        string `json:"device,omitempty"`
	MaxBrightness int    `json:"max_brightness"`
	Dimmable      bool   `json:"dimmable"`
	Available     bool   `json:"available"`
	Reason        string `json:"reason,omitempty"`
}

// String returns a one-line summary suitable for status output.
func (i Info) String() string {
	if !i.Available {
		if i.Reason != "" {
			return fmt.Sprintf("%s (unavailable: %s)", i.Driver, i.Reason)
		}
		return i.Driver + " (unavailable)"
	}
	var b strings.Builder
	b.WriteString(i.Driver)
	if i.Device != "" {
		b.WriteString(" ")
		b.WriteString(i.Device)
	}
	if i.Dimmable {
		fmt.Fprintf(&b, " (dimmable, max %d)", i.MaxBrightness)
	} else {
		b.WriteString(" (on/off)")
	}
	return b.String()
}

// Torch is the hardware capability boundary.
type Torch interface {
	// SetTorch switches the LED on at its last level, or off.
	SetTorch(ctx context.Context, on bool) error

	// SetBrightness sets the level in percent (0-100) and implies on for
	// any level above zero. Drivers without level control return
	// ErrUnsupported.
	SetBrightness(ctx context.Context, level int) error

	// Info describes the device.
	Info() Info

	// Close releases the device.
	Close() error
}

// Reader is implemented by drivers that can report the current level.
type Reader interface {
	// Read returns the current level in percent; 0 means off.
	Read(ctx context.Context) (int, error)
}

// =============================================================================
// OPEN
// =============================================================================

// Options selects and configures a driver.
type Options struct {
	// Driver is one of Drivers. Empty means auto.
	Driver string

	// LED restricts sysfs discovery to the named LED.
	LED string

	// SysfsRoot overrides the LED class directory (tests).
	SysfsRoot string
}

// Open returns the torch selected by opts.
//
// The auto driver never fails: when no LED can be used it returns a None
// torch whose Info carries the reason.
func Open(opts Options) (Torch, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	switch driver {
	case "", DriverAuto:
		t, err := OpenSysfs(opts.SysfsRoot, opts.LED)
		if err != nil {
			return NewNone(err.Error()), nil
		}
		return t, nil
	case DriverSysfs:
		return OpenSysfs(opts.SysfsRoot, opts.LED)
	case DriverSimulated:
		return NewSimulated(), nil
	case DriverNone:
		return NewNone("disabled by configuration"), nil
	default:
		return nil, fmt.Errorf("torch driver %q: %w", opts.Driver, ErrUnsupported)
	}
}

// IsValidDriver reports whether name is accepted by Open.
func IsValidDriver(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return true
	}
	for _, d := range Drivers {
		if d == name {
			return true
		}
	}
	return false
}
