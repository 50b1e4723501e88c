// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"fmt"
	"strings"
)

// Mode is the active flashlight mode. Exactly one mode is active at a time.
type Mode int

const (
	// ModeStandard is a steady light at the current brightness.
	ModeStandard Mode = iota
	// ModeSOS blinks the torch on a fixed period while powered.
	ModeSOS
	// ModeAuto is reserved for ambient-light driven brightness.
	ModeAuto
	// ModeNight tints the interface red. The torch itself is unchanged.
	ModeNight
)

// Modes lists all modes in display order.
var Modes = []Mode{ModeStandard, ModeSOS, ModeAuto, ModeNight}

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeSOS:
		return "sos"
	case ModeAuto:
		return "auto"
	case ModeNight:
		return "night"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label returns the display label for the mode.
func (m Mode) Label() string {
	if m == ModeSOS {
		return "SOS"
	}
	return strings.ToUpper(m.String())
}

// ParseMode parses a mode name (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "std", "normal":
		return ModeStandard, nil
	case "sos":
		return ModeSOS, nil
	case "auto":
		return ModeAuto, nil
	case "night":
		return ModeNight, nil
	default:
		return ModeStandard, fmt.Errorf("unknown mode %q (expected standard, sos, auto or night)", s)
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
