// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"fmt"

	"github.com/jeranaias/smartflash-tui/internal/util"
)

// Brightness bounds and defaults.
const (
	MinBrightness      = 1
	MaxBrightness      = 100
	DefaultBrightness  = 50
	DefaultBattery     = 85
	DefaultTemperature = 32
)

// Preset is a named brightness shortcut.
type Preset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// String returns "Label (Value%)".
func (p Preset) String() string {
	return fmt.Sprintf("%s (%d%%)", p.Label, p.Value)
}

// DefaultPresets returns the seed presets.
func DefaultPresets() []Preset {
	return []Preset{
		{ID: "1", Label: "Reading", Value: 20},
		{ID: "2", Label: "Night", Value: 5},
		{ID: "3", Label: "Max", Value: 100},
	}
}

// State is the flashlight application state.
//
// The hardware torch tracks On while Mode is not SOS; during SOS the blinker
// owns the hardware. Brightness is kept while off but only displayed while on.
type State struct {
	Brightness  int      `json:"brightness"`
	On          bool     `json:"on"`
	Mode        Mode     `json:"mode"`
	Presets     []Preset `json:"presets"`
	Battery     int      `json:"battery"`
	Temperature int      `json:"temperature"`
}

// DefaultState returns the initial state: off, standard mode, brightness 50,
// the seed presets and placeholder sensor readings.
func DefaultState() State {
	return State{
		Brightness:  DefaultBrightness,
		On:          false,
		Mode:        ModeStandard,
		Presets:     DefaultPresets(),
		Battery:     DefaultBattery,
		Temperature: DefaultTemperature,
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Presets = make([]Preset, len(s.Presets))
	copy(out.Presets, s.Presets)
	return out
}

// DisplayBrightness is the brightness shown to the user: 0 while off.
func (s State) DisplayBrightness() int {
	if !s.On {
		return 0
	}
	return s.Brightness
}

// Blinking reports whether the SOS blinker should be running.
func (s State) Blinking() bool {
	return s.On && s.Mode == ModeSOS
}

// ActivePreset returns the index of the first preset whose value equals the
// current brightness, or -1.
func (s State) ActivePreset() int {
	for i, p := range s.Presets {
		if p.Value == s.Brightness {
			return i
		}
	}
	return -1
}

// ClampBrightness limits v to [MinBrightness, MaxBrightness].
func ClampBrightness(v int) int {
	return util.Clamp(v, MinBrightness, MaxBrightness)
}
