// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"encoding/json"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"standard", ModeStandard, false},
		{"SOS", ModeSOS, false},
		{" auto ", ModeAuto, false},
		{"Night", ModeNight, false},
		{"normal", ModeStandard, false},
		{"strobe", ModeStandard, true},
		{"", ModeStandard, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestModeStrings(t *testing.T) {
	tests := []struct {
		mode  Mode
		str   string
		label string
	}{
		{ModeStandard, "standard", "STANDARD"},
		{ModeSOS, "sos", "SOS"},
		{ModeAuto, "auto", "AUTO"},
		{ModeNight, "night", "NIGHT"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.mode.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
	}
	if got := Mode(42).String(); got != "mode(42)" {
		t.Errorf("String() = %q, want %q", got, "mode(42)")
	}
}

func TestStateJSON(t *testing.T) {
	s := DefaultState()
	s.Mode = ModeNight
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded State
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Mode != ModeNight {
		t.Errorf("Mode = %v, want night", decoded.Mode)
	}
	if len(decoded.Presets) != 3 {
		t.Errorf("len(Presets) = %d, want 3", len(decoded.Presets))
	}
}

func TestDisplayBrightness(t *testing.T) {
	s := DefaultState()
	if got := s.DisplayBrightness(); got != 0 {
		t.Errorf("DisplayBrightness() while off = %d, want 0", got)
	}
	s.On = true
	if got := s.DisplayBrightness(); got != 50 {
		t.Errorf("DisplayBrightness() while on = %d, want 50", got)
	}
}
