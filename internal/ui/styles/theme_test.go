// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme_Preference(t *testing.T) {
	if theme := NewTheme("dark"); !theme.IsDark {
		t.Error("NewTheme(\"dark\").IsDark = false, want true")
	}
	if theme := NewTheme("LIGHT"); theme.IsDark {
		t.Error("NewTheme(\"LIGHT\").IsDark = true, want false")
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme("dark")

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"Readout", theme.Readout},
		{"BigValue", theme.BigValue},
		{"Button", theme.Button},
		{"ButtonSOS", theme.ButtonSOS},
		{"ButtonPowerOn", theme.ButtonPowerOn},
		{"Chip", theme.Chip},
		{"ChipSelected", theme.ChipSelected},
		{"OverlayBox", theme.OverlayBox},
		{"HelpBar", theme.HelpBar},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); !strings.Contains(rendered, "test") {
			t.Errorf("%s style lost its content: %q", s.name, rendered)
		}
	}
}

func TestButtonsHaveBorders(t *testing.T) {
	theme := NewTheme("dark")
	for name, style := range map[string]lipgloss.Style{
		"Button":    theme.Button,
		"ButtonSOS": theme.ButtonSOS,
		"Chip":      theme.Chip,
	} {
		if h := lipgloss.Height(style.Render("x")); h != 3 {
			t.Errorf("%s height = %d, want 3 (bordered)", name, h)
		}
	}
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{30, LayoutNarrow},
		{47, LayoutNarrow},
		{48, LayoutMedium},
		{79, LayoutMedium},
		{80, LayoutWide},
		{200, LayoutWide},
	}
	theme := NewTheme("dark")
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// COLOR TESTS
// =============================================================================

func TestAccent(t *testing.T) {
	if Accent(false) != Amber {
		t.Error("Accent(false) should be Amber")
	}
	if Accent(true) != NightRed {
		t.Error("Accent(true) should be NightRed")
	}
}

func TestAdaptiveColorsHaveBothSides(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"Amber": Amber, "Cyan": Cyan, "Purple": Purple, "Emerald": Emerald,
		"Rose": Rose, "NightRed": NightRed, "Surface": Surface,
		"TextPrimary": TextPrimary, "TextMuted": TextMuted,
	}
	for name, c := range colors {
		if !strings.HasPrefix(c.Light, "#") || !strings.HasPrefix(c.Dark, "#") {
			t.Errorf("%s should define hex Light and Dark values, got %+v", name, c)
		}
	}
}

func TestRenderStatus(t *testing.T) {
	if got := RenderStatus(true, "done"); !strings.Contains(got, StatusIndicators.Success) {
		t.Errorf("RenderStatus(true) = %q, missing success indicator", got)
	}
	if got := RenderStatus(false, "failed"); !strings.Contains(got, StatusIndicators.Error) {
		t.Errorf("RenderStatus(false) = %q, missing error indicator", got)
	}
	if got := RenderWarning("low"); !strings.Contains(got, "[!] low") {
		t.Errorf("RenderWarning() = %q", got)
	}
	if got := RenderInfo("note"); !strings.Contains(got, "[i] note") {
		t.Errorf("RenderInfo() = %q", got)
	}
}
