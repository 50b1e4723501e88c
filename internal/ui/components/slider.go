// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// =============================================================================
// BRIGHTNESS SLIDER
// =============================================================================

// BrightnessSlider shows the big percentage and a bar. While the torch is
// off both read 0; night mode tints them red.
type BrightnessSlider struct {
	Value int
	On    bool
	Mode  flash.Mode
	Width int

	// Dark is set between SOS flashes.
	Dark bool

	bar   progress.Model
	theme *styles.Theme
}

// NewBrightnessSlider creates the slider.
func NewBrightnessSlider(theme *styles.Theme) *BrightnessSlider {
	bar := progress.New(
		progress.WithSolidFill(pickColor(theme, styles.Amber)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
	bar.Full = '█'
	bar.Empty = '░'
	bar.EmptyColor = pickColor(theme, styles.Overlay)

	return &BrightnessSlider{
		Value: flash.DefaultBrightness,
		Width: 60,
		bar:   bar,
		theme: theme,
	}
}

func pickColor(theme *styles.Theme, c lipgloss.AdaptiveColor) string {
	if theme != nil && !theme.IsDark {
		return c.Light
	}
	return c.Dark
}

// SetState copies the values the slider displays from s.
func (s *BrightnessSlider) SetState(st flash.State) {
	s.Value = st.Brightness
	s.On = st.On
	s.Mode = st.Mode
}

// SetWidth updates the available width.
func (s *BrightnessSlider) SetWidth(width int) {
	s.Width = width
}

// Displayed returns the shown value: 0 while off.
func (s *BrightnessSlider) Displayed() int {
	if !s.On {
		return 0
	}
	return s.Value
}

// View renders the slider.
func (s *BrightnessSlider) View() string {
	night := s.Mode == flash.ModeNight
	shown := s.Displayed()

	valueStyle := s.theme.BigValue.Foreground(styles.Accent(night))
	if !s.On || s.Dark {
		valueStyle = s.theme.BigValueOff
	}

	var rows []string
	if s.Width >= 24 {
		rows = append(rows, valueStyle.Render(strings.Join(bigText(fmt.Sprintf("%d%%", shown)), "\n")))
	} else {
		rows = append(rows, valueStyle.Render(fmt.Sprintf("%d%%", shown)))
	}

	caption := "BRIGHTNESS"
	if s.Mode == flash.ModeSOS && s.On {
		caption = "SOS SIGNAL ACTIVE"
	}
	rows = append(rows, s.theme.BigUnit.Render(caption), "")

	bar := s.bar
	bar.Width = s.Width - 10
	if bar.Width < 10 {
		bar.Width = 10
	}
	if night {
		bar.FullColor = pickColor(s.theme, styles.NightRed)
	}
	if !s.On {
		bar.FullColor = pickColor(s.theme, styles.OverlayDim)
	}
	line := s.theme.ShortcutDesc.Render("- ") + bar.ViewAs(float64(shown)/100) + s.theme.ShortcutDesc.Render(" +")
	rows = append(rows, line)

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
