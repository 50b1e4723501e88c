// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// =============================================================================
// ACTION BUTTONS
// =============================================================================

// ActionButtons is the SOS / POWER / NIGHT / AUTO row. Each button shows its
// key underneath and lights up while its mode (or power) is active.
type ActionButtons struct {
	On    bool
	Mode  flash.Mode
	Width int
	theme *styles.Theme
}

// NewActionButtons creates the button row.
func NewActionButtons(theme *styles.Theme) *ActionButtons {
	return &ActionButtons{Width: 60, theme: theme}
}

// SetState copies power and mode from st.
func (b *ActionButtons) SetState(st flash.State) {
	b.On = st.On
	b.Mode = st.Mode
}

// SetWidth updates the available width.
func (b *ActionButtons) SetWidth(width int) {
	b.Width = width
}

func (b *ActionButtons) button(label, keyHint string, style lipgloss.Style, width int) string {
	if width < 11 {
		style = style.Padding(0)
	}
	btn := style.Width(width).Render(label)
	caption := b.theme.ButtonCaption.Width(width + 2).Render(keyHint)
	return lipgloss.JoinVertical(lipgloss.Center, btn, caption)
}

// View renders the row.
func (b *ActionButtons) View() string {
	t := b.theme

	sos := t.Button
	if b.Mode == flash.ModeSOS {
		sos = t.ButtonSOS
	}
	night := t.Button
	if b.Mode == flash.ModeNight {
		night = t.ButtonNight
	}
	auto := t.Button
	if b.Mode == flash.ModeAuto {
		auto = t.ButtonAuto
	}
	power := t.ButtonPowerOff
	powerLabel := "POWER OFF"
	if b.On {
		power = t.ButtonPowerOn
		powerLabel = "POWER ON"
		if b.Mode == flash.ModeNight {
			power = power.BorderForeground(styles.NightRed).Foreground(styles.NightRed)
		}
	}

	// Narrow terminals get compact labels.
	width := (b.Width - 16) / 4
	if width < 5 {
		width = 5
	}
	if width < 11 {
		powerLabel = "PWR"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		b.button("SOS", "s", sos, width), " ",
		b.button(powerLabel, "space", power, width), " ",
		b.button("NIGHT", "n", night, width), " ",
		b.button("AUTO", "a", auto, width),
	)
}
