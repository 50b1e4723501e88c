// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: brand on the left, mode badge and settings hint
// on the right.
type Header struct {
	Title string
	Mode  flash.Mode
	Width int
	theme *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "Smart Flash",
		Mode:  flash.ModeStandard,
		Width: 60,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetMode updates the mode badge.
func (h *Header) SetMode(mode flash.Mode) {
	h.Mode = mode
}

// View renders the header.
func (h *Header) View() string {
	night := h.Mode == flash.ModeNight

	brand := h.theme.HeaderBrand.Foreground(styles.Accent(night)).Render("* " + h.Title)

	var right []string
	if h.Mode != flash.ModeStandard {
		badge := h.theme.ModeBadge
		switch h.Mode {
		case flash.ModeSOS:
			badge = badge.Background(styles.Rose)
		case flash.ModeNight:
			badge = badge.Background(styles.NightRed)
		}
		right = append(right, badge.Render(h.Mode.Label()))
	}
	right = append(right, h.theme.HeaderHint.Render("[,] settings"))
	rightStr := strings.Join(right, " ")

	inner := h.Width - 2
	gap := inner - lipgloss.Width(brand) - lipgloss.Width(rightStr)
	if gap < 1 {
		// Too narrow for both; the brand wins.
		return h.theme.Header.Width(h.Width).Render(brand)
	}
	line := brand + strings.Repeat(" ", gap) + rightStr
	return h.theme.Header.Width(h.Width).Render(line)
}
