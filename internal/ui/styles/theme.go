// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderHint  lipgloss.Style

	// ==========================================================================
	// STATUS READOUT STYLES
	// ==========================================================================

	Readout      lipgloss.Style
	ReadoutLabel lipgloss.Style
	ReadoutValue lipgloss.Style
	ReadoutAlert lipgloss.Style

	// ==========================================================================
	// BRIGHTNESS STYLES
	// ==========================================================================

	BigValue    lipgloss.Style
	BigValueOff lipgloss.Style
	BigUnit     lipgloss.Style
	ModeBadge   lipgloss.Style

	// ==========================================================================
	// ACTION BUTTON STYLES
	// ==========================================================================

	Button         lipgloss.Style
	ButtonSOS      lipgloss.Style
	ButtonPowerOn  lipgloss.Style
	ButtonPowerOff lipgloss.Style
	ButtonNight    lipgloss.Style
	ButtonAuto     lipgloss.Style
	ButtonCaption  lipgloss.Style

	// ==========================================================================
	// PRESET STRIP STYLES
	// ==========================================================================

	Chip         lipgloss.Style
	ChipActive   lipgloss.Style
	ChipSelected lipgloss.Style
	ChipAdd      lipgloss.Style
	ChipValue    lipgloss.Style
	ChipLabel    lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	OverlayBox    lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayLabel  lipgloss.Style
	OverlayValue  lipgloss.Style
	OverlayFooter lipgloss.Style

	// ==========================================================================
	// HELP BAR STYLES
	// ==========================================================================

	HelpBar      lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. pref is "auto",
// "dark" or "light"; auto asks the terminal.
func NewTheme(pref string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(pref) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// Accent returns the brightness accent color: amber normally, red in
// night mode.
func Accent(night bool) lipgloss.AdaptiveColor {
	if night {
		return NightRed
	}
	return Amber
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status readouts
	t.Readout = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.ReadoutLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ReadoutValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.ReadoutAlert = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Brightness
	t.BigValue = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.BigValueOff = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	t.BigUnit = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ModeBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	// Action buttons
	t.Button = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Foreground(TextSecondary).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.ButtonSOS = t.Button.
		BorderForeground(Rose).
		Foreground(Rose).
		Bold(true)

	t.ButtonPowerOn = t.Button.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Emerald).
		Foreground(Emerald).
		Bold(true)

	t.ButtonPowerOff = t.Button.
		BorderStyle(lipgloss.ThickBorder())

	t.ButtonNight = t.Button.
		BorderForeground(NightRed).
		Foreground(NightRed).
		Bold(true)

	t.ButtonAuto = t.Button.
		BorderForeground(Purple).
		Foreground(Purple).
		Bold(true)

	t.ButtonCaption = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Center)

	// Preset strip
	t.Chip = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		Align(lipgloss.Center)

	t.ChipActive = t.Chip.
		BorderForeground(Amber)

	t.ChipSelected = t.Chip.
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Cyan)

	t.ChipAdd = t.Chip.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(OverlayDim).
		Foreground(TextMuted)

	t.ChipValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.ChipLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Overlays
	t.OverlayBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(1, 3)

	t.OverlayTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.OverlayLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.OverlayValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.OverlayFooter = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Help bar
	t.HelpBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Accessibility
	t.SuccessStyle = lipgloss.NewStyle().Foreground(SuccessHighContrast).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(ErrorHighContrast).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(WarningHighContrast).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(InfoHighContrast).Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 48 {
		return LayoutNarrow
	}
	if t.Width < 80 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 48 columns
	LayoutMedium                   // 48-80 columns
	LayoutWide                     // >= 80 columns
)
