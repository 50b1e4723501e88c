// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for CLI output.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")). // Amber
			MarginBottom(1)

	// SectionStyle is used for section headers
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(1)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// SuccessStyle is used for OK statuses and "on"
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// ErrorStyle is used for errors
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// WarningStyle is used for low battery, hot and unavailable torch
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("204")) // Rose

	// DimStyle is used for hints and "off"
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	// AmberStyle highlights brightness and active presets
	AmberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	// NightStyle renders the night mode name
	NightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160"))

	// PromptStyle renders the shell prompt
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// =============================================================================
// RENDER HELPERS
// =============================================================================

// RenderLabel renders "label  value" with the label padded.
func RenderLabel(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// RenderPower renders ON or OFF.
func RenderPower(on bool) string {
	if on {
		return SuccessStyle.Render("ON")
	}
	return DimStyle.Render("OFF")
}

// RenderLevel renders a brightness percentage.
func RenderLevel(level int) string {
	return AmberStyle.Render(fmt.Sprintf("%d%%", level))
}

// RenderBar renders a text brightness bar of width cells.
func RenderBar(level, width int) string {
	if width <= 0 {
		return ""
	}
	filled := level * width / 100
	if level > 0 && filled == 0 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	return AmberStyle.Render(strings.Repeat("█", filled)) +
		DimStyle.Render(strings.Repeat("░", width-filled))
}
