// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/sensors"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// =============================================================================
// STATUS READOUTS
// =============================================================================

// StatusReadouts shows battery and temperature side by side. Low battery and
// high temperature are drawn in rose with a warning marker.
type StatusReadouts struct {
	Reading sensors.Reading
	Width   int
	theme   *styles.Theme
}

// NewStatusReadouts creates the readouts with placeholder values.
func NewStatusReadouts(theme *styles.Theme) *StatusReadouts {
	return &StatusReadouts{
		Reading: sensors.Reading{Battery: 85, Temperature: 32},
		Width:   60,
		theme:   theme,
	}
}

// SetReading updates both values.
func (r *StatusReadouts) SetReading(battery, temperature int) {
	r.Reading = sensors.Reading{Battery: battery, Temperature: temperature}
}

// SetWidth updates the available width.
func (r *StatusReadouts) SetWidth(width int) {
	r.Width = width
}

func (r *StatusReadouts) box(label, value string, alert bool) string {
	valueStyle := r.theme.ReadoutValue
	if alert {
		valueStyle = r.theme.ReadoutAlert
		value = styles.StatusIndicators.Warning + " " + value
	}
	boxWidth := (r.Width - 4) / 2
	if boxWidth < 14 {
		boxWidth = 14
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		r.theme.ReadoutLabel.Render(label),
		valueStyle.Render(value),
	)
	style := r.theme.Readout.Width(boxWidth - 2)
	if alert {
		style = style.BorderForeground(styles.Rose)
	}
	return style.Render(content)
}

// View renders the readouts.
func (r *StatusReadouts) View() string {
	battery := r.box("BATTERY", fmt.Sprintf("%d%%", r.Reading.Battery), r.Reading.LowBattery())
	temp := r.box("TEMP", fmt.Sprintf("%d°C", r.Reading.Temperature), r.Reading.Hot())
	return lipgloss.JoinHorizontal(lipgloss.Top, battery, "  ", temp)
}
