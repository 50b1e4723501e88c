// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flashlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the screen. Overlays replace the main screen while open.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch {
	case m.prompt.IsVisible():
		return m.prompt.View()
	case m.settings.IsVisible():
		return m.settings.View()
	case m.help.IsVisible():
		return m.help.View()
	}

	inner := contentWidth(m.width)
	sections := []string{
		m.header.View(),
		"",
		m.readouts.View(),
		"",
		m.slider.View(),
		"",
		m.buttons.View(),
		"",
		m.presets.View(),
	}
	if status := m.statusLine(); status != "" {
		sections = append(sections, "", status)
	}
	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		stack := components.RenderToastStack(toasts, inner, 0)
		sections = append(sections, "", lipgloss.PlaceHorizontal(inner, lipgloss.Right, stack))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, sections...)

	var footer string
	if m.showHelpBar {
		footer = components.HelpBar(m.theme, m.keys.ShortHelp(), m.width)
	}
	bodyHeight := m.height - lipgloss.Height(footer)
	if footer == "" {
		bodyHeight = m.height
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	screen := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Top, body)
	if footer == "" {
		return screen
	}
	return lipgloss.JoinVertical(lipgloss.Left, screen, footer)
}

// statusLine shows the auto-off countdown while a timer is armed.
func (m *Model) statusLine() string {
	at, armed := m.ctrl.AutoOffDeadline()
	if !armed {
		return ""
	}
	return m.theme.ShortcutDesc.Render("auto-off in ") +
		m.theme.ShortcutKey.Render(components.CountdownLabel(at.Sub(m.now)))
}
