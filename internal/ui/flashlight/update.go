// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flashlight

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/ui/components"
)

// brightnessStepFast is the step for PgUp/PgDn and shift+arrows.
const brightnessStepFast = 10

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey routes a key press. Open overlays take the key first.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.prompt.IsVisible():
		return m, m.prompt.Update(msg)

	case m.settings.IsVisible():
		return m, m.settings.Update(msg)

	case m.help.IsVisible():
		switch msg.String() {
		case "?", "esc", "q":
			m.help.Hide()
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Power):
		return m.act(m.ctrl.TogglePower())

	case key.Matches(msg, k.UpFast):
		return m.act(m.ctrl.AdjustBrightness(brightnessStepFast))

	case key.Matches(msg, k.DownFast):
		return m.act(m.ctrl.AdjustBrightness(-brightnessStepFast))

	case key.Matches(msg, k.Up):
		return m.act(m.ctrl.AdjustBrightness(1))

	case key.Matches(msg, k.Down):
		return m.act(m.ctrl.AdjustBrightness(-1))

	case key.Matches(msg, k.SOS):
		return m.act(m.ctrl.ToggleMode(flash.ModeSOS))

	case key.Matches(msg, k.Night):
		return m.act(m.ctrl.ToggleMode(flash.ModeNight))

	case key.Matches(msg, k.Auto):
		return m.act(m.ctrl.ToggleMode(flash.ModeAuto))

	case key.Matches(msg, k.Left):
		m.presets.MoveLeft()
		return m, nil

	case key.Matches(msg, k.Right):
		m.presets.MoveRight()
		return m, nil

	case key.Matches(msg, k.Apply):
		if m.presets.OnAddChip() {
			return m, m.openPrompt()
		}
		if p, ok := m.presets.SelectedPreset(); ok {
			return m.act(m.ctrl.ApplyPreset(p))
		}
		return m, nil

	case key.Matches(msg, k.AddPreset):
		return m, m.openPrompt()

	case key.Matches(msg, k.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, k.Settings):
		m.settings.Show(int(m.ctrl.AutoOff().Minutes()), m.haptic, m.ctrl.TorchInfo())
		return m, nil

	case key.Matches(msg, k.Help):
		m.help.Toggle()
		return m, nil
	}
	return m, nil
}

// act runs after a handler: it re-reads the controller state and rings the
// bell. The handler's return value is superseded by Current.
func (m *Model) act(flash.State) (tea.Model, tea.Cmd) {
	m.now = time.Now()
	m.refresh()
	return m, m.buzz()
}

// =============================================================================
// PRESETS
// =============================================================================

func (m *Model) openPrompt() tea.Cmd {
	return m.prompt.Show(m.ctrl.DefaultPresetLabel())
}

// handlePromptResult saves the preset named in the dialog. A cancelled or
// empty name leaves the presets alone.
func (m *Model) handlePromptResult(msg components.PromptResultMsg) tea.Cmd {
	if !msg.OK {
		return nil
	}
	p, ok := m.ctrl.AddPreset(msg.Label)
	if !ok {
		return nil
	}
	m.refresh()
	return tea.Batch(m.buzz(), m.addToast(components.ToastSuccess, fmt.Sprintf("Saved %s", p)))
}

func (m *Model) deleteSelected() tea.Cmd {
	p, ok := m.presets.SelectedPreset()
	if !ok {
		return nil
	}
	if !m.ctrl.DeletePreset(p.ID) {
		return nil
	}
	m.refresh()
	return tea.Batch(m.buzz(), m.addToast(components.ToastStatus, fmt.Sprintf("Deleted %s", p.Label)))
}
