// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/torch"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// AutoOffSteps are the auto-off values (minutes) cycled by left/right.
// Zero disables the timer.
var AutoOffSteps = []int{0, 1, 5, 10, 15, 30, 60}

const (
	settingAutoOff = iota
	settingHaptic
	settingCount
)

// =============================================================================
// MESSAGES
// =============================================================================

// SettingsChangedMsg is sent when the user changes a value in the overlay.
type SettingsChangedMsg struct {
	AutoOffMinutes int
	Haptic         bool
}

// SettingsClosedMsg is sent when the overlay is dismissed.
type SettingsClosedMsg struct{}

// =============================================================================
// SETTINGS OVERLAY
// =============================================================================

// SettingsOverlay is the modal opened with ",". It edits the auto-off timer
// and haptic feedback and shows the torch driver and version.
type SettingsOverlay struct {
	AutoOffMinutes int
	Haptic         bool
	TorchInfo      torch.Info
	Version        string

	cursor  int
	visible bool
	width   int
	height  int
	theme   *styles.Theme
}

// NewSettingsOverlay creates a hidden overlay.
func NewSettingsOverlay(theme *styles.Theme, version string) *SettingsOverlay {
	return &SettingsOverlay{Version: version, theme: theme}
}

// Show opens the overlay with the current values.
func (s *SettingsOverlay) Show(autoOffMinutes int, haptic bool, info torch.Info) {
	s.AutoOffMinutes = autoOffMinutes
	s.Haptic = haptic
	s.TorchInfo = info
	s.cursor = 0
	s.visible = true
}

// Hide closes the overlay.
func (s *SettingsOverlay) Hide() {
	s.visible = false
}

// IsVisible reports whether the overlay is open.
func (s *SettingsOverlay) IsVisible() bool {
	return s.visible
}

// SetSize records the screen size used to center the box.
func (s *SettingsOverlay) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// stepAutoOff moves to the next (dir > 0) or previous auto-off step. A value
// that is not one of the steps snaps to the nearest step in that direction.
func stepAutoOff(current, dir int) int {
	if dir > 0 {
		for _, v := range AutoOffSteps {
			if v > current {
				return v
			}
		}
		return AutoOffSteps[len(AutoOffSteps)-1]
	}
	for i := len(AutoOffSteps) - 1; i >= 0; i-- {
		if AutoOffSteps[i] < current {
			return AutoOffSteps[i]
		}
	}
	return AutoOffSteps[0]
}

func (s *SettingsOverlay) changed() tea.Cmd {
	msg := SettingsChangedMsg{AutoOffMinutes: s.AutoOffMinutes, Haptic: s.Haptic}
	return func() tea.Msg { return msg }
}

// Update handles a key while the overlay is open.
func (s *SettingsOverlay) Update(msg tea.Msg) tea.Cmd {
	if !s.visible {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "esc", ",", "q":
		s.visible = false
		return func() tea.Msg { return SettingsClosedMsg{} }
	case "up", "k":
		s.cursor = (s.cursor + settingCount - 1) % settingCount
	case "down", "j", "tab":
		s.cursor = (s.cursor + 1) % settingCount
	case "left", "h", "-":
		return s.adjust(-1)
	case "right", "l", "+", "=":
		return s.adjust(1)
	case "enter", " ":
		if s.cursor == settingHaptic {
			return s.adjust(1)
		}
	}
	return nil
}

func (s *SettingsOverlay) adjust(dir int) tea.Cmd {
	switch s.cursor {
	case settingAutoOff:
		next := stepAutoOff(s.AutoOffMinutes, dir)
		if next == s.AutoOffMinutes {
			return nil
		}
		s.AutoOffMinutes = next
	case settingHaptic:
		s.Haptic = !s.Haptic
	}
	return s.changed()
}

func (s *SettingsOverlay) row(index int, label, value string) string {
	t := s.theme
	marker := "  "
	if s.cursor == index {
		marker = t.ShortcutKey.Render("> ")
	}
	return marker + t.OverlayLabel.Width(16).Render(label) + t.OverlayValue.Render(value)
}

// View renders the overlay centered on the screen, or "" when hidden.
func (s *SettingsOverlay) View() string {
	if !s.visible {
		return ""
	}
	t := s.theme

	autoOff := "off"
	if s.AutoOffMinutes > 0 {
		autoOff = fmt.Sprintf("%d min", s.AutoOffMinutes)
	}
	haptic := "off"
	if s.Haptic {
		haptic = "on"
	}

	var b strings.Builder
	b.WriteString(t.OverlayTitle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(s.row(settingAutoOff, "Auto-off Timer", "< "+autoOff+" >"))
	b.WriteString("\n")
	b.WriteString(s.row(settingHaptic, "Haptic Feedback", haptic))
	b.WriteString("\n\n")
	b.WriteString("  " + t.OverlayLabel.Width(16).Render("Torch") + t.ShortcutDesc.Render(s.TorchInfo.String()))
	b.WriteString("\n\n")
	b.WriteString(t.OverlayFooter.Render("Smart Flash Control v" + s.Version))
	b.WriteString("\n")
	b.WriteString(t.ShortcutDesc.Render("up/down select  left/right change  esc close"))

	box := t.OverlayBox.Render(b.String())
	if s.width == 0 || s.height == 0 {
		return box
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}
