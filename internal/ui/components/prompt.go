// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// maxLabelLength caps what the user may type for a preset name.
const maxLabelLength = 32

// PromptResultMsg carries the outcome of the dialog. OK is false when the
// user cancelled.
type PromptResultMsg struct {
	Label string
	OK    bool
}

// =============================================================================
// PROMPT DIALOG
// =============================================================================

// PromptDialog asks for a preset name. The input starts with the default
// label already filled in.
type PromptDialog struct {
	Title string

	input   textinput.Model
	visible bool
	width   int
	height  int
	theme   *styles.Theme
}

// NewPromptDialog creates a hidden dialog.
func NewPromptDialog(theme *styles.Theme) *PromptDialog {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = maxLabelLength
	ti.Width = maxLabelLength
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Amber)

	return &PromptDialog{
		Title: "Name this preset",
		input: ti,
		theme: theme,
	}
}

// Show opens the dialog with defaultLabel filled in and focused.
func (p *PromptDialog) Show(defaultLabel string) tea.Cmd {
	p.input.SetValue(defaultLabel)
	p.input.CursorEnd()
	p.visible = true
	return p.input.Focus()
}

// Hide closes the dialog without a result.
func (p *PromptDialog) Hide() {
	p.input.Blur()
	p.visible = false
}

// IsVisible reports whether the dialog is open.
func (p *PromptDialog) IsVisible() bool {
	return p.visible
}

// Value returns the current input text.
func (p *PromptDialog) Value() string {
	return p.input.Value()
}

// SetSize records the screen size used to center the box.
func (p *PromptDialog) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Update handles input while the dialog is open.
func (p *PromptDialog) Update(msg tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			label := strings.TrimSpace(p.input.Value())
			p.Hide()
			return func() tea.Msg { return PromptResultMsg{Label: label, OK: label != ""} }
		case tea.KeyEsc, tea.KeyCtrlC:
			p.Hide()
			return func() tea.Msg { return PromptResultMsg{} }
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the dialog centered on the screen, or "" when hidden.
func (p *PromptDialog) View() string {
	if !p.visible {
		return ""
	}
	t := p.theme

	content := lipgloss.JoinVertical(lipgloss.Left,
		t.OverlayTitle.Render(p.Title),
		"",
		p.input.View(),
		"",
		t.ShortcutDesc.Render("enter save  esc cancel"),
	)
	box := t.OverlayBox.Render(content)
	if p.width == 0 || p.height == 0 {
		return box
	}
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}
