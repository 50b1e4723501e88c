// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// =============================================================================
// HELP BAR
// =============================================================================

// HelpBar renders the one-line shortcut strip at the bottom of the screen.
func HelpBar(theme *styles.Theme, bindings []key.Binding, width int) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, theme.ShortcutKey.Render(h.Key)+" "+theme.ShortcutDesc.Render(h.Desc))
	}
	line := strings.Join(parts, theme.ShortcutDesc.Render("  "))
	return theme.HelpBar.Width(width).Render(line)
}

// =============================================================================
// HELP PANEL
// =============================================================================

// HelpMarkdown builds the key reference as a markdown document, one table
// per binding group.
func HelpMarkdown(groups [][]key.Binding, titles []string) string {
	var b strings.Builder
	b.WriteString("# Smart Flash keys\n\n")
	for i, group := range groups {
		if i < len(titles) {
			fmt.Fprintf(&b, "## %s\n\n", titles[i])
		}
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HelpPanel is the full key reference toggled with "?". The markdown is
// rendered with glamour and cached per width.
type HelpPanel struct {
	markdown string
	rendered string
	wrap     int
	visible  bool
	width    int
	height   int
	theme    *styles.Theme
}

// NewHelpPanel creates a hidden panel for the given markdown.
func NewHelpPanel(theme *styles.Theme, markdown string) *HelpPanel {
	return &HelpPanel{markdown: markdown, theme: theme}
}

// Toggle shows or hides the panel.
func (h *HelpPanel) Toggle() {
	h.visible = !h.visible
}

// Hide closes the panel.
func (h *HelpPanel) Hide() {
	h.visible = false
}

// IsVisible reports whether the panel is open.
func (h *HelpPanel) IsVisible() bool {
	return h.visible
}

// SetSize records the screen size.
func (h *HelpPanel) SetSize(width, height int) {
	h.width = width
	h.height = height
}

func (h *HelpPanel) render() string {
	wrap := 80
	if h.width > 0 && h.width-8 < wrap {
		wrap = h.width - 8
	}
	if wrap < 20 {
		wrap = 20
	}
	if h.rendered != "" && h.wrap == wrap {
		return h.rendered
	}

	h.wrap = wrap
	h.rendered = h.markdown
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return h.rendered
	}
	if out, err := renderer.Render(h.markdown); err == nil {
		h.rendered = strings.Trim(out, "\n")
	}
	return h.rendered
}

// View renders the panel centered on the screen, or "" when hidden.
func (h *HelpPanel) View() string {
	if !h.visible {
		return ""
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		h.render(),
		h.theme.ShortcutDesc.Render("press ? or esc to close"),
	)
	box := h.theme.OverlayBox.Render(content)
	if h.width == 0 || h.height == 0 {
		return box
	}
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}
