// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
	"github.com/jeranaias/smartflash-tui/internal/util"
)

// chipLabelWidth is the column budget for a preset label inside a chip.
const chipLabelWidth = 8

// =============================================================================
// PRESET STRIP
// =============================================================================

// PresetStrip is the "+" chip followed by one chip per preset. The chip
// whose value equals the brightness is highlighted; Selected is the keyboard
// cursor, where 0 is the add chip and i+1 is Presets[i].
type PresetStrip struct {
	Presets    []flash.Preset
	Brightness int
	Selected   int
	Width      int
	theme      *styles.Theme
}

// NewPresetStrip creates an empty strip.
func NewPresetStrip(theme *styles.Theme) *PresetStrip {
	return &PresetStrip{Width: 60, theme: theme}
}

// SetState copies presets and brightness from st and keeps the cursor in range.
func (p *PresetStrip) SetState(st flash.State) {
	p.Presets = st.Presets
	p.Brightness = st.Brightness
	p.clampSelection()
}

// SetWidth updates the available width.
func (p *PresetStrip) SetWidth(width int) {
	p.Width = width
}

func (p *PresetStrip) clampSelection() {
	p.Selected = util.Clamp(p.Selected, 0, len(p.Presets))
}

// MoveLeft moves the cursor one chip left.
func (p *PresetStrip) MoveLeft() {
	p.Selected--
	p.clampSelection()
}

// MoveRight moves the cursor one chip right.
func (p *PresetStrip) MoveRight() {
	p.Selected++
	p.clampSelection()
}

// OnAddChip reports whether the cursor is on the add chip.
func (p *PresetStrip) OnAddChip() bool {
	return p.Selected == 0
}

// SelectedPreset returns the preset under the cursor.
func (p *PresetStrip) SelectedPreset() (flash.Preset, bool) {
	if p.Selected < 1 || p.Selected > len(p.Presets) {
		return flash.Preset{}, false
	}
	return p.Presets[p.Selected-1], true
}

func (p *PresetStrip) chip(i int) string {
	t := p.theme
	if i == 0 {
		style := t.ChipAdd
		if p.Selected == 0 {
			style = t.ChipSelected.Foreground(styles.Cyan)
		}
		return style.Render("+\nadd")
	}

	preset := p.Presets[i-1]
	style := t.Chip
	if preset.Value == p.Brightness {
		style = t.ChipActive
	}
	if p.Selected == i {
		style = t.ChipSelected
	}
	value := t.ChipValue.Render(fmt.Sprintf("%d%%", preset.Value))
	label := t.ChipLabel.Render(util.TruncateWidth(preset.Label, chipLabelWidth))
	return style.Width(chipLabelWidth + 2).Render(value + "\n" + label)
}

// visibleRange returns the chip window [start, end) that fits the width
// and contains the cursor.
func (p *PresetStrip) visibleRange() (int, int) {
	total := len(p.Presets) + 1
	chipWidth := chipLabelWidth + 4 + 1 // content + padding/border + gap
	fit := p.Width / chipWidth
	if fit < 1 {
		fit = 1
	}
	if total <= fit {
		return 0, total
	}
	start := p.Selected - fit/2
	start = util.Clamp(start, 0, total-fit)
	return start, start + fit
}

// View renders the strip.
func (p *PresetStrip) View() string {
	start, end := p.visibleRange()

	var chips []string
	if start > 0 {
		chips = append(chips, p.theme.ShortcutDesc.Render("\n<"))
	}
	for i := start; i < end; i++ {
		if len(chips) > 0 {
			chips = append(chips, " ")
		}
		chips = append(chips, p.chip(i))
	}
	if end < len(p.Presets)+1 {
		chips = append(chips, p.theme.ShortcutDesc.Render("\n>"))
	}

	title := p.theme.ReadoutLabel.Render("QUICK PRESETS")
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, chips...))
}
