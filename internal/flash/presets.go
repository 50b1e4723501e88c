// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/smartflash-tui/internal/util"
)

// =============================================================================
// PRESET STORE
// =============================================================================

// Prompter asks the user for a preset label.
type Prompter interface {
	// PromptLabel shows defaultLabel pre-filled and returns the entered text.
	// ok is false when the user cancelled.
	PromptLabel(defaultLabel string) (label string, ok bool)
}

// newPresetID returns a time-ordered unique ID.
func newPresetID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// DefaultPresetLabel returns the label suggested for a new preset,
// "Level <brightness>%".
func (c *Controller) DefaultPresetLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("Level %d%%", c.state.Brightness)
}

// AddPreset appends a preset with the given label and the current
// brightness. An empty or whitespace-only label leaves the list unchanged
// and returns false.
func (c *Controller) AddPreset(label string) (Preset, bool) {
	label = util.NormalizeLabel(label)
	if label == "" {
		return Preset{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Preset{}, false
	}

	p := Preset{ID: newPresetID(), Label: label, Value: c.state.Brightness}
	c.state.Presets = append(c.state.Presets, p)
	c.emitStateLocked(EventState)
	return p, true
}

// AddPresetPrompt asks p for a label (defaulting to DefaultPresetLabel) and
// adds the preset. Cancel or empty input leaves the list unchanged.
func (c *Controller) AddPresetPrompt(p Prompter) (Preset, bool) {
	label, ok := p.PromptLabel(c.DefaultPresetLabel())
	if !ok {
		return Preset{}, false
	}
	return c.AddPreset(label)
}

// DeletePreset removes the preset with the given ID. It returns false, and
// changes nothing, when no preset matches.
func (c *Controller) DeletePreset(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	for i, p := range c.state.Presets {
		if p.ID == id {
			c.state.Presets = append(c.state.Presets[:i:i], c.state.Presets[i+1:]...)
			c.emitStateLocked(EventState)
			return true
		}
	}
	return false
}

// FindPreset looks a preset up by ID, then by case-insensitive label.
func (c *Controller) FindPreset(idOrLabel string) (Preset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return findPreset(c.state.Presets, idOrLabel)
}

func findPreset(presets []Preset, idOrLabel string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == idOrLabel {
			return p, true
		}
	}
	want := util.NormalizeLabel(idOrLabel)
	for _, p := range presets {
		if strings.EqualFold(p.Label, want) {
			return p, true
		}
	}
	return Preset{}, false
}

// Presets returns a copy of the preset list.
func (c *Controller) Presets() []Preset {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Preset, len(c.state.Presets))
	copy(out, c.state.Presets)
	return out
}
