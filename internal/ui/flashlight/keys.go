// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flashlight

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the flashlight screen.
type KeyMap struct {
	Power     key.Binding
	Up        key.Binding
	Down      key.Binding
	UpFast    key.Binding
	DownFast  key.Binding
	SOS       key.Binding
	Night     key.Binding
	Auto      key.Binding
	Left      key.Binding
	Right     key.Binding
	Apply     key.Binding
	AddPreset key.Binding
	Delete    key.Binding
	Settings  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Power: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "power"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "+", "=", "k"),
			key.WithHelp("up/+", "brighter"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "-", "j"),
			key.WithHelp("down/-", "dimmer"),
		),
		UpFast: key.NewBinding(
			key.WithKeys("shift+up", "pgup"),
			key.WithHelp("PgUp", "brighter +10"),
		),
		DownFast: key.NewBinding(
			key.WithKeys("shift+down", "pgdown"),
			key.WithHelp("PgDn", "dimmer -10"),
		),
		SOS: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "SOS"),
		),
		Night: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "night"),
		),
		Auto: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left", "previous preset"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right", "next preset"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply preset"),
		),
		AddPreset: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "save preset"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x/Del", "delete preset"),
		),
		Settings: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Power, k.Up, k.Down, k.SOS, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help panel, grouped as in
// FullHelpTitles.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Power, k.Up, k.Down, k.UpFast, k.DownFast},
		{k.SOS, k.Night, k.Auto},
		{k.Left, k.Right, k.Apply, k.AddPreset, k.Delete},
		{k.Settings, k.Help, k.Quit},
	}
}

// FullHelpTitles names the FullHelp groups.
var FullHelpTitles = []string{"Light", "Modes", "Presets", "General"}
