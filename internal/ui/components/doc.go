// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the smartflash TUI.

Each component holds only what it needs to draw and is refreshed from a
flash.State snapshot by the flashlight model. Components never talk to the
controller directly.

# Display Components

Header (header.go) - Brand, mode badge and settings hint.
StatusReadouts (readouts.go) - Battery and temperature boxes with low/hot alerts.
BrightnessSlider (slider.go) - Large percentage readout and a bubbles/progress bar.
ActionButtons (buttons.go) - SOS, POWER, NIGHT and AUTO with their keys.
PresetStrip (presets.go) - Add chip plus one chip per preset, with a cursor.

# Overlays

SettingsOverlay (settings.go) - Auto-off timer, haptic feedback, torch info.
PromptDialog (prompt.go) - Preset name input built on bubbles/textinput.
HelpPanel (help.go) - Key reference rendered with glamour.
Toasts (toast.go) - Short corner notices that expire on their own.

# Usage

	theme := styles.NewTheme("auto")
	slider := components.NewBrightnessSlider(theme)
	slider.SetWidth(60)
	slider.SetState(ctrl.Snapshot())
	view := slider.View()
*/
package components
