// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the smartflash TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The theme preference from the config ("auto", "dark", "light")
can force one side.

# Color System (colors.go)

  - Amber - Brand color, lit torch and the brightness readout
  - Rose - SOS, low battery and high temperature
  - NightRed - Night mode tint, replaces amber while night mode is active
  - Emerald - Power button while the torch is on
  - Purple - AUTO mode and the active preset badge
  - Cyan - Key hints and the preset selection cursor

# Theme (theme.go)

Theme groups every lipgloss.Style the views use: header, status readouts,
brightness display, action buttons, preset chips, overlays and the help bar.

	theme := styles.NewTheme(cfg.UI.Theme)
	theme.SetSize(width, height)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
	    // stack buttons vertically
	}

# Accessibility

StatusIndicators pairs every color-coded state with an ASCII shape so the
low battery and hot readouts stay readable without color.
*/
package styles
