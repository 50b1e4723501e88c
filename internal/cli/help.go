// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - The help command.
package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# smartflash

Terminal flashlight controller. Run without a command to open the
flashlight screen.

## Commands

| Command | Description |
|---|---|
| ` + "`on [--level N]`" + ` | Switch the torch on |
| ` + "`off`" + ` | Switch the torch off |
| ` + "`set <level>`" + ` | Set brightness (1-100) and switch on |
| ` + "`sos [--duration D]`" + ` | Blink SOS until Ctrl-C or the duration ends |
| ` + "`mode <name>`" + ` | standard, sos, auto or night |
| ` + "`presets`" + ` | List presets |
| ` + "`preset <id or label>`" + ` | Apply a preset |
| ` + "`status`" + ` | Torch, state and sensors |
| ` + "`shell`" + ` | Interactive prompt with history |
| ` + "`config <show, path, init, get, set, keys>`" + ` | Configuration |
| ` + "`version`" + ` | Version information |

## Flags

| Flag | Description |
|---|---|
| ` + "`--json`" + ` | Machine-readable output |
| ` + "`--simulate`" + ` | Use the simulated torch |
| ` + "`--driver NAME`" + ` | auto, sysfs, simulated or none |
| ` + "`--led NAME`" + ` | sysfs LED name |
| ` + "`--config PATH`" + ` | Config file (TOML, or .json) |
| ` + "`-q`, `--quiet`" + ` | Suppress warnings |
| ` + "`-v`, `--verbose`" + ` | Verbose logging |

## Exit codes

| Code | Meaning |
|---|---|
| 0 | Success |
| 1 | General error, or the torch rejected the change |
| 2 | Usage error |
| 3 | Configuration error |
| 4 | Torch not writable |
| 5 | No usable torch |
| 7 | Preset not found |
`

// runHelp renders the help page with glamour on a terminal and prints the
// plain usage text otherwise.
func (a *App) runHelp() error {
	if !ColorsEnabled() {
		PrintUsage(a.Out)
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()-2),
	)
	if err != nil {
		PrintUsage(a.Out)
		return nil
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		PrintUsage(a.Out)
		return nil
	}
	fmt.Fprint(a.Out, out)
	fmt.Fprintf(a.Out, "  %s\n", DimStyle.Render("Version "+Version))
	return nil
}
