// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing for smartflash.
package cli

import (
	"fmt"
	"io"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdOn
	CmdOff
	CmdSet
	CmdSOS
	CmdMode
	CmdPresets
	CmdPreset
	CmdStatus
	CmdShell
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:     "tui",
	CmdOn:      "on",
	CmdOff:     "off",
	CmdSet:     "set",
	CmdSOS:     "sos",
	CmdMode:    "mode",
	CmdPresets: "presets",
	CmdPreset:  "preset",
	CmdStatus:  "status",
	CmdShell:   "shell",
	CmdConfig:  "config",
	CmdVersion: "version",
	CmdHelp:    "help",
}

// String returns the command name as typed on the command line.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON       bool   // Output in JSON format
	Simulate   bool   // Use the simulated torch
	Quiet      bool   // Discard log output
	Verbose    bool   // Log with file:line
	Driver     string // Torch driver override
	LED        string // sysfs LED name override
	ConfigPath string // Explicit config file

	// Raw holds the arguments after the command name.
	Raw []string
}

const usageText = `smartflash - terminal flashlight controller

USAGE:
  smartflash [flags] [command] [args]

COMMANDS:
  (none), tui             Open the flashlight screen
  on [--level N]          Switch the torch on
  off                     Switch the torch off
  set <level>             Set brightness (1-100) and switch on
  sos [--duration D]      Blink SOS until Ctrl-C or the duration ends
  mode <name>             Select standard, sos, auto or night
  presets                 List presets
  preset <id|label>       Apply a preset
  status                  Show torch, state and sensors
  shell                   Interactive prompt with history
  config [show|path|init|get|set]
                          Inspect or edit the configuration
  version                 Show version information
  help                    Show this help

FLAGS:
  --json                  Machine-readable output
  --simulate              Use the simulated torch
  --driver NAME           Torch driver: auto, sysfs, simulated, none
  --led NAME              sysfs LED name (e.g. white:flash)
  --config PATH           Config file (TOML or .json)
  -q, --quiet             Suppress warnings
  -v, --verbose           Verbose logging

EXAMPLES:
  smartflash on --level 80
  smartflash sos --duration 2m
  smartflash --simulate shell
  smartflash config set flash.auto_off_minutes 15

Version: %s
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "smartflash version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args. An unknown command is a usage error.
func Parse(argv []string) (Command, Args, error) {
	remaining, parsedArgs, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, parsedArgs, err
	}

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs, nil
	}

	cmd := strings.ToLower(remaining[0])
	parsedArgs.Raw = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs, nil
	case "on":
		return CmdOn, parsedArgs, nil
	case "off":
		return CmdOff, parsedArgs, nil
	case "set", "level":
		return CmdSet, parsedArgs, nil
	case "sos":
		return CmdSOS, parsedArgs, nil
	case "mode":
		return CmdMode, parsedArgs, nil
	case "presets":
		return CmdPresets, parsedArgs, nil
	case "preset":
		return CmdPreset, parsedArgs, nil
	case "status", "s":
		return CmdStatus, parsedArgs, nil
	case "shell", "repl":
		return CmdShell, parsedArgs, nil
	case "config":
		return CmdConfig, parsedArgs, nil
	case "version", "--version":
		return CmdVersion, parsedArgs, nil
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs, nil
	default:
		return CmdHelp, parsedArgs, NewUsageError("unknown command: %s (run 'smartflash help')", cmd)
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Global flags may appear anywhere on the line.
func parseGlobalFlags(args []string) ([]string, Args, error) {
	var remaining []string
	var parsedArgs Args

	takeValue := func(i int, name string) (string, int, error) {
		if i+1 >= len(args) {
			return "", i, NewUsageError("%s requires a value", name)
		}
		return args[i+1], i + 1, nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error

		switch arg {
		case "--json":
			parsedArgs.JSON = true
		case "--simulate":
			parsedArgs.Simulate = true
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--driver":
			parsedArgs.Driver, i, err = takeValue(i, arg)
		case "--led":
			parsedArgs.LED, i, err = takeValue(i, arg)
		case "--config":
			parsedArgs.ConfigPath, i, err = takeValue(i, arg)
		default:
			switch {
			case strings.HasPrefix(arg, "--driver="):
				parsedArgs.Driver = strings.TrimPrefix(arg, "--driver=")
			case strings.HasPrefix(arg, "--led="):
				parsedArgs.LED = strings.TrimPrefix(arg, "--led=")
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
		if err != nil {
			return nil, parsedArgs, err
		}
	}

	return remaining, parsedArgs, nil
}
