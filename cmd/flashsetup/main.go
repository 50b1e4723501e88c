// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/smartflash-tui/internal/config"
)

const version = "1.0.0"

func main() {
	text := false
	configPath := ""
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--text" || arg == "-t":
			text = true
		case arg == "--help" || arg == "-h":
			printHelp(os.Stdout)
			return
		case arg == "--version" || arg == "-v":
			fmt.Printf("smartflash setup v%s\n", version)
			return
		case arg == "--config" && i+1 < len(args):
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
			os.Exit(2)
		}
	}

	if configPath == "" {
		p, err := config.ActivePath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		configPath = p
	}
	checker := NewChecker(configPath)

	if text {
		if err := runTextSetup(os.Stdin, os.Stdout, checker, configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("smartflash setup requires an interactive terminal.")
		fmt.Println("Run with --text for a plain text setup.")
		os.Exit(2)
	}

	p := tea.NewProgram(NewSetup(checker, configPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running setup: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `smartflash setup v`+version+`

Usage: flashsetup [OPTIONS]

Options:
  --text, -t       Run in text mode (no full-screen UI)
  --config PATH    Write this config file instead of ~/.smartflash/config.toml
  --help, -h       Show this help
  --version, -v    Show version`)
}

// =============================================================================
// TEXT MODE
// =============================================================================

func runTextSetup(in io.Reader, out io.Writer, checker *Checker, configPath string) error {
	reader := bufio.NewReader(in)
	rule := strings.Repeat("-", 72)

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 72))
	fmt.Fprintln(out, "                          SMARTFLASH SETUP")
	fmt.Fprintln(out, strings.Repeat("=", 72))
	fmt.Fprintln(out)

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "                            SYSTEM CHECK")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)

	results := make([]CheckResult, len(checkNames))
	for i := range checkNames {
		res := checker.Run(i)
		results[i] = res
		fmt.Fprintf(out, "  %-6s %s: %s\n", textIcon(res.Status), res.Name, res.Message)
		if res.Fix != "" {
			fmt.Fprintf(out, "         -> %s\n", res.Fix)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "                           TORCH DRIVER")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)

	def := RecommendedDriver(results)
	for i, c := range driverChoices {
		mark := " "
		if i == def {
			mark = "*"
		}
		fmt.Fprintf(out, " %s[%d] %-10s %s\n", mark, i+1, c.Driver, c.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Enter choice [1-%d] (default %d): ", len(driverChoices), def+1)
	input, _ := reader.ReadString('\n')
	choice := def
	if n, err := strconv.Atoi(strings.TrimSpace(input)); err == nil && n >= 1 && n <= len(driverChoices) {
		choice = n - 1
	}
	driver := driverChoices[choice].Driver
	fmt.Fprintln(out)

	if _, err := WriteConfig(configPath, driver, checker.FoundLED()); err != nil {
		return err
	}
	fmt.Fprintf(out, "  [OK] Wrote %s (driver %s)\n", configPath, driver)

	if results[1].Status == StatusFail && checker.FoundLED() != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "The flash LED is not writable. Add this line to %s as root:\n\n", udevRulePath)
		fmt.Fprintf(out, "  %s\n\n", UdevRule(checker.FoundLED()))
		fmt.Fprintln(out, "Then run: sudo udevadm control --reload && sudo udevadm trigger")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'smartflash' to start.")
	return nil
}

func textIcon(status string) string {
	switch status {
	case StatusPass:
		return "[OK]"
	case StatusWarn:
		return "[!!]"
	case StatusFail:
		return "[FAIL]"
	}
	return "[  ]"
}
