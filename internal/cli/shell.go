// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - Interactive smartflash prompt.
//
// The shell keeps one controller open, so SOS blinks in the background and
// the auto-off timer runs between commands. Line editing, history and the
// preset name prompt use liner.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/smartflash-tui/internal/config"
	"github.com/jeranaias/smartflash-tui/internal/flash"
)

// shellCommands is used for help output and tab completion.
var shellCommands = []struct {
	name string
	desc string
}{
	{"on", "switch the torch on"},
	{"off", "switch the torch off"},
	{"toggle", "flip power"},
	{"set <level>", "set brightness 1-100"},
	{"up [n]", "brighter by n (default 1)"},
	{"down [n]", "dimmer by n (default 1)"},
	{"mode <name>", "standard, sos, auto or night"},
	{"sos", "toggle SOS blinking"},
	{"night", "toggle night mode"},
	{"auto", "toggle auto mode"},
	{"presets", "list presets"},
	{"preset <id|label>", "apply a preset"},
	{"preset add [label]", "save the current brightness"},
	{"preset rm <id|label>", "delete a preset"},
	{"autooff <minutes>", "set the auto-off timer (0 = never)"},
	{"status", "show the current state"},
	{"help", "show this help"},
	{"quit", "leave the shell"},
}

// =============================================================================
// SHELL
// =============================================================================

// Shell executes shell command lines against a controller.
type Shell struct {
	ctrl     *flash.Controller
	prompter flash.Prompter
	out      io.Writer
}

// NewShell creates a shell. prompter supplies preset names for
// "preset add" without a label.
func NewShell(ctrl *flash.Controller, prompter flash.Prompter, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, prompter: prompter, out: out}
}

// Exec runs one command line. It returns true when the shell should exit.
func (sh *Shell) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		sh.printHelp()

	case "on":
		sh.show(sh.ctrl.SetPower(true))

	case "off":
		sh.show(sh.ctrl.SetPower(false))

	case "toggle", "power":
		sh.show(sh.ctrl.TogglePower())

	case "set", "level":
		if len(args) != 1 {
			return false, NewUsageError("usage: set <level>")
		}
		level, err := ParseLevel(args[0])
		if err != nil {
			return false, err
		}
		sh.show(sh.ctrl.SetBrightness(level))

	case "up", "+", "down", "-":
		step := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return false, NewUsageError("invalid step %q", args[0])
			}
			step = n
		}
		if cmd == "down" || cmd == "-" {
			step = -step
		}
		sh.show(sh.ctrl.AdjustBrightness(step))

	case "mode":
		if len(args) != 1 {
			return false, NewUsageError("usage: mode <standard|sos|auto|night>")
		}
		mode, err := flash.ParseMode(args[0])
		if err != nil {
			return false, &UsageError{Message: err.Error()}
		}
		sh.show(sh.ctrl.SetMode(mode))

	case "sos":
		sh.show(sh.ctrl.ToggleMode(flash.ModeSOS))

	case "night":
		sh.show(sh.ctrl.ToggleMode(flash.ModeNight))

	case "auto":
		sh.show(sh.ctrl.ToggleMode(flash.ModeAuto))

	case "presets":
		sh.printPresets()

	case "preset":
		return false, sh.execPreset(args)

	case "autooff", "auto-off":
		if len(args) != 1 {
			return false, NewUsageError("usage: autooff <minutes>")
		}
		minutes, err := strconv.Atoi(args[0])
		if err != nil || minutes < 0 {
			return false, NewUsageError("invalid minutes %q", args[0])
		}
		sh.ctrl.SetAutoOff(time.Duration(minutes) * time.Minute)
		sh.printAutoOff()

	case "status":
		sh.printStatus()

	default:
		return false, NewUsageError("unknown command: %s (type help for commands)", cmd)
	}
	return false, nil
}

func (sh *Shell) execPreset(args []string) error {
	if len(args) == 0 {
		return NewUsageError("usage: preset <id|label> | preset add [label] | preset rm <id|label>")
	}

	switch strings.ToLower(args[0]) {
	case "add", "save":
		var (
			p  flash.Preset
			ok bool
		)
		if len(args) > 1 {
			p, ok = sh.ctrl.AddPreset(strings.Join(args[1:], " "))
		} else if sh.prompter != nil {
			p, ok = sh.ctrl.AddPresetPrompt(sh.prompter)
		}
		if !ok {
			fmt.Fprintln(sh.out, DimStyle.Render("No preset added."))
			return nil
		}
		fmt.Fprintf(sh.out, "Saved %s\n", AmberStyle.Render(p.String()))
		return nil

	case "rm", "del", "delete", "remove":
		name := strings.Join(args[1:], " ")
		if name == "" {
			return NewUsageError("usage: preset rm <id|label>")
		}
		p, ok := sh.ctrl.FindPreset(name)
		if !ok || !sh.ctrl.DeletePreset(p.ID) {
			return NewNotFoundError("preset", name)
		}
		fmt.Fprintf(sh.out, "Deleted %s\n", p.Label)
		return nil

	default:
		name := strings.Join(args, " ")
		st, ok := sh.ctrl.ApplyPresetID(name)
		if !ok {
			return NewNotFoundError("preset", name)
		}
		sh.show(st)
		return nil
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func (sh *Shell) show(st flash.State) {
	fmt.Fprintf(sh.out, "%s %s %s  %s\n",
		RenderPower(st.On), RenderLevel(st.Brightness), RenderBar(st.DisplayBrightness(), 20), renderMode(st.Mode))
}

func (sh *Shell) printPresets() {
	st := sh.ctrl.Snapshot()
	if len(st.Presets) == 0 {
		fmt.Fprintln(sh.out, DimStyle.Render("No presets."))
		return
	}
	active := st.ActivePreset()
	for i, p := range st.Presets {
		marker := " "
		label := p.Label
		if i == active && st.On {
			marker = "*"
			label = AmberStyle.Render(label)
		}
		fmt.Fprintf(sh.out, "%s %-10s %-16s %3d%%\n", marker, DimStyle.Render(shortID(p.ID)), label, p.Value)
	}
}

func (sh *Shell) printStatus() {
	st := sh.ctrl.Snapshot()
	sh.show(st)
	fmt.Fprintln(sh.out, RenderLabel("Torch", sh.ctrl.TorchInfo().String()))
	fmt.Fprintln(sh.out, RenderLabel("Battery", fmt.Sprintf("%d%%", st.Battery)))
	fmt.Fprintln(sh.out, RenderLabel("Temperature", fmt.Sprintf("%d°C", st.Temperature)))
	sh.printAutoOff()
}

func (sh *Shell) printAutoOff() {
	d := sh.ctrl.AutoOff()
	if d <= 0 {
		fmt.Fprintln(sh.out, RenderLabel("Auto-off", "never"))
		return
	}
	line := fmt.Sprintf("%d min", int(d.Minutes()))
	if at, ok := sh.ctrl.AutoOffDeadline(); ok {
		line += DimStyle.Render(fmt.Sprintf(" (off at %s)", at.Format("15:04:05")))
	}
	fmt.Fprintln(sh.out, RenderLabel("Auto-off", line))
}

func (sh *Shell) printHelp() {
	fmt.Fprintln(sh.out, TitleStyle.Render("Shell commands"))
	for _, c := range shellCommands {
		fmt.Fprintf(sh.out, "  %-22s %s\n", c.name, DimStyle.Render(c.desc))
	}
}

// shortID trims generated preset IDs for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

// =============================================================================
// LINE EDITING
// =============================================================================

// ShellCLI provides input history and line editing for the shell.
type ShellCLI struct {
	line        *liner.State
	historyFile string
}

// NewShellCLI creates a ShellCLI and loads the saved history.
func NewShellCLI() *ShellCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = ""
	}
	cli := &ShellCLI{line: line, historyFile: historyFile}
	cli.LoadHistory()
	return cli
}

func completeCommand(line string) []string {
	prefix := strings.ToLower(line)
	var out []string
	seen := make(map[string]bool)
	for _, c := range shellCommands {
		name := strings.Fields(c.name)[0]
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// LoadHistory loads command history from file.
func (c *ShellCLI) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (c *ShellCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// PromptLabel asks for a preset name with def pre-filled. Ctrl-C cancels.
func (c *ShellCLI) PromptLabel(def string) (string, bool) {
	label, err := c.line.PromptWithSuggestion("Preset name: ", def, -1)
	if err != nil {
		return "", false
	}
	label = strings.TrimSpace(label)
	return label, label != ""
}

// SaveHistory persists command history with 0600 permissions.
func (c *ShellCLI) SaveHistory() {
	if c.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ShellCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// ENTRY POINT
// =============================================================================

// RunShell runs the interactive prompt until quit, Ctrl-C or EOF.
func (a *App) RunShell() error {
	s, err := a.newSession(sessionOptions{
		autoOff:     a.Config.AutoOff(),
		offOnExit:   a.Config.Torch.OffOnExit,
		syncOnStart: false,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	go a.watchShellEvents(s.ctrl.Events())

	input := NewShellCLI()
	defer input.Close()

	sh := NewShell(s.ctrl, input, a.Out)
	fmt.Fprintf(a.Out, "%s %s\n", TitleStyle.Render("Smart Flash shell"), DimStyle.Render("(help for commands, quit to leave)"))
	if info := s.ctrl.TorchInfo(); !info.Available {
		fmt.Fprintln(a.Out, WarningStyle.Render("No flash hardware: "+info.String()))
	}

	for {
		line, err := input.ReadInput(PromptStyle.Render("flash> "))
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				log.Printf("WARNING: shell input: %v", err)
			}
			fmt.Fprintln(a.Out)
			return nil
		}

		quit, err := sh.Exec(line)
		if err != nil {
			fmt.Fprintf(a.Err, "%s %v\n", ErrorStyle.Render("Error:"), err)
		}
		if quit {
			return nil
		}
	}
}

// watchShellEvents drains controller events and reports auto-off.
func (a *App) watchShellEvents(events <-chan flash.Event) {
	for ev := range events {
		if ev.Kind == flash.EventAutoOff {
			fmt.Fprintf(a.Out, "\n%s\n", DimStyle.Render("auto-off: torch switched off"))
		}
	}
}
