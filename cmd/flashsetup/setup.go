// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// Colors
	brandPrimary   = lipgloss.Color("#F59E0B") // Amber
	brandSecondary = lipgloss.Color("#FCD34D") // Pale yellow
	brandAccent    = lipgloss.Color("#10B981") // Emerald
	brandWarning   = lipgloss.Color("#FB7185") // Rose
	brandError     = lipgloss.Color("#EF4444") // Red
	textMuted      = lipgloss.Color("#6B7280") // Gray

	titleStyle = lipgloss.NewStyle().
			Foreground(brandPrimary).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(brandAccent).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(brandError).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(brandWarning)

	highlightStyle = lipgloss.NewStyle().
			Foreground(brandSecondary).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandPrimary).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(brandPrimary).
			Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(textMuted)
)

const logo = `
     ___                _   ___ _         _
    / __|_ __  __ _ _ _| |_| __| |__ _ __| |_
    \__ \ '  \/ _' | '_|  _| _|| / _' (_-< ' \
    |___/_|_|_\__,_|_|  \__|_| |_\__,_/__/_||_|
`

const tagline = "A flashlight for your terminal"

// =============================================================================
// SETUP MODEL
// =============================================================================

// Phase represents the current setup phase
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseSystemCheck
	PhaseDriver
	PhaseWriteConfig
	PhaseComplete
)

// Setup is the setup wizard model
type Setup struct {
	phase        Phase
	width        int
	height       int
	spinner      spinner.Model
	progress     progress.Model
	checker      *Checker
	checks       []CheckResult
	currentCheck int
	driver       int
	configPath   string
	err          string

	// checkDelay paces the checks so each spinner is visible.
	checkDelay time.Duration

	// Completion screen
	launchSelected bool
	launchCmd      func() *exec.Cmd
}

// NewSetup creates a setup wizard that writes configPath.
func NewSetup(checker *Checker, configPath string) *Setup {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brandPrimary)

	return &Setup{
		phase:          PhaseWelcome,
		spinner:        s,
		progress:       progress.New(progress.WithGradient("#F59E0B", "#FCD34D")),
		checker:        checker,
		checks:         checker.Pending(),
		configPath:     configPath,
		checkDelay:     300 * time.Millisecond,
		launchSelected: true,
		launchCmd:      smartflashCommand,
	}
}

// Init initializes the wizard
func (s *Setup) Init() tea.Cmd {
	return s.spinner.Tick
}

// =============================================================================
// UPDATE
// =============================================================================

// checkCompleteMsg signals a check is complete
type checkCompleteMsg struct {
	index  int
	result CheckResult
}

// configWrittenMsg signals the configuration was written
type configWrittenMsg struct {
	err error
}

// launchDoneMsg is sent when a launched smartflash exits
type launchDoneMsg struct {
	err error
}

// Update handles messages
func (s *Setup) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		progressWidth := msg.Width - 20
		if progressWidth < 20 {
			progressWidth = 20
		}
		if progressWidth > 60 {
			progressWidth = 60
		}
		s.progress.Width = progressWidth

		boxWidth := msg.Width - 16
		if boxWidth < 40 {
			boxWidth = 40
		}
		if boxWidth > 70 {
			boxWidth = 70
		}
		boxStyle = boxStyle.Width(boxWidth)
		return s, s.spinner.Tick

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case checkCompleteMsg:
		s.checks[msg.index] = msg.result
		s.currentCheck++
		if s.currentCheck < len(s.checks) {
			return s, s.runCheck(s.currentCheck)
		}
		s.driver = RecommendedDriver(s.checks)
		return s, nil

	case configWrittenMsg:
		if msg.err != nil {
			s.err = msg.err.Error()
			s.phase = PhaseDriver
			return s, nil
		}
		s.err = ""
		s.phase = PhaseComplete
		return s, nil

	case launchDoneMsg:
		return s, tea.Quit
	}

	return s, nil
}

// handleKey processes key presses
func (s *Setup) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return s, tea.Quit

	case "enter", " ":
		return s.handleSelect()

	case "up", "k":
		if s.phase == PhaseDriver && s.driver > 0 {
			s.driver--
		}
		if s.phase == PhaseComplete {
			s.launchSelected = true
		}
		return s, nil

	case "down", "j":
		if s.phase == PhaseDriver && s.driver < len(driverChoices)-1 {
			s.driver++
		}
		if s.phase == PhaseComplete {
			s.launchSelected = false
		}
		return s, nil

	case "tab":
		if s.phase == PhaseComplete {
			s.launchSelected = !s.launchSelected
		}
		return s, nil
	}

	return s, nil
}

// handleSelect processes selection/enter
func (s *Setup) handleSelect() (tea.Model, tea.Cmd) {
	switch s.phase {
	case PhaseWelcome:
		s.phase = PhaseSystemCheck
		return s, s.runCheck(0)

	case PhaseSystemCheck:
		if s.checksDone() {
			s.phase = PhaseDriver
		}
		return s, nil

	case PhaseDriver:
		s.phase = PhaseWriteConfig
		return s, s.writeConfig()

	case PhaseWriteConfig:
		return s, nil

	case PhaseComplete:
		if s.launchSelected {
			return s, s.launch()
		}
		return s, tea.Quit
	}

	return s, nil
}

func (s *Setup) checksDone() bool {
	return s.currentCheck >= len(s.checks)
}

// SelectedDriver returns the driver currently chosen.
func (s *Setup) SelectedDriver() string {
	return driverChoices[s.driver].Driver
}

// =============================================================================
// COMMANDS
// =============================================================================

// runCheck runs a system check
func (s *Setup) runCheck(index int) tea.Cmd {
	checker := s.checker
	delay := s.checkDelay
	return func() tea.Msg {
		result := checker.Run(index)
		time.Sleep(delay)
		return checkCompleteMsg{index: index, result: result}
	}
}

func (s *Setup) writeConfig() tea.Cmd {
	path := s.configPath
	driver := s.SelectedDriver()
	led := s.checker.FoundLED()
	return func() tea.Msg {
		_, err := WriteConfig(path, driver, led)
		return configWrittenMsg{err: err}
	}
}

// launch runs smartflash in this terminal and quits when it exits.
func (s *Setup) launch() tea.Cmd {
	cmd := s.launchCmd()
	if cmd == nil {
		return tea.Quit
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return launchDoneMsg{err: err}
	})
}

// smartflashCommand finds the smartflash binary on PATH or next to this
// executable.
func smartflashCommand() *exec.Cmd {
	if path, err := exec.LookPath("smartflash"); err == nil {
		return exec.Command(path)
	}
	self, err := os.Executable()
	if err != nil {
		return nil
	}
	sibling := filepath.Join(filepath.Dir(self), "smartflash")
	if _, err := os.Stat(sibling); err != nil {
		return nil
	}
	return exec.Command(sibling)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the wizard
func (s *Setup) View() string {
	switch s.phase {
	case PhaseWelcome:
		return s.viewWelcome()
	case PhaseSystemCheck:
		return s.viewSystemCheck()
	case PhaseDriver:
		return s.viewDriver()
	case PhaseWriteConfig:
		return s.viewWriteConfig()
	case PhaseComplete:
		return s.viewComplete()
	}
	return ""
}

func (s *Setup) viewWelcome() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(brandPrimary).Bold(true).Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("    " + tagline))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("    Version %s", version)))
	b.WriteString("\n\n")

	welcome := `
Welcome to smartflash setup!

This wizard will:

  * Look for a flash LED and sensors
  * Check LED permissions
  * Pick a torch driver
  * Write your configuration
`
	b.WriteString(boxStyle.Render(welcome))
	b.WriteString("\n\n")
	b.WriteString(highlightStyle.Render("  Press ENTER to begin"))
	b.WriteString(dimStyle.Render("  |  Press Q to quit"))

	return s.center(b.String())
}

func (s *Setup) viewSystemCheck() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("  System Check"))
	b.WriteString("\n\n")
	b.WriteString("  " + s.progress.ViewAs(float64(s.currentCheck)/float64(len(s.checks))))
	b.WriteString("\n\n")

	for idx, check := range s.checks {
		var icon, status string
		var style lipgloss.Style

		switch check.Status {
		case StatusChecking:
			if idx == s.currentCheck {
				icon = s.spinner.View()
			} else {
				icon = "[ ]"
			}
			status = "Checking..."
			style = dimStyle
		case StatusPass:
			icon = "[OK]"
			status = check.Message
			style = successStyle
		case StatusFail:
			icon = "[FAIL]"
			status = check.Message
			style = errorStyle
		case StatusWarn:
			icon = "[!!]"
			status = check.Message
			style = warningStyle
		}

		b.WriteString(fmt.Sprintf("  %s %s", style.Render(icon), check.Name))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" - %s", status)))
		b.WriteString("\n")

		if check.Fix != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf("      -> %s", check.Fix)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	if s.checksDone() {
		if allPassed(s.checks) {
			b.WriteString(successStyle.Render("  All checks passed!"))
			b.WriteString("\n\n")
			b.WriteString(highlightStyle.Render("  Press ENTER to continue"))
		} else {
			b.WriteString(warningStyle.Render("  Some checks need attention"))
			b.WriteString("\n\n")
			b.WriteString(highlightStyle.Render("  Press ENTER to continue anyway"))
		}
	}

	return s.center(b.String())
}

func allPassed(checks []CheckResult) bool {
	for _, c := range checks {
		if c.Status == StatusFail {
			return false
		}
	}
	return true
}

func (s *Setup) viewDriver() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Choose a Torch Driver"))
	b.WriteString("\n\n")

	for idx, choice := range driverChoices {
		cursor := "  "
		style := unselectedStyle
		if idx == s.driver {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  %s%-10s %s", cursor, choice.Driver, choice.Description)))
		b.WriteString("\n")
	}

	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + s.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Use ↑/↓ to select, ENTER to confirm"))

	return s.center(b.String())
}

func (s *Setup) viewWriteConfig() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("  Setting Up smartflash"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s Writing configuration...\n", s.spinner.View()))
	b.WriteString(dimStyle.Render(fmt.Sprintf("     %s\n", s.configPath)))

	return s.center(b.String())
}

func (s *Setup) viewComplete() string {
	var b strings.Builder

	art := `
    +------------------------------------------+
    |                                          |
    |          *** Setup Complete! ***         |
    |                                          |
    +------------------------------------------+
`
	b.WriteString(successStyle.Render(art))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Driver: %s", s.SelectedDriver())))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Config: %s", s.configPath)))
	b.WriteString("\n\n")

	if s.needsUdevRule() {
		b.WriteString(warningStyle.Render("  The flash LED is not writable. Install this rule as root:"))
		b.WriteString("\n\n")
		b.WriteString(highlightStyle.Render("    " + UdevRule(s.checker.FoundLED())))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("    -> " + udevRulePath))
		b.WriteString("\n\n")
	}

	b.WriteString("  Choose your next step:\n\n")

	launch := "  Launch smartflash now"
	if s.launchSelected {
		b.WriteString(selectedStyle.Render("  > " + launch))
	} else {
		b.WriteString(unselectedStyle.Render("    " + launch))
	}
	b.WriteString("\n\n")

	closeText := "  Close setup"
	if !s.launchSelected {
		b.WriteString(selectedStyle.Render("  > " + closeText))
		b.WriteString(dimStyle.Render("  <- You can run 'smartflash' anytime"))
	} else {
		b.WriteString(unselectedStyle.Render("    " + closeText))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Up/Down or Tab to select  |  Enter to confirm"))

	return s.center(b.String())
}

// needsUdevRule reports whether the LED check failed on permissions.
func (s *Setup) needsUdevRule() bool {
	for _, c := range s.checks {
		if c.Name == checkNames[1] {
			return c.Status == StatusFail && s.checker.FoundLED() != ""
		}
	}
	return false
}

// center pads content down a third of the screen
func (s *Setup) center(content string) string {
	if s.width == 0 || s.height == 0 {
		return content
	}

	height := strings.Count(content, "\n") + 1
	topPadding := (s.height - height) / 3
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}
