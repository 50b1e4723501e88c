// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flashlight is the main smartflash screen: a Bubble Tea model that
// forwards key presses to a flash.Controller and redraws from its state.
package flashlight

import (
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartflash-tui/internal/config"
	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/sensors"
	"github.com/jeranaias/smartflash-tui/internal/ui/components"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// Options configures the model.
type Options struct {
	// Version is shown in the settings overlay.
	Version string

	// Theme defaults to styles.NewTheme("auto").
	Theme *styles.Theme

	// Sensors is polled every PollInterval. Nil disables polling and the
	// readouts keep the controller's values.
	Sensors      *sensors.Reader
	PollInterval time.Duration

	// Haptic rings the terminal bell on every action.
	Haptic bool

	// ShowHelpBar shows the shortcut strip at the bottom.
	ShowHelpBar bool

	// Reloads delivers configurations reloaded from disk.
	Reloads <-chan *config.Config

	// SaveSettings persists changes made in the settings overlay.
	SaveSettings func(autoOffMinutes int, haptic bool) error

	// Bell receives the haptic bell. Defaults to os.Stderr so it bypasses
	// the renderer.
	Bell io.Writer
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the flashlight screen.
type Model struct {
	ctrl  *flash.Controller
	state flash.State
	seq   uint64 // Seq of the newest controller event reflected in state
	lit   bool

	theme *styles.Theme
	keys  KeyMap

	header   *components.Header
	readouts *components.StatusReadouts
	slider   *components.BrightnessSlider
	buttons  *components.ActionButtons
	presets  *components.PresetStrip
	settings *components.SettingsOverlay
	prompt   *components.PromptDialog
	help     *components.HelpPanel
	toasts   *components.ToastManager

	sensorReader *sensors.Reader
	pollInterval time.Duration
	pollGen      int

	haptic       bool
	showHelpBar  bool
	reloads      <-chan *config.Config
	saveSettings func(int, bool) error
	bell         io.Writer

	toastTicking bool
	now          time.Time
	width        int
	height       int
	quitting     bool
}

// New creates the model for ctrl.
func New(ctrl *flash.Controller, opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	bell := opts.Bell
	if bell == nil {
		bell = os.Stderr
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = sensors.DefaultPollInterval
	}
	keys := DefaultKeyMap()

	m := &Model{
		ctrl:         ctrl,
		lit:          true,
		theme:        theme,
		keys:         keys,
		header:       components.NewHeader(theme),
		readouts:     components.NewStatusReadouts(theme),
		slider:       components.NewBrightnessSlider(theme),
		buttons:      components.NewActionButtons(theme),
		presets:      components.NewPresetStrip(theme),
		settings:     components.NewSettingsOverlay(theme, opts.Version),
		prompt:       components.NewPromptDialog(theme),
		help:         components.NewHelpPanel(theme, components.HelpMarkdown(keys.FullHelp(), FullHelpTitles)),
		toasts:       components.NewToastManager(),
		sensorReader: opts.Sensors,
		pollInterval: poll,
		haptic:       opts.Haptic,
		showHelpBar:  opts.ShowHelpBar,
		reloads:      opts.Reloads,
		saveSettings: opts.SaveSettings,
		bell:         bell,
		now:          time.Now(),
	}
	m.state, m.seq = ctrl.Current()
	m.syncComponents()

	if info := ctrl.TorchInfo(); !info.Available {
		m.toasts.Add(components.ToastWarning, "No flash hardware: "+info.String())
	}
	return m
}

// State returns the last state the model rendered.
func (m *Model) State() flash.State {
	return m.state
}

// Haptic reports whether haptic feedback is enabled.
func (m *Model) Haptic() bool {
	return m.haptic
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the event listener, the sensor poll, the config reload
// listener and the countdown clock.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForEvent(m.ctrl.Events()),
		clockTick(),
	}
	if m.sensorReader != nil {
		cmds = append(cmds, m.readSensors(m.pollGen))
	}
	if m.reloads != nil {
		cmds = append(cmds, waitForReload(m.reloads))
	}
	if m.toasts.Len() > 0 {
		m.toastTicking = true
		cmds = append(cmds, components.ToastTickCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FlashEventMsg:
		return m, m.handleEvent(msg.Event)

	case EventsClosedMsg:
		return m, nil

	case SensorTickMsg:
		if msg.Gen != m.pollGen || m.sensorReader == nil {
			return m, nil
		}
		return m, m.readSensors(msg.Gen)

	case SensorReadingMsg:
		if msg.Gen != m.pollGen {
			return m, nil
		}
		m.ctrl.SetReadings(msg.Reading.Battery, msg.Reading.Temperature)
		m.refresh()
		return m, m.scheduleSensors()

	case ConfigReloadedMsg:
		return m, tea.Batch(
			m.applyConfig(msg.Config),
			waitForReload(m.reloads),
			m.addToast(components.ToastStatus, "Settings reloaded"),
		)

	case components.SettingsChangedMsg:
		return m, m.applySettings(msg.AutoOffMinutes, msg.Haptic)

	case components.SettingsClosedMsg:
		return m, nil

	case SettingsSavedMsg:
		if msg.Err != nil {
			log.Printf("WARNING: failed to save settings: %v", msg.Err)
			return m, m.addToast(components.ToastWarning, "Settings not saved")
		}
		return m, nil

	case components.PromptResultMsg:
		return m, m.handlePromptResult(msg)

	case components.ToastTickMsg:
		if m.toasts.Prune(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.toastTicking = false
		return m, nil

	case ClockTickMsg:
		m.now = msg.Time
		return m, clockTick()
	}

	if m.prompt.IsVisible() {
		return m, m.prompt.Update(msg)
	}
	return m, nil
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	inner := contentWidth(width)
	m.header.SetWidth(inner)
	m.readouts.SetWidth(inner)
	m.slider.SetWidth(inner)
	m.buttons.SetWidth(inner)
	m.presets.SetWidth(inner)
	m.settings.SetSize(width, height)
	m.prompt.SetSize(width, height)
	m.help.SetSize(width, height)
}

// contentWidth caps the layout width so the screen reads like a phone
// card on wide terminals.
func contentWidth(width int) int {
	const maxContent = 72
	w := width - 4
	if w > maxContent {
		w = maxContent
	}
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// STATE
// =============================================================================

// setState records st and refreshes every component from it.
func (m *Model) setState(st flash.State) {
	if !st.Blinking() {
		m.lit = true
	}
	m.state = st
	m.syncComponents()
}

// refresh pulls the state and its event sequence from the controller.
// Queued events at or below that sequence are then ignored.
func (m *Model) refresh() {
	st, seq := m.ctrl.Current()
	m.seq = seq
	m.setState(st)
}

// applyEvent records an event's snapshot unless a newer one is already
// shown.
func (m *Model) applyEvent(ev flash.Event) {
	if ev.Seq <= m.seq {
		return
	}
	m.seq = ev.Seq
	m.setState(ev.State)
}

func (m *Model) syncComponents() {
	st := m.state
	m.header.SetMode(st.Mode)
	m.readouts.SetReading(st.Battery, st.Temperature)
	m.slider.SetState(st)
	m.slider.Dark = st.Blinking() && !m.lit
	m.buttons.SetState(st)
	m.presets.SetState(st)
}

func (m *Model) handleEvent(ev flash.Event) tea.Cmd {
	next := waitForEvent(m.ctrl.Events())
	switch ev.Kind {
	case flash.EventBlink:
		m.lit = ev.Lit
		m.slider.Dark = m.state.Blinking() && !m.lit
	case flash.EventAutoOff:
		m.applyEvent(ev)
		return tea.Batch(next, m.addToast(components.ToastStatus, "Auto-off: torch switched off"))
	case flash.EventState:
		m.applyEvent(ev)
	case flash.EventClosed:
		return nil
	}
	return next
}

// =============================================================================
// SENSORS
// =============================================================================

func (m *Model) readSensors(gen int) tea.Cmd {
	reader := m.sensorReader
	prev := sensors.Reading{Battery: m.state.Battery, Temperature: m.state.Temperature}
	return func() tea.Msg {
		return SensorReadingMsg{Gen: gen, Reading: reader.Update(prev)}
	}
}

func (m *Model) scheduleSensors() tea.Cmd {
	gen := m.pollGen
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return SensorTickMsg{Gen: gen}
	})
}

// restartSensors starts a new poll loop at interval. Ticks from the old
// loop are ignored.
func (m *Model) restartSensors(interval time.Duration) tea.Cmd {
	if interval <= 0 || interval == m.pollInterval {
		return nil
	}
	m.pollInterval = interval
	m.pollGen++
	if m.sensorReader == nil {
		return nil
	}
	return m.scheduleSensors()
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	m.ctrl.SetAutoOff(cfg.AutoOff())
	m.haptic = cfg.UI.Haptic
	m.showHelpBar = cfg.UI.ShowHelpBar
	if cfg.Sensors.Enabled {
		return m.restartSensors(cfg.PollInterval())
	}
	return nil
}

func (m *Model) applySettings(autoOffMinutes int, haptic bool) tea.Cmd {
	m.ctrl.SetAutoOff(time.Duration(autoOffMinutes) * time.Minute)
	m.haptic = haptic

	save := m.saveSettings
	if save == nil {
		return m.buzz()
	}
	return tea.Batch(m.buzz(), func() tea.Msg {
		return SettingsSavedMsg{Err: save(autoOffMinutes, haptic)}
	})
}

// =============================================================================
// COMMANDS
// =============================================================================

func waitForEvent(ch <-chan flash.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return EventsClosedMsg{}
		}
		return FlashEventMsg{Event: ev}
	}
}

func waitForReload(ch <-chan *config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return ClockTickMsg{Time: t}
	})
}

// buzz rings the bell when haptic feedback is on.
func (m *Model) buzz() tea.Cmd {
	if !m.haptic {
		return nil
	}
	bell := m.bell
	return func() tea.Msg {
		bell.Write([]byte("\a"))
		return nil
	}
}

// addToast shows a toast and starts the expiry tick if it is not running.
func (m *Model) addToast(kind components.ToastKind, message string) tea.Cmd {
	m.toasts.Add(kind, message)
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}
