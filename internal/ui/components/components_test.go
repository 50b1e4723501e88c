// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/torch"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

// runCmd executes cmd and returns its message, or nil.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	theme := testTheme()
	h := NewHeader(theme)

	if h.Title != "Smart Flash" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "Smart Flash")
	}
	if h.Mode != flash.ModeStandard {
		t.Errorf("NewHeader() Mode = %v, want standard", h.Mode)
	}
	if h.theme != theme {
		t.Error("NewHeader() did not set theme")
	}
}

func TestHeaderView(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(70)

	view := h.View()
	if !strings.Contains(view, "Smart Flash") {
		t.Errorf("header view missing brand: %q", view)
	}
	if !strings.Contains(view, "settings") {
		t.Errorf("header view missing settings hint: %q", view)
	}

	h.SetMode(flash.ModeSOS)
	if !strings.Contains(h.View(), "SOS") {
		t.Error("header view missing SOS badge")
	}
}

func TestHeaderNarrowDropsHint(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(16)
	if strings.Contains(h.View(), "settings") {
		t.Error("narrow header should drop the settings hint")
	}
}

// =============================================================================
// READOUT TESTS
// =============================================================================

func TestStatusReadouts(t *testing.T) {
	r := NewStatusReadouts(testTheme())

	view := r.View()
	for _, want := range []string{"BATTERY", "85%", "TEMP", "32"} {
		if !strings.Contains(view, want) {
			t.Errorf("readouts view missing %q", want)
		}
	}
	if strings.Contains(view, styles.StatusIndicators.Warning) {
		t.Error("normal readings should not carry a warning marker")
	}

	r.SetReading(15, 45)
	view = r.View()
	if strings.Count(view, styles.StatusIndicators.Warning) != 2 {
		t.Errorf("low battery and hot temperature should both be flagged: %q", view)
	}
}

// =============================================================================
// SLIDER TESTS
// =============================================================================

func TestSliderDisplayed(t *testing.T) {
	s := NewBrightnessSlider(testTheme())

	st := flash.DefaultState()
	st.Brightness = 70
	s.SetState(st)
	if got := s.Displayed(); got != 0 {
		t.Errorf("Displayed() while off = %d, want 0", got)
	}

	st.On = true
	s.SetState(st)
	if got := s.Displayed(); got != 70 {
		t.Errorf("Displayed() while on = %d, want 70", got)
	}
}

func TestSliderCaption(t *testing.T) {
	s := NewBrightnessSlider(testTheme())
	s.SetWidth(60)

	st := flash.DefaultState()
	st.On = true
	s.SetState(st)
	if !strings.Contains(s.View(), "BRIGHTNESS") {
		t.Error("slider should show BRIGHTNESS caption")
	}

	st.Mode = flash.ModeSOS
	s.SetState(st)
	if !strings.Contains(s.View(), "SOS SIGNAL ACTIVE") {
		t.Error("slider should show SOS caption while blinking")
	}
}

func TestSliderNarrowShowsPlainValue(t *testing.T) {
	s := NewBrightnessSlider(testTheme())
	s.SetWidth(20)
	st := flash.DefaultState()
	st.On = true
	st.Brightness = 42
	s.SetState(st)
	if !strings.Contains(s.View(), "42%") {
		t.Errorf("narrow slider should print the value as text: %q", s.View())
	}
}

func TestBigText(t *testing.T) {
	rows := bigText("100%")
	if len(rows) != 3 {
		t.Fatalf("bigText rows = %d, want 3", len(rows))
	}
	if rows[0] == "" {
		t.Error("bigText produced an empty row")
	}
}

// =============================================================================
// BUTTON TESTS
// =============================================================================

func TestActionButtons(t *testing.T) {
	b := NewActionButtons(testTheme())
	b.SetWidth(80)

	view := b.View()
	for _, want := range []string{"SOS", "POWER OFF", "NIGHT", "AUTO", "space"} {
		if !strings.Contains(view, want) {
			t.Errorf("buttons view missing %q", want)
		}
	}

	st := flash.DefaultState()
	st.On = true
	b.SetState(st)
	if !strings.Contains(b.View(), "POWER ON") {
		t.Error("power button should read POWER ON")
	}

	b.SetWidth(30)
	if !strings.Contains(b.View(), "PWR") {
		t.Error("narrow buttons should use the compact power label")
	}
}

// =============================================================================
// PRESET STRIP TESTS
// =============================================================================

func TestPresetStripSelection(t *testing.T) {
	p := NewPresetStrip(testTheme())
	p.SetState(flash.DefaultState())

	if !p.OnAddChip() {
		t.Error("cursor should start on the add chip")
	}
	p.MoveLeft()
	if p.Selected != 0 {
		t.Errorf("MoveLeft past start: Selected = %d, want 0", p.Selected)
	}

	p.MoveRight()
	preset, ok := p.SelectedPreset()
	if !ok || preset.Label != "Reading" {
		t.Errorf("SelectedPreset() = %v, %v; want Reading", preset, ok)
	}

	for i := 0; i < 10; i++ {
		p.MoveRight()
	}
	if p.Selected != 3 {
		t.Errorf("MoveRight past end: Selected = %d, want 3", p.Selected)
	}

	st := flash.DefaultState()
	st.Presets = st.Presets[:1]
	p.SetState(st)
	if p.Selected != 1 {
		t.Errorf("shrinking presets should clamp the cursor: Selected = %d", p.Selected)
	}
}

func TestPresetStripView(t *testing.T) {
	p := NewPresetStrip(testTheme())
	p.SetWidth(80)
	st := flash.DefaultState()
	st.Presets = append(st.Presets, flash.Preset{ID: "x", Label: "Extraordinarily long", Value: 33})
	p.SetState(st)

	view := p.View()
	for _, want := range []string{"QUICK PRESETS", "add", "20%", "Reading", "33%", "Extra..."} {
		if !strings.Contains(view, want) {
			t.Errorf("preset strip missing %q in %q", want, view)
		}
	}
	if strings.Contains(view, "Extraordinarily") {
		t.Error("long labels should be truncated")
	}
}

func TestPresetStripScrolls(t *testing.T) {
	p := NewPresetStrip(testTheme())
	p.SetWidth(30)
	p.SetState(flash.DefaultState())

	start, end := p.visibleRange()
	if start != 0 || end-start >= 4 {
		t.Errorf("visibleRange() = %d,%d; want a window starting at 0", start, end)
	}

	p.Selected = 3
	start, end = p.visibleRange()
	if end != 4 || start == 0 {
		t.Errorf("visibleRange() with cursor at end = %d,%d", start, end)
	}
	if !strings.Contains(p.View(), "<") {
		t.Error("scrolled strip should show a left marker")
	}
}

// =============================================================================
// SETTINGS OVERLAY TESTS
// =============================================================================

func TestStepAutoOff(t *testing.T) {
	tests := []struct {
		current, dir, want int
	}{
		{0, 1, 1},
		{10, 1, 15},
		{60, 1, 60},
		{10, -1, 5},
		{0, -1, 0},
		{7, 1, 10},
		{7, -1, 5},
		{200, -1, 60},
	}
	for _, tc := range tests {
		if got := stepAutoOff(tc.current, tc.dir); got != tc.want {
			t.Errorf("stepAutoOff(%d, %d) = %d, want %d", tc.current, tc.dir, got, tc.want)
		}
	}
}

func TestSettingsOverlay(t *testing.T) {
	s := NewSettingsOverlay(testTheme(), "1.2.3")
	if s.IsVisible() || s.View() != "" {
		t.Fatal("overlay should start hidden")
	}

	s.Show(10, true, torch.NewSimulated().Info())
	view := s.View()
	for _, want := range []string{"Auto-off Timer", "10 min", "Haptic Feedback", "simulated", "Smart Flash Control v1.2.3"} {
		if !strings.Contains(view, want) {
			t.Errorf("settings view missing %q", want)
		}
	}

	msg := runCmd(s.Update(tea.KeyMsg{Type: tea.KeyRight}))
	changed, ok := msg.(SettingsChangedMsg)
	if !ok || changed.AutoOffMinutes != 15 || !changed.Haptic {
		t.Errorf("right on auto-off = %#v", msg)
	}

	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	msg = runCmd(s.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	changed, ok = msg.(SettingsChangedMsg)
	if !ok || changed.Haptic {
		t.Errorf("enter on haptic should toggle it off: %#v", msg)
	}

	msg = runCmd(s.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	if _, ok := msg.(SettingsClosedMsg); !ok || s.IsVisible() {
		t.Errorf("esc should close the overlay: %#v", msg)
	}
}

func TestSettingsOverlayAutoOffAtLimit(t *testing.T) {
	s := NewSettingsOverlay(testTheme(), "dev")
	s.Show(0, false, torch.Info{})
	if cmd := s.Update(tea.KeyMsg{Type: tea.KeyLeft}); cmd != nil {
		t.Error("left at 0 should not report a change")
	}
	if !strings.Contains(s.View(), "off") {
		t.Error("zero auto-off should read off")
	}
}

// =============================================================================
// PROMPT DIALOG TESTS
// =============================================================================

func TestPromptDialogConfirm(t *testing.T) {
	p := NewPromptDialog(testTheme())
	p.Show("Level 50%")

	if !p.IsVisible() || p.Value() != "Level 50%" {
		t.Fatalf("Show() value = %q, visible = %v", p.Value(), p.IsVisible())
	}
	if !strings.Contains(p.View(), "Name this preset") {
		t.Error("prompt view missing title")
	}

	msg := runCmd(p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	res, ok := msg.(PromptResultMsg)
	if !ok || !res.OK || res.Label != "Level 50%" {
		t.Errorf("enter = %#v", msg)
	}
	if p.IsVisible() {
		t.Error("dialog should close on enter")
	}
}

func TestPromptDialogTyping(t *testing.T) {
	p := NewPromptDialog(testTheme())
	p.Show("")
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Camp")})

	msg := runCmd(p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	if res := msg.(PromptResultMsg); res.Label != "Camp" || !res.OK {
		t.Errorf("typed label = %#v", res)
	}
}

func TestPromptDialogCancelAndEmpty(t *testing.T) {
	p := NewPromptDialog(testTheme())

	p.Show("Level 20%")
	msg := runCmd(p.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	if res := msg.(PromptResultMsg); res.OK {
		t.Error("esc should cancel")
	}

	p.Show("   ")
	msg = runCmd(p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	if res := msg.(PromptResultMsg); res.OK {
		t.Error("blank label should not be OK")
	}
}

// =============================================================================
// HELP TESTS
// =============================================================================

func TestHelpMarkdown(t *testing.T) {
	groups := [][]key.Binding{{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle SOS")),
	}}
	md := HelpMarkdown(groups, []string{"Modes"})
	for _, want := range []string{"## Modes", "| `s` | toggle SOS |"} {
		if !strings.Contains(md, want) {
			t.Errorf("help markdown missing %q", want)
		}
	}
}

func TestHelpPanelToggle(t *testing.T) {
	h := NewHelpPanel(testTheme(), "# Keys\n")
	if h.View() != "" {
		t.Error("hidden panel should render nothing")
	}
	h.Toggle()
	if !h.IsVisible() || !strings.Contains(h.View(), "Keys") {
		t.Error("visible panel should render its markdown")
	}
	h.Hide()
	if h.IsVisible() {
		t.Error("Hide() should close the panel")
	}
}

func TestHelpBar(t *testing.T) {
	on := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	off := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"))
	off.SetEnabled(false)

	bar := HelpBar(testTheme(), []key.Binding{on, off}, 60)
	if !strings.Contains(bar, "quit") || strings.Contains(bar, "hidden") {
		t.Errorf("HelpBar() = %q", bar)
	}
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastManager(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 5; i++ {
		m.Add(ToastStatus, "notice")
	}
	if m.Len() != maxToasts {
		t.Errorf("Len() = %d, want %d", m.Len(), maxToasts)
	}

	if !m.Prune(time.Now()) {
		t.Error("fresh toasts should survive a prune")
	}
	if m.Prune(time.Now().Add(DefaultToastDuration)) {
		t.Error("expired toasts should be pruned")
	}
}

func TestRenderToastStack(t *testing.T) {
	if RenderToastStack(nil, 80, 24) != "" {
		t.Error("empty stack should render nothing")
	}
	m := NewToastManager()
	m.Add(ToastSuccess, "Preset saved")
	if !strings.Contains(RenderToastStack(m.Toasts(), 80, 24), "Preset saved") {
		t.Error("stack should contain the toast message")
	}
}

func TestCountdownLabel(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{65 * time.Second, "1:05"},
		{10 * time.Minute, "10:00"},
	}
	for _, tc := range tests {
		if got := CountdownLabel(tc.d); got != tc.want {
			t.Errorf("CountdownLabel(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
