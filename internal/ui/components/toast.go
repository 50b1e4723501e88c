// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// ToastKind selects a toast's colour and icon.
type ToastKind int

const (
	ToastStatus ToastKind = iota
	ToastSuccess
	ToastWarning
)

// DefaultToastDuration is how long a toast stays on screen.
const DefaultToastDuration = 3 * time.Second

// ToastTickInterval is how often expired toasts are pruned.
const ToastTickInterval = 250 * time.Millisecond

const maxToasts = 3

// =============================================================================
// TOAST
// =============================================================================

// Toast is a short notice shown in the bottom-right corner, such as
// "Preset saved" or "Auto-off: torch switched off". Toasts never take focus.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the toast has outlived its duration at now.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// ToastManager keeps the visible toasts, newest first.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1}
}

// Add pushes a toast and returns its ID. Only the newest few are kept.
func (m *ToastManager) Add(kind ToastKind, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  DefaultToastDuration,
	}
	m.nextID++

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[:maxToasts]
	}
	return toast.ID
}

// Prune drops toasts that expired at now and reports whether any remain.
func (m *ToastManager) Prune(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Toasts returns a copy of the visible toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Len returns the number of visible toasts.
func (m *ToastManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(ToastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderToast renders one toast no wider than width.
func RenderToast(toast Toast, width int) string {
	maxWidth := 40
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 12 {
		maxWidth = 12
	}

	color := styles.Cyan
	icon := styles.StatusIndicators.Info
	switch toast.Kind {
	case ToastSuccess:
		color = styles.Emerald
		icon = styles.StatusIndicators.Success
	case ToastWarning:
		color = styles.Amber
		icon = styles.StatusIndicators.Warning
	}

	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	message := runewidth.Truncate(toast.Message, maxWidth-6, "...")

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(iconStyle.Render(icon+" ") + message)
}

// RenderToastStack stacks toasts in the bottom-right corner of a
// width x height area.
func RenderToastStack(toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for i := len(toasts) - 1; i >= 0; i-- {
		rendered = append(rendered, RenderToast(toasts[i], width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 || height <= 0 {
		return stack
	}
	return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
}

// CountdownLabel formats the remaining seconds of a timer, e.g. "9:05".
func CountdownLabel(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	secs := int(remaining.Round(time.Second).Seconds())
	s := secs % 60
	pad := ""
	if s < 10 {
		pad = "0"
	}
	return strconv.Itoa(secs/60) + ":" + pad + strconv.Itoa(s)
}
