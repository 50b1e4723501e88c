// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Runs the flashlight screen.
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartflash-tui/internal/config"
	"github.com/jeranaias/smartflash-tui/internal/ui/flashlight"
	"github.com/jeranaias/smartflash-tui/internal/ui/styles"
)

// reloadBuffer is the capacity of the config reload channel.
const reloadBuffer = 4

// RunTUI opens the flashlight screen and blocks until the user quits.
func (a *App) RunTUI() error {
	if err := RequiresTTY("open the flashlight screen"); err != nil {
		return err
	}

	// Log to a file so warnings never corrupt the screen.
	if logPath, err := a.Config.LogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
			if f, err := tea.LogToFile(logPath, "smartflash"); err == nil {
				defer f.Close()
			}
		}
	}

	s, err := a.newSession(sessionOptions{
		autoOff:     a.Config.AutoOff(),
		offOnExit:   a.Config.Torch.OffOnExit,
		syncOnStart: true,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	reloads := make(chan *config.Config, reloadBuffer)
	if w := a.watchConfig(reloads); w != nil {
		defer w.Close()
	}

	m := flashlight.New(s.ctrl, flashlight.Options{
		Version:      Version,
		Theme:        styles.NewTheme(a.Config.UI.Theme),
		Sensors:      a.Sensors,
		PollInterval: a.Config.PollInterval(),
		Haptic:       a.Config.UI.Haptic,
		ShowHelpBar:  a.Config.UI.ShowHelpBar,
		Reloads:      reloads,
		SaveSettings: a.saveSettings,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running smartflash: %w", err)
	}
	return nil
}

// watchConfig forwards reloaded configurations to ch. It returns nil when
// the config directory cannot be watched.
func (a *App) watchConfig(ch chan<- *config.Config) *config.Watcher {
	if a.ConfigPath == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Dir(a.ConfigPath)); err != nil {
		return nil
	}

	w, err := config.NewWatcher(a.ConfigPath, config.DefaultDebounce, func(cfg *config.Config) {
		config.SetGlobal(cfg)
		select {
		case ch <- cfg:
		default:
			log.Printf("WARNING: config reload channel full, dropping reload")
		}
	})
	if err != nil {
		log.Printf("WARNING: config watcher: %v", err)
		return nil
	}
	if err := w.Watch(); err != nil {
		log.Printf("WARNING: config watcher: %v", err)
		w.Close()
		return nil
	}
	return w
}

// saveSettings persists the settings overlay values into the active config
// file. Only those two keys change in the file; overrides applied at startup
// are kept out of it.
func (a *App) saveSettings(autoOffMinutes int, haptic bool) error {
	stored, err := config.LoadStored(a.ConfigPath)
	if err != nil {
		return err
	}
	stored.Flash.AutoOffMinutes = autoOffMinutes
	stored.UI.Haptic = haptic
	if err := stored.Validate(); err != nil {
		return err
	}
	if err := config.SaveToPath(stored, a.ConfigPath); err != nil {
		return err
	}

	next := config.Global().Clone()
	next.Flash.AutoOffMinutes = autoOffMinutes
	next.UI.Haptic = haptic
	config.SetGlobal(next)
	log.Printf("settings saved: auto-off %s, haptic %v", time.Duration(autoOffMinutes)*time.Minute, haptic)
	return nil
}
