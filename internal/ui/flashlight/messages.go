// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flashlight

import (
	"time"

	"github.com/jeranaias/smartflash-tui/internal/config"
	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/sensors"
)

// =============================================================================
// CONTROLLER MESSAGES
// =============================================================================

// FlashEventMsg wraps an event from the controller's event channel.
type FlashEventMsg struct {
	Event flash.Event
}

// EventsClosedMsg is sent once the controller's event channel is closed.
type EventsClosedMsg struct{}

// =============================================================================
// SENSOR MESSAGES
// =============================================================================

// SensorTickMsg asks for a new sensor reading. Gen ties the tick to the
// poll loop that scheduled it so a changed interval never doubles the loop.
type SensorTickMsg struct {
	Gen int
}

// SensorReadingMsg carries a completed reading.
type SensorReadingMsg struct {
	Gen     int
	Reading sensors.Reading
}

// =============================================================================
// SETTINGS MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// SettingsSavedMsg reports the result of persisting overlay changes.
type SettingsSavedMsg struct {
	Err error
}

// =============================================================================
// CLOCK MESSAGES
// =============================================================================

// ClockTickMsg refreshes the auto-off countdown.
type ClockTickMsg struct {
	Time time.Time
}
