// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support.
//
// Every command run with --json writes a single envelope to stdout.
// Human-readable messages go to stderr in that mode.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/sensors"
	"github.com/jeranaias/smartflash-tui/internal/torch"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the indented response to w.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// StateData is the flashlight state as reported by one-shot commands.
type StateData struct {
	On          bool           `json:"on"`
	Brightness  int            `json:"brightness"`
	Mode        flash.Mode     `json:"mode"`
	Battery     int            `json:"battery"`
	Temperature int            `json:"temperature"`
	LowBattery  bool           `json:"low_battery"`
	Hot         bool           `json:"hot"`
	Presets     []flash.Preset `json:"presets,omitempty"`
}

// NewStateData converts a controller snapshot.
func NewStateData(st flash.State) StateData {
	return StateData{
		On:          st.On,
		Brightness:  st.Brightness,
		Mode:        st.Mode,
		Battery:     st.Battery,
		Temperature: st.Temperature,
		LowBattery:  sensors.IsLowBattery(st.Battery),
		Hot:         sensors.IsHot(st.Temperature),
	}
}

// StatusData is the output of the status command.
type StatusData struct {
	State          StateData  `json:"state"`
	Torch          torch.Info `json:"torch"`
	AutoOffMinutes int        `json:"auto_off_minutes"`
	SensorsEnabled bool       `json:"sensors_enabled"`
	ConfigPath     string     `json:"config_path"`
}

// PresetsData is the output of the presets command.
type PresetsData struct {
	Presets []flash.Preset `json:"presets"`
	Active  string         `json:"active,omitempty"`
}

// SOSData is the output of the sos command.
type SOSData struct {
	Duration    string    `json:"duration"`
	BlinkPeriod string    `json:"blink_period"`
	Toggles     int       `json:"toggles"`
	State       StateData `json:"state"`
}

// VersionData is the output of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// ConfigPathData is the output of config path.
type ConfigPathData struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// ConfigValueData is the output of config get and config set.
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}
