// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for smartflash.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.smartflash/config.toml
//   - ~/.smartflash/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/smartflash-tui/internal/flash"
	"github.com/jeranaias/smartflash-tui/internal/torch"
	"github.com/jeranaias/smartflash-tui/internal/util"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete smartflash configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Torch selects and tunes the hardware driver
	Torch TorchConfig `toml:"torch" json:"torch"`

	// Flash holds controller behaviour
	Flash FlashConfig `toml:"flash" json:"flash"`

	// Presets seeds the preset strip. Presets added at runtime are not saved.
	Presets []PresetConfig `toml:"presets" json:"presets"`

	// Sensors configures battery and temperature readouts
	Sensors SensorsConfig `toml:"sensors" json:"sensors"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// TorchConfig contains torch driver configuration.
type TorchConfig struct {
	// Driver is one of: auto, sysfs, simulated, none
	Driver string `toml:"driver" json:"driver"`
	// LED restricts sysfs discovery to one LED name (e.g. "white:flash")
	LED string `toml:"led" json:"led"`
	// SysfsRoot overrides /sys/class/leds
	SysfsRoot string `toml:"sysfs_root" json:"sysfs_root"`
	// CallTimeoutMs bounds every hardware call
	CallTimeoutMs int `toml:"call_timeout_ms" json:"call_timeout_ms"`
	// OffOnExit switches the torch off when the TUI exits
	OffOnExit bool `toml:"off_on_exit" json:"off_on_exit"`
}

// FlashConfig contains controller configuration.
type FlashConfig struct {
	// DefaultBrightness is the starting brightness (1-100)
	DefaultBrightness int `toml:"default_brightness" json:"default_brightness"`
	// AutoOffMinutes switches the torch off after this many minutes (0 = never)
	AutoOffMinutes int `toml:"auto_off_minutes" json:"auto_off_minutes"`
}

// PresetConfig is one seed preset.
type PresetConfig struct {
	ID    string `toml:"id" json:"id"`
	Label string `toml:"label" json:"label"`
	Value int    `toml:"value" json:"value"`
}

// SensorsConfig contains sensor readout configuration.
type SensorsConfig struct {
	// Enabled turns sysfs polling on; when off the default readings are shown
	Enabled bool `toml:"enabled" json:"enabled"`
	// PollIntervalSecs is the refresh period
	PollIntervalSecs int `toml:"poll_interval_secs" json:"poll_interval_secs"`
	// PowerSupplyRoot overrides /sys/class/power_supply
	PowerSupplyRoot string `toml:"power_supply_root" json:"power_supply_root"`
	// ThermalRoot overrides /sys/class/thermal
	ThermalRoot string `toml:"thermal_root" json:"thermal_root"`
	// DefaultBattery is shown until a real reading arrives
	DefaultBattery int `toml:"default_battery" json:"default_battery"`
	// DefaultTemperature is shown until a real reading arrives
	DefaultTemperature int `toml:"default_temperature" json:"default_temperature"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// Haptic rings the terminal bell on key actions
	Haptic bool `toml:"haptic" json:"haptic"`
	// ShowHelpBar shows the key hint line under the main screen
	ShowHelpBar bool `toml:"show_help_bar" json:"show_help_bar"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// File is the TUI log file (empty = ~/.smartflash/smartflash.log)
	File string `toml:"file" json:"file"`
	// Verbose adds file:line to log lines
	Verbose bool `toml:"verbose" json:"verbose"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Torch: TorchConfig{
			Driver:        torch.DriverAuto,
			CallTimeoutMs: 2000,
			OffOnExit:     true,
		},
		Flash: FlashConfig{
			DefaultBrightness: 50,
			AutoOffMinutes:    10,
		},
		Presets: DefaultPresets(),
		Sensors: SensorsConfig{
			Enabled:            true,
			PollIntervalSecs:   30,
			DefaultBattery:     85,
			DefaultTemperature: 32,
		},
		UI: UIConfig{
			Theme:       "auto",
			Haptic:      true,
			ShowHelpBar: true,
		},
	}
}

// DefaultPresets returns the seed presets.
func DefaultPresets() []PresetConfig {
	return []PresetConfig{
		{ID: "1", Label: "Reading", Value: 20},
		{ID: "2", Label: "Night", Value: 5},
		{ID: "3", Label: "Max", Value: 100},
	}
}

// CallTimeout returns Torch.CallTimeoutMs as a duration.
func (c *Config) CallTimeout() time.Duration {
	return time.Duration(c.Torch.CallTimeoutMs) * time.Millisecond
}

// AutoOff returns Flash.AutoOffMinutes as a duration (0 = disabled).
func (c *Config) AutoOff() time.Duration {
	return time.Duration(c.Flash.AutoOffMinutes) * time.Minute
}

// PollInterval returns Sensors.PollIntervalSecs as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Sensors.PollIntervalSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the smartflash configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".smartflash"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the TUI log file path: Log.File or the default.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "smartflash.log"), nil
}

// HistoryPath returns the shell history file path.
func HistoryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shell_history"), nil
}

// ActivePath returns the config file Load would read, or the TOML path if
// neither file exists.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that fails to parse is skipped; the returned config is still
// usable and the error is returned for informational purposes.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			continue
		}
		return cfg, nil
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		// Bad environment overrides; fall back to pure defaults.
		return Default(), fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Keys absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadStored returns what the file at path holds, without environment
// overrides or validation. A missing file yields Default(). Commands that
// edit the file start from this so runtime overrides are never written back.
func LoadStored(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

// decodeFile decodes path over the defaults, as JSON or TOML by extension.
func decodeFile(path string) (*Config, error) {
	cfg := Default()
	// A file that lists presets replaces the seed list rather than merging.
	cfg.Presets = nil

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveToPath saves cfg to path, as JSON when the path ends in .json and as
// TOML otherwise.
func SaveToPath(cfg *Config, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// EncodeTOML renders cfg as a commented TOML document.
func EncodeTOML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# smartflash configuration file")
	fmt.Fprintln(&buf, "# Generated by smartflash - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	data, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Torch
	// ==========================================================================

	if !torch.IsValidDriver(c.Torch.Driver) {
		errs = append(errs, ValidationError{
			Field:   "torch.driver",
			Message: fmt.Sprintf("invalid driver '%s', must be one of: %s", c.Torch.Driver, strings.Join(torch.Drivers, ", ")),
		})
	}
	if c.Torch.CallTimeoutMs < 50 || c.Torch.CallTimeoutMs > 60000 {
		errs = append(errs, ValidationError{
			Field:   "torch.call_timeout_ms",
			Message: fmt.Sprintf("must be between 50 and 60000, got %d", c.Torch.CallTimeoutMs),
		})
	}

	// ==========================================================================
	// Flash
	// ==========================================================================

	if !util.Between(c.Flash.DefaultBrightness, 1, 100) {
		errs = append(errs, ValidationError{
			Field:   "flash.default_brightness",
			Message: fmt.Sprintf("must be between 1 and 100, got %d", c.Flash.DefaultBrightness),
		})
	}
	if !util.Between(c.Flash.AutoOffMinutes, 0, 1440) {
		errs = append(errs, ValidationError{
			Field:   "flash.auto_off_minutes",
			Message: fmt.Sprintf("must be between 0 and 1440, got %d", c.Flash.AutoOffMinutes),
		})
	}

	// ==========================================================================
	// Presets
	// ==========================================================================

	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		field := fmt.Sprintf("presets[%d]", i)
		if strings.TrimSpace(p.Label) == "" {
			errs = append(errs, ValidationError{Field: field + ".label", Message: "must not be empty"})
		}
		if !util.Between(p.Value, 1, 100) {
			errs = append(errs, ValidationError{
				Field:   field + ".value",
				Message: fmt.Sprintf("must be between 1 and 100, got %d", p.Value),
			})
		}
		if seen[p.ID] {
			errs = append(errs, ValidationError{Field: field + ".id", Message: fmt.Sprintf("duplicate id '%s'", p.ID)})
		}
		seen[p.ID] = true
	}

	// ==========================================================================
	// Sensors
	// ==========================================================================

	if c.Sensors.PollIntervalSecs < 1 || c.Sensors.PollIntervalSecs > 3600 {
		errs = append(errs, ValidationError{
			Field:   "sensors.poll_interval_secs",
			Message: fmt.Sprintf("must be between 1 and 3600, got %d", c.Sensors.PollIntervalSecs),
		})
	}
	if !util.Between(c.Sensors.DefaultBattery, 0, 100) {
		errs = append(errs, ValidationError{
			Field:   "sensors.default_battery",
			Message: fmt.Sprintf("must be between 0 and 100, got %d", c.Sensors.DefaultBattery),
		})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero with defaults.
// Presets get sequential IDs when the file omits them.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Torch.Driver == "" {
		c.Torch.Driver = d.Torch.Driver
	}
	c.Torch.Driver = strings.ToLower(strings.TrimSpace(c.Torch.Driver))
	if c.Torch.CallTimeoutMs == 0 {
		c.Torch.CallTimeoutMs = d.Torch.CallTimeoutMs
	}
	if c.Flash.DefaultBrightness == 0 {
		c.Flash.DefaultBrightness = d.Flash.DefaultBrightness
	}
	if c.Presets == nil {
		c.Presets = d.Presets
	}
	for i := range c.Presets {
		if c.Presets[i].ID == "" {
			c.Presets[i].ID = strconv.Itoa(i + 1)
		}
	}
	if c.Sensors.PollIntervalSecs == 0 {
		c.Sensors.PollIntervalSecs = d.Sensors.PollIntervalSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - SMARTFLASH_DRIVER: overrides torch.driver
//   - SMARTFLASH_LED: overrides torch.led
//   - SMARTFLASH_BRIGHTNESS: overrides flash.default_brightness
//   - SMARTFLASH_AUTO_OFF: overrides flash.auto_off_minutes
//   - SMARTFLASH_THEME: overrides ui.theme
//   - SMARTFLASH_LOG: overrides log.file
//
// Unparseable numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if driver := os.Getenv("SMARTFLASH_DRIVER"); driver != "" {
		c.Torch.Driver = driver
	}
	if led := os.Getenv("SMARTFLASH_LED"); led != "" {
		c.Torch.LED = led
	}
	if v := os.Getenv("SMARTFLASH_BRIGHTNESS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Flash.DefaultBrightness = n
		}
	}
	if v := os.Getenv("SMARTFLASH_AUTO_OFF"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Flash.AutoOffMinutes = n
		}
	}
	if theme := os.Getenv("SMARTFLASH_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if logFile := os.Getenv("SMARTFLASH_LOG"); logFile != "" {
		c.Log.File = logFile
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "flash.auto_off_minutes").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct || field.Kind() == reflect.Slice {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strings.TrimSpace(strVal), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			switch strings.ToLower(strings.TrimSpace(strVal)) {
			case "1", "true", "yes", "on":
				field.SetBool(true)
			case "0", "false", "no", "off":
				field.SetBool(false)
			default:
				return fmt.Errorf("invalid boolean value: %q", strVal)
			}
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all settable configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("toml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Struct:
			collectKeys(f.Type, prefix+name+".", keys)
		case reflect.Slice:
			continue
		default:
			*keys = append(*keys, prefix+name)
		}
	}
}

// FlashPresets converts the configured presets for the controller.
func (c *Config) FlashPresets() []flash.Preset {
	out := make([]flash.Preset, 0, len(c.Presets))
	for _, p := range c.Presets {
		out = append(out, flash.Preset{ID: p.ID, Label: p.Label, Value: p.Value})
	}
	return out
}

// InitialState is the controller state before any hardware or sensor
// reading: torch off at the default brightness with the configured presets.
func (c *Config) InitialState() flash.State {
	st := flash.DefaultState()
	st.Brightness = flash.ClampBrightness(c.Flash.DefaultBrightness)
	st.Presets = c.FlashPresets()
	st.Battery = c.Sensors.DefaultBattery
	st.Temperature = c.Sensors.DefaultTemperature
	return st
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Presets != nil {
		clone.Presets = make([]PresetConfig, len(c.Presets))
		copy(clone.Presets, c.Presets)
	}
	return &clone
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
