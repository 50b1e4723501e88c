// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/jeranaias/smartflash-tui/internal/config"
	"github.com/jeranaias/smartflash-tui/internal/sensors"
	"github.com/jeranaias/smartflash-tui/internal/torch"
)

// =============================================================================
// CHECK RESULTS
// =============================================================================

// Check statuses.
const (
	StatusChecking = "checking"
	StatusPass     = "pass"
	StatusWarn     = "warn"
	StatusFail     = "fail"
)

// CheckResult represents a system check result
type CheckResult struct {
	Name    string
	Status  string // "pass", "fail", "warn", "checking"
	Message string
	Fix     string
}

// checkNames lists the checks in the order they run.
var checkNames = []string{
	"Operating System",
	"Flash LED",
	"Battery Sensor",
	"Thermal Sensor",
	"Configuration",
}

// udevRulePath is where the permission fix is installed.
const udevRulePath = "/etc/udev/rules.d/99-smartflash.rules"

// UdevRule returns a udev rule that makes led writable by every user.
func UdevRule(led string) string {
	if led == "" {
		led = "*:flash"
	}
	return fmt.Sprintf(`ACTION=="add", SUBSYSTEM=="leds", KERNEL=="%s", RUN+="/bin/chmod 0666 /sys/class/leds/%%k/brightness"`, led)
}

// =============================================================================
// CHECKER
// =============================================================================

// Checker runs the system checks. Roots can be pointed at fixtures.
type Checker struct {
	GOOS       string
	LEDRoot    string
	LED        string
	Sensors    *sensors.Reader
	ConfigPath string

	// foundLED is the LED discovered by the last Flash LED check.
	foundLED string
}

// NewChecker returns a Checker for the live system.
func NewChecker(configPath string) *Checker {
	return &Checker{
		GOOS:       runtime.GOOS,
		LEDRoot:    torch.DefaultSysfsRoot,
		Sensors:    sensors.NewReader(),
		ConfigPath: configPath,
	}
}

// Pending returns one "checking" result per check.
func (c *Checker) Pending() []CheckResult {
	out := make([]CheckResult, len(checkNames))
	for i, name := range checkNames {
		out[i] = CheckResult{Name: name, Status: StatusChecking}
	}
	return out
}

// Run runs the check at index.
func (c *Checker) Run(index int) CheckResult {
	switch index {
	case 0:
		return c.checkOS()
	case 1:
		return c.checkLED()
	case 2:
		return c.checkBattery()
	case 3:
		return c.checkThermal()
	case 4:
		return c.checkConfig()
	}
	return CheckResult{Name: "unknown", Status: StatusFail, Message: fmt.Sprintf("no check %d", index)}
}

// FoundLED returns the LED name seen by the Flash LED check, if any.
func (c *Checker) FoundLED() string {
	return c.foundLED
}

func (c *Checker) checkOS() CheckResult {
	res := CheckResult{Name: checkNames[0], Message: c.GOOS + "/" + runtime.GOARCH}
	if c.GOOS == "linux" {
		res.Status = StatusPass
		return res
	}
	res.Status = StatusWarn
	res.Message += " (no sysfs LEDs)"
	res.Fix = "Use the simulated driver on this system"
	return res
}

func (c *Checker) checkLED() CheckResult {
	res := CheckResult{Name: checkNames[1]}
	if name, err := torch.FindLED(c.LEDRoot, c.LED); err == nil {
		c.foundLED = name
	}

	s, err := torch.OpenSysfs(c.LEDRoot, c.LED)
	switch {
	case err == nil:
		defer s.Close()
		info := s.Info()
		c.foundLED = info.Device
		res.Status = StatusPass
		res.Message = info.String()
	case errors.Is(err, torch.ErrPermission):
		res.Status = StatusFail
		res.Message = fmt.Sprintf("%s is not writable", c.foundLED)
		res.Fix = "Install a udev rule: " + udevRulePath
	case errors.Is(err, torch.ErrUnavailable):
		res.Status = StatusWarn
		res.Message = "No flash LED found"
		res.Fix = "Choose the simulated driver to try smartflash"
	default:
		res.Status = StatusFail
		res.Message = err.Error()
	}
	return res
}

func (c *Checker) checkBattery() CheckResult {
	res := CheckResult{Name: checkNames[2]}
	v, err := c.Sensors.Battery()
	if err != nil {
		res.Status = StatusWarn
		res.Message = "Unavailable (defaults will be shown)"
		return res
	}
	res.Status = StatusPass
	res.Message = fmt.Sprintf("%d%%", v)
	return res
}

func (c *Checker) checkThermal() CheckResult {
	res := CheckResult{Name: checkNames[3]}
	v, err := c.Sensors.Temperature()
	if err != nil {
		res.Status = StatusWarn
		res.Message = "Unavailable (defaults will be shown)"
		return res
	}
	res.Status = StatusPass
	res.Message = fmt.Sprintf("%d°C", v)
	return res
}

func (c *Checker) checkConfig() CheckResult {
	res := CheckResult{Name: checkNames[4], Status: StatusPass}
	if _, err := os.Stat(c.ConfigPath); err == nil {
		if _, err := config.LoadFromPath(c.ConfigPath); err != nil {
			res.Status = StatusFail
			res.Message = "Invalid: " + err.Error()
			res.Fix = "Setup will overwrite it"
			return res
		}
		res.Message = "Found " + c.ConfigPath
		return res
	}
	res.Message = "Will create " + c.ConfigPath
	return res
}

// =============================================================================
// DRIVER CHOICE
// =============================================================================

// DriverChoice is one selectable driver.
type DriverChoice struct {
	Driver      string
	Description string
}

// driverChoices lists the drivers offered by the wizard.
var driverChoices = []DriverChoice{
	{torch.DriverAuto, "Use the flash LED when present, otherwise no torch"},
	{torch.DriverSysfs, "Require the sysfs flash LED"},
	{torch.DriverSimulated, "In-memory torch for trying smartflash"},
	{torch.DriverNone, "No torch (controls only)"},
}

// RecommendedDriver picks the default choice from the check results.
func RecommendedDriver(results []CheckResult) int {
	for _, r := range results {
		if r.Name != checkNames[1] {
			continue
		}
		switch r.Status {
		case StatusPass:
			return 1
		case StatusWarn:
			return 2
		}
	}
	return 0
}

// =============================================================================
// CONFIG
// =============================================================================

// WriteConfig writes a configuration using driver and led. An existing
// readable file keeps its other settings; environment overrides are not
// written.
func WriteConfig(path, driver, led string) (*config.Config, error) {
	cfg, err := config.LoadStored(path)
	if err != nil {
		cfg = config.Default()
	}
	cfg.Torch.Driver = driver
	if driver == torch.DriverSysfs || driver == torch.DriverAuto {
		cfg.Torch.LED = led
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := config.SaveToPath(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return cfg, nil
}
