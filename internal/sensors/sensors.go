// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sensors reads battery level and device temperature from sysfs.
//
// Readings are best-effort. When a value cannot be read, Update keeps the
// previous one so the readouts never go blank.
package sensors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Default sysfs locations and thresholds.
const (
	DefaultPowerSupplyRoot = "/sys/class/power_supply"
	DefaultThermalRoot     = "/sys/class/thermal"

	// LowBatteryThreshold: readings below this are shown as low.
	LowBatteryThreshold = 20
	// HotThreshold: temperatures above this (°C) are shown as hot.
	HotThreshold = 40

	DefaultPollInterval = 30 * time.Second
)

// ErrNoSensor is returned when no matching sysfs node exists.
var ErrNoSensor = errors.New("sensor not found")

// Reading is one battery/temperature sample.
type Reading struct {
	Battery     int `json:"battery"`
	Temperature int `json:"temperature"`
}

// LowBattery reports whether the battery reading is below the threshold.
func (r Reading) LowBattery() bool { return IsLowBattery(r.Battery) }

// Hot reports whether the temperature reading is above the threshold.
func (r Reading) Hot() bool { return IsHot(r.Temperature) }

// IsLowBattery reports pct < LowBatteryThreshold.
func IsLowBattery(pct int) bool { return pct < LowBatteryThreshold }

// IsHot reports celsius > HotThreshold.
func IsHot(celsius int) bool { return celsius > HotThreshold }

// =============================================================================
// READER
// =============================================================================

// Reader reads sensors from sysfs roots. The zero value uses the defaults.
type Reader struct {
	PowerSupplyRoot string
	ThermalRoot     string
}

// NewReader returns a Reader for the default sysfs locations.
func NewReader() *Reader {
	return &Reader{PowerSupplyRoot: DefaultPowerSupplyRoot, ThermalRoot: DefaultThermalRoot}
}

// Battery returns the charge percentage of the first battery supply. Supplies
// whose type is "Battery" are preferred over any other supply exposing a
// capacity attribute.
func (r *Reader) Battery() (int, error) {
	root := r.PowerSupplyRoot
	if root == "" {
		root = DefaultPowerSupplyRoot
	}
	paths, _ := filepath.Glob(filepath.Join(root, "*", "capacity"))
	if len(paths) == 0 {
		return 0, fmt.Errorf("battery: %s: %w", root, ErrNoSensor)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return isBatterySupply(paths[i]) && !isBatterySupply(paths[j])
	})

	var lastErr error
	for _, p := range paths {
		v, err := readInt(p)
		if err != nil {
			lastErr = err
			continue
		}
		if v < 0 || v > 100 {
			lastErr = fmt.Errorf("%s: capacity %d out of range", p, v)
			continue
		}
		return v, nil
	}
	return 0, fmt.Errorf("battery: %w", lastErr)
}

func isBatterySupply(capacityPath string) bool {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(capacityPath), "type"))
	return err == nil && strings.EqualFold(strings.TrimSpace(string(data)), "Battery")
}

// Temperature returns the first plausible thermal zone reading in whole
// degrees Celsius. Zones report millidegrees.
func (r *Reader) Temperature() (int, error) {
	root := r.ThermalRoot
	if root == "" {
		root = DefaultThermalRoot
	}
	paths, _ := filepath.Glob(filepath.Join(root, "thermal_zone*", "temp"))
	if len(paths) == 0 {
		return 0, fmt.Errorf("temperature: %s: %w", root, ErrNoSensor)
	}
	sort.Slice(paths, func(i, j int) bool { return zoneIndex(paths[i]) < zoneIndex(paths[j]) })

	var lastErr error
	for _, p := range paths {
		milli, err := readInt(p)
		if err != nil {
			lastErr = err
			continue
		}
		c := milli / 1000
		// Disabled zones report exactly 0 or large negative values.
		if milli == 0 || c <= -40 || c > 150 {
			lastErr = fmt.Errorf("%s: implausible reading %d", p, milli)
			continue
		}
		return c, nil
	}
	return 0, fmt.Errorf("temperature: %w", lastErr)
}

func zoneIndex(tempPath string) int {
	zone := filepath.Base(filepath.Dir(tempPath))
	n, err := strconv.Atoi(strings.TrimPrefix(zone, "thermal_zone"))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

// Update returns prev with every readable value replaced by a fresh sample.
func (r *Reader) Update(prev Reading) Reading {
	out := prev
	if v, err := r.Battery(); err == nil {
		out.Battery = v
	}
	if v, err := r.Temperature(); err == nil {
		out.Temperature = v
	}
	return out
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}
