// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Command flashsetup is the smartflash first-run setup wizard.

# Overview

The wizard checks the host for a sysfs flash LED and battery/thermal sensors,
offers a torch driver based on what it found and writes the configuration
file smartflash reads at startup. When the LED exists but is not writable it
prints a udev rule that fixes the permissions.

# Usage

	flashsetup                   # full-screen wizard
	flashsetup --text            # plain prompts, easy to copy/paste
	flashsetup --config PATH     # write PATH instead of the default

# Checks

  - Operating System: sysfs LEDs need Linux
  - Flash LED: discovery under /sys/class/leds and write permission
  - Battery Sensor: /sys/class/power_supply capacity
  - Thermal Sensor: /sys/class/thermal zones
  - Configuration: an existing file must parse; otherwise it is created

# Building

	go build -o flashsetup ./cmd/flashsetup
*/
package main
