// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for smartflash.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation and hot reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - TorchConfig: Driver selection and hardware call timeout
//   - FlashConfig: Default brightness, auto-off and SOS period
//   - Watcher: fsnotify-based reload of the active config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SMARTFLASH_*)
//   - ~/.smartflash/config.toml
//   - ~/.smartflash/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
//	}
//	autoOff := cfg.AutoOff()
package config
