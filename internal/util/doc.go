// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across smartflash.
//
// # Key Functions
//
//   - Clamp, Between: generic range helpers used for brightness levels
//   - TruncateWidth, StringWidth: column-aware truncation for preset chips
//   - NormalizeLabel: whitespace folding and NFC normalization for preset labels
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	level := util.Clamp(v, 1, 100)
//	chip := util.TruncateWidth(preset.Label, 8)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
