// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package torch

import (
	"fmt"
	"os"
)

// checkWritable reports sysfs as unavailable; there is no LED class on Windows.
func checkWritable(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: %w", path, ErrUnavailable)
	}
	return nil
}
