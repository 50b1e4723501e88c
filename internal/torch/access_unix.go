// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package torch

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// checkWritable probes write access without opening the attribute, so
// discovery does not change the LED.
func checkWritable(path string) error {
	if err := unix.Access(path, unix.W_OK); err != nil {
		if err == unix.ENOENT {
			return fmt.Errorf("%s: %w", path, ErrUnavailable)
		}
		return fmt.Errorf("%s: %w", path, ErrPermission)
	}
	return nil
}
