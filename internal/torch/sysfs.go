// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package torch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jeranaias/smartflash-tui/internal/util"
)

// DefaultSysfsRoot is the Linux LED class directory.
const DefaultSysfsRoot = "/sys/class/leds"

// =============================================================================
// SYSFS DRIVER
// =============================================================================

// Sysfs drives a Linux LED class device by writing its brightness attribute.
type Sysfs struct {
	mu sync.Mutex

	name string
	dir  string
	max  int

	// level is the last requested percentage, used when SetTorch(true)
	// turns the LED back on.
	level int
}

// OpenSysfs discovers a flash LED under root (DefaultSysfsRoot when empty).
// With a non-empty led only that device is considered; otherwise the first
// LED (in name order) whose name contains "flash" or "torch" is used.
func OpenSysfs(root, led string) (*Sysfs, error) {
	if root == "" {
		root = DefaultSysfsRoot
	}

	name, err := discoverLED(root, led)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(root, name)

	maxRaw, err := readInt(filepath.Join(dir, "max_brightness"))
	if err != nil {
		return nil, fmt.Errorf("sysfs led %s: read max_brightness: %w", name, wrapFSError(err))
	}
	if maxRaw < 1 {
		maxRaw = 1
	}

	if err := checkWritable(filepath.Join(dir, "brightness")); err != nil {
		return nil, fmt.Errorf("sysfs led %s: %w", name, err)
	}

	return &Sysfs{name: name, dir: dir, max: maxRaw, level: 100}, nil
}

// FindLED returns the LED OpenSysfs would use under root without checking
// permissions.
func FindLED(root, led string) (string, error) {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return discoverLED(root, led)
}

func discoverLED(root, led string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("sysfs: %s: %w", root, wrapFSError(err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if led != "" {
		for _, n := range names {
			if n == led {
				return n, nil
			}
		}
		return "", fmt.Errorf("sysfs: led %q not found: %w", led, ErrUnavailable)
	}

	for _, n := range names {
		lower := strings.ToLower(n)
		if strings.Contains(lower, "flash") || strings.Contains(lower, "torch") {
			return n, nil
		}
	}
	return "", fmt.Errorf("sysfs: no flash or torch led in %s: %w", root, ErrUnavailable)
}

// ScaleLevel maps a percentage onto the device range. Non-zero levels
// never map below 1, so a dim request still lights the LED.
func ScaleLevel(level, maxRaw int) int {
	level = util.Clamp(level, 0, 100)
	if level == 0 {
		return 0
	}
	if maxRaw <= 1 {
		return 1
	}
	raw := level * maxRaw / 100
	if raw < 1 {
		raw = 1
	}
	return raw
}

// SetTorch switches the LED on at the last requested level, or off.
func (s *Sysfs) SetTorch(ctx context.Context, on bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := 0
	if on {
		raw = ScaleLevel(s.level, s.max)
	}
	return s.write(raw)
}

// SetBrightness sets the level in percent. LEDs with max_brightness 1 have
// no level control and return ErrUnsupported for levels other than 0 and 100.
func (s *Sysfs) SetBrightness(ctx context.Context, level int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	level = util.Clamp(level, 0, 100)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max <= 1 && level != 0 && level != 100 {
		return fmt.Errorf("sysfs led %s: level control: %w", s.name, ErrUnsupported)
	}
	if level > 0 {
		s.level = level
	}
	return s.write(ScaleLevel(level, s.max))
}

func (s *Sysfs) write(raw int) error {
	path := filepath.Join(s.dir, "brightness")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("sysfs led %s: %w", s.name, wrapFSError(err))
	}
	if _, err := f.WriteString(strconv.Itoa(raw)); err != nil {
		f.Close()
		return fmt.Errorf("sysfs led %s: write brightness: %w", s.name, wrapFSError(err))
	}
	return f.Close()
}

// Read returns the current level in percent, rounded up so a lit LED never
// reads as 0.
func (s *Sysfs) Read(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	raw, err := readInt(filepath.Join(s.dir, "brightness"))
	if err != nil {
		return 0, fmt.Errorf("sysfs led %s: read brightness: %w", s.name, wrapFSError(err))
	}
	if raw <= 0 {
		return 0, nil
	}
	pct := (raw*100 + s.max - 1) / s.max
	return util.Clamp(pct, 1, 100), nil
}

// Info describes the LED.
func (s *Sysfs) Info() Info {
	return Info{
		Driver:        DriverSysfs,
		Device:        s.name,
		MaxBrightness: s.max,
		Dimmable:      s.max > 1,
		Available:     true,
	}
}

// Close is a no-op; the LED is left as the last write set it.
func (s *Sysfs) Close() error { return nil }

// =============================================================================
// HELPERS
// =============================================================================

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func wrapFSError(err error) error {
	switch {
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermission, err)
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}
