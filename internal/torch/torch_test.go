// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package torch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeLED creates <root>/<name>/{brightness,max_brightness}.
func fakeLED(t *testing.T, root, name string, maxBrightness int) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte("0\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "max_brightness"),
		[]byte(strconv.Itoa(maxBrightness)+"\n"), 0644))
	return dir
}

func readBrightness(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "brightness"))
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

// =============================================================================
// LEVEL MAPPING
// =============================================================================

func TestScaleLevel(t *testing.T) {
	tests := []struct {
		level, max, want int
	}{
		{0, 255, 0},
		{100, 255, 255},
		{50, 255, 127},
		{1, 255, 2},
		{1, 50, 1},
		{1, 10, 1},
		{20, 10, 2},
		{100, 1, 1},
		{30, 1, 1},
		{150, 255, 255},
		{-5, 255, 0},
	}
	for _, tt := range tests {
		if got := ScaleLevel(tt.level, tt.max); got != tt.want {
			t.Errorf("ScaleLevel(%d, %d) = %d, want %d", tt.level, tt.max, got, tt.want)
		}
	}
}

// =============================================================================
// SYSFS
// =============================================================================

func TestOpenSysfs_DiscoversFlashLED(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "mmc0::", 1)
	fakeLED(t, root, "white:flash", 255)
	fakeLED(t, root, "white:torch", 100)

	s, err := OpenSysfs(root, "")
	require.NoError(t, err)

	info := s.Info()
	require.Equal(t, "white:flash", info.Device)
	require.Equal(t, 255, info.MaxBrightness)
	require.True(t, info.Dimmable)
	require.True(t, info.Available)
}

func TestOpenSysfs_NamedLED(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "white:flash", 255)
	fakeLED(t, root, "led:torch", 10)

	s, err := OpenSysfs(root, "led:torch")
	require.NoError(t, err)
	require.Equal(t, "led:torch", s.Info().Device)

	_, err = OpenSysfs(root, "missing")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenSysfs_NoFlashLED(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "input0::capslock", 1)

	_, err := OpenSysfs(root, "")
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = OpenSysfs(filepath.Join(root, "does-not-exist"), "")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFindLED(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "input0::capslock", 1)
	fakeLED(t, root, "white:flash", 255)

	name, err := FindLED(root, "")
	require.NoError(t, err)
	require.Equal(t, "white:flash", name)

	_, err = FindLED(root, "red:torch")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenSysfs_ReadOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}
	root := t.TempDir()
	dir := fakeLED(t, root, "white:flash", 255)
	require.NoError(t, os.Chmod(filepath.Join(dir, "brightness"), 0444))

	_, err := OpenSysfs(root, "")
	require.ErrorIs(t, err, ErrPermission)
}

func TestSysfs_SetBrightnessAndTorch(t *testing.T) {
	root := t.TempDir()
	dir := fakeLED(t, root, "white:flash", 255)

	s, err := OpenSysfs(root, "")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.SetBrightness(ctx, 50))
	require.Equal(t, "127", readBrightness(t, dir))

	require.NoError(t, s.SetTorch(ctx, false))
	require.Equal(t, "0", readBrightness(t, dir))

	// Turning back on restores the last level.
	require.NoError(t, s.SetTorch(ctx, true))
	require.Equal(t, "127", readBrightness(t, dir))

	level, err := s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 50, level)

	require.NoError(t, s.SetBrightness(ctx, 1))
	require.Equal(t, "2", readBrightness(t, dir))

	require.NoError(t, s.SetTorch(ctx, false))
	level, err = s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, level)
}

func TestSysfs_OnOffOnly(t *testing.T) {
	root := t.TempDir()
	dir := fakeLED(t, root, "torch", 1)

	s, err := OpenSysfs(root, "")
	require.NoError(t, err)
	require.False(t, s.Info().Dimmable)
	ctx := context.Background()

	err = s.SetBrightness(ctx, 40)
	require.ErrorIs(t, err, ErrUnsupported)

	require.NoError(t, s.SetTorch(ctx, true))
	require.Equal(t, "1", readBrightness(t, dir))
	require.NoError(t, s.SetBrightness(ctx, 0))
	require.Equal(t, "0", readBrightness(t, dir))
}

func TestSysfs_CancelledContext(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "flash", 255)
	s, err := OpenSysfs(root, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.SetTorch(ctx, true), context.Canceled)
}

// =============================================================================
// SIMULATED / NONE
// =============================================================================

func TestSimulated_RecordsCalls(t *testing.T) {
	s := NewSimulated()
	ctx := context.Background()

	require.NoError(t, s.SetBrightness(ctx, 40))
	require.True(t, s.Lit())
	require.Equal(t, 40, s.Level())

	require.NoError(t, s.SetTorch(ctx, false))
	require.False(t, s.Lit())

	calls := s.Calls()
	require.Len(t, calls, 2)
	require.Equal(t, "brightness", calls[0].Op)
	require.Equal(t, "torch", calls[1].Op)
	require.Equal(t, 1, s.CountOp("torch"))

	s.Reset()
	require.Empty(t, s.Calls())
}

func TestSimulated_Failure(t *testing.T) {
	s := NewSimulated()
	boom := errors.New("boom")
	s.SetFailure(boom)

	require.ErrorIs(t, s.SetTorch(context.Background(), true), boom)
	require.False(t, s.Lit())
	require.Len(t, s.Calls(), 1)
}

func TestSimulated_DelayRespectsContext(t *testing.T) {
	s := NewSimulated()
	s.SetDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.SetTorch(ctx, true)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSimulated_NotDimmable(t *testing.T) {
	s := NewSimulated()
	s.SetDimmable(false)
	require.ErrorIs(t, s.SetBrightness(context.Background(), 50), ErrUnsupported)
	require.Equal(t, 1, s.Info().MaxBrightness)
}

func TestNone(t *testing.T) {
	n := NewNone("no flash led")
	ctx := context.Background()

	require.ErrorIs(t, n.SetTorch(ctx, true), ErrUnavailable)
	require.ErrorIs(t, n.SetBrightness(ctx, 50), ErrUnavailable)
	require.False(t, n.Info().Available)
	require.Contains(t, n.Info().String(), "no flash led")
	require.NoError(t, n.Close())
}

// =============================================================================
// OPEN
// =============================================================================

func TestOpen(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "white:flash", 255)
	empty := t.TempDir()

	tests := []struct {
		name       string
		opts       Options
		wantDriver string
		wantErr    error
	}{
		{"auto finds sysfs", Options{SysfsRoot: root}, DriverSysfs, nil},
		{"auto falls back", Options{Driver: "auto", SysfsRoot: empty}, DriverNone, nil},
		{"sysfs explicit", Options{Driver: "sysfs", SysfsRoot: root}, DriverSysfs, nil},
		{"sysfs missing", Options{Driver: "sysfs", SysfsRoot: empty}, "", ErrUnavailable},
		{"simulated", Options{Driver: "Simulated"}, DriverSimulated, nil},
		{"none", Options{Driver: "none"}, DriverNone, nil},
		{"unknown", Options{Driver: "camera2"}, "", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Open(tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantDriver, tr.Info().Driver)
		})
	}
}

func TestIsValidDriver(t *testing.T) {
	for _, d := range append(Drivers, "", " SYSFS ") {
		if !IsValidDriver(d) {
			t.Errorf("IsValidDriver(%q) = false, want true", d)
		}
	}
	if IsValidDriver("camera2") {
		t.Error("IsValidDriver(\"camera2\") = true, want false")
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Driver: "sysfs", Device: "white:flash", MaxBrightness: 255, Dimmable: true, Available: true},
			"sysfs white:flash (dimmable, max 255)"},
		{Info{Driver: "sysfs", Device: "torch", MaxBrightness: 1, Available: true},
			"sysfs torch (on/off)"},
		{Info{Driver: "none"}, "none (unavailable)"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("Info.String() = %q, want %q", got, tt.want)
		}
	}
}
