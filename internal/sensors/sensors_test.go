// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sensors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeNode(t *testing.T, path, value string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(value+"\n"), 0644))
}

func TestBattery(t *testing.T) {
	root := t.TempDir()
	writeNode(t, filepath.Join(root, "AC", "capacity"), "100")
	writeNode(t, filepath.Join(root, "AC", "type"), "Mains")
	writeNode(t, filepath.Join(root, "BAT0", "capacity"), "64")
	writeNode(t, filepath.Join(root, "BAT0", "type"), "Battery")

	r := &Reader{PowerSupplyRoot: root}
	v, err := r.Battery()
	require.NoError(t, err)
	require.Equal(t, 64, v)
}

func TestBattery_SkipsInvalid(t *testing.T) {
	root := t.TempDir()
	writeNode(t, filepath.Join(root, "a", "capacity"), "garbage")
	writeNode(t, filepath.Join(root, "b", "capacity"), "140")
	writeNode(t, filepath.Join(root, "c", "capacity"), "12")

	v, err := (&Reader{PowerSupplyRoot: root}).Battery()
	require.NoError(t, err)
	require.Equal(t, 12, v)
}

func TestBattery_Missing(t *testing.T) {
	_, err := (&Reader{PowerSupplyRoot: t.TempDir()}).Battery()
	require.ErrorIs(t, err, ErrNoSensor)
}

func TestTemperature(t *testing.T) {
	root := t.TempDir()
	writeNode(t, filepath.Join(root, "thermal_zone10", "temp"), "90000")
	writeNode(t, filepath.Join(root, "thermal_zone0", "temp"), "0")
	writeNode(t, filepath.Join(root, "thermal_zone1", "temp"), "41500")

	v, err := (&Reader{ThermalRoot: root}).Temperature()
	require.NoError(t, err)
	require.Equal(t, 41, v, "zone0 is disabled; zone1 comes before zone10")
}

func TestTemperature_Freezing(t *testing.T) {
	tests := []struct {
		milli string
		want  int
	}{
		{"500", 0},
		{"-999", 0},
		{"-12000", -12},
	}
	for _, tt := range tests {
		root := t.TempDir()
		writeNode(t, filepath.Join(root, "thermal_zone0", "temp"), tt.milli)

		v, err := (&Reader{ThermalRoot: root}).Temperature()
		require.NoError(t, err, "reading %s", tt.milli)
		require.Equal(t, tt.want, v, "reading %s", tt.milli)
	}
}

func TestTemperature_Missing(t *testing.T) {
	_, err := (&Reader{ThermalRoot: t.TempDir()}).Temperature()
	require.ErrorIs(t, err, ErrNoSensor)
}

func TestUpdate_KeepsPrevious(t *testing.T) {
	psu := t.TempDir()
	writeNode(t, filepath.Join(psu, "battery", "capacity"), "18")

	r := &Reader{PowerSupplyRoot: psu, ThermalRoot: t.TempDir()}
	got := r.Update(Reading{Battery: 85, Temperature: 32})
	require.Equal(t, Reading{Battery: 18, Temperature: 32}, got)
	require.True(t, got.LowBattery())
	require.False(t, got.Hot())
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		battery, temp int
		low, hot      bool
	}{
		{85, 32, false, false},
		{20, 40, false, false},
		{19, 41, true, true},
		{0, 80, true, true},
	}
	for _, tt := range tests {
		r := Reading{Battery: tt.battery, Temperature: tt.temp}
		if r.LowBattery() != tt.low {
			t.Errorf("LowBattery(%d) = %v, want %v", tt.battery, r.LowBattery(), tt.low)
		}
		if r.Hot() != tt.hot {
			t.Errorf("Hot(%d) = %v, want %v", tt.temp, r.Hot(), tt.hot)
		}
	}
}
