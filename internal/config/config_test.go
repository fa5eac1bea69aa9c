//go:build !tinygo

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiny3d/sparkos/sensor"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	want := Config{
		FrameIntervalTicks: 33,
		LogEvery:           30,
		Devices: []Device{{
			Name:     "accelerometer",
			Axes:     3,
			Window:   10,
			Scale:    1,
			Channels: []int{0, 1, 2},
		}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestPresetDevice(t *testing.T) {
	d, ok := PresetDevice("joystick", 3)
	require.True(t, ok)
	assert.Equal(t, 2, d.Axes)
	assert.Equal(t, []int{3, 4}, d.Channels)
	assert.InDelta(t, 0.35, float64(d.Scale), 1e-9)

	sc, err := d.Sensor()
	require.NoError(t, err)
	assert.Equal(t, sensor.Ratio{Num: 7, Den: 20}, sc.Scale)
	assert.Equal(t, int64(350), sc.Scale.Apply(1000))

	_, ok = PresetDevice("gyro", 0)
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	const doc = `
frame_interval_ticks: 20
log_every: 0
devices:
  - name: accelerometer
    channels: [2, 1, 0]
  - name: joystick
    channels: [3, 4]
  - name: knob
    axes: 1
    scale: 0.5
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	want := Config{
		FrameIntervalTicks: 20,
		LogEvery:           0,
		Devices: []Device{
			{Name: "accelerometer", Axes: 3, Window: 10, Scale: 1, Channels: []int{2, 1, 0}},
			{Name: "joystick", Axes: 2, Window: 10, Scale: 0.35, Channels: []int{3, 4}},
			{Name: "knob", Axes: 1, Window: 10, Scale: 0.5, Channels: []int{0}},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "frame_rate: 3\n",
		"no devices":    "devices: []\n",
		"zero window":   "devices:\n  - name: a\n    axes: 1\n    window: -1\n",
		"channels":      "devices:\n  - name: a\n    axes: 2\n    channels: [0]\n",
		"negative chan": "devices:\n  - name: a\n    axes: 1\n    channels: [-1]\n",
		"no axes":       "devices:\n  - name: a\n",
		"duplicate":     "devices:\n  - name: joystick\n  - name: joystick\n",
		"missing name":  "devices:\n  - axes: 1\n",
		"too many axes": "devices:\n  - name: a\n    axes: 64\n",
		"bad yaml":      "devices: [\n",
		"zero scale":    "devices:\n  - name: a\n    axes: 1\n    scale: 0\n",
		"huge scale":    "devices:\n  - name: a\n    axes: 1\n    scale: 1e16\n",
		"1e300 scale":   "devices:\n  - name: a\n    axes: 1\n    scale: 1e300\n",
		"tiny scale":    "devices:\n  - name: a\n    axes: 1\n    scale: 0.00001\n",
		"scale string":  "devices:\n  - name: a\n    axes: 1\n    scale: big\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestValidateErrors(t *testing.T) {
	cfg := Default()
	cfg.Devices = nil
	assert.ErrorIs(t, cfg.Validate(), ErrNoDevices)

	cfg = Default()
	cfg.Devices[0].Channels = []int{0}
	assert.ErrorIs(t, cfg.Validate(), ErrChannels)

	cfg = Default()
	cfg.Devices[0].Window = 0
	assert.ErrorIs(t, cfg.Validate(), sensor.ErrWindow)

	cfg = Default()
	cfg.FrameIntervalTicks = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Devices[0].Scale = 0
	assert.ErrorIs(t, cfg.Validate(), ErrZeroScale)

	cfg = Default()
	cfg.Devices[0].Scale = 1e16
	assert.ErrorIs(t, cfg.Validate(), sensor.ErrScale)

	cfg = Default()
	cfg.Devices[0].Scale = 0.00001
	assert.ErrorIs(t, cfg.Validate(), sensor.ErrScale)
}

func TestDecodeZeroScaleIsNotDefaulted(t *testing.T) {
	_, err := Decode(strings.NewReader("devices:\n  - name: joystick\n    scale: 0\n"))
	assert.ErrorIs(t, err, ErrZeroScale)

	cfg, err := Decode(strings.NewReader("devices:\n  - name: joystick\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.35, float64(cfg.Devices[0].Scale), 1e-9)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny3d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_every: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), cfg.LogEvery)
	assert.Equal(t, uint64(DefaultFrameIntervalTicks), cfg.FrameIntervalTicks)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
