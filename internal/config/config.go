// Package config holds the runtime parameters of the tilt pipeline: frame
// pacing and the list of input devices with their filter settings.
package config

import (
	"errors"
	"fmt"

	"tiny3d/sparkos/proto"
	"tiny3d/sparkos/sensor"
)

const (
	DefaultFrameIntervalTicks = 33
	DefaultLogEvery           = 30

	// MaxDevices keeps the startup burst to the term service (clear, mesh
	// line, one line per device) within one mailbox.
	MaxDevices = 6
)

var (
	ErrNoDevices = errors.New("no devices configured")
	ErrChannels  = errors.New("channel list does not match axis count")
	ErrZeroScale = errors.New("scale must be non-zero")
)

type Config struct {
	FrameIntervalTicks uint64   `yaml:"frame_interval_ticks"`
	LogEvery           uint64   `yaml:"log_every"`
	Devices            []Device `yaml:"devices"`
}

// Device describes one filtered input. Channels maps axis i to an analog
// channel id.
type Device struct {
	Name     string `yaml:"name"`
	Axes     int    `yaml:"axes"`
	Window   int    `yaml:"window"`
	Scale    Scale  `yaml:"scale"`
	Channels []int  `yaml:"channels"`
}

// Scale is a device scale factor. Zero means unset: Normalize replaces it,
// and a zero written explicitly in YAML is rejected.
type Scale float64

func presetScale(r sensor.Ratio) Scale { return Scale(float64(r.Num) / float64(r.Den)) }

// Default returns a single accelerometer on channels 0..2.
func Default() Config {
	d, _ := PresetDevice(sensor.AccelerometerConfig.Name, 0)
	return Config{
		FrameIntervalTicks: DefaultFrameIntervalTicks,
		LogEvery:           DefaultLogEvery,
		Devices:            []Device{d},
	}
}

// PresetDevice returns the built-in device called name with its axes mapped
// to consecutive channels starting at firstChannel.
func PresetDevice(name string, firstChannel int) (Device, bool) {
	p, ok := sensor.Preset(name)
	if !ok {
		return Device{}, false
	}
	d := Device{
		Name:     p.Name,
		Axes:     p.Axes,
		Window:   p.Window,
		Scale:    presetScale(p.Scale),
		Channels: make([]int, p.Axes),
	}
	for i := range d.Channels {
		d.Channels[i] = firstChannel + i
	}
	return d, true
}

// Normalize fills unset fields. A device named after a preset inherits the
// preset's axes, window and scale; any other device gets the default window,
// unit scale and consecutive channels from zero.
func (c *Config) Normalize() {
	if c.FrameIntervalTicks == 0 {
		c.FrameIntervalTicks = DefaultFrameIntervalTicks
	}
	for i := range c.Devices {
		d := &c.Devices[i]
		if p, ok := sensor.Preset(d.Name); ok {
			if d.Axes == 0 {
				d.Axes = p.Axes
			}
			if d.Window == 0 {
				d.Window = p.Window
			}
			if d.Scale == 0 {
				d.Scale = presetScale(p.Scale)
			}
		}
		if d.Window == 0 {
			d.Window = sensor.DefaultWindow
		}
		if d.Scale == 0 {
			d.Scale = 1
		}
		if len(d.Channels) == 0 && d.Axes > 0 {
			d.Channels = make([]int, d.Axes)
			for a := range d.Channels {
				d.Channels[a] = a
			}
		}
	}
}

func (c Config) Validate() error {
	if c.FrameIntervalTicks == 0 {
		return fmt.Errorf("config: frame_interval_ticks must be positive")
	}
	if len(c.Devices) == 0 {
		return fmt.Errorf("config: %w", ErrNoDevices)
	}
	if len(c.Devices) > MaxDevices {
		return fmt.Errorf("config: %d devices exceeds %d", len(c.Devices), MaxDevices)
	}
	seen := make(map[string]bool, len(c.Devices))
	for i, d := range c.Devices {
		if d.Name == "" {
			return fmt.Errorf("config: device %d: missing name", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("config: device %q: duplicate name", d.Name)
		}
		seen[d.Name] = true
		if err := d.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

func (d Device) Validate() error {
	if d.Axes > proto.MaxAngles {
		return fmt.Errorf("device %q: %d axes exceeds %d", d.Name, d.Axes, proto.MaxAngles)
	}
	if len(d.Channels) != d.Axes {
		return fmt.Errorf("device %q: %d channels for %d axes: %w", d.Name, len(d.Channels), d.Axes, ErrChannels)
	}
	for _, ch := range d.Channels {
		if ch < 0 {
			return fmt.Errorf("device %q: negative channel %d", d.Name, ch)
		}
	}
	if d.Scale == 0 {
		return fmt.Errorf("device %q: %w", d.Name, ErrZeroScale)
	}
	_, err := d.Sensor()
	return err
}

// Sensor converts d to a filter configuration.
func (d Device) Sensor() (sensor.Config, error) {
	scale, err := sensor.RatioFromFloat(float64(d.Scale))
	if err != nil {
		return sensor.Config{}, fmt.Errorf("device %q: %w", d.Name, err)
	}
	cfg := sensor.Config{Name: d.Name, Axes: d.Axes, Window: d.Window, Scale: scale}
	if _, err := sensor.NewFilter(cfg.Axes, cfg.Window, cfg.Scale); err != nil {
		return sensor.Config{}, fmt.Errorf("device %q: %w", d.Name, err)
	}
	return cfg, nil
}
