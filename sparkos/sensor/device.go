package sensor

import "fmt"

// Source supplies one raw, unscaled sample per axis (e.g. 0..1023 ADC counts).
//
// ReadRaw is called synchronously once per axis per poll and must not block.
type Source interface {
	ReadRaw(axis int) int32
}

// SourceFunc adapts a function to Source.
type SourceFunc func(axis int) int32

func (fn SourceFunc) ReadRaw(axis int) int32 { return fn(axis) }

// Config describes one input device.
type Config struct {
	Name   string
	Axes   int
	Window int
	Scale  Ratio
}

// DefaultWindow is the number of samples averaged per axis.
const DefaultWindow = 10

// AccelerometerConfig is a 3-axis analog accelerometer (ADXL335 style).
var AccelerometerConfig = Config{
	Name:   "accelerometer",
	Axes:   3,
	Window: DefaultWindow,
	Scale:  Unity,
}

// JoystickConfig is a 2-axis thumb joystick; its angles are scaled by 0.35.
var JoystickConfig = Config{
	Name:   "joystick",
	Axes:   2,
	Window: DefaultWindow,
	Scale:  Ratio{Num: 35, Den: 100},
}

// Preset returns the built-in config with the given name.
func Preset(name string) (Config, bool) {
	switch name {
	case AccelerometerConfig.Name, "accel":
		return AccelerometerConfig, true
	case JoystickConfig.Name:
		return JoystickConfig, true
	}
	return Config{}, false
}

// Device binds a Filter to a raw-sample Source.
type Device struct {
	name string
	src  Source
	f    *Filter
}

// NewDevice validates cfg and returns a device with all slots zeroed.
func NewDevice(cfg Config, src Source) (*Device, error) {
	if src == nil {
		return nil, fmt.Errorf("sensor: %s: nil source", cfg.Name)
	}
	f, err := NewFilter(cfg.Axes, cfg.Window, cfg.Scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return &Device{name: cfg.Name, src: src, f: f}, nil
}

// NewAccelerometer returns a three-axis device with unit scale reading src.
func NewAccelerometer(src Source) (*Device, error) { return NewDevice(AccelerometerConfig, src) }

// NewJoystick returns a two-axis device scaled by 35/100 reading src.
func NewJoystick(src Source) (*Device, error) { return NewDevice(JoystickConfig, src) }

// Name returns the device name used in logs and status lines.
func (d *Device) Name() string { return d.name }

// AxisCount returns the number of axes Poll reads.
func (d *Device) AxisCount() int { return d.f.AxisCount() }

// Filter returns the device's filter.
func (d *Device) Filter() *Filter { return d.f }

// Angle returns the last angle computed for axis.
func (d *Device) Angle(axis int) int { return d.f.Angle(axis) }

// Poll reads every axis once, in order, and appends the new angles to dst.
func (d *Device) Poll(dst []int) []int {
	for axis := 0; axis < d.f.AxisCount(); axis++ {
		dst = append(dst, d.f.Update(axis, d.src.ReadRaw(axis)))
	}
	return dst
}

// Angles appends the last computed angles to dst without reading the source.
func (d *Device) Angles(dst []int) []int {
	for axis := 0; axis < d.f.AxisCount(); axis++ {
		dst = append(dst, d.f.Angle(axis))
	}
	return dst
}
