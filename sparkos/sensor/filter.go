// Package sensor smooths raw analog samples into rotation angles.
//
// A Filter holds one AxisBuffer per axis. Each update pushes a raw sample into
// the axis window, scales the floored window average by an exact Ratio and
// reduces it to [0, 360) with floored modulo. The accelerometer and joystick
// devices are two configurations of the same Filter.
package sensor

import (
	"errors"
	"fmt"
)

// FullTurn is the angle modulus in degrees.
const FullTurn = 360

var (
	ErrWindow    = errors.New("window must be at least 1")
	ErrAxisCount = errors.New("axis count must be at least 1")
	ErrScale     = errors.New("scale denominator must be positive")
)

func errWindow(n int) error { return fmt.Errorf("sensor: window %d: %w", n, ErrWindow) }

// Filter is a set of independent sliding-window averages sharing a window
// size and a scale factor.
type Filter struct {
	axes   []AxisBuffer
	angles []int
	window int
	scale  Ratio
}

// NewFilter allocates a zeroed filter. It fails if axes < 1, window < 1 or
// the scale denominator is not positive.
func NewFilter(axes, window int, scale Ratio) (*Filter, error) {
	if axes < 1 {
		return nil, fmt.Errorf("sensor: axes %d: %w", axes, ErrAxisCount)
	}
	if window < 1 {
		return nil, errWindow(window)
	}
	if !scale.valid() {
		return nil, fmt.Errorf("sensor: scale %s: %w", scale, ErrScale)
	}

	f := &Filter{
		axes:   make([]AxisBuffer, axes),
		angles: make([]int, axes),
		window: window,
		scale:  scale,
	}
	// All axes share one backing array.
	slots := make([]int32, axes*window)
	for i := range f.axes {
		f.axes[i].slots = slots[i*window : (i+1)*window : (i+1)*window]
	}
	return f, nil
}

// Update feeds one raw sample into axis and returns the new angle in [0, 360).
func (f *Filter) Update(axis int, raw int32) int {
	avg := f.axes[axis].Push(raw)
	a := int(floorMod(f.scale.Apply(avg), FullTurn))
	f.angles[axis] = a
	return a
}

// Angle returns the last angle computed for axis (0 before the first update).
func (f *Filter) Angle(axis int) int { return f.angles[axis] }

// Axis exposes the buffer behind axis for inspection.
func (f *Filter) Axis(axis int) *AxisBuffer { return &f.axes[axis] }

// AxisCount, Window and Scale report the parameters the filter was built with.
func (f *Filter) AxisCount() int { return len(f.axes) }
func (f *Filter) Window() int    { return f.window }
func (f *Filter) Scale() Ratio   { return f.scale }

// Reset returns every axis to its startup state.
func (f *Filter) Reset() {
	for i := range f.axes {
		f.axes[i].Reset()
		f.angles[i] = 0
	}
}
