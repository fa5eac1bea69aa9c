package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// AnalogMax is the full-scale analog reading (10-bit).
const AnalogMax = 1023

// AnalogChannel is one analog input, such as an accelerometer or joystick axis.
type AnalogChannel interface {
	Name() string
	// Read returns the latest sample in [0, AnalogMax].
	Read() (uint16, error)
}

// Analog provides access to analog input channels.
//
// Implementations may return nil for an unknown channel id.
type Analog interface {
	ChannelCount() int
	Channel(id int) AnalogChannel
}

// Time provides a base tick stream.
//
// One tick is one millisecond; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Analog() Analog
	Time() Time
}
