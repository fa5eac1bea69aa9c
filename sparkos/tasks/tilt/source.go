package tilt

import (
	"fmt"

	"tiny3d/hal"
)

// AnalogSource reads sensor axes from HAL analog channels. Axis i maps to
// the i-th channel id passed to NewAnalogSource.
//
// A failed read returns the previous sample for that axis (zero before the
// first success).
type AnalogSource struct {
	chans  []hal.AnalogChannel
	last   []int32
	errors uint32
}

func NewAnalogSource(a hal.Analog, channels []int) (*AnalogSource, error) {
	if a == nil {
		return nil, fmt.Errorf("tilt: no analog inputs")
	}
	s := &AnalogSource{
		chans: make([]hal.AnalogChannel, len(channels)),
		last:  make([]int32, len(channels)),
	}
	for axis, id := range channels {
		ch := a.Channel(id)
		if ch == nil {
			return nil, fmt.Errorf("tilt: axis %d: analog channel %d not found (have %d)", axis, id, a.ChannelCount())
		}
		s.chans[axis] = ch
	}
	return s, nil
}

func (s *AnalogSource) ReadRaw(axis int) int32 {
	v, err := s.chans[axis].Read()
	if err != nil {
		s.errors++
		return s.last[axis]
	}
	s.last[axis] = int32(v)
	return s.last[axis]
}

// Errors returns the number of failed channel reads.
func (s *AnalogSource) Errors() uint32 { return s.errors }
