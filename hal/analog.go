package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type nullAnalog struct{}

func (nullAnalog) ChannelCount() int            { return 0 }
func (nullAnalog) Channel(id int) AnalogChannel { return nil }

type virtualAnalog struct {
	channels []AnalogChannel
}

func newVirtualAnalog(channels []AnalogChannel) Analog {
	if len(channels) == 0 {
		return nullAnalog{}
	}
	return &virtualAnalog{channels: channels}
}

func (a *virtualAnalog) ChannelCount() int { return len(a.channels) }

func (a *virtualAnalog) Channel(id int) AnalogChannel {
	if id < 0 || id >= len(a.channels) {
		return nil
	}
	return a.channels[id]
}

// waveChannel is a simulated axis that sweeps a triangle wave over
// [0, AnalogMax] once per period, starting at phase.
type waveChannel struct {
	mu   sync.Mutex
	name string

	t0     time.Time
	now    func() time.Time
	period time.Duration
	phase  time.Duration
}

func newWaveChannel(name string, period, phase time.Duration) AnalogChannel {
	return newWaveChannelWithClock(name, period, phase, time.Now)
}

func newWaveChannelWithClock(name string, period, phase time.Duration, now func() time.Time) AnalogChannel {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = 4 * time.Second
	}
	if phase < 0 {
		phase = 0
	}
	return &waveChannel{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		phase:  phase % period,
	}
}

func (c *waveChannel) Name() string { return c.name }

func (c *waveChannel) Read() (uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.now().Sub(c.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	pos := (elapsed + c.phase) % c.period
	half := c.period / 2
	if pos >= half {
		pos = c.period - pos
	}
	return uint16(int64(pos) * AnalogMax / int64(half)), nil
}

// manualAxes holds axis positions driven by discrete nudges (keys) or
// absolute updates (gamepad sticks).
type manualAxes struct {
	mu    sync.Mutex
	names []string
	pos   []uint16
}

func newManualAxes(names ...string) *manualAxes {
	m := &manualAxes{
		names: names,
		pos:   make([]uint16, len(names)),
	}
	for i := range m.pos {
		m.pos[i] = AnalogMax / 2
	}
	return m
}

func (m *manualAxes) nudge(axis, delta int) {
	if axis < 0 || axis >= len(m.pos) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := int(m.pos[axis]) + delta
	if v < 0 {
		v = 0
	}
	if v > AnalogMax {
		v = AnalogMax
	}
	m.pos[axis] = uint16(v)
}

func (m *manualAxes) set(axis int, v uint16) {
	if axis < 0 || axis >= len(m.pos) {
		return
	}
	if v > AnalogMax {
		v = AnalogMax
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos[axis] = v
}

type manualChannel struct {
	m    *manualAxes
	axis int
}

func (c manualChannel) Name() string { return c.m.names[c.axis] }

func (c manualChannel) Read() (uint16, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return c.m.pos[c.axis], nil
}

// countFromUnit maps a stick position in [-1, 1] onto [0, AnalogMax].
func countFromUnit(v float64) uint16 {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	return uint16((v + 1) / 2 * AnalogMax)
}

func analogNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return names
}
