// Package tilt polls the input devices once per frame and publishes their
// angles to the terminal.
package tilt

import (
	"fmt"
	"strings"

	"tiny3d/hal"
	logclient "tiny3d/sparkos/client/logger"
	termclient "tiny3d/sparkos/client/term"
	"tiny3d/sparkos/kernel"
	"tiny3d/sparkos/mesh"
	"tiny3d/sparkos/sensor"
)

// Config controls frame pacing.
type Config struct {
	// FrameInterval is the number of ticks between polls.
	FrameInterval uint64
	// LogEvery logs the angles every N frames; zero disables it.
	LogEvery uint64
}

// Task owns the devices: nothing else may call Poll on them.
type Task struct {
	cfg     Config
	devices []*sensor.Device
	model   mesh.Model
	led     hal.LED

	logCap  kernel.Capability
	termCap kernel.Capability

	started bool
	next    uint64
	frames  uint64
	ledOn   bool
	buf     []int
}

func New(cfg Config, devices []*sensor.Device, model mesh.Model, led hal.LED, logCap, termCap kernel.Capability) *Task {
	if cfg.FrameInterval == 0 {
		cfg.FrameInterval = 1
	}
	return &Task{
		cfg:     cfg,
		devices: devices,
		model:   model,
		led:     led,
		logCap:  logCap,
		termCap: termCap,
	}
}

// Frames returns the number of frames polled so far.
func (t *Task) Frames() uint64 { return t.frames }

func (t *Task) Step(ctx *kernel.Context) {
	if !t.started {
		// Stay runnable so the logger drains the startup lines before the
		// first frame.
		t.start(ctx)
		return
	}

	if now := ctx.NowTick(); now >= t.next {
		t.frame(ctx)
		t.next = now + t.cfg.FrameInterval
	}
	ctx.BlockOnTick()
}

func (t *Task) start(ctx *kernel.Context) {
	t.started = true
	termclient.Clear(ctx, t.termCap)

	if err := mesh.Validate(t.model); err != nil {
		t.report(ctx, fmt.Sprintf("mesh %s: invalid: %v", t.model.Name(), err))
	} else {
		t.report(ctx, fmt.Sprintf("mesh %s: %d vertices, %d faces", t.model.Name(), t.model.VertexCount(), t.model.FaceCount()))
	}

	n := 0
	for _, d := range t.devices {
		f := d.Filter()
		t.report(ctx, fmt.Sprintf("device %s: axes=%d window=%d scale=%s", d.Name(), f.AxisCount(), f.Window(), f.Scale()))
		if d.AxisCount() > n {
			n = d.AxisCount()
		}
	}
	t.buf = make([]int, 0, n)
}

// report sends line to the logger and echoes it on the console.
func (t *Task) report(ctx *kernel.Context, line string) {
	logclient.Log(ctx, t.logCap, line)
	t.consoleLine(ctx, line)
}

// consoleLine writes line to the console, cut to fit one message so the
// trailing newline is never lost.
func (t *Task) consoleLine(ctx *kernel.Context, line string) {
	if len(line) >= kernel.MaxMessageBytes {
		line = line[:kernel.MaxMessageBytes-1]
	}
	termclient.WriteString(ctx, t.termCap, line+"\n")
}

func (t *Task) frame(ctx *kernel.Context) {
	logNow := t.cfg.LogEvery > 0 && t.frames%t.cfg.LogEvery == 0
	var console strings.Builder
	for i, d := range t.devices {
		t.buf = d.Poll(t.buf[:0])
		termclient.Angles(ctx, t.termCap, uint8(i), t.buf)
		if logNow {
			line := fmt.Sprintf("%s %v", d.Name(), t.buf)
			logclient.Log(ctx, t.logCap, line)
			if i > 0 {
				console.WriteByte(' ')
			}
			console.WriteString(line)
		}
	}
	if logNow {
		// All devices share one console line per frame.
		t.consoleLine(ctx, console.String())
	}
	t.frames++

	if t.led != nil {
		t.ledOn = !t.ledOn
		if t.ledOn {
			t.led.High()
		} else {
			t.led.Low()
		}
	}
}
