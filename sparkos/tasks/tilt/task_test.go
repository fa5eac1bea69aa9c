package tilt

import (
	"errors"
	"strings"
	"testing"

	"tiny3d/hal"
	"tiny3d/sparkos/kernel"
	"tiny3d/sparkos/mesh"
	"tiny3d/sparkos/sensor"
	logsvc "tiny3d/sparkos/services/logger"
	termsvc "tiny3d/sparkos/services/term"
)

type lineSink struct{ lines []string }

func (s *lineSink) WriteLineString(v string) { s.lines = append(s.lines, v) }
func (s *lineSink) WriteLineBytes(b []byte)  { s.lines = append(s.lines, string(b)) }

type countLED struct{ high, low int }

func (l *countLED) High() { l.high++ }
func (l *countLED) Low()  { l.low++ }

type rig struct {
	k    *kernel.Kernel
	task *Task
	term *termsvc.Service
	sink *lineSink
	led  *countLED
}

func newRig(t *testing.T, cfg Config, model mesh.Model, devices ...*sensor.Device) *rig {
	t.Helper()
	return newDisplayRig(t, nil, cfg, model, devices...)
}

func newDisplayRig(t *testing.T, disp hal.Display, cfg Config, model mesh.Model, devices ...*sensor.Device) *rig {
	t.Helper()
	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	termEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	var names []string
	for _, d := range devices {
		names = append(names, d.Name())
	}

	r := &rig{k: k, sink: &lineSink{}, led: &countLED{}}
	r.term = termsvc.New(disp, termEP.Restrict(kernel.RightRecv), names)
	r.task = New(cfg, devices, model, r.led, logEP.Restrict(kernel.RightSend), termEP.Restrict(kernel.RightSend))
	k.AddTask(logsvc.New(r.sink, logEP.Restrict(kernel.RightRecv)))
	k.AddTask(r.term)
	k.AddTask(r.task)
	return r
}

// runTicks runs the initial idle pass and then ticks 1..n.
func (r *rig) runTicks(n uint64) {
	r.k.Run(100)
	for tick := uint64(1); tick <= n; tick++ {
		r.k.Tick(tick)
		r.k.Run(100)
	}
}

func constSource(v int32, reads *int) sensor.Source {
	return sensor.SourceFunc(func(int) int32 {
		*reads++
		return v
	})
}

func TestTaskPublishesSmoothedAngles(t *testing.T) {
	var accelReads, joyReads int
	accel, err := sensor.NewAccelerometer(constSource(1000, &accelReads))
	if err != nil {
		t.Fatalf("NewAccelerometer: %v", err)
	}
	joy, err := sensor.NewJoystick(constSource(1000, &joyReads))
	if err != nil {
		t.Fatalf("NewJoystick: %v", err)
	}

	r := newRig(t, Config{FrameInterval: 1, LogEvery: 5}, mesh.Cube, accel, joy)
	r.runTicks(9)

	if r.task.Frames() != 10 {
		t.Fatalf("Frames = %d, want 10", r.task.Frames())
	}
	if accelReads != 30 || joyReads != 20 {
		t.Fatalf("reads = %d/%d, want 30/20", accelReads, joyReads)
	}

	if got := r.term.Angles(0); len(got) != 3 || got[0] != 280 || got[1] != 280 || got[2] != 280 {
		t.Fatalf("accelerometer angles = %v, want [280 280 280]", got)
	}
	if got := r.term.Angles(1); len(got) != 2 || got[0] != 350 || got[1] != 350 {
		t.Fatalf("joystick angles = %v, want [350 350]", got)
	}

	want := []string{
		"mesh cube: 8 vertices, 12 faces",
		"device accelerometer: axes=3 window=10 scale=1",
		"device joystick: axes=2 window=10 scale=35/100",
		"accelerometer [100 100 100]",
		"joystick [35 35]",
		"accelerometer [240 240 240]",
		"joystick [210 210]",
	}
	if strings.Join(r.sink.lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("log lines:\n%s\nwant:\n%s", strings.Join(r.sink.lines, "\n"), strings.Join(want, "\n"))
	}

	if r.led.high != 5 || r.led.low != 5 {
		t.Fatalf("led high/low = %d/%d, want 5/5", r.led.high, r.led.low)
	}
}

func TestTaskFrameInterval(t *testing.T) {
	var reads int
	accel, _ := sensor.NewAccelerometer(constSource(1, &reads))
	r := newRig(t, Config{FrameInterval: 33}, mesh.Cube, accel)

	r.runTicks(100)
	// Frames at ticks 0, 33, 66, 99.
	if r.task.Frames() != 4 {
		t.Fatalf("Frames = %d, want 4", r.task.Frames())
	}
	if len(r.sink.lines) != 2 {
		t.Fatalf("LogEvery=0 should only log startup, got %q", r.sink.lines)
	}
}

func TestTaskReportsInvalidMesh(t *testing.T) {
	var reads int
	accel, _ := sensor.NewAccelerometer(constSource(0, &reads))
	open := mesh.NewModel("sheet",
		[]mesh.Vertex3D{{}, {X: mesh.Precision}, {Y: mesh.Precision}},
		[]mesh.Face{{0, 1, 2}}, nil)
	r := newRig(t, Config{}, open, accel)
	r.runTicks(0)

	if len(r.sink.lines) == 0 || !strings.HasPrefix(r.sink.lines[0], "mesh sheet: invalid:") {
		t.Fatalf("lines = %q", r.sink.lines)
	}
	if r.task.Frames() != 1 {
		t.Fatalf("Frames = %d, want 1", r.task.Frames())
	}
}

type memFB struct {
	w, h int
	buf  []byte
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { return nil }
func (f *memFB) ClearRGB(r, g, b uint8)  { clear(f.buf) }

type memDisplay struct{ fb *memFB }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

// litRows counts rows in [y0, y1) holding at least one non-black pixel.
func (f *memFB) litRows(y0, y1 int) int {
	n := 0
	for y := y0; y < y1; y++ {
		row := f.buf[y*f.w*2 : (y+1)*f.w*2]
		for _, b := range row {
			if b != 0 {
				n++
				break
			}
		}
	}
	return n
}

func TestTaskWritesConsole(t *testing.T) {
	var reads int
	accel, _ := sensor.NewAccelerometer(constSource(1000, &reads))
	fb := &memFB{w: 240, h: 120, buf: make([]byte, 240*120*2)}
	r := newDisplayRig(t, memDisplay{fb: fb}, Config{FrameInterval: 1, LogEvery: 1}, mesh.Cube, accel)

	// One device: a 14 pixel status strip below the console band.
	consoleH := fb.h - 14

	r.runTicks(0)
	startup := fb.litRows(0, consoleH)
	if startup == 0 {
		t.Fatal("console band is blank after startup")
	}

	r.runTicks(2)
	if got := fb.litRows(0, consoleH); got <= startup {
		t.Fatalf("console rows lit = %d after frames, want more than %d", got, startup)
	}
	if r.task.Frames() != 3 {
		t.Fatalf("Frames = %d, want 3", r.task.Frames())
	}
}

type fakeChannel struct {
	vals []uint16
	errs []error
	i    int
}

func (c *fakeChannel) Name() string { return "fake" }

func (c *fakeChannel) Read() (uint16, error) {
	i := c.i
	c.i++
	return c.vals[i], c.errs[i]
}

type fakeAnalog []hal.AnalogChannel

func (a fakeAnalog) ChannelCount() int { return len(a) }

func (a fakeAnalog) Channel(id int) hal.AnalogChannel {
	if id < 0 || id >= len(a) {
		return nil
	}
	return a[id]
}

func TestAnalogSourceReusesPreviousSample(t *testing.T) {
	boom := errors.New("boom")
	ch := &fakeChannel{
		vals: []uint16{0, 500, 0, 700},
		errs: []error{boom, nil, boom, nil},
	}
	src, err := NewAnalogSource(fakeAnalog{nil, ch}, []int{1})
	if err != nil {
		t.Fatalf("NewAnalogSource: %v", err)
	}

	want := []int32{0, 500, 500, 700}
	for i, w := range want {
		if got := src.ReadRaw(0); got != w {
			t.Fatalf("read %d = %d, want %d", i, got, w)
		}
	}
	if src.Errors() != 2 {
		t.Fatalf("Errors = %d, want 2", src.Errors())
	}
}

func TestNewAnalogSourceMissingChannel(t *testing.T) {
	if _, err := NewAnalogSource(fakeAnalog{}, []int{0}); err == nil {
		t.Fatal("expected error for missing channel")
	}
	if _, err := NewAnalogSource(nil, []int{0}); err == nil {
		t.Fatal("expected error for nil analog")
	}
}
