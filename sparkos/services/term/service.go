// Package term runs a text console on the framebuffer with a status strip
// at the bottom showing the latest angles of each input device.
package term

import (
	"fmt"
	"image/color"
	"strings"

	"tiny3d/hal"
	"tiny3d/sparkos/kernel"
	"tiny3d/sparkos/proto"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	fontHeight = 12
	fontOffset = 9
)

var (
	statusFG = color.RGBA{R: 0x80, G: 0xFF, B: 0x80, A: 0xFF}
	statusBG = color.RGBA{R: 0x10, G: 0x20, B: 0x10, A: 0xFF}
)

var axisLabels = [...]string{"x", "y", "z"}

type Service struct {
	disp  hal.Display
	ep    kernel.Capability
	names []string

	started bool
	fb      hal.Framebuffer
	console *fbDisplay
	status  *fbDisplay
	t       *tinyterm.Terminal

	angles [][]int
	dirty  bool
}

// New returns a term service. names labels the devices reported in
// MsgAngles, by index.
func New(disp hal.Display, ep kernel.Capability, names []string) *Service {
	return &Service{
		disp:   disp,
		ep:     ep,
		names:  names,
		angles: make([][]int, len(names)),
	}
}

// Angles returns the last reported angles for a device.
func (s *Service) Angles(device int) []int {
	if device < 0 || device >= len(s.angles) {
		return nil
	}
	return s.angles[device]
}

func (s *Service) Step(ctx *kernel.Context) {
	if !s.started {
		s.start()
	}

	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			break
		}
		s.handle(msg)
	}

	if s.dirty && s.t != nil {
		s.drawStatus()
		s.t.Display()
		s.dirty = false
	}
	ctx.BlockOnRecv(s.ep)
}

func (s *Service) handle(msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgTermWrite:
		if s.t != nil {
			_, _ = s.t.Write(msg.Payload())
		}
		s.dirty = true
	case proto.MsgTermClear:
		s.reset()
		s.dirty = true
	case proto.MsgAngles:
		p := msg.Payload()
		if len(p) == 0 || int(p[0]) >= len(s.angles) {
			return
		}
		_, angles, ok := proto.DecodeAnglesPayload(p, s.angles[p[0]])
		if !ok {
			return
		}
		s.angles[p[0]] = angles
		s.dirty = true
	}
}

func (s *Service) start() {
	s.started = true
	if s.disp == nil {
		return
	}
	fb := s.disp.Framebuffer()
	if fb == nil || fb.Buffer() == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	s.fb = fb

	rows := len(s.names)
	if rows == 0 {
		rows = 1
	}
	statusH := rows*fontHeight + 2
	s.console = newFBDisplay(fb, 0, fb.Height()-statusH)
	s.status = newFBDisplay(fb, fb.Height()-statusH, statusH)
	s.reset()
	s.dirty = true
}

func (s *Service) reset() {
	if s.fb == nil {
		return
	}
	s.fb.ClearRGB(0, 0, 0)
	s.t = tinyterm.NewTerminal(s.console)
	s.t.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        fontHeight,
		FontOffset:        fontOffset,
		UseSoftwareScroll: true,
	})
}

func (s *Service) drawStatus() {
	w, h := s.status.Size()
	_ = s.status.FillRectangle(0, 0, w, h, statusBG)
	for i := range s.names {
		y := int16(1 + i*fontHeight + fontOffset)
		tinyfont.WriteLine(s.status, &proggy.TinySZ8pt7b, 2, y, s.statusLine(i), statusFG)
	}
}

// statusLine renders one device as "name x=123 y=045".
func (s *Service) statusLine(device int) string {
	var b strings.Builder
	b.WriteString(s.names[device])
	for axis, a := range s.angles[device] {
		label := fmt.Sprintf("a%d", axis)
		if axis < len(axisLabels) {
			label = axisLabels[axis]
		}
		fmt.Fprintf(&b, " %s=%03d", label, a)
	}
	return b.String()
}
