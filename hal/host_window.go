//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"

	"tiny3d/internal/buildinfo"
)

// RunWindow starts a desktop window that mirrors the framebuffer. Without a
// serial port, analog input comes from a gamepad or the arrow keys.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg HostConfig) error {
	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	var pad *hostPad
	if cfg.SerialPort == "" {
		pad = newHostPad(h.analog.ChannelCount())
		h.analog = pad
	}

	g := &hostGame{h: h, pad: pad, step: newApp(h)}
	ebiten.SetWindowTitle("tiny3d (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h    *hostHAL
	pad  *hostPad
	step func() error

	img     *ebiten.Image
	scratch []byte
	rgba    []byte
	gen     uint64
}

func (g *hostGame) Update() error {
	if g.pad != nil {
		g.pad.poll()
	}
	g.h.t.step()
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = ebiten.NewImage(fb.width, fb.height)
		g.scratch = make([]byte, len(fb.buf))
		g.rgba = make([]byte, fb.width*fb.height*4)
		g.gen = ^uint64(0)
	}

	if gen, changed := fb.snapshot(g.scratch, g.gen); changed {
		g.gen = gen
		expand565(g.rgba, g.scratch)
		g.img.WritePixels(g.rgba)
	}
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
