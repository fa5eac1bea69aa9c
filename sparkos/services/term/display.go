package term

import (
	"image/color"

	"tiny3d/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay exposes a horizontal band [y0, y0+h) of an RGB565 framebuffer as
// a drivers.Displayer. Coordinates are band-relative; writes outside the
// band are dropped.
type fbDisplay struct {
	fb hal.Framebuffer
	y0 int
	h  int
}

func newFBDisplay(fb hal.Framebuffer, y0, h int) *fbDisplay {
	if y0 < 0 {
		y0 = 0
	}
	if h > fb.Height()-y0 {
		h = fb.Height() - y0
	}
	return &fbDisplay{fb: fb, y0: y0, h: h}
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.h)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.h {
		return
	}
	off := (d.y0+iy)*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error {
	return d.fb.Present()
}

// ScrollUp shifts the band up by lines rows and clears the exposed rows.
func (d *fbDisplay) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 {
		return nil
	}
	if n >= d.h {
		return d.FillRectangle(0, 0, int16(d.fb.Width()), int16(d.h), bg)
	}

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	dst := d.y0 * stride
	src := (d.y0 + n) * stride
	end := (d.y0 + d.h) * stride
	if end > len(buf) {
		end = len(buf)
	}
	if src < end {
		copy(buf[dst:], buf[src:end])
	}
	return d.FillRectangle(0, int16(d.h-n), int16(d.fb.Width()), int16(n), bg)
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.fb.Buffer()
	w := d.fb.Width()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := (d.y0 + py) * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				return nil
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	return nil
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
