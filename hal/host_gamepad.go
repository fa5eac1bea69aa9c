//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// keyStep is how far one frame of a held arrow key moves an axis.
const keyStep = 8

// hostPad feeds gamepad sticks, or arrow keys when no gamepad is
// connected, into manual analog axes. poll runs on the ebiten goroutine.
type hostPad struct {
	axes *manualAxes
	ids  []ebiten.GamepadID
}

func newHostPad(channels int) *hostPad {
	return &hostPad{axes: newManualAxes(analogNames("PAD", channels)...)}
}

func (p *hostPad) ChannelCount() int { return len(p.axes.pos) }

func (p *hostPad) Channel(id int) AnalogChannel {
	if id < 0 || id >= len(p.axes.pos) {
		return nil
	}
	return manualChannel{m: p.axes, axis: id}
}

var standardAxes = []ebiten.StandardGamepadAxis{
	ebiten.StandardGamepadAxisLeftStickHorizontal,
	ebiten.StandardGamepadAxisLeftStickVertical,
	ebiten.StandardGamepadAxisRightStickVertical,
}

func (p *hostPad) poll() {
	p.ids = ebiten.AppendGamepadIDs(p.ids[:0])
	if len(p.ids) > 0 && ebiten.IsStandardGamepadLayoutAvailable(p.ids[0]) {
		id := p.ids[0]
		for axis := 0; axis < len(p.axes.pos) && axis < len(standardAxes); axis++ {
			p.axes.set(axis, countFromUnit(ebiten.StandardGamepadAxisValue(id, standardAxes[axis])))
		}
		return
	}

	keys := [][2]ebiten.Key{
		{ebiten.KeyArrowLeft, ebiten.KeyArrowRight},
		{ebiten.KeyArrowDown, ebiten.KeyArrowUp},
		{ebiten.KeyPageDown, ebiten.KeyPageUp},
	}
	for axis, pair := range keys {
		if ebiten.IsKeyPressed(pair[0]) {
			p.axes.nudge(axis, -keyStep)
		}
		if ebiten.IsKeyPressed(pair[1]) {
			p.axes.nudge(axis, keyStep)
		}
	}
}
