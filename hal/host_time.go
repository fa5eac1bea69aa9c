//go:build !tinygo

package hal

import "time"

// hostTime converts wall-clock progress into 1 ms ticks each time the host
// loop advances it.
type hostTime struct {
	ch   chan uint64
	seq  uint64
	tick time.Duration

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), tick: time.Millisecond}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step() { t.advance(time.Now()) }

// advance emits one tick per elapsed tick duration since the last call.
// The first call emits a single tick.
func (t *hostTime) advance(now time.Time) {
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now
	n := uint64(t.acc / t.tick)
	if n == 0 {
		return
	}
	t.acc %= t.tick
	t.emit(n)
}

// emit drops ticks when the channel is full; seq still advances so the
// latest value reflects elapsed time.
func (t *hostTime) emit(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}

