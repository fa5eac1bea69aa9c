//go:build !tinygo

package hal

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestParseSampleLine(t *testing.T) {
	got, err := parseSampleLine(" 1,512, 1023 \r", nil)
	if err != nil {
		t.Fatalf("parseSampleLine: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 512 || got[2] != 1023 {
		t.Fatalf("got %v", got)
	}

	for _, bad := range []string{"", "1,,2", "1,x", "1024", "-1"} {
		if _, err := parseSampleLine(bad, nil); err == nil {
			t.Fatalf("parseSampleLine(%q) succeeded, want error", bad)
		}
	}
}

func TestSerialAnalogLatestLine(t *testing.T) {
	r, w := io.Pipe()
	a := newSerialAnalog(r, 3)

	ch := a.Channel(2)
	if _, err := ch.Read(); !errors.Is(err, ErrNoSample) {
		t.Fatalf("Read before data = %v, want ErrNoSample", err)
	}

	if _, err := io.WriteString(w, "10,20,30\nbogus\n40,50,60\n7\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = w.Close()
	<-a.done

	if got, err := a.Channel(0).Read(); err != nil || got != 7 {
		t.Fatalf("channel 0 = %d, %v; want 7", got, err)
	}
	// The short last line only covers channel 0.
	if _, err := a.Channel(1).Read(); err == nil {
		t.Fatal("expected error for channel missing from last line")
	}
	if a.BadLines() != 1 {
		t.Fatalf("BadLines = %d, want 1", a.BadLines())
	}
	if a.ChannelCount() != 3 || a.Channel(3) != nil || a.Channel(0).Name() != "SER0" {
		t.Fatal("unexpected channel layout")
	}
}

func TestHostTimeAdvance(t *testing.T) {
	ht := newHostTime()
	t0 := time.Unix(100, 0)

	ht.advance(t0)
	ht.advance(t0.Add(500 * time.Microsecond))
	ht.advance(t0.Add(3 * time.Millisecond))

	var last uint64
	n := 0
	for {
		select {
		case v := <-ht.Ticks():
			last = v
			n++
			continue
		default:
		}
		break
	}
	if n != 4 || last != 4 {
		t.Fatalf("ticks = %d (last %d), want 4", n, last)
	}
}

func TestHostFramebufferSnapshot(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	dst := make([]byte, len(fb.Buffer()))

	gen, changed := fb.snapshot(dst, ^uint64(0))
	if !changed {
		t.Fatal("first snapshot should copy")
	}
	if _, changed := fb.snapshot(dst, gen); changed {
		t.Fatal("snapshot without Present should be skipped")
	}

	fb.ClearRGB(255, 255, 255)
	_ = fb.Present()
	if _, changed := fb.snapshot(dst, gen); !changed {
		t.Fatal("snapshot after Present should copy")
	}
	if dst[0] != 0xFF || dst[1] != 0xFF {
		t.Fatalf("dst = % x", dst[:2])
	}
}

func TestNewHostSimulated(t *testing.T) {
	h, err := newHost(HostConfig{Channels: 2})
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}
	defer h.close()

	if h.Analog().ChannelCount() != 2 {
		t.Fatalf("ChannelCount = %d, want 2", h.Analog().ChannelCount())
	}
	if v, err := h.Analog().Channel(1).Read(); err != nil || v > AnalogMax {
		t.Fatalf("Read = %d, %v", v, err)
	}
	h.Logger().WriteLineString("hello")
	h.LED().High()
	h.LED().Low()
}
