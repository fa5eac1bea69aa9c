package sensor

import (
	"errors"
	"testing"
)

type recordingSource struct {
	values []int32
	calls  []int
}

func (s *recordingSource) ReadRaw(axis int) int32 {
	s.calls = append(s.calls, axis)
	return s.values[axis]
}

func TestPresets(t *testing.T) {
	acc, ok := Preset("accelerometer")
	if !ok || acc.Axes != 3 || acc.Scale != Unity || acc.Window != DefaultWindow {
		t.Fatalf("accelerometer preset = %+v", acc)
	}
	joy, ok := Preset("joystick")
	if !ok || joy.Axes != 2 || joy.Scale != (Ratio{Num: 35, Den: 100}) {
		t.Fatalf("joystick preset = %+v", joy)
	}
	if _, ok := Preset("trackball"); ok {
		t.Fatal("expected unknown preset")
	}
}

func TestDevicePollReadsEachAxisOnce(t *testing.T) {
	src := &recordingSource{values: []int32{1000, 500, 3600}}
	d, err := NewAccelerometer(src)
	if err != nil {
		t.Fatalf("NewAccelerometer: %v", err)
	}

	got := d.Poll(nil)
	if len(src.calls) != 3 || src.calls[0] != 0 || src.calls[1] != 1 || src.calls[2] != 2 {
		t.Fatalf("ReadRaw calls = %v, want [0 1 2]", src.calls)
	}
	want := []int{100, 50, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Poll() = %v, want %v", got, want)
		}
	}

	angles := d.Angles(make([]int, 0, 3))
	for i := range want {
		if angles[i] != want[i] || d.Angle(i) != want[i] {
			t.Fatalf("Angles() = %v, want %v", angles, want)
		}
	}
	if len(src.calls) != 3 {
		t.Fatal("Angles must not read the source")
	}
}

func TestJoystickConverges(t *testing.T) {
	d, err := NewJoystick(SourceFunc(func(axis int) int32 { return 1000 }))
	if err != nil {
		t.Fatalf("NewJoystick: %v", err)
	}
	if d.AxisCount() != 2 {
		t.Fatalf("AxisCount() = %d, want 2", d.AxisCount())
	}

	var got []int
	for i := 0; i < DefaultWindow; i++ {
		got = d.Poll(got[:0])
	}
	if got[0] != 350 || got[1] != 350 {
		t.Fatalf("Poll() = %v, want [350 350]", got)
	}
}

func TestNewDeviceErrors(t *testing.T) {
	src := SourceFunc(func(int) int32 { return 0 })

	if _, err := NewDevice(Config{Name: "bad", Axes: 2, Window: 0, Scale: Unity}, src); !errors.Is(err, ErrWindow) {
		t.Fatalf("window 0 err = %v, want ErrWindow", err)
	}
	if _, err := NewDevice(Config{Name: "bad", Axes: 0, Window: 10, Scale: Unity}, src); !errors.Is(err, ErrAxisCount) {
		t.Fatalf("axes 0 err = %v, want ErrAxisCount", err)
	}
	if _, err := NewDevice(AccelerometerConfig, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
