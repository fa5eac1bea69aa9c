package sensor

import (
	"fmt"
	"math"
)

// Ratio is an exact scale factor Num/Den.
type Ratio struct {
	Num int64
	Den int64
}

// Unity is the identity scale.
var Unity = Ratio{Num: 1, Den: 1}

func (r Ratio) valid() bool { return r.Den > 0 }

// Apply returns floor(v * Num / Den).
func (r Ratio) Apply(v int64) int64 {
	if r.Num == r.Den {
		return v
	}
	return floorDiv(v*r.Num, r.Den)
}

func (r Ratio) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// maxRatioNum bounds the numerator so v*Num cannot overflow for any int32
// sample average.
const maxRatioNum = 1 << 31

// RatioFromFloat converts f to a reduced ratio with at most four decimal places.
// It fails for NaN, infinities, magnitudes whose numerator would exceed
// maxRatioNum, and non-zero values that round to zero.
func RatioFromFloat(f float64) (Ratio, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Ratio{}, fmt.Errorf("sensor: scale %v: %w", f, ErrScale)
	}
	const den = 10000
	x := math.Round(f * den)
	if math.Abs(x) > maxRatioNum {
		return Ratio{}, fmt.Errorf("sensor: scale %v out of range: %w", f, ErrScale)
	}
	if x == 0 && f != 0 {
		return Ratio{}, fmt.Errorf("sensor: scale %v below 1/%d: %w", f, den, ErrScale)
	}
	num := int64(x)
	g := gcd(abs64(num), den)
	if g == 0 {
		g = 1
	}
	return Ratio{Num: num / g, Den: den / g}, nil
}

// floorDiv is integer division rounding toward negative infinity. d must be > 0.
func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}

// floorMod returns n mod d in [0, d). d must be > 0.
func floorMod(n, d int64) int64 {
	m := n % d
	if m < 0 {
		m += d
	}
	return m
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
