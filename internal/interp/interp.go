package interp

import (
	"fmt"
	"math"
	"strings"

	"smplx-poser/internal/mathutil"
)

// Mode selects how intermediate values are produced.
type Mode int

const (
	Linear Mode = iota
	Smooth
)

// DegenerateSpan is the endpoint distance below which Smooth returns start.
const DegenerateSpan = 0.01

func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Smooth:
		return "smooth"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "linear" or "smooth" (case-insensitive). Empty means linear.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "smooth":
		return Smooth, nil
	}
	return Linear, fmt.Errorf("interp: unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Interpolate returns the value between start and end at progress t.
// t is clamped to [0,1].
func Interpolate(start, end, t float64, mode Mode) float64 {
	t = clamp01(t)
	if mode == Smooth {
		return quadratic(start, end, t)
	}
	return lerp(start, end, t)
}

// Angle interpolates an angle given in degrees. Endpoints are converted to
// radians first; the result is in radians.
func Angle(startDeg, endDeg, t float64, mode Mode) float64 {
	return Interpolate(mathutil.Deg2Rad(startDeg), mathutil.Deg2Rad(endDeg), t, mode)
}

// FrameT returns the interpolation parameter of frame i out of n.
// A single-frame sequence renders the end pose.
func FrameT(i, n int) float64 {
	if n <= 1 {
		return 1.0
	}
	return float64(i) / float64(n-1)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// quadratic evaluates the Lagrange interpolant through
// (0, start), (0.5, mid), (1, end).
func quadratic(start, end, t float64) float64 {
	if math.Abs(end-start) < DegenerateSpan {
		return start
	}
	mid := (start + end) / 2

	l0 := 2 * (t - 0.5) * (t - 1)
	l1 := -4 * t * (t - 1)
	l2 := 2 * t * (t - 0.5)
	return start*l0 + mid*l1 + end*l2
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
