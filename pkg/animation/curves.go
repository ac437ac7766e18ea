package animation

import (
	"fmt"
	"math"
	"strings"

	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// Easing curves map normalized time onto eased progress.
//
// A curve is described by its two CSS-style control points (X1,Y1) and
// (X2,Y2); the endpoints are fixed at (0,0) and (1,1). Use one of the
// presets ([Linear], [Ease], [EaseIn], [EaseOut], [EaseInOut]) or build a
// [BezierCurve] literal for a custom curve.
//
// See ExampleSolve for evaluating a curve.

// BezierCurve holds the control points P1 and P2 of a cubic Bezier easing
// curve.
type BezierCurve struct {
	X1, Y1, X2, Y2 float64
}

// Preset curves.
var (
	// Linear progresses at constant speed.
	Linear = BezierCurve{0, 0, 1, 1}
	// Ease is the general-purpose curve. Equivalent to CSS ease.
	Ease = BezierCurve{0.25, 0.1, 0.25, 1}
	// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
	EaseIn = BezierCurve{0.42, 0, 1, 1}
	// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
	EaseOut = BezierCurve{0, 0, 0.58, 1}
	// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out.
	EaseInOut = BezierCurve{0.42, 0, 0.58, 1}
)

// NamedCurve pairs a preset with its canonical name.
type NamedCurve struct {
	Name  string
	Curve BezierCurve
}

var presets = []NamedCurve{
	{"linear", Linear},
	{"ease", Ease},
	{"ease-in", EaseIn},
	{"ease-out", EaseOut},
	{"ease-in-out", EaseInOut},
}

// Presets returns the preset curves in a stable order.
func Presets() []NamedCurve {
	out := make([]NamedCurve, len(presets))
	copy(out, presets)
	return out
}

// CurveByName resolves a preset by name. Names are case-insensitive and
// accept "_" or " " in place of "-" (so "EASE_IN_OUT" works).
func CurveByName(name string) (BezierCurve, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	for _, p := range presets {
		if p.Name == key {
			return p.Curve, nil
		}
	}
	return BezierCurve{}, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}

// String returns the preset name, or cubic-bezier(x1, y1, x2, y2).
func (c BezierCurve) String() string {
	for _, p := range presets {
		if p.Curve == c {
			return p.Name
		}
	}
	return fmt.Sprintf("cubic-bezier(%s, %s, %s, %s)",
		formatNumber(c.X1), formatNumber(c.Y1), formatNumber(c.X2), formatNumber(c.Y2))
}

// SolveOption relaxes the range check performed by [Solve].
type SolveOption func(*solveOptions)

type solveOptions struct {
	allowBelowZero bool
	allowAboveOne  bool
}

// AllowBelowZero lets Solve extrapolate for time factors below 0.
func AllowBelowZero() SolveOption {
	return func(o *solveOptions) { o.allowBelowZero = true }
}

// AllowAboveOne lets Solve extrapolate for time factors above 1.
func AllowAboveOne() SolveOption {
	return func(o *solveOptions) { o.allowAboveOne = true }
}

const (
	solveMaxIterations = 100
	// Residuals are compared after rounding to this many decimal digits.
	solveScale = 1e4
)

// Solve returns the eased progress of curve at the normalized time.
//
// It inverts x(t) = time with Newton-Raphson starting at t = time, for at most
// 100 iterations, stopping once the residual rounds to zero at 4 decimal
// digits. The result is y(t). If the iteration cap is hit, or the derivative
// vanishes, the last estimate of t is used; that is not an error.
//
// A time below 0 fails with ErrOutOfRangeUnderflow and a time above 1 fails
// with ErrOutOfRangeOverflow unless the matching option is given.
func Solve(time float64, curve BezierCurve, opts ...SolveOption) (float64, error) {
	var o solveOptions
	for _, opt := range opts {
		opt(&o)
	}
	if time < 0 && !o.allowBelowZero {
		return 0, fserrors.Validationf("animation.Solve", ErrOutOfRangeUnderflow, "time=%v", time)
	}
	if time > 1 && !o.allowAboveOne {
		return 0, fserrors.Validationf("animation.Solve", ErrOutOfRangeOverflow, "time=%v", time)
	}

	cx := 3 * curve.X1
	bx := 3*(curve.X2-curve.X1) - cx
	ax := 1 - cx - bx

	t := time
	for range solveMaxIterations {
		x := ((ax*t+bx)*t+cx)*t - time
		if math.RoundToEven(x*solveScale) == 0 {
			break
		}
		dx := (3*ax*t+2*bx)*t + cx
		if dx == 0 {
			break
		}
		t -= x / dx
	}

	return sampleCurve(curve.Y1, curve.Y2, t), nil
}

// sampleCurve evaluates one coordinate of the Bezier blend with endpoints 0
// and 1 and control coordinates a and b.
func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}
