package animation

import (
	"fmt"
	"math"

	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// stepFunc turns progress factors into one concrete value per frame.
type stepFunc func(start, end, displacement Value, factors []float64) []Value

// generators is indexed by Kind.
var generators = [kindCount]stepFunc{
	Position: positionSteps,
	Size:     sizeSteps,
	Opacity:  opacitySteps,
	Style:    styleSteps,
	Color:    colorSteps,
}

// GenerateSteps builds the per-frame value table for kind. The result has one
// entry per factor and its last entry is always exactly end.
func GenerateSteps(kind Kind, start, end, displacement Value, factors []float64) ([]Value, error) {
	const op = "animation.GenerateSteps"
	if !kind.valid() {
		return nil, fserrors.Validation(op, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind)))
	}
	if len(factors) == 0 {
		return nil, fserrors.Validationf(op, ErrInvalidFrameRange, "no progress factors")
	}
	if !start.SameShape(end) || !start.SameShape(displacement) {
		return nil, fserrors.Validationf(op, ErrShapeMismatch,
			"start %s, end %s, displacement %s", start, end, displacement)
	}
	if err := checkShape(start, kind); err != nil {
		return nil, fserrors.Validation(op, err)
	}
	return generators[kind](start, end, displacement, factors), nil
}

func positionSteps(start, end, displacement Value, factors []float64) []Value {
	return pairSteps(start, end, displacement, factors)
}

func sizeSteps(start, end, displacement Value, factors []float64) []Value {
	return pairSteps(start, end, displacement, factors)
}

// pairSteps rounds x and y independently.
func pairSteps(start, end, displacement Value, factors []float64) []Value {
	steps := make([]Value, len(factors))
	for i, f := range factors {
		steps[i] = Vector(
			math.RoundToEven(start.components[0]+displacement.components[0]*f),
			math.RoundToEven(start.components[1]+displacement.components[1]*f),
		)
	}
	return finish(steps, end)
}

// opacitySteps truncates toward zero.
func opacitySteps(start, end, displacement Value, factors []float64) []Value {
	steps := make([]Value, len(factors))
	for i, f := range factors {
		steps[i] = Scalar(math.Trunc(start.scalar + displacement.scalar*f))
	}
	return finish(steps, end)
}

// styleSteps rounds to two decimal places.
func styleSteps(start, end, displacement Value, factors []float64) []Value {
	steps := make([]Value, len(factors))
	for i, f := range factors {
		steps[i] = Scalar(roundTo(start.scalar+displacement.scalar*f, 2))
	}
	return finish(steps, end)
}

func colorSteps(start, end, displacement Value, factors []float64) []Value {
	steps := make([]Value, len(factors))
	channels := make([]float64, start.Len())
	for i, f := range factors {
		for c := range channels {
			channels[c] = math.RoundToEven(start.components[c] + displacement.components[c]*f)
		}
		steps[i] = Vector(channels...)
	}
	return finish(steps, end)
}

// finish overwrites the last step with end.
func finish(steps []Value, end Value) []Value {
	steps[len(steps)-1] = end.clone()
	return steps
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.RoundToEven(v*scale) / scale
}

func (v Value) clone() Value {
	if !v.vector {
		return v
	}
	return Vector(v.components...)
}
