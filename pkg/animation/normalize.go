package animation

import (
	"fmt"
	"math"

	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// ObjectID identifies an animated object in the host GUI layer.
type ObjectID string

// WidgetClass is the coarse widget classification size normalization needs.
type WidgetClass int

const (
	// WidgetGeneric is any widget that is not a top-level window.
	WidgetGeneric WidgetClass = iota
	// WidgetWindow is a top-level window container.
	WidgetWindow
)

func (c WidgetClass) String() string {
	if c == WidgetWindow {
		return "window"
	}
	return "generic"
}

// Minimum sizes enforced by Normalize.
const (
	MinWindowSize = 32
	MinWidgetSize = 1
)

// Classifier reports the widget class of an object.
type Classifier interface {
	Classify(obj ObjectID) WidgetClass
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(obj ObjectID) WidgetClass

// Classify calls f(obj).
func (f ClassifierFunc) Classify(obj ObjectID) WidgetClass {
	return f(obj)
}

// Normalize casts and clamps a raw endpoint into the legal domain of kind.
//
//   - Size: two components truncated to int, at least 32 on windows, else 1.
//   - Color: three or four channels truncated and clamped to [0, 255].
//   - Opacity: a scalar truncated and clamped to [0, 255].
//   - Style: a scalar kept if positive, else 0. There is no upper bound.
//   - Position: two components truncated to int.
//
// A nil classifier treats every object as WidgetGeneric.
func Normalize(v Value, kind Kind, obj ObjectID, classifier Classifier) (Value, error) {
	const op = "animation.Normalize"
	if err := checkShape(v, kind); err != nil {
		return Value{}, fserrors.Validation(op, err)
	}

	switch kind {
	case Size:
		minimum := float64(MinWidgetSize)
		if classifier != nil && classifier.Classify(obj) == WidgetWindow {
			minimum = MinWindowSize
		}
		return v.mapComponents(func(c float64) float64 {
			return math.Max(minimum, math.Trunc(c))
		}), nil
	case Color, Opacity:
		return v.mapComponents(func(c float64) float64 {
			return clampByte(math.Trunc(c))
		}), nil
	case Style:
		if v.scalar > 0 {
			return v, nil
		}
		return Scalar(0), nil
	default:
		return v.mapComponents(math.Trunc), nil
	}
}

func checkShape(v Value, kind Kind) error {
	switch kind {
	case Position, Size:
		if !v.IsVector() || v.Len() != 2 {
			return fmt.Errorf("%w: %s needs 2 components, got %s", ErrShapeMismatch, kind, v)
		}
	case Color:
		if !v.IsVector() || (v.Len() != 3 && v.Len() != 4) {
			return fmt.Errorf("%w: color needs 3 or 4 channels, got %s", ErrShapeMismatch, v)
		}
	case Opacity, Style:
		if v.IsVector() {
			return fmt.Errorf("%w: %s needs a scalar, got %s", ErrShapeMismatch, kind, v)
		}
	default:
		return ErrUnknownKind
	}
	return nil
}

func clampByte(c float64) float64 {
	return math.Max(0, math.Min(c, 255))
}

// Displacement returns end - start, component-wise for vectors. Both values
// must share a shape, otherwise it fails with ErrShapeMismatch.
func Displacement(start, end Value) (Value, error) {
	if !start.SameShape(end) {
		return Value{}, fserrors.Validationf("animation.Displacement", ErrShapeMismatch,
			"start %s and end %s", start, end)
	}
	if !start.IsVector() {
		return Scalar(end.scalar - start.scalar), nil
	}
	out := make([]float64, len(start.components))
	for i := range out {
		out[i] = end.components[i] - start.components[i]
	}
	return Value{components: out, vector: true}, nil
}
