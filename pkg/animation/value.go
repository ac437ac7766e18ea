package animation

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects which property an animation drives. The set is closed: every
// Kind has exactly one normalizer branch and one step generator.
type Kind int

const (
	// Position animates a 2-component integer position.
	Position Kind = iota
	// Size animates a 2-component integer size.
	Size
	// Opacity animates an integer alpha in [0, 255].
	Opacity
	// Style animates a numeric style value such as a rounding or padding.
	Style
	// Color animates 3 or 4 integer channels in [0, 255].
	Color

	kindCount
)

// Kinds lists every Kind in declaration order.
func Kinds() []Kind {
	return []Kind{Position, Size, Opacity, Style, Color}
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Position:
		return "position"
	case Size:
		return "size"
	case Opacity:
		return "opacity"
	case Style:
		return "style"
	case Color:
		return "color"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) valid() bool {
	return k >= Position && k < kindCount
}

// ParseKind resolves a kind name as produced by [Kind.String].
// Matching is case-insensitive and accepts "colour".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "position":
		return Position, nil
	case "size":
		return Size, nil
	case "opacity":
		return Opacity, nil
	case "style":
		return Style, nil
	case "color", "colour":
		return Color, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Value is the tagged union of every animated value shape: a scalar for
// Opacity and Style, or a component vector for Position, Size and Color.
// Components are stored as float64 so raw inputs survive until
// normalization truncates them.
//
// The zero Value is the scalar 0.
type Value struct {
	scalar     float64
	components []float64
	vector     bool
}

// Scalar returns a scalar Value.
func Scalar(v float64) Value {
	return Value{scalar: v}
}

// Vector returns a vector Value holding a copy of components.
func Vector(components ...float64) Value {
	c := make([]float64, len(components))
	copy(c, components)
	return Value{components: c, vector: true}
}

// Ints returns a vector Value from integer components.
func Ints(components ...int) Value {
	c := make([]float64, len(components))
	for i, v := range components {
		c[i] = float64(v)
	}
	return Value{components: c, vector: true}
}

// Vec2 returns a 2-component vector, the shape of Position and Size.
func Vec2(x, y int) Value {
	return Ints(x, y)
}

// RGB returns an opaque-less 3-channel colour vector.
func RGB(r, g, b int) Value {
	return Ints(r, g, b)
}

// RGBA returns a 4-channel colour vector.
func RGBA(r, g, b, a int) Value {
	return Ints(r, g, b, a)
}

// IsVector reports whether v holds components rather than a scalar.
func (v Value) IsVector() bool {
	return v.vector
}

// Len returns the number of components, or 0 for a scalar.
func (v Value) Len() int {
	return len(v.components)
}

// Scalar returns the scalar payload. It is 0 for vectors.
func (v Value) Scalar() float64 {
	return v.scalar
}

// Component returns component i. It panics if i is out of range.
func (v Value) Component(i int) float64 {
	return v.components[i]
}

// Components returns a copy of the components.
func (v Value) Components() []float64 {
	out := make([]float64, len(v.components))
	copy(out, v.components)
	return out
}

// IntComponents returns the components truncated to int.
func (v Value) IntComponents() []int {
	out := make([]int, len(v.components))
	for i, c := range v.components {
		out[i] = int(c)
	}
	return out
}

// SameShape reports whether v and o are both scalars or both vectors of
// equal length.
func (v Value) SameShape(o Value) bool {
	if v.vector != o.vector {
		return false
	}
	return len(v.components) == len(o.components)
}

// Equal reports whether v and o have the same shape and identical payload.
func (v Value) Equal(o Value) bool {
	if !v.SameShape(o) {
		return false
	}
	if !v.vector {
		return v.scalar == o.scalar
	}
	for i := range v.components {
		if v.components[i] != o.components[i] {
			return false
		}
	}
	return true
}

// String formats scalars as numbers and vectors as [a, b, ...].
func (v Value) String() string {
	if !v.vector {
		return formatNumber(v.scalar)
	}
	parts := make([]string, len(v.components))
	for i, c := range v.components {
		parts[i] = formatNumber(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Value) mapComponents(fn func(float64) float64) Value {
	if !v.vector {
		return Scalar(fn(v.scalar))
	}
	out := make([]float64, len(v.components))
	for i, c := range v.components {
		out[i] = fn(c)
	}
	return Value{components: out, vector: true}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
