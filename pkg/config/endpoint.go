package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/framesteps/pkg/animation"
)

// Endpoint is a raw animation endpoint as written in a sheet: a number, a
// list of numbers, or a colour given by name ("tomato") or hex ("#ff6347",
// "#f63", "#ff634780").
type Endpoint struct {
	set        bool
	scalar     float64
	components []float64
	color      string
}

// Number returns a numeric endpoint.
func Number(v float64) Endpoint { return Endpoint{set: true, scalar: v} }

// Components returns a list endpoint.
func Components(c ...float64) Endpoint { return Endpoint{set: true, components: c} }

// ColorName returns a colour endpoint.
func ColorName(s string) Endpoint { return Endpoint{set: true, color: s} }

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Endpoint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*e = Endpoint{}
			return nil
		}
		if node.Tag == "!!int" || node.Tag == "!!float" {
			var v float64
			if err := node.Decode(&v); err != nil {
				return err
			}
			*e = Number(v)
			return nil
		}
		*e = ColorName(node.Value)
		return nil
	case yaml.SequenceNode:
		var c []float64
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("line %d: %w: %v", node.Line, ErrInvalidEndpoint, err)
		}
		*e = Components(c...)
		return nil
	}
	return fmt.Errorf("line %d: %w: want a number, a list or a colour", node.Line, ErrInvalidEndpoint)
}

// MarshalYAML implements yaml.Marshaler.
func (e Endpoint) MarshalYAML() (any, error) {
	switch {
	case !e.set:
		return nil, nil
	case e.color != "":
		return e.color, nil
	case e.components != nil:
		return e.components, nil
	}
	return e.scalar, nil
}

// IsZero reports whether the endpoint was never set.
func (e Endpoint) IsZero() bool { return !e.set }

// Value resolves the endpoint. Colours become three channels, or four when
// a hex string carries alpha.
func (e Endpoint) Value() (animation.Value, error) {
	switch {
	case !e.set:
		return animation.Value{}, fmt.Errorf("%w: missing", ErrInvalidEndpoint)
	case e.color != "":
		return parseColor(e.color)
	case e.components != nil:
		return animation.Vector(e.components...), nil
	}
	return animation.Scalar(e.scalar), nil
}

func parseColor(s string) (animation.Value, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return animation.Value{}, fmt.Errorf("%w: unknown colour %q", ErrInvalidEndpoint, s)
		}
		return animation.RGB(int(c.R), int(c.G), int(c.B)), nil
	}

	rgb, alpha := s, ""
	switch len(s) {
	case 4, 7:
	case 9:
		rgb, alpha = s[:7], s[7:]
	default:
		return animation.Value{}, fmt.Errorf("%w: %q is not #rgb, #rrggbb or #rrggbbaa", ErrInvalidEndpoint, s)
	}
	c, err := colorful.Hex(strings.ToLower(rgb))
	if err != nil {
		return animation.Value{}, fmt.Errorf("%w: %q: %v", ErrInvalidEndpoint, s, err)
	}
	r, g, b := c.RGB255()
	if alpha == "" {
		return animation.RGB(int(r), int(g), int(b)), nil
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return animation.Value{}, fmt.Errorf("%w: %q: bad alpha", ErrInvalidEndpoint, s)
	}
	return animation.RGBA(int(r), int(g), int(b), int(a)), nil
}

// CurveSpec is a sheet curve: a preset name or four control-point
// coordinates. An omitted curve is linear.
type CurveSpec struct {
	set   bool
	curve animation.BezierCurve
}

// Preset returns a CurveSpec for c.
func Preset(c animation.BezierCurve) CurveSpec { return CurveSpec{set: true, curve: c} }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CurveSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		curve, err := animation.CurveByName(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = Preset(curve)
		return nil
	case yaml.SequenceNode:
		var p []float64
		if err := node.Decode(&p); err != nil {
			return fmt.Errorf("line %d: %w: %v", node.Line, ErrInvalidCurve, err)
		}
		if len(p) != 4 {
			return fmt.Errorf("line %d: %w: want [x1, y1, x2, y2], got %d values", node.Line, ErrInvalidCurve, len(p))
		}
		*c = Preset(animation.BezierCurve{X1: p[0], Y1: p[1], X2: p[2], Y2: p[3]})
		return nil
	}
	return fmt.Errorf("line %d: %w", node.Line, ErrInvalidCurve)
}

// MarshalYAML implements yaml.Marshaler.
func (c CurveSpec) MarshalYAML() (any, error) {
	if !c.set {
		return nil, nil
	}
	for _, p := range animation.Presets() {
		if p.Curve == c.curve {
			return p.Name, nil
		}
	}
	return []float64{c.curve.X1, c.curve.Y1, c.curve.X2, c.curve.Y2}, nil
}

// IsZero reports whether the curve was omitted.
func (c CurveSpec) IsZero() bool { return !c.set }

// Curve returns the resolved curve.
func (c CurveSpec) Curve() animation.BezierCurve {
	if !c.set {
		return animation.Linear
	}
	return c.curve
}

// matchAlpha gives an opaque alpha channel to a three-channel colour when the
// other endpoint carries one.
func matchAlpha(from, to animation.Value) (animation.Value, animation.Value) {
	opaque := func(v animation.Value) animation.Value {
		c := v.IntComponents()
		return animation.RGBA(c[0], c[1], c[2], 255)
	}
	switch {
	case from.Len() == 3 && to.Len() == 4:
		return opaque(from), to
	case from.Len() == 4 && to.Len() == 3:
		return from, opaque(to)
	}
	return from, to
}
