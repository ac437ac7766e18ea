// Package animation precomputes frame-by-frame value tables for property
// animations and tracks their playback state.
//
// # Core Components
//
//   - [Solve]: inverts a cubic Bezier easing curve at a normalized time.
//
//   - [ProgressFactors]: samples a curve once per frame.
//
//   - [Normalize] and [Displacement]: clamp raw endpoints into the legal
//     domain of a [Kind] and compute the signed delta between them.
//
//   - [GenerateSteps]: turns factors into concrete per-frame values, one
//     generator per Kind.
//
//   - [Animation]: one animation with its immutable step table and a
//     playback cursor driven by Start/Pause/Resume/Stop/Reverse/Advance.
//
//   - [ObjectAnimations]: the registry of animations for one object.
//
// # Basic Usage
//
//	anim, err := animation.New(animation.Definition{
//	    Kind:     animation.Position,
//	    Object:   "main_window",
//	    From:     animation.Vec2(0, 0),
//	    To:       animation.Vec2(100, 50),
//	    Curve:    animation.EaseInOut,
//	    Duration: 30,
//	}, classifier)
//	if err != nil {
//	    return err
//	}
//	_ = anim.Start()
//	for anim.IsPlaying() {
//	    v, ok, err := anim.Advance()
//	    ...
//	}
//
// All derived data is computed in [New]; nothing is evaluated lazily.
package animation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// LoopMode controls what happens when playback reaches the end of the table.
type LoopMode int

const (
	// LoopNone finishes after one traversal.
	LoopNone LoopMode = iota
	// LoopRestart jumps back to the first entry and keeps playing.
	LoopRestart
	// LoopPingPong flips direction in place at each end.
	LoopPingPong
)

func (m LoopMode) String() string {
	switch m {
	case LoopNone:
		return "none"
	case LoopRestart:
		return "restart"
	case LoopPingPong:
		return "ping-pong"
	default:
		return fmt.Sprintf("LoopMode(%d)", int(m))
	}
}

// ParseLoopMode resolves "none", "restart" or "ping-pong" (also "pingpong",
// "ping_pong" and "bounce"). The empty string is LoopNone.
func ParseLoopMode(name string) (LoopMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return LoopNone, nil
	case "restart", "repeat":
		return LoopRestart, nil
	case "ping-pong", "pingpong", "ping_pong", "bounce":
		return LoopPingPong, nil
	}
	return LoopNone, fmt.Errorf("%w: %q", ErrUnknownLoopMode, name)
}

// Callback is invoked on a playback transition with its caller-owned Data.
// An error it returns is passed back to whoever triggered the transition.
type Callback struct {
	Func func(data any) error
	Data any
}

func (c Callback) call() error {
	if c.Func == nil {
		return nil
	}
	return c.Func(c.Data)
}

// Definition is the static description of an animation.
type Definition struct {
	// Kind selects the value shape and step generator.
	Kind Kind
	// Object is the animated object.
	Object ObjectID
	// Property names the animated property. Defaults to Kind.String().
	// Style animations use it to name the style variable.
	Property string
	// From and To are the raw endpoints, normalized by New.
	From, To Value
	// Curve is the easing curve.
	Curve BezierCurve
	// Duration is the number of frames; the table has Duration+1 entries.
	Duration int
	// StartFrame delays the first step by this many frames after Start.
	StartFrame int
	// Loop selects the behaviour at the end of the table.
	Loop LoopMode
	// MaxLoops bounds how many times a looping animation wraps or bounces
	// before finishing. Zero loops forever.
	MaxLoops int
	// OnStart fires when playback starts.
	OnStart Callback
	// OnEnd fires when playback finishes.
	OnEnd Callback
}

// Animation is a single animation of one object property. The step table is
// computed once by New and never changes; only the playback state moves.
//
// An Animation is not safe for concurrent playback commands. Reading its
// static data (Steps, Factors, endpoints) is safe from any goroutine.
type Animation struct {
	id         uuid.UUID
	kind       Kind
	object     ObjectID
	property   string
	from, to   Value
	curve      BezierCurve
	duration   int
	startFrame int
	loop       LoopMode
	maxLoops   int
	onStart    Callback
	onEnd      Callback

	displacement Value
	factors      []float64
	steps        []Value

	playback
}

// New validates def and eagerly derives the normalized endpoints, the
// displacement, the progress factors and the step table. On any error no
// Animation is returned.
func New(def Definition, classifier Classifier) (*Animation, error) {
	const op = "animation.New"
	if !def.Kind.valid() {
		return nil, fserrors.Validation(op, fmt.Errorf("%w: %d", ErrUnknownKind, int(def.Kind)))
	}
	if def.Duration <= 0 {
		return nil, fserrors.Validationf(op, ErrInvalidDuration, "duration=%d", def.Duration)
	}
	if def.StartFrame < 0 {
		return nil, fserrors.Validationf(op, ErrInvalidFrameRange, "start frame %d is negative", def.StartFrame)
	}
	if def.MaxLoops < 0 {
		return nil, fserrors.Validationf(op, ErrInvalidFrameRange, "max loops %d is negative", def.MaxLoops)
	}

	from, err := Normalize(def.From, def.Kind, def.Object, classifier)
	if err != nil {
		return nil, err
	}
	to, err := Normalize(def.To, def.Kind, def.Object, classifier)
	if err != nil {
		return nil, err
	}
	displacement, err := Displacement(from, to)
	if err != nil {
		return nil, err
	}
	endFrame := def.StartFrame + def.Duration
	factors, err := ProgressFactors(def.StartFrame, endFrame, def.Curve)
	if err != nil {
		return nil, err
	}
	steps, err := GenerateSteps(def.Kind, from, to, displacement, factors)
	if err != nil {
		return nil, err
	}

	property := def.Property
	if property == "" {
		property = def.Kind.String()
	}

	a := &Animation{
		id:           uuid.New(),
		kind:         def.Kind,
		object:       def.Object,
		property:     property,
		from:         from,
		to:           to,
		curve:        def.Curve,
		duration:     def.Duration,
		startFrame:   def.StartFrame,
		loop:         def.Loop,
		maxLoops:     def.MaxLoops,
		onStart:      def.OnStart,
		onEnd:        def.OnEnd,
		displacement: displacement,
		factors:      factors,
		steps:        steps,
	}
	a.playback.reset(a.lastIndex())
	return a, nil
}

// ID returns the identifier minted at construction.
func (a *Animation) ID() uuid.UUID { return a.id }

// Kind returns the animation kind.
func (a *Animation) Kind() Kind { return a.kind }

// Object returns the animated object.
func (a *Animation) Object() ObjectID { return a.object }

// Property returns the animated property name.
func (a *Animation) Property() string { return a.property }

// From returns the normalized starting value.
func (a *Animation) From() Value { return a.from.clone() }

// To returns the normalized ending value.
func (a *Animation) To() Value { return a.to.clone() }

// Curve returns the easing curve.
func (a *Animation) Curve() BezierCurve { return a.curve }

// Duration returns the duration in frames.
func (a *Animation) Duration() int { return a.duration }

// StartFrame returns the start-frame offset.
func (a *Animation) StartFrame() int { return a.startFrame }

// EndFrame returns StartFrame + Duration.
func (a *Animation) EndFrame() int { return a.startFrame + a.duration }

// Loop returns the loop mode.
func (a *Animation) Loop() LoopMode { return a.loop }

// MaxLoops returns the loop bound, 0 meaning unbounded.
func (a *Animation) MaxLoops() int { return a.maxLoops }

// Displacement returns To - From.
func (a *Animation) Displacement() Value { return a.displacement.clone() }

// Factors returns a copy of the eased progress factors.
func (a *Animation) Factors() []float64 {
	out := make([]float64, len(a.factors))
	copy(out, a.factors)
	return out
}

// Steps returns a copy of the step table.
func (a *Animation) Steps() []Value {
	out := make([]Value, len(a.steps))
	for i, s := range a.steps {
		out[i] = s.clone()
	}
	return out
}

// StepAt returns entry i of the step table.
func (a *Animation) StepAt(i int) Value { return a.steps[i].clone() }

// Len returns the number of entries in the step table (Duration+1).
func (a *Animation) Len() int { return len(a.steps) }

func (a *Animation) lastIndex() int { return len(a.steps) - 1 }

func (a *Animation) String() string {
	return fmt.Sprintf("%s %s.%s %s->%s over %d frames (%s)",
		a.id, a.object, a.property, a.from, a.to, a.duration, a.curve)
}
