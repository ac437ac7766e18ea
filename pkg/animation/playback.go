package animation

import (
	"fmt"

	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// State is the playback state of an animation.
//
// The state follows this machine:
//
//	         Start()            Pause()
//	Idle ─────────────► Playing ────────► Paused
//	                    │  ▲  ◄──────────   │
//	                    │  │    Resume()    │
//	      Stop() or end │  │ Start()        │ Stop()
//	                    ▼  │                │
//	                   Finished ◄───────────┘
//
// Reverse is not a state: it flips the direction the cursor moves through
// the table and may be toggled at any time.
type State int

const (
	// Idle means the animation was constructed but never started.
	Idle State = iota
	// Playing means Advance moves the cursor.
	Playing
	// Paused means the cursor is frozen until Resume.
	Paused
	// Finished means playback ended through Stop or by running out of table.
	Finished
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type playback struct {
	state    State
	reversed bool
	cursor   int // next index Advance emits
	last     int // last emitted index, -1 before the first emission
	delay    int // frames left before the first emission
	frames   int // frames ticked since Start
	loops    int
	current  Value
}

func (p *playback) reset(lastIndex int) {
	p.cursor = 0
	if p.reversed {
		p.cursor = lastIndex
	}
	p.last = -1
	p.delay = 0
	p.frames = 0
	p.loops = 0
}

func (p *playback) direction() int {
	if p.reversed {
		return -1
	}
	return 1
}

// State returns the playback state.
func (a *Animation) State() State { return a.state }

// IsPlaying reports whether the animation is in the Playing state.
func (a *Animation) IsPlaying() bool { return a.state == Playing }

// IsPaused reports whether the animation is in the Paused state.
func (a *Animation) IsPaused() bool { return a.state == Paused }

// IsFinished reports whether the animation is in the Finished state.
func (a *Animation) IsFinished() bool { return a.state == Finished }

// IsReversed reports whether the cursor moves from the end towards the start.
func (a *Animation) IsReversed() bool { return a.reversed }

// Frame returns the number of frames advanced since Start, including the
// start-frame delay.
func (a *Animation) Frame() int { return a.frames }

// Cursor returns the table index the next Advance will emit.
func (a *Animation) Cursor() int { return a.cursor }

// LoopCount returns how many times playback has wrapped or bounced since
// Start.
func (a *Animation) LoopCount() int { return a.loops }

// Current returns the most recently emitted value and whether one exists.
func (a *Animation) Current() (Value, bool) {
	if a.last < 0 {
		return Value{}, false
	}
	return a.current.clone(), true
}

// Start begins a new traversal from Idle or Finished and fires OnStart.
// The cursor is placed at the first entry, or the last one when reversed.
func (a *Animation) Start() error {
	if a.state != Idle && a.state != Finished {
		return a.invalid("Start")
	}
	a.playback.reset(a.lastIndex())
	a.delay = a.startFrame
	a.state = Playing
	return a.fire("animation.Start", a.onStart)
}

// Pause freezes a playing animation.
func (a *Animation) Pause() error {
	if a.state != Playing {
		return a.invalid("Pause")
	}
	a.state = Paused
	return nil
}

// Resume continues a paused animation from where it stopped.
func (a *Animation) Resume() error {
	if a.state != Paused {
		return a.invalid("Resume")
	}
	a.state = Playing
	return nil
}

// Stop ends a playing or paused animation and fires OnEnd.
func (a *Animation) Stop() error {
	if a.state != Playing && a.state != Paused {
		return a.invalid("Stop")
	}
	return a.finish("animation.Stop")
}

// Reverse flips the playback direction. Mid-traversal the next emitted entry
// is the neighbour of the last emitted one in the new direction. Before any
// entry has been emitted, including during the start-frame delay, the
// traversal restarts from the end it now faces.
func (a *Animation) Reverse() {
	a.reversed = !a.reversed
	switch {
	case a.state == Idle || a.state == Finished || a.last < 0:
		a.cursor = 0
		if a.reversed {
			a.cursor = a.lastIndex()
		}
	default:
		if next := a.last + a.direction(); next >= 0 && next <= a.lastIndex() {
			a.cursor = next
		} else {
			a.cursor = a.last
		}
	}
}

// Advance moves playback one frame. It returns the table entry for this
// frame, or ok=false while the start-frame delay is still running.
//
// After emitting the entry at either end of the table, LoopNone finishes
// (firing OnEnd), LoopRestart wraps the cursor to the traversal start and
// LoopPingPong flips direction in place. Both loop modes increment the loop
// counter and finish once MaxLoops is reached, if set.
func (a *Animation) Advance() (v Value, ok bool, err error) {
	if a.state != Playing {
		return Value{}, false, a.invalid("Advance")
	}
	a.frames++
	if a.delay > 0 {
		a.delay--
		return Value{}, false, nil
	}

	a.last = a.cursor
	a.current = a.steps[a.cursor]
	v = a.current.clone()

	next := a.cursor + a.direction()
	if next >= 0 && next <= a.lastIndex() {
		a.cursor = next
		return v, true, nil
	}

	if a.loop == LoopNone || (a.maxLoops > 0 && a.loops >= a.maxLoops) {
		return v, true, a.finish("animation.Advance")
	}
	a.loops++
	switch a.loop {
	case LoopRestart:
		a.cursor = 0
		if a.reversed {
			a.cursor = a.lastIndex()
		}
	case LoopPingPong:
		a.reversed = !a.reversed
		a.cursor += a.direction()
	}
	return v, true, nil
}

func (a *Animation) finish(op string) error {
	a.state = Finished
	return a.fire(op, a.onEnd)
}

func (a *Animation) fire(op string, cb Callback) error {
	if err := cb.call(); err != nil {
		return &fserrors.AnimationError{
			Op:          op,
			Kind:        fserrors.KindCallback,
			AnimationID: a.id.String(),
			Err:         err,
		}
	}
	return nil
}

func (a *Animation) invalid(cmd string) error {
	return &fserrors.AnimationError{
		Op:          "animation." + cmd,
		Kind:        fserrors.KindValidation,
		AnimationID: a.id.String(),
		Err:         fmt.Errorf("%w: %s while %s", ErrInvalidTransition, cmd, a.state),
	}
}
