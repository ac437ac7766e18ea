package animation

import "errors"

// Validation sentinels. Functions in this package return them wrapped in a
// *errors.AnimationError from the framesteps errors package; match them with
// errors.Is.
var (
	// ErrShapeMismatch is returned when two values (or a value and its kind)
	// disagree on scalar versus vector, or on vector length.
	ErrShapeMismatch = errors.New("value shape mismatch")

	// ErrOutOfRangeUnderflow is returned by Solve for a time below 0 when
	// AllowBelowZero is not set.
	ErrOutOfRangeUnderflow = errors.New("time factor for bezier progress is smaller than zero")

	// ErrOutOfRangeOverflow is returned by Solve for a time above 1 when
	// AllowAboveOne is not set.
	ErrOutOfRangeOverflow = errors.New("time factor for bezier progress is bigger than one")

	// ErrInvalidFrameRange is returned for a frame range that cannot be
	// sampled.
	ErrInvalidFrameRange = errors.New("invalid frame range")

	// ErrInvalidDuration is returned for a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be a positive frame count")

	// ErrInvalidTransition is returned when a playback command does not apply
	// to the animation's current state.
	ErrInvalidTransition = errors.New("invalid playback transition")

	// ErrObjectMismatch is returned when an animation is added to the
	// registry of a different object.
	ErrObjectMismatch = errors.New("animation targets a different object")

	// ErrDuplicateAnimation is returned when an id is registered twice.
	ErrDuplicateAnimation = errors.New("animation already registered")

	// ErrUnknownAnimation is returned for an id that is not registered.
	ErrUnknownAnimation = errors.New("unknown animation")

	// ErrUnknownKind is returned for an unrecognised kind.
	ErrUnknownKind = errors.New("unknown animation kind")

	// ErrUnknownCurve is returned for an unrecognised curve preset name.
	ErrUnknownCurve = errors.New("unknown bezier preset")

	// ErrUnknownLoopMode is returned for an unrecognised loop mode name.
	ErrUnknownLoopMode = errors.New("unknown loop mode")
)
