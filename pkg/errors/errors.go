// Package errors provides structured error handling for framesteps.
//
// Sentinel errors live next to the code that returns them (for example
// animation.ErrShapeMismatch). This package wraps them with the operation
// that failed and a coarse [ErrorKind], so callers can log or route failures
// without string matching. Use the standard library errors.Is to test for a
// specific sentinel through an [AnimationError].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindValidation indicates a caller-correctable input error, such as
	// mismatched value shapes or a time factor outside [0, 1].
	KindValidation
	// KindCallback indicates a start or end callback returned an error.
	KindCallback
	// KindConfig indicates an animation sheet could not be read or parsed.
	KindConfig
	// KindPlayback indicates applying a step to a live object failed.
	KindPlayback
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCallback:
		return "callback"
	case KindConfig:
		return "config"
	case KindPlayback:
		return "playback"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// AnimationError represents a structured error raised while building or
// playing an animation.
type AnimationError struct {
	// Op is the operation that failed (e.g., "animation.Solve").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// AnimationID identifies the animation involved, if any.
	AnimationID string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error was reported. Set by Report if zero.
	Timestamp time.Time
}

func (e *AnimationError) Error() string {
	if e.AnimationID != "" {
		return fmt.Sprintf("%s [%s] animation=%s: %v", e.Op, e.Kind, e.AnimationID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *AnimationError) Unwrap() error {
	return e.Err
}

// New wraps err as an AnimationError. It returns nil if err is nil.
func New(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &AnimationError{Op: op, Kind: kind, Err: err}
}

// Validation wraps err as a KindValidation AnimationError.
func Validation(op string, err error) error {
	return New(op, KindValidation, err)
}

// Validationf formats a message around a sentinel and wraps it as a
// KindValidation AnimationError. The sentinel stays reachable via errors.Is.
func Validationf(op string, sentinel error, format string, args ...any) error {
	return New(op, KindValidation, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "playback.Step").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by framesteps.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *AnimationError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
