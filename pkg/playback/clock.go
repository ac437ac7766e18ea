package playback

import "time"

// Clock is the time source Player.Pump converts into frames.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// frameClock is shared by every Player in the process.
var frameClock Clock = systemClock{}

// SetClock replaces the clock used for frame pacing and returns the previous
// one, so tests can write defer SetClock(SetClock(fake)).
func SetClock(c Clock) Clock {
	prev := frameClock
	frameClock = c
	return prev
}

// Now returns the frame-pacing time.
func Now() time.Time { return frameClock.Now() }
