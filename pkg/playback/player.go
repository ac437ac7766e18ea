// Package playback drives precomputed animations frame by frame and applies
// their steps to live objects.
//
// The animation package only builds step tables and tracks playback state;
// [Player] is the scheduler that decides when a step is applied. Each call to
// [Player.Step] advances every active animation by one frame and writes the
// emitted value through an [Accessor]. [Player.Pump] converts wall-clock time
// into whole frames at the configured frame rate and steps that many times.
//
// A Player is not safe for concurrent use; drive it from one goroutine, such
// as the host's render loop.
package playback

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/framesteps/pkg/animation"
	"github.com/go-drift/framesteps/pkg/errors"
)

// DefaultFrameRate is used when NewPlayer is given a non-positive rate.
const DefaultFrameRate = 60

// Accessor reads and writes animated properties on host objects.
type Accessor interface {
	Get(obj animation.ObjectID, property string) (animation.Value, error)
	Set(obj animation.ObjectID, property string, v animation.Value) error
}

// Player owns the animation registries of every object it plays.
type Player struct {
	accessor   Accessor
	classifier animation.Classifier
	frameTime  time.Duration

	objects map[animation.ObjectID]*animation.ObjectAnimations
	order   []animation.ObjectID
	owners  map[uuid.UUID]animation.ObjectID

	last  time.Time
	carry time.Duration
}

// NewPlayer creates a player that writes through accessor at frameRate
// frames per second. The classifier is used by AnimateFromCurrent.
func NewPlayer(accessor Accessor, classifier animation.Classifier, frameRate int) *Player {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Player{
		accessor:   accessor,
		classifier: classifier,
		frameTime:  time.Second / time.Duration(frameRate),
		objects:    make(map[animation.ObjectID]*animation.ObjectAnimations),
		owners:     make(map[uuid.UUID]animation.ObjectID),
	}
}

// FrameTime returns the duration of one frame.
func (p *Player) FrameTime() time.Duration {
	return p.frameTime
}

// Register adds a to the registry of its object.
func (p *Player) Register(a *animation.Animation) error {
	reg, ok := p.objects[a.Object()]
	if !ok {
		reg = animation.NewObjectAnimations(a.Object())
		p.objects[a.Object()] = reg
		p.order = append(p.order, a.Object())
	}
	if err := reg.Add(a); err != nil {
		return err
	}
	p.owners[a.ID()] = a.Object()
	return nil
}

// AnimateFromCurrent reads the property's current value through the
// accessor, uses it as def.From, then builds and registers the animation.
func (p *Player) AnimateFromCurrent(def animation.Definition) (*animation.Animation, error) {
	property := def.Property
	if property == "" {
		property = def.Kind.String()
	}
	current, err := p.accessor.Get(def.Object, property)
	if err != nil {
		return nil, &errors.AnimationError{
			Op:   "playback.AnimateFromCurrent",
			Kind: errors.KindPlayback,
			Err:  fmt.Errorf("get %s.%s: %w", def.Object, property, err),
		}
	}
	def.From = current
	a, err := animation.New(def, p.classifier)
	if err != nil {
		return nil, err
	}
	if err := p.Register(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Objects returns the registry of obj.
func (p *Player) Objects(obj animation.ObjectID) (*animation.ObjectAnimations, bool) {
	reg, ok := p.objects[obj]
	return reg, ok
}

// Get returns a registered animation by id.
func (p *Player) Get(id uuid.UUID) (*animation.Animation, bool) {
	reg, ok := p.registry(id)
	if !ok {
		return nil, false
	}
	return reg.Get(id)
}

// Play starts id and marks it active.
func (p *Player) Play(id uuid.UUID) error {
	reg, err := p.mustRegistry("Play", id)
	if err != nil {
		return err
	}
	return reg.Play(id)
}

// Pause pauses id. It stays active but Step skips it.
func (p *Player) Pause(id uuid.UUID) error {
	a, err := p.mustAnimation("Pause", id)
	if err != nil {
		return err
	}
	return a.Pause()
}

// Resume resumes a paused id.
func (p *Player) Resume(id uuid.UUID) error {
	a, err := p.mustAnimation("Resume", id)
	if err != nil {
		return err
	}
	return a.Resume()
}

// Reverse flips the direction of id.
func (p *Player) Reverse(id uuid.UUID) error {
	a, err := p.mustAnimation("Reverse", id)
	if err != nil {
		return err
	}
	a.Reverse()
	return nil
}

// Cancel stops id and drops it from the active list.
func (p *Player) Cancel(id uuid.UUID) error {
	reg, err := p.mustRegistry("Cancel", id)
	if err != nil {
		return err
	}
	return reg.Cancel(id)
}

// Remove cancels id and unregisters it.
func (p *Player) Remove(id uuid.UUID) error {
	reg, err := p.mustRegistry("Remove", id)
	if err != nil {
		return err
	}
	cancelErr := reg.Cancel(id)
	if _, err := reg.Remove(id); err != nil {
		return err
	}
	delete(p.owners, id)
	return cancelErr
}

// HasActive reports whether any animation is active.
func (p *Player) HasActive() bool {
	for _, reg := range p.objects {
		if reg.ActiveLen() > 0 {
			return true
		}
	}
	return false
}

// Step advances every active, playing animation by one frame and applies
// the emitted values. Finished animations are deactivated. Failures do not
// stop other animations from stepping; each is reported to the error handler
// and all are returned joined.
func (p *Player) Step() error {
	var errs []error
	for _, obj := range p.order {
		reg := p.objects[obj]
		for _, kind := range animation.Kinds() {
			for _, id := range reg.Active(kind) {
				a, ok := reg.Get(id)
				if !ok {
					continue
				}
				if err := p.stepOne(a); err != nil {
					errs = append(errs, err)
				}
				if a.IsFinished() {
					reg.Deactivate(id)
				}
			}
		}
	}
	return stderrors.Join(errs...)
}

func (p *Player) stepOne(a *animation.Animation) (err error) {
	if !a.IsPlaying() {
		return nil
	}
	defer errors.RecoverInto("playback.Step", &err)

	v, ok, advErr := a.Advance()
	if ok {
		if setErr := p.accessor.Set(a.Object(), a.Property(), v); setErr != nil {
			perr := &errors.AnimationError{
				Op:          "playback.Step",
				Kind:        errors.KindPlayback,
				AnimationID: a.ID().String(),
				Err:         fmt.Errorf("set %s.%s: %w", a.Object(), a.Property(), setErr),
			}
			errors.Report(perr)
			return stderrors.Join(perr, advErr)
		}
	}
	if advErr != nil {
		var aerr *errors.AnimationError
		if stderrors.As(advErr, &aerr) {
			errors.Report(aerr)
		}
		return advErr
	}
	return nil
}

// Pump steps once per whole frame elapsed on the clock since the previous
// Pump and returns the number of frames stepped. The first call only records
// the time. Leftover time below one frame carries over.
func (p *Player) Pump() (int, error) {
	now := Now()
	if p.last.IsZero() {
		p.last = now
		return 0, nil
	}
	elapsed := now.Sub(p.last) + p.carry
	p.last = now
	if elapsed < 0 {
		p.carry = 0
		return 0, nil
	}
	frames := int(elapsed / p.frameTime)
	p.carry = elapsed % p.frameTime

	var errs []error
	for range frames {
		if err := p.Step(); err != nil {
			errs = append(errs, err)
		}
	}
	return frames, stderrors.Join(errs...)
}

func (p *Player) registry(id uuid.UUID) (*animation.ObjectAnimations, bool) {
	obj, ok := p.owners[id]
	if !ok {
		return nil, false
	}
	reg, ok := p.objects[obj]
	return reg, ok
}

func (p *Player) mustRegistry(cmd string, id uuid.UUID) (*animation.ObjectAnimations, error) {
	reg, ok := p.registry(id)
	if !ok {
		return nil, errors.Validation("playback."+cmd, fmt.Errorf("%w: %s", animation.ErrUnknownAnimation, id))
	}
	return reg, nil
}

func (p *Player) mustAnimation(cmd string, id uuid.UUID) (*animation.Animation, error) {
	reg, err := p.mustRegistry(cmd, id)
	if err != nil {
		return nil, err
	}
	a, _ := reg.Get(id)
	return a, nil
}
