package animation

import (
	"fmt"

	"github.com/google/uuid"

	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// ObjectAnimations gathers every animation registered on one object.
//
// For each Kind it keeps all registered animations keyed by id, and the
// ordered subset currently active. An id is active under kind K only while
// it is registered under K; Remove and Deactivate keep both views in step.
type ObjectAnimations struct {
	object ObjectID
	kinds  [kindCount]kindSet
}

type kindSet struct {
	all    map[uuid.UUID]*Animation
	order  []uuid.UUID // registration order of all
	active []uuid.UUID
}

// NewObjectAnimations returns an empty registry for obj.
func NewObjectAnimations(obj ObjectID) *ObjectAnimations {
	o := &ObjectAnimations{object: obj}
	for k := range o.kinds {
		o.kinds[k].all = make(map[uuid.UUID]*Animation)
	}
	return o
}

// Object returns the object the registry belongs to.
func (o *ObjectAnimations) Object() ObjectID { return o.object }

// Add registers a. It fails if a targets another object or is already
// registered.
func (o *ObjectAnimations) Add(a *Animation) error {
	const op = "animation.ObjectAnimations.Add"
	if a.object != o.object {
		return fserrors.Validationf(op, ErrObjectMismatch, "%q added to %q", a.object, o.object)
	}
	if _, _, ok := o.lookup(a.id); ok {
		return fserrors.Validationf(op, ErrDuplicateAnimation, "%s", a.id)
	}
	set := &o.kinds[a.kind]
	set.all[a.id] = a
	set.order = append(set.order, a.id)
	return nil
}

// Get returns the animation registered under id.
func (o *ObjectAnimations) Get(id uuid.UUID) (*Animation, bool) {
	a, _, ok := o.lookup(id)
	return a, ok
}

// Remove unregisters id, dropping it from the active list first. It returns
// the removed animation.
func (o *ObjectAnimations) Remove(id uuid.UUID) (*Animation, error) {
	a, kind, ok := o.lookup(id)
	if !ok {
		return nil, o.unknown("Remove", id)
	}
	set := &o.kinds[kind]
	set.active = without(set.active, id)
	set.order = without(set.order, id)
	delete(set.all, id)
	return a, nil
}

// Activate appends id to the active list of its kind. Activating an already
// active id keeps its position.
func (o *ObjectAnimations) Activate(id uuid.UUID) error {
	_, kind, ok := o.lookup(id)
	if !ok {
		return o.unknown("Activate", id)
	}
	set := &o.kinds[kind]
	if indexOf(set.active, id) < 0 {
		set.active = append(set.active, id)
	}
	return nil
}

// Deactivate drops id from its active list and reports whether it was there.
func (o *ObjectAnimations) Deactivate(id uuid.UUID) bool {
	_, kind, ok := o.lookup(id)
	if !ok {
		return false
	}
	set := &o.kinds[kind]
	if indexOf(set.active, id) < 0 {
		return false
	}
	set.active = without(set.active, id)
	return true
}

// IsActive reports whether id is in its kind's active list.
func (o *ObjectAnimations) IsActive(id uuid.UUID) bool {
	_, kind, ok := o.lookup(id)
	return ok && indexOf(o.kinds[kind].active, id) >= 0
}

// Active returns the active ids of kind in activation order.
func (o *ObjectAnimations) Active(kind Kind) []uuid.UUID {
	if !kind.valid() {
		return nil
	}
	return append([]uuid.UUID(nil), o.kinds[kind].active...)
}

// All returns the animations of kind in registration order.
func (o *ObjectAnimations) All(kind Kind) []*Animation {
	if !kind.valid() {
		return nil
	}
	set := &o.kinds[kind]
	out := make([]*Animation, 0, len(set.order))
	for _, id := range set.order {
		out = append(out, set.all[id])
	}
	return out
}

// Len returns the number of registered animations across all kinds.
func (o *ObjectAnimations) Len() int {
	n := 0
	for k := range o.kinds {
		n += len(o.kinds[k].all)
	}
	return n
}

// ActiveLen returns the number of active animations across all kinds.
func (o *ObjectAnimations) ActiveLen() int {
	n := 0
	for k := range o.kinds {
		n += len(o.kinds[k].active)
	}
	return n
}

// Play starts id and marks it active. If the start callback fails the
// animation is still playing and active; the error is returned.
func (o *ObjectAnimations) Play(id uuid.UUID) error {
	a, _, ok := o.lookup(id)
	if !ok {
		return o.unknown("Play", id)
	}
	if a.state != Idle && a.state != Finished {
		return a.invalid("Start")
	}
	err := a.Start()
	if actErr := o.Activate(id); actErr != nil {
		return actErr
	}
	return err
}

// Cancel stops id if it is running and removes it from the active list. The
// animation stays registered.
func (o *ObjectAnimations) Cancel(id uuid.UUID) error {
	a, _, ok := o.lookup(id)
	if !ok {
		return o.unknown("Cancel", id)
	}
	var err error
	if a.state == Playing || a.state == Paused {
		err = a.Stop()
	}
	o.Deactivate(id)
	return err
}

func (o *ObjectAnimations) lookup(id uuid.UUID) (*Animation, Kind, bool) {
	for k := range o.kinds {
		if a, ok := o.kinds[k].all[id]; ok {
			return a, Kind(k), true
		}
	}
	return nil, 0, false
}

func (o *ObjectAnimations) unknown(cmd string, id uuid.UUID) error {
	return fserrors.Validation("animation.ObjectAnimations."+cmd,
		fmt.Errorf("%w: %s on %q", ErrUnknownAnimation, id, o.object))
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}
