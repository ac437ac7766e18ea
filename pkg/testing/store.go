package testing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-drift/framesteps/pkg/animation"
)

// ErrNoProperty is returned by PropertyStore.Get for a property that was
// never written.
var ErrNoProperty = errors.New("property not set")

type propertyKey struct {
	obj      animation.ObjectID
	property string
}

// PropertyStore is an in-memory property accessor for playback tests. It
// keeps the current value of every property plus the ordered history of
// values written through Set. Safe for concurrent use.
type PropertyStore struct {
	mu      sync.Mutex
	values  map[propertyKey]animation.Value
	history map[propertyKey][]animation.Value
	fail    map[propertyKey]error
	writes  int
}

// NewPropertyStore returns an empty store.
func NewPropertyStore() *PropertyStore {
	return &PropertyStore{
		values:  make(map[propertyKey]animation.Value),
		history: make(map[propertyKey][]animation.Value),
		fail:    make(map[propertyKey]error),
	}
}

// Put seeds a property value without recording it in the history.
func (s *PropertyStore) Put(obj animation.ObjectID, property string, v animation.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[propertyKey{obj, property}] = v
}

// Get returns the current value of a property.
func (s *PropertyStore) Get(obj animation.ObjectID, property string) (animation.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[propertyKey{obj, property}]
	if !ok {
		return animation.Value{}, fmt.Errorf("%w: %s.%s", ErrNoProperty, obj, property)
	}
	return v, nil
}

// Set stores v and appends it to the property's history. If FailOn was
// called for the property, Set returns that error and stores nothing.
func (s *PropertyStore) Set(obj animation.ObjectID, property string, v animation.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := propertyKey{obj, property}
	if err := s.fail[key]; err != nil {
		return err
	}
	s.values[key] = v
	s.history[key] = append(s.history[key], v)
	s.writes++
	return nil
}

// FailOn makes every later Set of the property return err. A nil err
// clears the failure.
func (s *PropertyStore) FailOn(obj animation.ObjectID, property string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, propertyKey{obj, property})
		return
	}
	s.fail[propertyKey{obj, property}] = err
}

// History returns a copy of the values written to a property, oldest first.
func (s *PropertyStore) History(obj animation.ObjectID, property string) []animation.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history[propertyKey{obj, property}]
	out := make([]animation.Value, len(h))
	copy(out, h)
	return out
}

// Writes returns the number of successful Set calls.
func (s *PropertyStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Reset clears values, history and failures.
func (s *PropertyStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
	clear(s.history)
	clear(s.fail)
	s.writes = 0
}
