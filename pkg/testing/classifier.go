package testing

import (
	"sync"

	"github.com/go-drift/framesteps/pkg/animation"
)

// FakeClassifier classifies objects from a table. Unknown objects are
// animation.WidgetGeneric. Safe for concurrent use.
type FakeClassifier struct {
	mu      sync.RWMutex
	classes map[animation.ObjectID]animation.WidgetClass
}

// NewFakeClassifier returns a classifier that reports every listed object as
// a window.
func NewFakeClassifier(windows ...animation.ObjectID) *FakeClassifier {
	c := &FakeClassifier{classes: make(map[animation.ObjectID]animation.WidgetClass)}
	for _, w := range windows {
		c.classes[w] = animation.WidgetWindow
	}
	return c
}

// Set records the class of obj.
func (c *FakeClassifier) Set(obj animation.ObjectID, class animation.WidgetClass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[obj] = class
}

// Classify implements animation.Classifier.
func (c *FakeClassifier) Classify(obj animation.ObjectID) animation.WidgetClass {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.classes[obj]
}
