package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/framesteps/pkg/animation"
)

func TestPropertyStore_GetSet(t *testing.T) {
	s := NewPropertyStore()
	if _, err := s.Get("panel", "opacity"); !errors.Is(err, ErrNoProperty) {
		t.Errorf("expected ErrNoProperty, got %v", err)
	}

	s.Put("panel", "opacity", animation.Scalar(10))
	if got, err := s.Get("panel", "opacity"); err != nil || !got.Equal(animation.Scalar(10)) {
		t.Errorf("Get = %v, %v; want 10", got, err)
	}
	if len(s.History("panel", "opacity")) != 0 {
		t.Error("Put should not record history")
	}

	_ = s.Set("panel", "opacity", animation.Scalar(20))
	_ = s.Set("panel", "opacity", animation.Scalar(30))
	h := s.History("panel", "opacity")
	if len(h) != 2 || !h[0].Equal(animation.Scalar(20)) || !h[1].Equal(animation.Scalar(30)) {
		t.Errorf("History = %v, want [20 30]", h)
	}
	if s.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", s.Writes())
	}

	h[0] = animation.Scalar(99)
	if !s.History("panel", "opacity")[0].Equal(animation.Scalar(20)) {
		t.Error("History returned shared storage")
	}
}

func TestPropertyStore_FailOn(t *testing.T) {
	s := NewPropertyStore()
	boom := errors.New("boom")
	s.FailOn("panel", "color", boom)

	if err := s.Set("panel", "color", animation.RGB(1, 2, 3)); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	if s.Writes() != 0 {
		t.Error("failed Set was counted")
	}
	if err := s.Set("panel", "opacity", animation.Scalar(1)); err != nil {
		t.Errorf("failure leaked to another property: %v", err)
	}

	s.FailOn("panel", "color", nil)
	if err := s.Set("panel", "color", animation.RGB(1, 2, 3)); err != nil {
		t.Errorf("Set after clearing failure: %v", err)
	}

	s.Reset()
	if s.Writes() != 0 || len(s.History("panel", "color")) != 0 {
		t.Error("Reset did not clear the store")
	}
}

func TestFakeClassifier(t *testing.T) {
	c := NewFakeClassifier("main")
	if got := c.Classify("main"); got != animation.WidgetWindow {
		t.Errorf("Classify(main) = %v, want window", got)
	}
	if got := c.Classify("button"); got != animation.WidgetGeneric {
		t.Errorf("Classify(button) = %v, want generic", got)
	}
	c.Set("button", animation.WidgetWindow)
	if got := c.Classify("button"); got != animation.WidgetWindow {
		t.Errorf("Classify(button) after Set = %v, want window", got)
	}
}
