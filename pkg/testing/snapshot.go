package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/framesteps/pkg/animation"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// TableSnapshot captures a precomputed animation in a stable, diffable form.
// Values are stored as strings so golden files read the same way the
// animation prints them.
type TableSnapshot struct {
	Kind       string   `json:"kind"`
	Object     string   `json:"object"`
	Property   string   `json:"property"`
	Curve      string   `json:"curve"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	StartFrame int      `json:"startFrame"`
	EndFrame   int      `json:"endFrame"`
	Loop       string   `json:"loop,omitempty"`
	Factors    []string `json:"factors"`
	Steps      []string `json:"steps"`
}

// CaptureTable captures the step table of a. The animation ID is not part of
// the snapshot.
func CaptureTable(a *animation.Animation) *TableSnapshot {
	snap := &TableSnapshot{
		Kind:       a.Kind().String(),
		Object:     string(a.Object()),
		Property:   a.Property(),
		Curve:      a.Curve().String(),
		From:       a.From().String(),
		To:         a.To().String(),
		StartFrame: a.StartFrame(),
		EndFrame:   a.EndFrame(),
	}
	if a.Loop() != animation.LoopNone {
		snap.Loop = a.Loop().String()
	}
	for _, f := range a.Factors() {
		snap.Factors = append(snap.Factors, strconv.FormatFloat(f, 'f', 6, 64))
	}
	for _, step := range a.Steps() {
		snap.Steps = append(snap.Steps, step.String())
	}
	return snap
}

// MatchesFile compares this table against a golden file. On mismatch it
// reports a diff and instructions for updating. When FRAMESTEPS_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *TableSnapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("FRAMESTEPS_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: FRAMESTEPS_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: FRAMESTEPS_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *TableSnapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *TableSnapshot) Diff(other *TableSnapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func loadSnapshot(path string) (*TableSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap TableSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid table snapshot: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *TableSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
