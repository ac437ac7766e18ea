// Package config loads animation sheets: YAML files that declare objects and
// the animations to precompute for them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/framesteps/pkg/animation"
	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// DefaultFileName is the sheet LoadOptional looks for.
const DefaultFileName = "animations.yaml"

// SupportedMajor is the only sheet schema major version accepted.
const SupportedMajor = "v1"

var (
	ErrUnsupportedVersion = errors.New("unsupported sheet version")
	ErrDuplicateObject    = errors.New("duplicate object")
	ErrUnknownClass       = errors.New("unknown widget class")
	ErrInvalidEndpoint    = errors.New("invalid endpoint")
	ErrInvalidCurve       = errors.New("invalid curve")
)

// Sheet is a parsed animation sheet.
type Sheet struct {
	Version    string          `yaml:"version,omitempty"`
	FrameRate  int             `yaml:"frame_rate,omitempty"`
	Objects    []ObjectSpec    `yaml:"objects,omitempty"`
	Animations []AnimationSpec `yaml:"animations,omitempty"`
}

// ObjectSpec declares an animated object and its widget class.
type ObjectSpec struct {
	ID    string `yaml:"id"`
	Class string `yaml:"class,omitempty"`
}

// AnimationSpec is one animation entry of a sheet.
type AnimationSpec struct {
	Name       string    `yaml:"name,omitempty"`
	Kind       string    `yaml:"kind"`
	Object     string    `yaml:"object"`
	Property   string    `yaml:"property,omitempty"`
	From       Endpoint  `yaml:"from"`
	To         Endpoint  `yaml:"to"`
	Curve      CurveSpec `yaml:"curve,omitempty"`
	Duration   int       `yaml:"duration"`
	StartFrame int       `yaml:"start_frame,omitempty"`
	Loop       string    `yaml:"loop,omitempty"`
	MaxLoops   int       `yaml:"max_loops,omitempty"`
}

// Label returns the animation name, or kind@object when unnamed.
func (s AnimationSpec) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Kind + "@" + s.Object
}

// Load reads and parses the sheet at path.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fserrors.New("config.Load", fserrors.KindConfig,
			fmt.Errorf("failed to read %s: %w", filepath.Base(path), err))
	}
	return Parse(data)
}

// LoadOptional reads DefaultFileName from dir if present. A missing file
// yields an empty sheet.
func LoadOptional(dir string) (*Sheet, error) {
	sheet, err := Load(filepath.Join(dir, DefaultFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Sheet{}, nil
		}
		return nil, err
	}
	return sheet, nil
}

// Parse decodes a sheet and checks its version and object table. Animation
// entries are checked by Definitions.
func Parse(data []byte) (*Sheet, error) {
	const op = "config.Parse"
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fserrors.New(op, fserrors.KindConfig, fmt.Errorf("failed to parse sheet: %w", err))
	}
	if err := sheet.validate(); err != nil {
		return nil, fserrors.New(op, fserrors.KindConfig, err)
	}
	return &sheet, nil
}

func (s *Sheet) validate() error {
	if v := strings.TrimSpace(s.Version); v != "" {
		if !semver.IsValid(v) {
			return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
		}
		if semver.Major(v) != SupportedMajor {
			return fmt.Errorf("%w: %s, want %s.x", ErrUnsupportedVersion, v, SupportedMajor)
		}
	}
	if s.FrameRate < 0 {
		return fmt.Errorf("frame_rate must not be negative, got %d", s.FrameRate)
	}
	seen := make(map[string]bool, len(s.Objects))
	for _, obj := range s.Objects {
		if obj.ID == "" {
			return errors.New("object without id")
		}
		if seen[obj.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateObject, obj.ID)
		}
		seen[obj.ID] = true
		if _, err := parseClass(obj.Class); err != nil {
			return fmt.Errorf("object %s: %w", obj.ID, err)
		}
	}
	return nil
}

// Classifier returns a classifier backed by the sheet's object table.
// Objects not listed are animation.WidgetGeneric. The result only reads a
// prebuilt map and is safe for concurrent use.
func (s *Sheet) Classifier() animation.Classifier {
	classes := make(map[animation.ObjectID]animation.WidgetClass, len(s.Objects))
	for _, obj := range s.Objects {
		class, _ := parseClass(obj.Class)
		classes[animation.ObjectID(obj.ID)] = class
	}
	return animation.ClassifierFunc(func(obj animation.ObjectID) animation.WidgetClass {
		return classes[obj]
	})
}

// Definitions converts every animation entry, in order.
func (s *Sheet) Definitions() ([]animation.Definition, error) {
	defs := make([]animation.Definition, 0, len(s.Animations))
	for i, spec := range s.Animations {
		def, err := spec.Definition()
		if err != nil {
			return nil, fserrors.New("config.Definitions", fserrors.KindConfig,
				fmt.Errorf("animation %d (%s): %w", i, spec.Label(), err))
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Definition converts one entry. Endpoints and the curve are resolved here;
// normalization is left to animation.New.
//
// For colour entries a three-channel endpoint paired with a four-channel one
// is widened to RGBA with alpha 255, so "tomato" can fade to "#00ff88cc".
// Any other shape mismatch is reported by animation.New as
// animation.ErrShapeMismatch.
func (s AnimationSpec) Definition() (animation.Definition, error) {
	kind, err := animation.ParseKind(s.Kind)
	if err != nil {
		return animation.Definition{}, err
	}
	loop, err := animation.ParseLoopMode(s.Loop)
	if err != nil {
		return animation.Definition{}, err
	}
	if s.Object == "" {
		return animation.Definition{}, errors.New("missing object")
	}
	from, err := s.From.Value()
	if err != nil {
		return animation.Definition{}, fmt.Errorf("from: %w", err)
	}
	to, err := s.To.Value()
	if err != nil {
		return animation.Definition{}, fmt.Errorf("to: %w", err)
	}
	if kind == animation.Color {
		from, to = matchAlpha(from, to)
	}
	return animation.Definition{
		Kind:       kind,
		Object:     animation.ObjectID(s.Object),
		Property:   s.Property,
		From:       from,
		To:         to,
		Curve:      s.Curve.Curve(),
		Duration:   s.Duration,
		StartFrame: s.StartFrame,
		Loop:       loop,
		MaxLoops:   s.MaxLoops,
	}, nil
}

func parseClass(name string) (animation.WidgetClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "generic", "widget":
		return animation.WidgetGeneric, nil
	case "window":
		return animation.WidgetWindow, nil
	default:
		return animation.WidgetGeneric, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
}
