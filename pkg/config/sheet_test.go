package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/framesteps/pkg/animation"
	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

const sampleSheet = `
version: v1.2.0
frame_rate: 30
objects:
  - id: main_window
    class: window
  - id: button
animations:
  - name: slide
    kind: position
    object: main_window
    from: [0, 0]
    to: [100, 50]
    curve: ease-in-out
    duration: 4
    loop: ping-pong
    max_loops: 2
  - name: grow
    kind: size
    object: main_window
    from: [10, 10]
    to: [64, 48]
    curve: [0.1, 0.7, 1.0, 0.1]
    duration: 6
  - kind: color
    object: button
    from: tomato
    to: "#00ff88cc"
    duration: 5
    start_frame: 2
  - kind: opacity
    object: button
    from: 0
    to: 255
    curve: linear
    duration: 4
`

func mustParse(t *testing.T, src string) *Sheet {
	t.Helper()
	sheet, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return sheet
}

func TestParse(t *testing.T) {
	sheet := mustParse(t, sampleSheet)

	if sheet.Version != "v1.2.0" || sheet.FrameRate != 30 {
		t.Errorf("header = %q/%d", sheet.Version, sheet.FrameRate)
	}
	if len(sheet.Objects) != 2 || len(sheet.Animations) != 4 {
		t.Fatalf("got %d objects, %d animations", len(sheet.Objects), len(sheet.Animations))
	}
	if got := sheet.Animations[2].Label(); got != "color@button" {
		t.Errorf("Label() = %q, want color@button", got)
	}
	if got := sheet.Animations[1].Curve.Curve(); got != (animation.BezierCurve{X1: 0.1, Y1: 0.7, X2: 1.0, Y2: 0.1}) {
		t.Errorf("custom curve = %v", got)
	}
	if !sheet.Animations[2].Curve.IsZero() || sheet.Animations[2].Curve.Curve() != animation.Linear {
		t.Error("omitted curve should resolve to linear")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad version", "version: one", ErrUnsupportedVersion},
		{"major two", "version: v2.0.0", ErrUnsupportedVersion},
		{"duplicate object", "objects: [{id: a}, {id: a}]", ErrDuplicateObject},
		{"unknown class", "objects: [{id: a, class: dialog}]", ErrUnknownClass},
		{"unknown curve", "animations: [{kind: opacity, object: a, curve: wobble}]", animation.ErrUnknownCurve},
		{"short curve", "animations: [{kind: opacity, object: a, curve: [0, 1]}]", ErrInvalidCurve},
		{"map endpoint", "animations: [{kind: opacity, object: a, from: {x: 1}}]", ErrInvalidEndpoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var aerr *fserrors.AnimationError
			if !errors.As(err, &aerr) || aerr.Kind != fserrors.KindConfig {
				t.Errorf("expected config AnimationError, got %v", err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	sheet := mustParse(t, "")
	if len(sheet.Animations) != 0 {
		t.Error("empty document should have no animations")
	}
}

func TestEndpoint_Value(t *testing.T) {
	tests := []struct {
		src  string
		want animation.Value
	}{
		{"12.5", animation.Scalar(12.5)},
		{"[1, 2]", animation.Vector(1, 2)},
		{"tomato", animation.RGB(255, 99, 71)},
		{"Navy", animation.RGB(0, 0, 128)},
		{"'#00FF88'", animation.RGB(0, 255, 136)},
		{"'#f63'", animation.RGB(255, 102, 51)},
		{"'#00ff88cc'", animation.RGBA(0, 255, 136, 204)},
	}
	for _, tt := range tests {
		var e Endpoint
		if err := yaml.Unmarshal([]byte(tt.src), &e); err != nil {
			t.Errorf("%s: unmarshal: %v", tt.src, err)
			continue
		}
		got, err := e.Value()
		if err != nil {
			t.Errorf("%s: Value: %v", tt.src, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s: Value() = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestEndpoint_Invalid(t *testing.T) {
	for _, e := range []Endpoint{{}, ColorName("not-a-colour"), ColorName("#12345"), ColorName("#123456zz")} {
		if _, err := e.Value(); !errors.Is(err, ErrInvalidEndpoint) {
			t.Errorf("%+v: expected ErrInvalidEndpoint, got %v", e, err)
		}
	}
}

func TestSheet_MarshalRoundTrip(t *testing.T) {
	sheet := mustParse(t, sampleSheet)
	data, err := yaml.Marshal(sheet)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again := mustParse(t, string(data))

	a, err := sheet.Definitions()
	if err != nil {
		t.Fatal(err)
	}
	b, err := again.Definitions()
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Curve != b[i].Curve || !a[i].From.Equal(b[i].From) || !a[i].To.Equal(b[i].To) {
			t.Errorf("animation %d changed across marshal: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSheet_Classifier(t *testing.T) {
	c := mustParse(t, sampleSheet).Classifier()
	if c.Classify("main_window") != animation.WidgetWindow {
		t.Error("main_window should be a window")
	}
	if c.Classify("button") != animation.WidgetGeneric || c.Classify("unlisted") != animation.WidgetGeneric {
		t.Error("other objects should be generic")
	}
}

func TestSheet_Definitions(t *testing.T) {
	defs, err := mustParse(t, sampleSheet).Definitions()
	if err != nil {
		t.Fatalf("Definitions: %v", err)
	}
	slide := defs[0]
	if slide.Kind != animation.Position || slide.Loop != animation.LoopPingPong || slide.MaxLoops != 2 {
		t.Errorf("slide = %+v", slide)
	}
	if slide.Curve != animation.EaseInOut {
		t.Errorf("slide curve = %v", slide.Curve)
	}
	if defs[2].StartFrame != 2 || !defs[2].To.Equal(animation.RGBA(0, 255, 136, 204)) {
		t.Errorf("color = %+v", defs[2])
	}
	if !defs[2].From.Equal(animation.RGBA(255, 99, 71, 255)) {
		t.Errorf("color From() = %v, want opaque tomato", defs[2].From)
	}

	bad := mustParse(t, "animations: [{name: x, kind: spin, object: a, from: 0, to: 1, duration: 1}]")
	if _, err := bad.Definitions(); !errors.Is(err, animation.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	bad = mustParse(t, "animations: [{kind: opacity, object: a, to: 1, duration: 1}]")
	if _, err := bad.Definitions(); !errors.Is(err, ErrInvalidEndpoint) {
		t.Errorf("expected ErrInvalidEndpoint for missing from, got %v", err)
	}
	bad = mustParse(t, "animations: [{kind: opacity, object: a, from: 0, to: 1, duration: 1, loop: sideways}]")
	if _, err := bad.Definitions(); !errors.Is(err, animation.ErrUnknownLoopMode) {
		t.Errorf("expected ErrUnknownLoopMode, got %v", err)
	}
}

func TestDefinition_ColorShapes(t *testing.T) {
	widened, err := mustParse(t, `animations: [{kind: color, object: a, from: tomato, to: "#00ff88cc", duration: 2}]`).Definitions()
	if err != nil {
		t.Fatalf("Definitions: %v", err)
	}
	if !widened[0].From.Equal(animation.RGBA(255, 99, 71, 255)) {
		t.Errorf("From = %v, want tomato with alpha 255", widened[0].From)
	}

	// Only the 3/4 channel pairing is widened; other mismatches reach animation.New.
	_, err = Build(context.Background(), mustParse(t, `animations: [{kind: color, object: a, from: [1, 2], to: tomato, duration: 2}]`))
	if !errors.Is(err, animation.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	anims, err := Build(context.Background(), mustParse(t, sampleSheet))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(anims) != 4 {
		t.Fatalf("got %d animations, want 4", len(anims))
	}
	wantKinds := []animation.Kind{animation.Position, animation.Size, animation.Color, animation.Opacity}
	for i, a := range anims {
		if a.Kind() != wantKinds[i] {
			t.Errorf("animation %d kind = %s, want %s", i, a.Kind(), wantKinds[i])
		}
	}

	// Window objects clamp size to the window minimum.
	if got := anims[1].From(); !got.Equal(animation.Vec2(animation.MinWindowSize, animation.MinWindowSize)) {
		t.Errorf("grow From() = %v", got)
	}
	if got := anims[0].Steps(); !got[2].Equal(animation.Vec2(50, 25)) || !got[4].Equal(animation.Vec2(100, 50)) {
		t.Errorf("slide steps = %v", got)
	}
	if got := anims[3].Steps(); !got[1].Equal(animation.Scalar(63)) {
		t.Errorf("opacity steps = %v", got)
	}
}

func TestBuild_Failure(t *testing.T) {
	sheet := mustParse(t, `
animations:
  - {name: ok, kind: opacity, object: a, from: 0, to: 1, duration: 2}
  - {name: broken, kind: position, object: a, from: 0, to: 1, duration: 2}
`)
	_, err := Build(context.Background(), sheet)
	if !errors.Is(err, animation.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	var aerr *fserrors.AnimationError
	if !errors.As(err, &aerr) || aerr.Kind != fserrors.KindConfig {
		t.Errorf("expected config AnimationError, got %v", err)
	}
}

type panicRecorder struct{ panics []*fserrors.PanicError }

func (r *panicRecorder) HandleError(*fserrors.AnimationError)  {}
func (r *panicRecorder) HandlePanic(err *fserrors.PanicError) { r.panics = append(r.panics, err) }

func TestBuild_RecoversPanic(t *testing.T) {
	rec := &panicRecorder{}
	fserrors.SetHandler(rec)
	t.Cleanup(func() { fserrors.SetHandler(nil) })

	classify := animation.ClassifierFunc(func(animation.ObjectID) animation.WidgetClass {
		panic("classifier exploded")
	})
	_, err := build(context.Background(), mustParse(t, sampleSheet), classify)

	var perr *fserrors.PanicError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if perr.Op != "config.Build" || perr.Value != "classifier exploded" {
		t.Errorf("unexpected panic error: %+v", perr)
	}
	if len(rec.panics) != 1 {
		t.Errorf("expected 1 reported panic, got %d", len(rec.panics))
	}
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, mustParse(t, sampleSheet))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	sheet, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional on empty dir: %v", err)
	}
	if len(sheet.Animations) != 0 {
		t.Error("missing file should give an empty sheet")
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(sampleSheet), 0o644); err != nil {
		t.Fatal(err)
	}
	sheet, err = LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if len(sheet.Animations) != 4 {
		t.Errorf("got %d animations, want 4", len(sheet.Animations))
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("version: v9.0.0"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(dir); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
