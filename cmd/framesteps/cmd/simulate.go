package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/framesteps/pkg/animation"
	"github.com/go-drift/framesteps/pkg/playback"
)

// maxSimulatedFrames bounds a simulation without --frames, so that
// unbounded loops terminate.
const maxSimulatedFrames = 10000

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Play a sheet frame by frame",
		Long: `Load an animation sheet, start every animation at once and step them
frame by frame against an in-memory object store, printing each value as it
is applied.

Without --frames the simulation runs until no animation is active, or for
at most 10000 frames.

Flags:
  --frames N   Stop after N frames`,
		Usage: "framesteps simulate <sheet.yaml> [--frames N]",
		Run:   runSimulate,
	})
}

func runSimulate(args []string) error {
	frames := 0
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--frames":
			if i+1 >= len(args) {
				return fmt.Errorf("--frames requires a number")
			}
			i++
			arg = "--frames=" + args[i]
			fallthrough
		case strings.HasPrefix(arg, "--frames="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--frames="))
			if err != nil || n <= 0 {
				return fmt.Errorf("--frames must be a positive number, got %q", strings.TrimPrefix(arg, "--frames="))
			}
			frames = n
		default:
			positional = append(positional, arg)
		}
	}
	if len(positional) != 1 {
		return fmt.Errorf("sheet path is required\n\nUsage: framesteps simulate <sheet.yaml> [--frames N]")
	}

	sheet, anims, err := loadSheet(positional[0])
	if err != nil {
		return err
	}

	store := newMemoryStore()
	player := playback.NewPlayer(store, sheet.Classifier(), sheet.FrameRate)
	for _, a := range anims {
		if err := player.Register(a); err != nil {
			return err
		}
		if err := player.Play(a.ID()); err != nil {
			return err
		}
	}

	limit := frames
	if limit == 0 {
		limit = maxSimulatedFrames
	}
	var errs []error
	for frame := 1; frame <= limit; frame++ {
		if frames == 0 && !player.HasActive() {
			break
		}
		if err := player.Step(); err != nil {
			errs = append(errs, fmt.Errorf("frame %d: %w", frame, err))
		}
		if writes := store.flush(); len(writes) > 0 {
			fmt.Fprintf(stdout, "frame %d\n", frame)
			for _, w := range writes {
				fmt.Fprintf(stdout, "  %s\n", w)
			}
		}
	}
	return errors.Join(errs...)
}

type propertyKey struct {
	obj      animation.ObjectID
	property string
}

// memoryStore holds simulated object properties and the writes made since
// the last flush.
type memoryStore struct {
	values  map[propertyKey]animation.Value
	pending []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[propertyKey]animation.Value)}
}

func (s *memoryStore) Get(obj animation.ObjectID, property string) (animation.Value, error) {
	v, ok := s.values[propertyKey{obj, property}]
	if !ok {
		return animation.Value{}, fmt.Errorf("%s.%s has no value", obj, property)
	}
	return v, nil
}

func (s *memoryStore) Set(obj animation.ObjectID, property string, v animation.Value) error {
	s.values[propertyKey{obj, property}] = v
	s.pending = append(s.pending, fmt.Sprintf("%s.%s = %s", obj, property, v))
	return nil
}

func (s *memoryStore) flush() []string {
	out := s.pending
	s.pending = nil
	return out
}
