// Package testing provides test doubles and golden snapshots for framesteps.
//
// # Fakes
//
// [FakeClassifier] answers widget-class queries from a fixed table, and
// [PropertyStore] is an in-memory implementation of the playback accessor
// that records every value written to it:
//
//	store := fstest.NewPropertyStore()
//	player := playback.NewPlayer(store, fstest.NewFakeClassifier(), 60)
//	...
//	got := store.History("panel", "opacity")
//
// # Frame Pacing
//
// Control time for deterministic Pump tests:
//
//	clk := fstest.NewFakeClock()
//	defer playback.SetClock(playback.SetClock(clk))
//	clk.Advance(50 * time.Millisecond)
//	player.Pump()
//
// # Snapshot Testing
//
// Capture a step table and compare it against a golden file:
//
//	fstest.CaptureTable(anim).MatchesFile(t, "testdata/slide.table.json")
//
// Update snapshots with:
//
//	FRAMESTEPS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import fstest "github.com/go-drift/framesteps/pkg/testing"
package testing
