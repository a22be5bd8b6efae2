package history_test

import (
	"encoding/json"
	"testing"

	"splice/internal/history"
	"splice/internal/testsupport"
	"splice/internal/timeline"
)

func newFixture(t *testing.T) (*timeline.Model, *history.Manager, *timeline.Clip) {
	t.Helper()
	model := testsupport.NewModel(t)
	track := model.AddTrack(timeline.TrackVideo)
	clip := testsupport.MustAddClip(t, model, track.ID, "asset-1", 4000, 1000)
	return model, history.NewManager(model), clip
}

func tracksJSON(t *testing.T, model *timeline.Model) string {
	t.Helper()
	data, err := json.Marshal(model.Tracks())
	if err != nil {
		t.Fatalf("marshal tracks: %v", err)
	}
	return string(data)
}

func TestUndoRestoresPreMutationState(t *testing.T) {
	model, mgr, clip := newFixture(t)
	before := tracksJSON(t, model)

	mgr.Checkpoint("move clip")
	if !model.MoveClip(clip.ID, "", 5000) {
		t.Fatal("MoveClip failed")
	}
	if tracksJSON(t, model) == before {
		t.Fatal("mutation did not change the model")
	}
	if !mgr.Undo() {
		t.Fatal("Undo failed")
	}
	if got := tracksJSON(t, model); got != before {
		t.Fatalf("undo mismatch:\n got %s\nwant %s", got, before)
	}
}

func TestUndoRedoIsIdempotent(t *testing.T) {
	model, mgr, clip := newFixture(t)

	mgr.Checkpoint("move clip")
	model.MoveClip(clip.ID, "", 5000)
	afterMutation := tracksJSON(t, model)

	if !mgr.Undo() {
		t.Fatal("Undo failed")
	}
	if !mgr.Redo() {
		t.Fatal("Redo failed")
	}
	if got := tracksJSON(t, model); got != afterMutation {
		t.Fatalf("redo mismatch:\n got %s\nwant %s", got, afterMutation)
	}
	// A second undo still works, proving redo pushed back onto undo.
	if !mgr.Undo() {
		t.Fatal("second Undo failed")
	}
}

func TestUnderflowIsNoOp(t *testing.T) {
	model, mgr, _ := newFixture(t)
	before := tracksJSON(t, model)
	if mgr.Undo() {
		t.Fatal("Undo with empty history must be a no-op")
	}
	if mgr.Redo() {
		t.Fatal("Redo with empty redo stack must be a no-op")
	}
	if tracksJSON(t, model) != before {
		t.Fatal("no-op undo/redo mutated the model")
	}
}

func TestCheckpointClearsRedo(t *testing.T) {
	model, mgr, clip := newFixture(t)

	mgr.Checkpoint("first move")
	model.MoveClip(clip.ID, "", 3000)
	mgr.Undo()
	if !mgr.CanRedo() {
		t.Fatal("expected redo after undo")
	}
	mgr.Checkpoint("second move")
	if mgr.CanRedo() {
		t.Fatal("checkpoint must clear the redo stack")
	}
}

func TestHistoryLimitEvictsOldest(t *testing.T) {
	model, _, clip := newFixture(t)
	cfg := testsupport.NewConfig(t, testsupport.WithHistoryLimit(3))
	mgr := history.NewManager(model, history.WithLimit(cfg.Editing.HistoryLimit))

	for i := int64(0); i < 5; i++ {
		mgr.Checkpoint("move")
		model.MoveClip(clip.ID, "", 1000+i*100)
	}
	if got := len(mgr.Entries()); got != 3 {
		t.Fatalf("retained %d entries, want 3", got)
	}
	undone := 0
	for mgr.Undo() {
		undone++
	}
	if undone != 3 {
		t.Fatalf("undid %d times, want 3", undone)
	}
	// Oldest surviving checkpoint was taken before the third move, when the
	// clip sat at 1100.
	found, _, ok := model.FindClip(clip.ID)
	if !ok || found.Start != 1100 {
		t.Fatalf("after exhausting undo, start = %v, want 1100", found)
	}
}

func TestSnapshotIsolationFromLiveModel(t *testing.T) {
	model, mgr, clip := newFixture(t)
	entry := mgr.Checkpoint("isolate")
	model.MoveClip(clip.ID, "", 9000)

	snapshot := entry.Snapshot()
	if snapshot[0].Clips[0].Start != 1000 {
		t.Fatalf("snapshot start = %d, want pre-mutation 1000", snapshot[0].Clips[0].Start)
	}
	// Mutating the returned snapshot must not corrupt retained history.
	snapshot[0].Clips[0].Start = 42
	if entry.Snapshot()[0].Clips[0].Start != 1000 {
		t.Fatal("entry shares state with returned snapshot")
	}
}
