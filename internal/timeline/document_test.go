package timeline_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splice/internal/timeline"
)

func TestProjectFileRoundTrip(t *testing.T) {
	model := newModel(t)
	track := model.AddTrack(timeline.TrackVideo)
	clip := mustAddClip(t, model, track.ID, 5000, 1000)
	model.AddKeyframe(clip.ID, timeline.PropOpacity, 0, 0, timeline.EaseInOut)
	model.AddEffect(clip.ID, timeline.EffectBlur, 4)

	path := filepath.Join(t.TempDir(), "cut.splice.json")
	if err := timeline.SaveProjectFile(path, model.Project()); err != nil {
		t.Fatalf("SaveProjectFile: %v", err)
	}

	loaded, err := timeline.LoadProjectFile(path)
	if err != nil {
		t.Fatalf("LoadProjectFile: %v", err)
	}
	if loaded.ID != model.Project().ID {
		t.Fatalf("project id changed across save/load")
	}
	if len(loaded.Tracks) != 1 || len(loaded.Tracks[0].Clips) != 1 {
		t.Fatalf("track/clip structure lost: %+v", loaded.Tracks)
	}
	got := loaded.Tracks[0].Clips[0]
	if got.Start != 1000 || got.Duration != 5000 || len(got.Keyframes) != 1 || len(got.Effects) != 1 {
		t.Fatalf("clip fields lost: %+v", got)
	}
	if got.Keyframes[0].Easing != timeline.EaseInOut {
		t.Fatalf("easing = %s, want easeInOut", got.Keyframes[0].Easing)
	}
}

func TestLoadProjectFileRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "project": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := timeline.LoadProjectFile(path); err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestSaveProjectFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cut.json")
	if err := timeline.SaveProjectFile(path, newModel(t).Project()); err != nil {
		t.Fatalf("SaveProjectFile: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "cut.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}
