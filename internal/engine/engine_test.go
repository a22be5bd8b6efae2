package engine_test

import (
	"testing"
	"time"

	"splice/internal/assets"
	"splice/internal/engine"
	"splice/internal/mixer"
	"splice/internal/playback"
	"splice/internal/render"
	"splice/internal/testsupport"
	"splice/internal/timeline"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time          { return f.t }
func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

type fakeSource struct {
	offset  int64
	stopped bool
}

func (s *fakeSource) SetGain(float64) {}
func (s *fakeSource) Stop()           { s.stopped = true }

type fakeSink struct {
	now     int64
	sources []*fakeSource
}

func (s *fakeSink) Schedule(_ string, _ *assets.AudioBuffer, offsetMs int64, _ float64) (mixer.Source, error) {
	source := &fakeSource{offset: offsetMs}
	s.sources = append(s.sources, source)
	return source, nil
}

func (s *fakeSink) Now() int64 { return s.now }

func (s *fakeSink) live() []*fakeSource {
	var live []*fakeSource
	for _, source := range s.sources {
		if !source.stopped {
			live = append(live, source)
		}
	}
	return live
}

// testEngine builds a 2-second timeline with one red video clip and one audio
// clip, driven by a synthetic wall clock and a recording audio sink. Both
// clips lean on the shared seeded assets.
func testEngine(t *testing.T) (*engine.Engine, *render.SoftwareSurface, *fakeSink, *fakeNow) {
	t.Helper()
	model := testsupport.NewModel(t)
	provider := testsupport.SeedProvider(t)

	video := model.AddTrack(timeline.TrackVideo)
	audio := model.AddTrack(timeline.TrackAudio)
	testsupport.MustAddClip(t, model, video.ID, "red", 2000, 0)
	testsupport.MustAddClip(t, model, audio.ID, "tone", 2000, 0)

	surface := render.NewSoftwareSurface(16, 16)
	sink := &fakeSink{}
	clock := &fakeNow{t: time.Unix(1000, 0)}
	e := engine.New(model, provider, sink, surface, engine.Options{Now: clock.now}, nil)
	return e, surface, sink, clock
}

func centerRed(s *render.SoftwareSurface) uint8 {
	w, h := s.Size()
	return s.Frame().RGBAAt(w/2, h/2).R
}

func TestTickFeedsOneLogicalTimeToVideoAndAudio(t *testing.T) {
	e, surface, sink, clock := testEngine(t)
	e.Play()
	clock.advance(time.Second)
	sink.now = 1000

	if got := e.Tick(); got != 1000 {
		t.Fatalf("logical time = %d, want 1000", got)
	}
	if centerRed(surface) != 255 {
		t.Fatal("frame at 1000 not rendered")
	}
	live := sink.live()
	if len(live) != 1 || live[0].offset != 1000 {
		t.Fatalf("audio sources = %+v, want one at offset 1000", live)
	}
}

func TestPauseReleasesAudioBeforeReturning(t *testing.T) {
	e, _, sink, clock := testEngine(t)
	e.Play()
	e.Tick()
	if len(sink.live()) != 1 {
		t.Fatal("expected a live source while playing")
	}

	clock.advance(500 * time.Millisecond)
	e.Pause()
	if len(sink.live()) != 0 {
		t.Fatal("Pause returned with sources still live")
	}
	if e.State() != playback.StatePaused || e.LogicalTime() != 500 {
		t.Fatalf("state=%s time=%d, want paused at 500", e.State(), e.LogicalTime())
	}
}

func TestPausedTimelineStillRendersItsPosition(t *testing.T) {
	e, surface, _, clock := testEngine(t)
	e.Play()
	clock.advance(time.Second)
	e.Pause()

	surface.Clear()
	e.Tick()
	if centerRed(surface) != 255 {
		t.Fatal("paused tick did not render the held frame")
	}
}

func TestSeekWhilePlayingReschedulesAudio(t *testing.T) {
	e, _, sink, clock := testEngine(t)
	e.Play()
	e.Tick()

	e.Seek(1500)
	clock.advance(16 * time.Millisecond)
	sink.now = 16
	logical := e.Tick()
	if logical != 1516 {
		t.Fatalf("logical after seek = %d, want 1516", logical)
	}
	if !sink.sources[0].stopped {
		t.Fatal("pre-seek source not stopped")
	}
	live := sink.live()
	if len(live) != 1 || live[0].offset != 1516 {
		t.Fatalf("post-seek sources = %+v, want one at offset 1516", live)
	}
}

func TestAutoStopAtTimelineEndReleasesAudio(t *testing.T) {
	e, _, sink, clock := testEngine(t)
	e.Seek(1900)
	e.Play()
	e.Tick()
	if len(sink.live()) != 1 {
		t.Fatal("expected a live source near the end")
	}

	clock.advance(300 * time.Millisecond)
	sink.now = 300
	if got := e.Tick(); got != 2000 {
		t.Fatalf("logical = %d, want clamp at 2000", got)
	}
	if e.State() != playback.StateStopped {
		t.Fatalf("state = %s, want auto-stop", e.State())
	}
	if len(sink.live()) != 0 {
		t.Fatal("auto-stop left audio sources live")
	}
}

func TestStopResetsPosition(t *testing.T) {
	e, _, sink, clock := testEngine(t)
	e.Play()
	clock.advance(time.Second)
	e.Tick()
	e.Stop()
	if e.LogicalTime() != 0 || e.State() != playback.StateStopped {
		t.Fatalf("state=%s time=%d, want stopped at 0", e.State(), e.LogicalTime())
	}
	if len(sink.live()) != 0 {
		t.Fatal("Stop left audio sources live")
	}
}
