// Package history provides snapshot-based undo/redo over the timeline model.
//
// Snapshots are deep copies of the whole track list rather than deltas:
// clips, effects, and keyframes are small enough that copying is simpler and
// immune to mutation-ordering bugs, at a memory cost bounded by the history
// limit. Checkpoints capture state before the mutation that prompted them, so
// undo conceptually replays backward.
package history

import (
	"time"

	"github.com/google/uuid"

	"splice/internal/timeline"
)

// DefaultLimit bounds retained checkpoints; oldest entries evict first.
const DefaultLimit = 50

// Entry is one recorded checkpoint.
type Entry struct {
	ID       string
	Label    string
	Recorded time.Time
	tracks   []*timeline.Track
}

// Snapshot returns a deep copy of the entry's track list, so callers cannot
// corrupt retained history.
func (e *Entry) Snapshot() []*timeline.Track {
	return timeline.CloneTracks(e.tracks)
}

// Manager records checkpoints against a model and restores them on demand.
// Not safe for concurrent use; callers serialize edits (and therefore
// history) already.
type Manager struct {
	model *timeline.Model
	limit int
	now   func() time.Time

	undo []*Entry
	redo []*Entry
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLimit overrides the retained checkpoint count.
func WithLimit(limit int) Option {
	return func(m *Manager) {
		if limit > 0 {
			m.limit = limit
		}
	}
}

// WithClock overrides the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a history manager bound to a model.
func NewManager(model *timeline.Model, opts ...Option) *Manager {
	m := &Manager{
		model: model,
		limit: DefaultLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Checkpoint records the current track list before a mutation. It clears the
// redo stack and evicts the oldest entry past the limit.
func (m *Manager) Checkpoint(label string) *Entry {
	entry := &Entry{
		ID:       uuid.NewString(),
		Label:    label,
		Recorded: m.now(),
		tracks:   timeline.CloneTracks(m.model.Tracks()),
	}
	m.undo = append(m.undo, entry)
	if len(m.undo) > m.limit {
		m.undo = m.undo[len(m.undo)-m.limit:]
	}
	m.redo = nil
	return entry
}

// Undo restores the most recent checkpoint, pushing the replaced state onto
// the redo stack. It reports false with no effect when no checkpoints exist.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}
	entry := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]

	m.redo = append(m.redo, &Entry{
		ID:       uuid.NewString(),
		Label:    entry.Label,
		Recorded: m.now(),
		tracks:   timeline.CloneTracks(m.model.Tracks()),
	})
	m.model.RestoreTracks(entry.Snapshot())
	return true
}

// Redo reapplies the most recently undone state, pushing the replaced state
// back onto the undo stack. It reports false with no effect when the redo
// stack is empty.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	entry := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]

	m.undo = append(m.undo, &Entry{
		ID:       uuid.NewString(),
		Label:    entry.Label,
		Recorded: m.now(),
		tracks:   timeline.CloneTracks(m.model.Tracks()),
	})
	m.model.RestoreTracks(entry.Snapshot())
	return true
}

// CanUndo reports whether any checkpoint is available.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether any undone state is available.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Entries returns the undo stack oldest-first, for history palettes.
func (m *Manager) Entries() []*Entry {
	cp := make([]*Entry, len(m.undo))
	copy(cp, m.undo)
	return cp
}
