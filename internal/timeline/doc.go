// Package timeline holds the multi-track project model (tracks, clips,
// effects, keyframes) and its synchronous mutation API, plus the pure
// keyframe interpolator.
//
// All positions and durations are integer milliseconds. Mutations never
// perform I/O and report precondition violations as no-ops through boolean
// returns so edit gestures can probe safely. Clips on one track may overlap;
// the deterministic rule is clip-list (creation) order, with the most
// recently added clip winning single-clip lookups and painting on top.
// Snapshots for undo are deep copies produced by CloneTracks, never
// serialized text.
package timeline
