// Package services defines the error taxonomy shared by the engine's
// collaborator-facing components.
//
// Sentinel markers classify failures (validation, missing asset, not ready,
// decode) so the render and mix loops can decide between skipping a clip for
// one tick and surfacing a real fault. Wrap composes the marker with
// component/operation context while preserving errors.Is chains.
package services
