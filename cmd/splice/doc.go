// Package main hosts the Splice CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into timeline
// operations: project scaffolding and inspection, clip edits with snapping
// and undo history, single-frame renders, offline audio mixdowns, and
// configuration scaffolding. It centralizes configuration resolution, project
// file locking, and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
