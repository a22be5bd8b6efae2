// Package logging wraps log/slog with the repository's construction options,
// typed attribute helpers, and standardized field keys so engine components
// emit uniform structured records.
package logging
