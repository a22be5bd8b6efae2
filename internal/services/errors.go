package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrNotReady   = errors.New("not ready")
	ErrDecode     = errors.New("decode failure")
	ErrTransient  = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Skippable reports whether an error should degrade to skipping the affected
// clip for the current tick instead of interrupting the render/mix loop.
// Asset unavailability and decode failures are per-clip conditions that clear
// on a later tick or never; neither justifies stopping playback.
func Skippable(err error) bool {
	return errors.Is(err, ErrNotReady) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDecode)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
