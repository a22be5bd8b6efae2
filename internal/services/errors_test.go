package services_test

import (
	"errors"
	"strings"
	"testing"

	"splice/internal/services"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := services.Wrap(services.ErrNotReady, "mixer", "schedule", "asset pending", cause)
	if !errors.Is(err, services.ErrNotReady) {
		t.Fatalf("expected ErrNotReady in chain, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "mixer: schedule: asset pending") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "compositor", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient default, got %v", err)
	}
}

func TestSkippable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{services.Wrap(services.ErrNotReady, "assets", "fetch", "", nil), true},
		{services.Wrap(services.ErrNotFound, "assets", "lookup", "", nil), true},
		{services.Wrap(services.ErrDecode, "assets", "audio", "", nil), true},
		{services.Wrap(services.ErrValidation, "timeline", "resize", "", nil), false},
		{errors.New("plain"), false},
	}
	for _, tc := range cases {
		if got := services.Skippable(tc.err); got != tc.want {
			t.Fatalf("Skippable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
