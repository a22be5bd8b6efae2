package main

import "fmt"

// formatMs renders a millisecond position as m:ss.mmm.
func formatMs(ms int64) string {
	if ms < 0 {
		return fmt.Sprintf("-%s", formatMs(-ms))
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}

// shortID trims a UUID down to its first group for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
