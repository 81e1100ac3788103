package game

import (
	"fmt"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// pointerInside reports whether a cursor position is on a focused w×h window.
func pointerInside(x, y, w, h int, focused bool) bool {
	return focused && x >= 0 && y >= 0 && x < w && y < h
}
