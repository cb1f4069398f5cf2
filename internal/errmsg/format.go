// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart Op = "start recitation"
	OpPlaybackSeek  Op = "seek"
	OpReciterSwitch Op = "switch reciter"

	// Audio resolution operations
	OpResolveAudio Op = "resolve verse audio"
	OpCatalogFetch Op = "fetch recitation catalog entry"
	OpAudioFetch   Op = "download verse audio"
	OpCacheOpen    Op = "open audio cache"
	OpCacheWrite   Op = "write audio cache entry"

	// Progress operations
	OpProgressOpen Op = "open reading progress store"
	OpMarkRead     Op = "mark verse as read"
	OpPositionSave Op = "save reading position"
	OpPositionLoad Op = "load reading position"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize engine"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
