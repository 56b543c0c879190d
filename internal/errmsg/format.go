// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Stream operations
	OpStreamPlay    Op = "play the stream"
	OpStreamConnect Op = "connect to the stream"
	OpOutputOpen    Op = "open audio output"

	// Status operations
	OpStatusFetch Op = "load radio status"

	// Persistence
	OpVolumeLoad  Op = "load volume"
	OpVolumeSave  Op = "save volume"
	OpHistorySave Op = "save listening history"

	// Integrations
	OpNotify     Op = "send notification"
	OpScrobble   Op = "scrobble track"
	OpNowPlaying Op = "update now playing"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Fixed playback messages shown inline in the player.
const (
	MsgStreamError  = "Error loading the stream."
	MsgSlowStream   = "The stream is loading slowly. Please try again."
	MsgPlayFailed   = "Could not play the stream. Please try again."
	MsgStatusFailed = "Could not load radio information."
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
