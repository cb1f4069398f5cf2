// Package recitation implements the continuous recitation playback engine:
// a session/state machine over an ordered verse queue, with cancellable
// asynchronous audio resolution and snapshot-based state publication.
package recitation

// State represents the session state machine.
//
// The machine has six states with the following transitions:
//
//	┌────────┐ play/playQueue ┌─────────┐ resourceReady ┌───────────┐
//	│  Idle  │ ──────────────▶│ Loading │ ─────────────▶│ Buffering │
//	└────────┘                └─────────┘               └───────────┘
//	    ▲                          ▲  │ failed                │ bufferReady
//	    │ trackEnded               │  ▼                       ▼
//	    │ (no next, or         retry ┌─────────┐  pause  ┌─────────┐
//	    │  continuous off)         ◀─│  Error  │◀────────│ Playing │◀──┐
//	    │                            └─────────┘  failed └─────────┘   │
//	    │                                                     │ pause  │ resume
//	    │                                                     ▼        │
//	    └──────────── stop (from any state) ─────────────┌────────┐    │
//	                                                     │ Paused │────┘
//	                                                     └────────┘
//
// Auto-advance: trackEnded with a next verse and continuous mode re-enters
// Loading for the next queue entry. Switching reciter while Playing or
// Paused re-enters Loading for the current verse without moving the cursor.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateBuffering
	StatePlaying
	StatePaused
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateBuffering:
		return "Buffering"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a session holds a track (anything but Idle).
func (s State) IsActive() bool {
	return s != StateIdle
}

// hasTrack reports whether seek targets a live track in this state.
func (s State) hasTrack() bool {
	return s == StatePlaying || s == StatePaused
}
