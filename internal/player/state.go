// Package player is the low-level audio transport: it turns a resolved
// resource handle into sound. It knows nothing about queues, sessions, or
// reading progress; the recitation engine drives it.
package player

// State represents the transport state machine.
//
// The transport has three states with the following valid transitions:
//
//	┌──────────┐      start      ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                            │ │
//	     │ stop                 pause │ │ stop
//	     │                            ▼ │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	                  stop       └──────────┘
//	                                  │
//	                           resume │
//	                                  ▼
//	                               Playing
//
// Load prepares a handle while Stopped; Start begins output. Invalid
// transitions (resume while playing, pause while stopped) are no-ops.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if the transport holds a loaded stream (Playing or
// Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
