package recitation

import (
	"time"

	"github.com/sakina-app/core/internal/quran"
)

// Snapshot is the immutable observable state emitted to subscribers after
// every transition, seek, or setting change. The view layer renders
// snapshots; it never reaches into the engine.
//
// Position is refreshed on emission, not on every playback tick; readers
// needing a live position poll Service.Position between snapshots.
type Snapshot struct {
	State      State
	Err        string // set only while State == StateError
	Current    Track
	VerseIndex int // -1 when the queue is empty
	QueueLen   int
	Position   time.Duration
	Duration   time.Duration
	Speed      float64
	Reciter    quran.Reciter
	Continuous bool
}
