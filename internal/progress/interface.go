package progress

import (
	"time"

	"github.com/sakina-app/core/internal/quran"
)

// Store defines the progress store contract for dependency injection and
// testing. Read marks are set once and never cleared by the engine or the
// dwell tracker; unmarking is an explicit external action.
type Store interface {
	RecordRead(id quran.VerseID, ts time.Time) error
	IsRead(id quran.VerseID) (bool, error)
	ReadMarks() ([]ReadMark, error)
	SetLastRead(pos Position)
	LastRead() (*Position, error)
	Close() error
}

// Verify Manager implements Store at compile time.
var _ Store = (*Manager)(nil)
