package recitation

import (
	"errors"
	"time"

	"github.com/sakina-app/core/internal/quran"
)

// ErrInvalidCommand is returned for commands rejected at the boundary; the
// session state is never touched.
var ErrInvalidCommand = errors.New("invalid command")

// ErrClosed is returned from commands issued after Close.
var ErrClosed = errors.New("engine closed")

// Service defines the playback engine contract. Commands are issued
// synchronously and processed in issue order; their effects are observed
// through snapshots. Exactly one session is live at a time; Play and
// PlayQueue replace it.
type Service interface {
	// Transport commands
	Play(verse quran.Verse) error
	PlayQueue(verses []quran.Verse, startIndex int) error
	Next()
	Previous()
	TogglePlayPause()
	Seek(pos time.Duration)
	SetSpeed(ratio float64)
	SetReciter(r quran.Reciter)
	SetContinuousMode(enabled bool)
	Stop()
	Retry()

	// State queries
	State() State
	Snapshot() Snapshot
	CurrentVerse() Track
	CurrentIndex() int
	QueueLen() int
	Position() time.Duration
	Duration() time.Duration
	Speed() float64
	Reciter() quran.Reciter
	ContinuousMode() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
