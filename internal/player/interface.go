package player

import (
	"time"

	"github.com/sakina-app/core/internal/audio"
)

// Interface defines the transport contract for dependency injection and
// testing. Load prepares a resolved handle (decoding and buffering); Start
// begins output. FinishedChan signals natural end of the loaded stream and
// is replaced on every Load.
type Interface interface {
	Load(h audio.Handle) error
	Start() error
	Pause()
	Resume()
	Stop()
	SetSpeed(ratio float64)
	SeekTo(pos time.Duration)
	State() State
	Position() time.Duration
	Duration() time.Duration
	FinishedChan() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
