// Package audio resolves verse identifiers to playable audio resources.
// Resolution is backed by a remote recitation catalog and a local cache;
// the engine only ever sees opaque handles.
package audio

import (
	"context"
	"errors"
	"time"

	"github.com/sakina-app/core/internal/quran"
)

// ErrNotFound is returned when the catalog has no audio for the requested
// verse and reciter.
var ErrNotFound = errors.New("verse audio not found")

// Handle is an opaque reference to a playable audio resource. Path points at
// a local file once the resource has been cached.
type Handle struct {
	Verse    quran.VerseID
	Reciter  quran.Reciter
	Path     string
	URL      string
	Duration time.Duration
}

// Resolver resolves a verse and reciter to a playable resource. Resolve must
// honor ctx cancellation and deadlines and leave no partial state behind when
// cancelled.
type Resolver interface {
	Resolve(ctx context.Context, verse quran.VerseID, reciter quran.Reciter) (Handle, error)
}
