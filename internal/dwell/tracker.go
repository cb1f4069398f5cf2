// Package dwell promotes verses from "visible on screen" to "durably read".
// The view layer reports visibility changes; a verse qualifies once the
// visible set has been left untouched for the dwell threshold.
package dwell

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sakina-app/core/internal/clock"
	"github.com/sakina-app/core/internal/errmsg"
	"github.com/sakina-app/core/internal/progress"
	"github.com/sakina-app/core/internal/quran"
)

// DefaultThreshold is the uninterrupted visibility required before a verse
// counts as read.
const DefaultThreshold = 3 * time.Second

// Options configures a Tracker.
type Options struct {
	Threshold time.Duration
	Logger    *slog.Logger
}

// Tracker watches the set of currently visible verses and records read
// marks. One shared timer covers the whole set: any change to the set -
// addition or removal - restarts it, so a verse that flickers in and out
// never qualifies on accumulated exposure, only on a full quiet interval.
type Tracker struct {
	mu sync.Mutex

	store     progress.Store
	clk       clock.Clock
	threshold time.Duration
	logger    *slog.Logger

	visible  map[quran.VerseID]time.Time // when each verse last became visible
	marked   map[quran.VerseID]bool      // optimistic in-memory read set
	timer    clock.Timer
	timerSeq uint64 // invalidates fires that raced a restart
	stopped  bool
}

// New creates a tracker persisting through store and timing against clk.
func New(store progress.Store, clk clock.Clock, opts Options) *Tracker {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Tracker{
		store:     store,
		clk:       clk,
		threshold: opts.Threshold,
		logger:    opts.Logger,
		visible:   make(map[quran.VerseID]time.Time),
		marked:    make(map[quran.VerseID]bool),
	}
}

// OnVisibilityChanged records that a verse entered or left the screen.
// Events that do not actually change the set (a verse reported visible
// twice) leave the timer alone.
func (t *Tracker) OnVisibilityChanged(id quran.VerseID, visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	if visible {
		if _, ok := t.visible[id]; ok {
			return
		}
		t.visible[id] = t.clk.Now()
	} else {
		if _, ok := t.visible[id]; !ok {
			return
		}
		delete(t.visible, id)
	}

	t.restartTimerLocked()
}

// restartTimerLocked reschedules the shared dwell timer over a snapshot of
// the current visible set. The snapshot, not the live set, is what the
// firing decides over; entries gone by fire time are dropped there.
func (t *Tracker) restartTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if len(t.visible) == 0 {
		return
	}

	snapshot := make([]quran.VerseID, 0, len(t.visible))
	for id := range t.visible {
		snapshot = append(snapshot, id)
	}

	t.timerSeq++
	seq := t.timerSeq
	t.timer = t.clk.AfterFunc(t.threshold, func() {
		t.promote(seq, snapshot)
	})
}

// promote marks every snapshot entry that is still visible and not yet
// read. A fire whose seq no longer matches lost a race with a restart
// and is dropped. The in-memory mark happens first; a failed persistence
// write is logged and never rolled back or retried here.
func (t *Tracker) promote(seq uint64, snapshot []quran.VerseID) {
	t.mu.Lock()
	if t.stopped || seq != t.timerSeq {
		t.mu.Unlock()
		return
	}
	t.timer = nil

	now := t.clk.Now()
	var toRecord []quran.VerseID
	for _, id := range snapshot {
		if _, still := t.visible[id]; !still {
			continue
		}
		if t.marked[id] {
			continue
		}
		t.marked[id] = true
		toRecord = append(toRecord, id)
	}
	t.mu.Unlock()

	for _, id := range toRecord {
		if read, err := t.store.IsRead(id); err == nil && read {
			continue
		}
		if err := t.store.RecordRead(id, now); err != nil {
			t.logger.Warn(errmsg.FormatWith(errmsg.OpMarkRead, id.String(), err))
		}
	}
}

// IsVisible reports whether a verse is currently in the visible set.
func (t *Tracker) IsVisible(id quran.VerseID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.visible[id]
	return ok
}

// VisibleCount returns the size of the visible set.
func (t *Tracker) VisibleCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visible)
}

// Stop cancels the pending timer and ignores further visibility events.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.visible = make(map[quran.VerseID]time.Time)
}
