package recitation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sakina-app/core/internal/audio"
	"github.com/sakina-app/core/internal/clock"
	"github.com/sakina-app/core/internal/errmsg"
	"github.com/sakina-app/core/internal/player"
	"github.com/sakina-app/core/internal/playqueue"
	"github.com/sakina-app/core/internal/progress"
	"github.com/sakina-app/core/internal/quran"
)

const (
	defaultSpeedMin       = 0.5
	defaultSpeedMax       = 2.0
	defaultResolveTimeout = 15 * time.Second
)

// Options configures a new engine.
type Options struct {
	Reciter        quran.Reciter
	SpeedMin       float64
	SpeedMax       float64
	ResolveTimeout time.Duration
	Continuous     bool
	Clock          clock.Clock
	Logger         *slog.Logger
}

// Verify engine implements Service at compile time.
var _ Service = (*engine)(nil)

type engine struct {
	mu sync.Mutex

	resolver audio.Resolver
	player   player.Interface
	store    progress.Store
	clk      clock.Clock
	logger   *slog.Logger

	speedMin       float64
	speedMax       float64
	resolveTimeout time.Duration

	// Session fields; e.mu is the only writer's gate.
	state      State
	errMsg     string
	queue      *playqueue.Queue
	generation uint64
	reciter    quran.Reciter
	speed      float64
	continuous bool

	// Cancels the in-flight resolution, if any.
	resolveCancel context.CancelFunc

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback engine over the given collaborators. The store
// write path is fire-and-forget: persistence failures never affect playback.
func New(resolver audio.Resolver, p player.Interface, store progress.Store, opts Options) Service {
	if opts.SpeedMin == 0 {
		opts.SpeedMin = defaultSpeedMin
	}
	if opts.SpeedMax == 0 {
		opts.SpeedMax = defaultSpeedMax
	}
	if opts.ResolveTimeout == 0 {
		opts.ResolveTimeout = defaultResolveTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &engine{
		resolver:       resolver,
		player:         p,
		store:          store,
		clk:            opts.Clock,
		logger:         opts.Logger,
		speedMin:       opts.SpeedMin,
		speedMax:       opts.SpeedMax,
		resolveTimeout: opts.ResolveTimeout,
		state:          StateIdle,
		queue:          playqueue.New(),
		reciter:        opts.Reciter,
		speed:          1.0,
		continuous:     opts.Continuous,
		done:           make(chan struct{}),
	}
}

// --- Transport commands ---

// Play starts a single-verse session, replacing any live one.
func (e *engine) Play(verse quran.Verse) error {
	return e.PlayQueue([]quran.Verse{verse}, 0)
}

// PlayQueue starts a session over verses positioned at startIndex. An
// out-of-bounds index or empty list is rejected without touching the live
// session.
func (e *engine) PlayQueue(verses []quran.Verse, startIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	// Validate against a fresh queue so rejection leaves the session intact.
	q := playqueue.New()
	if err := q.Load(verses, startIndex); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	e.queue = q
	e.errMsg = ""
	e.startCurrentLocked()
	return nil
}

// Next advances to the following verse. Requires more than one queued verse;
// no-op at the last entry.
func (e *engine) Next() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state == StateError || e.queue.Len() < 2 {
		return
	}
	if !e.queue.Advance() {
		return
	}
	if e.state.IsActive() {
		e.startCurrentLocked()
	} else {
		e.emitLocked()
	}
}

// Previous moves back one verse. Requires more than one queued verse; no-op
// at the first entry.
func (e *engine) Previous() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state == StateError || e.queue.Len() < 2 {
		return
	}
	if !e.queue.Retreat() {
		return
	}
	if e.state.IsActive() {
		e.startCurrentLocked()
	} else {
		e.emitLocked()
	}
}

// TogglePlayPause pauses or resumes. Ignored while Loading, Buffering,
// Error, or Idle.
func (e *engine) TogglePlayPause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	switch e.state {
	case StatePlaying:
		e.player.Pause()
		e.state = StatePaused
		e.emitLocked()
	case StatePaused:
		e.player.Resume()
		e.state = StatePlaying
		e.emitLocked()
	default:
		// No live track to toggle.
	}
}

// Seek moves within the current track, clamped to [0, duration]. Ignored
// with no active track and while in Error.
func (e *engine) Seek(pos time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.state.hasTrack() {
		return
	}

	if pos < 0 {
		pos = 0
	}
	if dur := e.player.Duration(); pos > dur {
		pos = dur
	}
	e.player.SeekTo(pos)
	e.emitLocked()
}

// SetSpeed applies a playback rate clamped to the supported range, without
// restarting playback. Rejected while in Error.
func (e *engine) SetSpeed(ratio float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state == StateError {
		return
	}

	if ratio < e.speedMin {
		ratio = e.speedMin
	}
	if ratio > e.speedMax {
		ratio = e.speedMax
	}
	e.speed = ratio
	if e.state.IsActive() {
		e.player.SetSpeed(ratio)
	}
	e.emitLocked()
}

// SetReciter selects a reciter. With a live track the current verse is
// re-resolved in place: the queue and cursor are untouched and the session
// re-enters Loading. Rejected while in Error.
func (e *engine) SetReciter(r quran.Reciter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state == StateError || r == e.reciter {
		return
	}

	e.reciter = r
	if e.state.IsActive() {
		e.startCurrentLocked()
	} else {
		e.emitLocked()
	}
}

// SetContinuousMode toggles auto-advance at end of track. Takes effect at
// the next track boundary; playback is not restarted.
func (e *engine) SetContinuousMode(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.continuous == enabled {
		return
	}
	e.continuous = enabled
	e.emitLocked()
}

// Stop ends the session from any state: releases the player, clears the
// queue, and returns to Idle. Idempotent.
func (e *engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	e.generation++
	e.cancelResolveLocked()
	e.player.Stop()
	e.queue.Clear()
	e.errMsg = ""
	e.state = StateIdle
	e.emitLocked()
}

// Retry re-resolves the failing verse. No-op outside Error.
func (e *engine) Retry() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StateError {
		return
	}
	e.errMsg = ""
	e.startCurrentLocked()
}

// --- Session driving ---

// startCurrentLocked begins loading the verse at the queue cursor. It bumps
// the generation so every in-flight resolution, buffer callback, and
// finished watcher from the previous load is invalidated.
func (e *engine) startCurrentLocked() {
	verse, ok := e.queue.Current()
	if !ok {
		e.player.Stop()
		e.state = StateIdle
		e.emitLocked()
		return
	}

	e.generation++
	gen := e.generation
	e.cancelResolveLocked()
	e.player.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), e.resolveTimeout)
	e.resolveCancel = cancel

	e.state = StateLoading
	e.emitLocked()

	go e.resolveAndStart(ctx, cancel, gen, verse, e.reciter)
}

// resolveAndStart runs one resolution and, if its generation is still live,
// drives Loading → Buffering → Playing. Every step after a suspension point
// re-checks the generation under the lock; stale results are dropped.
func (e *engine) resolveAndStart(ctx context.Context, cancel context.CancelFunc, gen uint64, verse quran.Verse, reciter quran.Reciter) {
	defer cancel()

	h, err := e.resolver.Resolve(ctx, verse.ID, reciter)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.generation {
		e.logger.Debug("discarding superseded resolution",
			"verse", verse.ID.String(), "generation", gen)
		return
	}
	e.resolveCancel = nil

	if err != nil {
		e.enterErrorLocked(errmsg.FormatWith(errmsg.OpResolveAudio, verse.ID.String(), err))
		return
	}

	// resourceReady
	e.state = StateBuffering
	e.emitLocked()

	if err := e.player.Load(h); err != nil {
		e.enterErrorLocked(errmsg.FormatWith(errmsg.OpPlaybackStart, verse.ID.String(), err))
		return
	}

	// bufferReady
	if err := e.player.Start(); err != nil {
		e.enterErrorLocked(errmsg.FormatWith(errmsg.OpPlaybackStart, verse.ID.String(), err))
		return
	}
	e.player.SetSpeed(e.speed)

	e.state = StatePlaying
	e.emitLocked()

	e.store.SetLastRead(progress.Position{Verse: verse.ID, UpdatedAt: e.clk.Now()})

	go e.watchFinished(gen, e.player.FinishedChan())
}

// watchFinished waits for the loaded track to end naturally and applies the
// end-of-track transition if its generation is still live.
func (e *engine) watchFinished(gen uint64, finished <-chan struct{}) {
	select {
	case <-finished:
	case <-e.done:
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.generation || e.state != StatePlaying {
		return
	}

	if e.continuous && e.queue.HasNext() {
		e.queue.Advance()
		e.startCurrentLocked()
		return
	}

	e.player.Stop()
	e.state = StateIdle
	e.emitLocked()
}

// enterErrorLocked surfaces a failure as observable Error state. The queue
// and cursor are retained so Retry targets the failing verse.
func (e *engine) enterErrorLocked(msg string) {
	e.cancelResolveLocked()
	e.player.Stop()
	e.errMsg = msg
	e.state = StateError
	e.emitLocked()
}

func (e *engine) cancelResolveLocked() {
	if e.resolveCancel != nil {
		e.resolveCancel()
		e.resolveCancel = nil
	}
}

// --- State queries ---

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *engine) CurrentVerse() Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTrackLocked()
}

func (e *engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.CurrentIndex()
}

func (e *engine) QueueLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}

func (e *engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player.Position()
}

func (e *engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player.Duration()
}

func (e *engine) Speed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

func (e *engine) Reciter() quran.Reciter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reciter
}

func (e *engine) ContinuousMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.continuous
}

func (e *engine) currentTrackLocked() Track {
	if v, ok := e.queue.Current(); ok {
		return TrackOf(v)
	}
	return NoTrack()
}

func (e *engine) snapshotLocked() Snapshot {
	return Snapshot{
		State:      e.state,
		Err:        e.errMsg,
		Current:    e.currentTrackLocked(),
		VerseIndex: e.queue.CurrentIndex(),
		QueueLen:   e.queue.Len(),
		Position:   e.player.Position(),
		Duration:   e.player.Duration(),
		Speed:      e.speed,
		Reciter:    e.reciter,
		Continuous: e.continuous,
	}
}

// --- Events ---

// Subscribe creates a snapshot subscription.
func (e *engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	e.subs = append(e.subs, sub)
	return sub
}

func (e *engine) emitLocked() {
	snap := e.snapshotLocked()
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		sub.send(snap)
	}
}

// --- Lifecycle ---

// Close shuts down the engine: the session ends, pending async work is
// invalidated, and subscriptions are signalled.
func (e *engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.generation++
	e.cancelResolveLocked()
	e.player.Stop()
	close(e.done)
	e.mu.Unlock()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()

	return nil
}
