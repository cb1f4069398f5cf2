package audio

import (
	"context"
	"sync"

	"github.com/sakina-app/core/internal/quran"
)

// MockResolver is a test double for Resolver. Resolutions can be scripted
// per verse and optionally gated so tests can hold a resolution in flight
// while issuing other commands.
type MockResolver struct {
	mu         sync.Mutex
	handles    map[quran.VerseID]Handle
	errs       map[quran.VerseID]error
	defaultErr error
	gate       chan struct{}
	calls      []quran.VerseID
}

// NewMockResolver creates a mock resolver.
func NewMockResolver() *MockResolver {
	return &MockResolver{
		handles: make(map[quran.VerseID]Handle),
		errs:    make(map[quran.VerseID]error),
	}
}

// Resolve implements Resolver. It blocks on the gate when one is set, and
// aborts cleanly if ctx is cancelled while blocked.
func (m *MockResolver) Resolve(ctx context.Context, verse quran.VerseID, reciter quran.Reciter) (Handle, error) {
	m.mu.Lock()
	m.calls = append(m.calls, verse)
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return Handle{}, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.errs[verse]; ok {
		return Handle{}, err
	}
	if m.defaultErr != nil {
		return Handle{}, m.defaultErr
	}
	if h, ok := m.handles[verse]; ok {
		h.Reciter = reciter
		return h, nil
	}

	// Unscripted verses resolve to a synthetic handle.
	return Handle{
		Verse:   verse,
		Reciter: reciter,
		Path:    "/mock/" + verse.String() + ".mp3",
	}, nil
}

// Test helpers

// SetHandle scripts the handle returned for a verse.
func (m *MockResolver) SetHandle(verse quran.VerseID, h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handles[verse] = h
}

// SetError scripts a resolution failure for a verse.
func (m *MockResolver) SetError(verse quran.VerseID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, verse)
		return
	}
	m.errs[verse] = err
}

// SetDefaultError makes all unscripted resolutions fail.
func (m *MockResolver) SetDefaultError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultErr = err
}

// Block makes subsequent resolutions wait until Release is called.
func (m *MockResolver) Block() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = make(chan struct{})
}

// Release unblocks resolutions held by Block.
func (m *MockResolver) Release() {
	m.mu.Lock()
	gate := m.gate
	m.gate = nil
	m.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// Calls returns the verses resolution was requested for, in order.
func (m *MockResolver) Calls() []quran.VerseID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]quran.VerseID, len(m.calls))
	copy(out, m.calls)
	return out
}

// Verify MockResolver implements Resolver at compile time.
var _ Resolver = (*MockResolver)(nil)
