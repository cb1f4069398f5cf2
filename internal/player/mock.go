package player

import (
	"sync"
	"time"

	"github.com/sakina-app/core/internal/audio"
)

// Mock is a test double for Player.
type Mock struct {
	mu         sync.Mutex
	state      State
	position   time.Duration
	duration   time.Duration
	speed      float64
	loaded     audio.Handle
	loadErr    error
	startErr   error
	loadCalls  []audio.Handle
	seekCalls  []time.Duration
	finishedCh chan struct{}
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:      Stopped,
		speed:      1.0,
		finishedCh: make(chan struct{}, 1),
	}
}

func (m *Mock) Load(h audio.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadCalls = append(m.loadCalls, h)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.state = Stopped
	m.loaded = h
	m.position = 0
	m.duration = h.Duration
	m.finishedCh = make(chan struct{}, 1)
	return nil
}

func (m *Mock) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startErr != nil {
		return m.startErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Stopped
	m.loaded = audio.Handle{}
	m.position = 0
	m.duration = 0
}

func (m *Mock) SetSpeed(ratio float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = ratio
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) FinishedChan() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finishedCh
}

// Test helpers

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetStartError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr = err
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) Speed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

func (m *Mock) Loaded() audio.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *Mock) LoadCalls() []audio.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audio.Handle, len(m.loadCalls))
	copy(out, m.loadCalls)
	return out
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.seekCalls))
	copy(out, m.seekCalls)
	return out
}

// SimulateFinished simulates the loaded stream ending naturally.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	ch := m.finishedCh
	m.state = Stopped
	m.mu.Unlock()

	select {
	case ch <- struct{}{}:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
