package progress

import (
	"sync"
	"time"

	"github.com/sakina-app/core/internal/quran"
)

// Mock is a test double for the Store interface.
type Mock struct {
	mu        sync.Mutex
	marks     map[quran.VerseID]time.Time
	lastRead  *Position
	recordErr error
	closed    bool
}

// NewMock creates a new mock store for testing.
func NewMock() *Mock {
	return &Mock{marks: make(map[quran.VerseID]time.Time)}
}

func (m *Mock) RecordRead(id quran.VerseID, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	if _, ok := m.marks[id]; !ok {
		m.marks[id] = ts
	}
	return nil
}

func (m *Mock) IsRead(id quran.VerseID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.marks[id]
	return ok, nil
}

func (m *Mock) ReadMarks() ([]ReadMark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	marks := make([]ReadMark, 0, len(m.marks))
	for id, ts := range m.marks {
		marks = append(marks, ReadMark{Verse: id, ReadAt: ts})
	}
	return marks, nil
}

func (m *Mock) SetLastRead(pos Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRead = &pos
}

func (m *Mock) LastRead() (*Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRead, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetRecordError makes subsequent RecordRead calls fail.
func (m *Mock) SetRecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErr = err
}

// MarkCount returns the number of recorded read marks.
func (m *Mock) MarkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.marks)
}

// ReadAt returns the recorded timestamp for a verse.
func (m *Mock) ReadAt(id quran.VerseID) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.marks[id]
	return ts, ok
}

// Verify Mock implements Store at compile time.
var _ Store = (*Mock)(nil)
