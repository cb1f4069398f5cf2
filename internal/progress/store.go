// Package progress persists durable reading progress: per-verse read marks
// and the last-read position. The playback engine and the dwell tracker
// consume the Store interface; writes are best-effort from their point of
// view.
package progress

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sakina-app/core/internal/quran"
)

const (
	appName      = "sakina"
	dbFileName   = "progress.db"
	saveDebounce = 500 * time.Millisecond
)

// Position is the last-read location in the mushaf.
type Position struct {
	Verse     quran.VerseID
	UpdatedAt time.Time
}

// ReadMark records that a verse was read at a point in time.
type ReadMark struct {
	Verse  quran.VerseID
	ReadAt time.Time
}

// Manager is the SQLite-backed store.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Position
}

// Open opens (creating if needed) the progress database under the user data
// directory.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// Close flushes any pending position save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = saveLastRead(m.db, *pending)
	}

	return m.db.Close()
}

// RecordRead marks a verse as read. Marks are set once; recording an
// already-read verse keeps the original timestamp.
func (m *Manager) RecordRead(id quran.VerseID, ts time.Time) error {
	return recordRead(m.db, id, ts)
}

// IsRead reports whether the verse carries a read mark.
func (m *Manager) IsRead(id quran.VerseID) (bool, error) {
	return isRead(m.db, id)
}

// ReadMarks returns all read marks in mushaf order.
func (m *Manager) ReadMarks() ([]ReadMark, error) {
	return readMarks(m.db)
}

// LastRead returns the last-read position, or nil when none was saved.
func (m *Manager) LastRead() (*Position, error) {
	return getLastRead(m.db)
}

// SetLastRead schedules a debounced save of the last-read position. Rapid
// position changes collapse into one write; Close flushes the pending one.
func (m *Manager) SetLastRead(pos Position) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &pos

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveLastRead(m.db, *pending)
		}
	})
}
