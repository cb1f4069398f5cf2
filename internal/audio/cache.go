package audio

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sakina-app/core/internal/quran"
)

const (
	cacheAppName = "sakina"
	cacheDBName  = "audio-cache.db"
)

// Cache indexes downloaded verse recordings in SQLite and keeps the audio
// files next to the index, keyed by (reciter, verse).
type Cache struct {
	db  *sql.DB
	dir string
}

// OpenCache opens the cache under dir, creating it as needed. An empty dir
// selects the user cache directory.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		d, err := xdg.CacheFile(filepath.Join(cacheAppName, "audio"))
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, cacheDBName))
	if err != nil {
		return nil, err
	}

	if err := initCacheSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, dir: dir}, nil
}

// NewCache wraps an existing database and directory (used by tests).
func NewCache(db *sql.DB, dir string) *Cache {
	return &Cache{db: db, dir: dir}
}

func initCacheSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audio_cache (
			reciter TEXT NOT NULL,
			surah INTEGER NOT NULL,
			verse INTEGER NOT NULL,
			path TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (reciter, surah, verse)
		);
	`)
	return err
}

// Close closes the cache index.
func (c *Cache) Close() error {
	return c.db.Close()
}

// EntryPath returns the on-disk path a recording is stored at.
func (c *Cache) EntryPath(reciter quran.Reciter, verse quran.VerseID) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s_%03d_%03d.mp3", reciter.ID, verse.Surah, verse.Verse))
}

// Get looks up a cached recording. ok is false on a miss or when the indexed
// file has gone missing (a stale index row is removed on the way out).
func (c *Cache) Get(reciter quran.Reciter, verse quran.VerseID) (Handle, bool, error) {
	row := c.db.QueryRow(`
		SELECT path, duration_ms FROM audio_cache
		WHERE reciter = ? AND surah = ? AND verse = ?
	`, reciter.ID, verse.Surah, verse.Verse)

	var path string
	var durationMS int64
	err := row.Scan(&path, &durationMS)
	if errors.Is(err, sql.ErrNoRows) {
		return Handle{}, false, nil
	}
	if err != nil {
		return Handle{}, false, err
	}

	if _, err := os.Stat(path); err != nil {
		_ = c.remove(reciter, verse)
		return Handle{}, false, nil
	}

	return Handle{
		Verse:    verse,
		Reciter:  reciter,
		Path:     path,
		Duration: time.Duration(durationMS) * time.Millisecond,
	}, true, nil
}

// Put records a downloaded recording in the index.
func (c *Cache) Put(reciter quran.Reciter, verse quran.VerseID, path string, duration time.Duration) error {
	_, err := c.db.Exec(`
		INSERT INTO audio_cache (reciter, surah, verse, path, duration_ms, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(reciter, surah, verse) DO UPDATE SET
			path = excluded.path,
			duration_ms = excluded.duration_ms,
			fetched_at = excluded.fetched_at
	`, reciter.ID, verse.Surah, verse.Verse, path, duration.Milliseconds(), time.Now().Unix())
	return err
}

func (c *Cache) remove(reciter quran.Reciter, verse quran.VerseID) error {
	_, err := c.db.Exec(`
		DELETE FROM audio_cache WHERE reciter = ? AND surah = ? AND verse = ?
	`, reciter.ID, verse.Surah, verse.Verse)
	return err
}
