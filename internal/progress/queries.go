package progress

import (
	"database/sql"
	"errors"
	"time"

	"github.com/sakina-app/core/internal/quran"
)

func recordRead(db *sql.DB, id quran.VerseID, ts time.Time) error {
	// First mark wins: re-reading never moves the timestamp.
	_, err := db.Exec(`
		INSERT INTO read_marks (surah, verse, read_at)
		VALUES (?, ?, ?)
		ON CONFLICT(surah, verse) DO NOTHING
	`, id.Surah, id.Verse, ts.Unix())
	return err
}

func isRead(db *sql.DB, id quran.VerseID) (bool, error) {
	row := db.QueryRow(`
		SELECT 1 FROM read_marks WHERE surah = ? AND verse = ?
	`, id.Surah, id.Verse)

	var one int
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func readMarks(db *sql.DB) ([]ReadMark, error) {
	rows, err := db.Query(`
		SELECT surah, verse, read_at
		FROM read_marks
		ORDER BY surah, verse
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []ReadMark
	for rows.Next() {
		var mark ReadMark
		var readAt int64
		if err := rows.Scan(&mark.Verse.Surah, &mark.Verse.Verse, &readAt); err != nil {
			return nil, err
		}
		mark.ReadAt = time.Unix(readAt, 0)
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}

func getLastRead(db *sql.DB) (*Position, error) {
	row := db.QueryRow(`
		SELECT surah, verse, updated_at FROM last_read WHERE id = 1
	`)

	var pos Position
	var updatedAt int64
	err := row.Scan(&pos.Verse.Surah, &pos.Verse.Verse, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved position is valid on first run
	}
	if err != nil {
		return nil, err
	}
	pos.UpdatedAt = time.Unix(updatedAt, 0)

	return &pos, nil
}

func saveLastRead(db *sql.DB, pos Position) error {
	_, err := db.Exec(`
		INSERT INTO last_read (id, surah, verse, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			surah = excluded.surah,
			verse = excluded.verse,
			updated_at = excluded.updated_at
	`, pos.Verse.Surah, pos.Verse.Verse, pos.UpdatedAt.Unix())
	return err
}
