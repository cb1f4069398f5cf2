package progress

import "database/sql"

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS read_marks (
			surah INTEGER NOT NULL,
			verse INTEGER NOT NULL,
			read_at INTEGER NOT NULL,
			PRIMARY KEY (surah, verse)
		);

		CREATE INDEX IF NOT EXISTS idx_read_marks_read_at ON read_marks(read_at);

		CREATE TABLE IF NOT EXISTS last_read (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			surah INTEGER NOT NULL,
			verse INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO schema_version (version) VALUES (?)
		ON CONFLICT(version) DO NOTHING
	`, currentSchemaVersion)
	return err
}
