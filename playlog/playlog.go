package playlog

import (
	"database/sql"
	"errors"
	"fmt"
	"minui/internal/logging"
	"path"
	"sync"
	"time"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

var ErrClosed = errors.New("play log closed")

// Log records every game launch and how long it ran. A launch opens an
// activity row; the next launcher start closes every open row.
type Log struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// Stat is the accumulated play time of one game.
type Stat struct {
	Path     string
	Name     string
	Launches int
	PlayTime time.Duration
}

// Open creates the database directory through fs and opens dbPath with the
// sqlite driver, which always reads the real filesystem. fs must be backed by
// the OS.
func Open(fs afero.Fs, dbPath string) (*Log, error) {
	if err := fs.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating play log directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening play log: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating play log tables: %w", err)
	}

	logging.Get().Debug("Play log opened", "path", dbPath)
	return &Log{db: db, now: time.Now}, nil
}

func createTables(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS rom (
			id INTEGER PRIMARY KEY,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			file_path TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL,
			updated_at INTEGER
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS play_activity (
			rom_id INTEGER NOT NULL REFERENCES rom(id),
			play_time INTEGER,
			created_at INTEGER NOT NULL,
			updated_at INTEGER
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS play_activity_rom_id_index ON play_activity(rom_id)`)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.db.Close()
	l.db = nil
	return err
}

func (l *Log) unix() int64 {
	return l.now().UTC().Unix()
}

// RecordLaunch upserts the game and opens a new activity for it. Any
// activity still open for the same game is closed first.
func (l *Log) RecordLaunch(relPath, name, kind string) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return ErrClosed
	}

	now := l.unix()

	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO rom (type, name, file_path, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET type = excluded.type, name = excluded.name, updated_at = excluded.updated_at
	`, kind, name, relPath, now, now)
	if err != nil {
		return fmt.Errorf("saving rom: %w", err)
	}

	var romID int64
	if err := tx.QueryRow(`SELECT id FROM rom WHERE file_path = ?`, relPath).Scan(&romID); err != nil {
		return fmt.Errorf("finding rom: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE play_activity SET play_time = ? - created_at, updated_at = ?
		WHERE rom_id = ? AND play_time IS NULL
	`, now, now, romID)
	if err != nil {
		return fmt.Errorf("closing activity: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO play_activity (rom_id, created_at) VALUES (?, ?)`, romID, now); err != nil {
		return fmt.Errorf("opening activity: %w", err)
	}

	return tx.Commit()
}

// CloseOpen ends every activity still running, crediting the time since it
// started. The launcher calls it on startup because a running launcher
// means no game is.
func (l *Log) CloseOpen() (int64, error) {
	if l == nil {
		return 0, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return 0, ErrClosed
	}

	now := l.unix()
	res, err := l.db.Exec(`
		UPDATE play_activity SET play_time = ? - created_at, updated_at = ?
		WHERE play_time IS NULL
	`, now, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PlayTime returns the finished play time of one game.
func (l *Log) PlayTime(relPath string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return 0, ErrClosed
	}

	var seconds sql.NullInt64
	err := l.db.QueryRow(`
		SELECT SUM(play_activity.play_time) FROM play_activity
		JOIN rom ON rom.id = play_activity.rom_id
		WHERE rom.file_path = ?
	`, relPath).Scan(&seconds)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds.Int64) * time.Second, nil
}

// Top lists the most played games, longest first.
func (l *Log) Top(limit int) ([]Stat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil, ErrClosed
	}

	rows, err := l.db.Query(`
		SELECT rom.file_path, rom.name, COUNT(play_activity.rom_id), COALESCE(SUM(play_activity.play_time), 0) AS total
		FROM rom JOIN play_activity ON rom.id = play_activity.rom_id
		GROUP BY rom.id
		ORDER BY total DESC, rom.name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []Stat
	for rows.Next() {
		var stat Stat
		var seconds int64
		if err := rows.Scan(&stat.Path, &stat.Name, &stat.Launches, &seconds); err != nil {
			return nil, err
		}
		stat.PlayTime = time.Duration(seconds) * time.Second
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

// FormatDuration renders d as hours and minutes.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}
