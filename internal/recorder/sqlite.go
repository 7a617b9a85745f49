package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists signal history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_results (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			run_type   TEXT,
			symbol     TEXT NOT NULL,
			market     TEXT,
			pass_count INTEGER,
			threshold  INTEGER,
			actionable INTEGER,
			close      REAL,
			ma10       REAL,
			ma20       REAL,
			ma30       REAL,
			macd_dif   REAL,
			macd_dea   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ts ON scan_results(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_symbol ON scan_results(symbol)`,

		`CREATE TABLE IF NOT EXISTS signal_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			event_type TEXT,
			symbol     TEXT NOT NULL,
			market     TEXT,
			triggered  INTEGER,
			price      REAL,
			detail     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN indicator values to SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordScan(rec *ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_results
		(timestamp, run_type, symbol, market, pass_count, threshold, actionable,
		 close, ma10, ma20, ma30, macd_dif, macd_dea)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.RunType, rec.Symbol, rec.Market,
		rec.PassCount, rec.Threshold, rec.Actionable,
		nullable(rec.Close), nullable(rec.MA10), nullable(rec.MA20),
		nullable(rec.MA30), nullable(rec.MACDDIF), nullable(rec.MACDDEA),
	)
	return err
}

func (r *SQLiteRecorder) RecordSignal(evt *SignalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_events
		(timestamp, event_type, symbol, market, triggered, price, detail)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.EventType, evt.Symbol, evt.Market,
		evt.Triggered, nullable(evt.Price), evt.Detail,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
