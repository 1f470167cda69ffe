package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/Ddoupal/IPMonitor/internal/logger"
	"github.com/Ddoupal/IPMonitor/internal/result"
)

const (
	resultsTableSchema = `CREATE TABLE IF NOT EXISTS probe_results (
	id INTEGER PRIMARY KEY,
	target TEXT NOT NULL,
	observed_at TEXT NOT NULL,
	success INTEGER NOT NULL
	);`

	resultInsert = `INSERT INTO probe_results (target, observed_at, success) VALUES (?, ?, ?);`

	resultSelect = `SELECT target, observed_at, success FROM probe_results ORDER BY id;`
)

// SQLiteStore appends records to a single results table in a SQLite
// database file.
type SQLiteStore struct {
	conn *sqlite.Conn
}

// NewSQLiteStore deletes any database from a previous run at path, opens a
// fresh one and creates the results table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove previous store %s: %w", path, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate, sqlite.OpenReadWrite)
	if err != nil {
		return nil, fmt.Errorf("create store %s: %w", path, err)
	}

	if err := sqlitex.Execute(conn, resultsTableSchema, &sqlitex.ExecOptions{}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create results table: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(r result.Record) error {
	success := 0
	if r.Success {
		success = 1
	}

	err := sqlitex.Execute(s.conn, resultInsert, &sqlitex.ExecOptions{
		Args: []interface{}{r.Target, r.ObservedAt.Format(result.TimeFormat), success},
	})
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// SQLiteReader reads back a persisted SQLite store.
type SQLiteReader struct {
	path string
}

// NewSQLiteReader creates a reader for the store at path.
func NewSQLiteReader(path string) *SQLiteReader {
	return &SQLiteReader{path: path}
}

// Records implements Reader.
func (r *SQLiteReader) Records() ([]result.Record, error) {
	conn, err := sqlite.OpenConn(r.path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", r.path, err)
	}
	defer conn.Close()

	var records []result.Record
	err = sqlitex.Execute(conn, resultSelect, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rec, err := rowRecord(stmt.ColumnText(0), stmt.ColumnText(1), stmt.ColumnInt64(2))
			if err != nil {
				logger.WithFields(logrus.Fields{"phase": "read"}).
					Warnf("skipping malformed record: %v", err)
				return nil
			}
			records = append(records, rec)
			return nil
		},
	})
	if err != nil {
		return records, fmt.Errorf("read store %s: %w", r.path, err)
	}
	return records, nil
}

func rowRecord(target, observedAt string, success int64) (result.Record, error) {
	if target == "" {
		return result.Record{}, errors.New("missing target")
	}

	ts, err := time.Parse(result.TimeFormat, observedAt)
	if err != nil {
		return result.Record{}, fmt.Errorf("invalid timestamp %q: %w", observedAt, err)
	}

	return result.Record{Target: target, ObservedAt: ts, Success: success != 0}, nil
}
