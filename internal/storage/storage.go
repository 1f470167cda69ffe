// Package storage implements the durable record store and the persistence
// drain that feeds it.
package storage

import (
	"fmt"

	"github.com/Ddoupal/IPMonitor/internal/result"
)

// Backends supported for the durable store.
const (
	BackendXML    = "xml"
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Store is the append-only durable record store for one run. Opening a
// store discards any previous run's data. The drain is the only writer
// for the run; reads happen strictly after Close.
type Store interface {
	Append(result.Record) error
	Close() error
}

// Reader reads back every record persisted in a store. A corrupt store
// yields the records decoded before the failure alongside the error.
type Reader interface {
	Records() ([]result.Record, error)
}

// Open creates a fresh store of the given backend at path, truncating any
// previous run's data.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendXML:
		return NewXMLStore(path)
	case BackendCSV:
		return NewCSVStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}

// OpenReader opens a finalized store of the given backend for aggregation.
func OpenReader(backend, path string) (Reader, error) {
	switch backend {
	case BackendXML:
		return NewXMLReader(path), nil
	case BackendCSV:
		return NewCSVReader(path), nil
	case BackendSQLite:
		return NewSQLiteReader(path), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
