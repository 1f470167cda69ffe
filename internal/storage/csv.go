package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ddoupal/IPMonitor/internal/logger"
	"github.com/Ddoupal/IPMonitor/internal/result"
)

var csvHeader = []string{"Target", "Timestamp", "Success"}

// CSVStore appends records to a CSV file with a fixed header row.
type CSVStore struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVStore creates the store file at path, discarding previous content,
// and writes the header row.
func NewCSVStore(path string) (*CSVStore, error) {
	file, err := os.OpenFile(path, fileFlag, filePermission)
	if err != nil {
		return nil, fmt.Errorf("create store file %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	writer.Flush()

	return &CSVStore{file: file, writer: writer}, nil
}

// Append implements Store. Each record is flushed immediately so a crash
// loses at most the record being written.
func (s *CSVStore) Append(r result.Record) error {
	row := []string{
		r.Target,
		r.ObservedAt.Format(result.TimeFormat),
		result.FormatBool(r.Success),
	}

	if err := s.writer.Write(row); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	s.writer.Flush()
	return s.writer.Error()
}

// Close implements Store.
func (s *CSVStore) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush store: %w", err)
	}
	return s.file.Close()
}

// CSVReader reads back a persisted CSV store.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for the store at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Records implements Reader.
func (r *CSVReader) Records() ([]result.Record, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []result.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("read store %s: %w", r.path, err)
		}

		rec, err := csvRowRecord(row)
		if err != nil {
			logger.WithFields(logrus.Fields{"phase": "read"}).
				Warnf("skipping malformed record: %v", err)
			continue
		}
		records = append(records, rec)
	}
}

func csvRowRecord(row []string) (result.Record, error) {
	if len(row) != len(csvHeader) {
		return result.Record{}, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(row))
	}
	if row[0] == "" {
		return result.Record{}, errors.New("missing target")
	}

	observedAt, err := time.Parse(result.TimeFormat, row[1])
	if err != nil {
		return result.Record{}, fmt.Errorf("invalid timestamp %q: %w", row[1], err)
	}

	success, err := result.ParseBool(row[2])
	if err != nil {
		return result.Record{}, err
	}

	return result.Record{Target: row[0], ObservedAt: observedAt, Success: success}, nil
}
