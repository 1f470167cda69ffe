package storage

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ddoupal/IPMonitor/internal/logger"
	"github.com/Ddoupal/IPMonitor/internal/result"
)

const (
	xmlRootElement = "ProbeResults"

	filePermission os.FileMode = 0644
	fileFlag       int         = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
)

// xmlRecord is the on-disk shape of one persisted record.
type xmlRecord struct {
	XMLName xml.Name `xml:"Result"`
	Target  string   `xml:"Target"`
	Time    string   `xml:"Time"`
	Success string   `xml:"Success"`
}

func (e xmlRecord) record() (result.Record, error) {
	if e.Target == "" {
		return result.Record{}, errors.New("missing target")
	}

	success, err := result.ParseBool(e.Success)
	if err != nil {
		return result.Record{}, err
	}

	observedAt, err := time.Parse(result.TimeFormat, e.Time)
	if err != nil {
		return result.Record{}, fmt.Errorf("invalid timestamp %q: %w", e.Time, err)
	}

	return result.Record{Target: e.Target, ObservedAt: observedAt, Success: success}, nil
}

// XMLStore appends records as children of a single root element. The
// document only becomes well-formed once Close writes the closing root
// tag, but every appended record is flushed to disk immediately.
type XMLStore struct {
	file *os.File
	enc  *xml.Encoder
}

// NewXMLStore creates the store file at path, discarding previous content,
// and writes the opening root tag.
func NewXMLStore(path string) (*XMLStore, error) {
	file, err := os.OpenFile(path, fileFlag, filePermission)
	if err != nil {
		return nil, fmt.Errorf("create store file %s: %w", path, err)
	}

	enc := xml.NewEncoder(file)
	enc.Indent("", "  ")

	if err := enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: xmlRootElement}}); err != nil {
		file.Close()
		return nil, fmt.Errorf("write root element: %w", err)
	}

	return &XMLStore{file: file, enc: enc}, nil
}

// Append implements Store.
func (s *XMLStore) Append(r result.Record) error {
	entry := xmlRecord{
		Target:  r.Target,
		Time:    r.ObservedAt.Format(result.TimeFormat),
		Success: result.FormatBool(r.Success),
	}

	if err := s.enc.Encode(entry); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// Close implements Store. It writes the closing root tag and syncs the
// file, making the document well-formed.
func (s *XMLStore) Close() error {
	if err := s.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: xmlRootElement}}); err != nil {
		s.file.Close()
		return fmt.Errorf("close root element: %w", err)
	}
	if err := s.enc.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush store: %w", err)
	}
	return s.file.Close()
}

// XMLReader reads back a persisted XML store.
type XMLReader struct {
	path string
}

// NewXMLReader creates a reader for the store at path.
func NewXMLReader(path string) *XMLReader {
	return &XMLReader{path: path}
}

// Records implements Reader. A truncated or corrupt document yields every
// record decoded before the failure alongside the error. Entries with a
// missing target or malformed fields are skipped with a diagnostic, not
// treated as fatal.
func (r *XMLReader) Records() ([]result.Record, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", r.path, err)
	}
	defer file.Close()

	dec := xml.NewDecoder(file)

	var records []result.Record
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("read store %s: %w", r.path, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Result" {
			continue
		}

		var entry xmlRecord
		if err := dec.DecodeElement(&entry, &start); err != nil {
			return records, fmt.Errorf("decode record: %w", err)
		}

		rec, err := entry.record()
		if err != nil {
			logger.WithFields(logrus.Fields{
				"target": entry.Target,
				"phase":  "read",
			}).Warnf("skipping malformed record: %v", err)
			continue
		}
		records = append(records, rec)
	}
}
