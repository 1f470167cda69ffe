package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ddoupal/IPMonitor/internal/result"
	"github.com/Ddoupal/IPMonitor/internal/storage"
)

func testRecords(t *testing.T, n int) []result.Record {
	t.Helper()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := make([]result.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, result.Record{
			Target:     "example.com",
			ObservedAt: base.Add(time.Duration(i) * 100 * time.Millisecond),
			Success:    i%3 != 0,
		})
	}
	return records
}

func TestXMLStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")

	store, err := storage.NewXMLStore(path)
	require.NoError(t, err)

	want := testRecords(t, 10)
	for _, r := range want {
		require.NoError(t, store.Append(r))
	}
	require.NoError(t, store.Close())

	got, err := storage.NewXMLReader(path).Records()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestXMLStoreUsesReferenceLiterals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")

	store, err := storage.NewXMLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(result.Record{
		Target:     "example.com",
		ObservedAt: time.Date(2024, 5, 1, 12, 0, 0, 123e6, time.UTC),
		Success:    true,
	}))
	require.NoError(t, store.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.Contains(t, content, "<ProbeResults>")
	assert.Contains(t, content, "</ProbeResults>")
	assert.Contains(t, content, "<Success>True</Success>")
	assert.Contains(t, content, "<Time>2024-05-01 12:00:00.123</Time>")
}

func TestXMLStoreTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")

	store, err := storage.NewXMLStore(path)
	require.NoError(t, err)
	for _, r := range testRecords(t, 5) {
		require.NoError(t, store.Append(r))
	}
	require.NoError(t, store.Close())

	// A new run must start from an empty store.
	store, err = storage.NewXMLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	got, err := storage.NewXMLReader(path).Records()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestXMLReaderPartialOnTruncatedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")

	store, err := storage.NewXMLStore(path)
	require.NoError(t, err)
	for _, r := range testRecords(t, 5) {
		require.NoError(t, store.Append(r))
	}
	// No Close: the closing root tag is missing, as after a write failure.

	got, err := storage.NewXMLReader(path).Records()
	assert.Error(t, err)
	assert.Len(t, got, 5)
}

func TestXMLReaderSkipsMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")

	doc := strings.Join([]string{
		"<ProbeResults>",
		"<Result><Target>good.example.com</Target><Time>2024-05-01 12:00:00.000</Time><Success>True</Success></Result>",
		"<Result><Target></Target><Time>2024-05-01 12:00:00.100</Time><Success>True</Success></Result>",
		"<Result><Target>bad-flag.example.com</Target><Time>2024-05-01 12:00:00.200</Time><Success>maybe</Success></Result>",
		"<Result><Target>good.example.com</Target><Time>2024-05-01 12:00:00.300</Time><Success>False</Success></Result>",
		"</ProbeResults>",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	got, err := storage.NewXMLReader(path).Records()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "good.example.com", got[0].Target)
	assert.True(t, got[0].Success)
	assert.False(t, got[1].Success)
}

func TestXMLReaderMissingFile(t *testing.T) {
	_, err := storage.NewXMLReader(filepath.Join(t.TempDir(), "missing.xml")).Records()
	assert.Error(t, err)
}
