package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ddoupal/IPMonitor/internal/report"
	"github.com/Ddoupal/IPMonitor/internal/stats"
)

func TestReportLines(t *testing.T) {
	r := report.Report{
		Summaries: map[string]stats.Summary{
			"one.example.com": {Total: 20, Successful: 20},
			"two.example.com": {Total: 10, Successful: 3},
		},
		Targets: []string{"one.example.com", "two.example.com", "silent.example.com"},
		Start:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 5, 1, 12, 0, 30, 0, time.UTC),
	}

	lines := r.Lines()

	assert.Equal(t, []string{
		"one.example.com - 100.00% availability (20 of 20 probes successful)",
		"silent.example.com - no data",
		"two.example.com - 30.00% availability (3 of 10 probes successful)",
		"test started at: 2024-05-01 12:00:00 UTC",
		"test ended at:   2024-05-01 12:00:30 UTC",
	}, lines)
}

func TestReportFlagsCompromisedRun(t *testing.T) {
	r := report.Report{
		Summaries: map[string]stats.Summary{"a": {Total: 5, Successful: 5}},
		Targets:   []string{"a"},
		Start:     time.Now(),
		End:       time.Now(),

		Compromised: true,
	}

	lines := r.Lines()
	assert.Contains(t, lines[len(lines)-1], "statistics are partial")
}

func TestReportIncludesStoreOnlyTargets(t *testing.T) {
	// Targets that appear in the store but not in the request still show up.
	r := report.Report{
		Summaries: map[string]stats.Summary{"extra.example.com": {Total: 1, Successful: 0}},
		Targets:   nil,
		Start:     time.Now(),
		End:       time.Now(),
	}

	lines := r.Lines()
	assert.Contains(t, lines[0], "extra.example.com - 0.00% availability")
}
