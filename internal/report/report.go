// Package report renders the end-of-run availability report.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/gookit/color"

	"github.com/Ddoupal/IPMonitor/internal/stats"
)

// windowTimeFormat is the layout for the run's start/end window.
const windowTimeFormat = "2006-01-02 15:04:05"

// Report holds everything needed to render the end-of-run output.
type Report struct {
	Summaries map[string]stats.Summary
	Targets   []string // all requested targets, so no-data targets are still shown
	Start     time.Time
	End       time.Time

	// Compromised marks a run whose persistence aborted mid-way; the
	// statistics then reflect only a partial record.
	Compromised bool
}

// targetNames returns the union of requested targets and targets found in
// the store, sorted for stable output.
func (r Report) targetNames() []string {
	seen := make(map[string]bool)
	var names []string

	for _, target := range r.Targets {
		if !seen[target] {
			seen[target] = true
			names = append(names, target)
		}
	}
	for target := range r.Summaries {
		if !seen[target] {
			seen[target] = true
			names = append(names, target)
		}
	}

	sort.Strings(names)
	return names
}

// Lines renders the report as plain text, one entry per line.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Targets)+4)

	for _, target := range r.targetNames() {
		s := r.Summaries[target]
		if !s.HasData() {
			lines = append(lines, fmt.Sprintf("%s - no data", target))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s - %.2f%% availability (%d of %d probes successful)",
			target, s.Availability(), s.Successful, s.Total))
	}

	lines = append(lines,
		fmt.Sprintf("test started at: %s UTC", r.Start.UTC().Format(windowTimeFormat)),
		fmt.Sprintf("test ended at:   %s UTC", r.End.UTC().Format(windowTimeFormat)),
	)

	if r.Compromised {
		lines = append(lines, "warning: persistence failed mid-run, statistics are partial")
	}

	return lines
}

// Print writes the colored report to stdout.
func (r Report) Print() {
	cy := color.Yellow.Printf

	cy("\n--- availability statistics ---\n")

	for _, target := range r.targetNames() {
		s := r.Summaries[target]
		if !s.HasData() {
			color.Red.Printf("%s - no data\n", target)
			continue
		}

		availability := s.Availability()
		line := fmt.Sprintf("%s - %.2f%% availability (%d of %d probes successful)\n",
			target, availability, s.Successful, s.Total)

		switch {
		case availability == 100:
			color.Green.Print(line)
		case availability >= 70:
			color.LightYellow.Print(line)
		default:
			color.Red.Print(line)
		}
	}

	cy("test started at: %s UTC\n", r.Start.UTC().Format(windowTimeFormat))
	cy("test ended at:   %s UTC\n", r.End.UTC().Format(windowTimeFormat))

	if r.Compromised {
		color.Red.Printf("warning: persistence failed mid-run, statistics are partial\n")
	}
}
