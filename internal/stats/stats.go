// Package stats computes per-target availability from persisted records.
package stats

import (
	"github.com/sirupsen/logrus"

	"github.com/Ddoupal/IPMonitor/internal/logger"
	"github.com/Ddoupal/IPMonitor/internal/result"
)

// Summary accumulates probe counts for one target.
type Summary struct {
	Total      int
	Successful int
}

// HasData reports whether any probe of this target was recorded.
// Availability is undefined without data.
func (s Summary) HasData() bool {
	return s.Total > 0
}

// Availability returns the success percentage. Callers must check HasData
// first; for an empty summary the result is meaningless.
func (s Summary) Availability() float64 {
	return float64(s.Successful) / float64(s.Total) * 100
}

// Aggregate folds records into per-target summaries. The fold is
// deterministic and order-independent: shuffling the input yields the same
// result. Records without a target identifier are skipped with a
// diagnostic.
func Aggregate(records []result.Record) map[string]Summary {
	summaries := make(map[string]Summary)

	for _, r := range records {
		if r.Target == "" {
			logger.WithFields(logrus.Fields{"phase": "aggregate"}).
				Warn("skipping record without a target")
			continue
		}

		s := summaries[r.Target]
		s.Total++
		if r.Success {
			s.Successful++
		}
		summaries[r.Target] = s
	}

	return summaries
}
