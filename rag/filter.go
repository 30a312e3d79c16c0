package rag

import (
	"github.com/docuflow/docuflow/log"
)

// DefaultRelevanceThreshold is the minimum similarity score a retrieved
// document must reach to survive filtering.
const DefaultRelevanceThreshold = 0.3

// RelevanceFilter discards retrieval results scoring below a threshold.
// Filtering preserves the original rank order and logs every score so
// discarded entries stay auditable.
type RelevanceFilter struct {
	threshold float64
	logger    log.Logger
}

// NewRelevanceFilter creates a filter with the given threshold.
func NewRelevanceFilter(threshold float64) *RelevanceFilter {
	return &RelevanceFilter{
		threshold: threshold,
		logger:    &log.NoOpLogger{},
	}
}

// SetLogger sets the logger used for score auditing.
func (f *RelevanceFilter) SetLogger(logger log.Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// Threshold returns the configured minimum score.
func (f *RelevanceFilter) Threshold() float64 {
	return f.threshold
}

// Filter returns the subsequence of results with score >= threshold, in the
// input order. An empty result means the caller must produce an explicit
// "no relevant content" outcome instead of generating from nothing.
func (f *RelevanceFilter) Filter(results []SearchResult) []SearchResult {
	kept := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if r.Score >= f.threshold {
			f.logger.Info("kept document %s (score %.4f >= %.2f)", r.Document.ID, r.Score, f.threshold)
			kept = append(kept, r)
		} else {
			f.logger.Info("discarded document %s (score %.4f < %.2f)", r.Document.ID, r.Score, f.threshold)
		}
	}
	return kept
}
