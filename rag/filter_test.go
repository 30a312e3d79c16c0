package rag

import (
	"testing"
)

func results(scores ...float64) []SearchResult {
	out := make([]SearchResult, len(scores))
	for i, s := range scores {
		out[i] = SearchResult{
			Document: Document{ID: string(rune('a' + i))},
			Score:    s,
		}
	}
	return out
}

func TestFilterThreshold(t *testing.T) {
	f := NewRelevanceFilter(0.3)

	kept := f.Filter(results(0.9, 0.29, 0.3, 0.1, 0.5))

	if len(kept) != 3 {
		t.Fatalf("expected 3 kept, got %d", len(kept))
	}
	for _, r := range kept {
		if r.Score < 0.3 {
			t.Errorf("kept entry with score %.2f below threshold", r.Score)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	f := NewRelevanceFilter(0.3)
	input := results(0.5, 0.1, 0.9, 0.4)

	kept := f.Filter(input)

	// Output must be a subsequence of input in original order.
	pos := 0
	for _, r := range kept {
		found := false
		for ; pos < len(input); pos++ {
			if input[pos].Document.ID == r.Document.ID {
				found = true
				pos++
				break
			}
		}
		if !found {
			t.Fatalf("output is not an ordered subsequence of input: %v", kept)
		}
	}
}

func TestFilterAllBelowThreshold(t *testing.T) {
	f := NewRelevanceFilter(0.3)
	kept := f.Filter(results(0.1, 0.2))
	if len(kept) != 0 {
		t.Errorf("expected empty result, got %d entries", len(kept))
	}
}

func TestFilterEmptyInput(t *testing.T) {
	f := NewRelevanceFilter(0.3)
	kept := f.Filter(nil)
	if len(kept) != 0 {
		t.Errorf("expected empty result, got %v", kept)
	}
}
