package router

import (
	"testing"
)

func TestClassify(t *testing.T) {
	r := New(Config{})

	tests := []struct {
		name      string
		question  string
		hasCorpus bool
		want      Route
	}{
		{"retrieval cue with corpus", "According to the document, what is a cat?", true, RouteRAG},
		{"retrieval cue without corpus", "What does the document say about cats?", false, RouteRAG},
		{"retrieval cue uppercase", "SPECIFICALLY, what are the details?", false, RouteRAG},
		{"general cue with corpus", "What is machine learning?", true, RouteDirect},
		{"general cue without corpus", "Explain recursion.", false, RouteDirect},
		{"ambiguous with corpus", "Tell me about cats.", true, RouteRAG},
		{"ambiguous without corpus", "Tell me about cats.", false, RouteDirect},
		{"empty question without corpus", "", false, RouteDirect},
		{"empty question with corpus", "", true, RouteRAG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Classify(tt.question, tt.hasCorpus)
			if got != tt.want {
				t.Errorf("Classify(%q, %t) = %s, want %s", tt.question, tt.hasCorpus, got, tt.want)
			}
		})
	}
}

func TestClassifyRetrievalCueWinsOverGeneralCue(t *testing.T) {
	r := New(Config{})

	// Contains both a general cue ("what is") and a retrieval cue
	// ("according to"); retrieval takes precedence in both corpus states.
	question := "According to the report, what is the total?"
	for _, hasCorpus := range []bool{true, false} {
		if got := r.Classify(question, hasCorpus); got != RouteRAG {
			t.Errorf("Classify(%q, %t) = %s, want rag", question, hasCorpus, got)
		}
	}
}

func TestClassifyCustomCues(t *testing.T) {
	r := New(Config{
		RetrievalCues: []string{"nel documento"},
		GeneralCues:   []string{"cosa è"},
	})

	if got := r.Classify("Cosa dice nel documento?", false); got != RouteRAG {
		t.Errorf("expected rag for custom retrieval cue, got %s", got)
	}
	if got := r.Classify("Cosa è un gatto?", true); got != RouteDirect {
		t.Errorf("expected direct for custom general cue, got %s", got)
	}
}

func TestPathLabel(t *testing.T) {
	if PathLabel(RouteRAG) == PathLabel(RouteDirect) {
		t.Error("route labels must be distinct")
	}
}
