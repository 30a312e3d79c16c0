// Package router classifies incoming questions into a retrieval or direct
// generation route using keyword cues.
package router

import (
	"strings"

	"github.com/docuflow/docuflow/log"
)

// Route is the classification outcome for one question.
type Route string

const (
	// RouteRAG sends the question through document retrieval.
	RouteRAG Route = "rag"

	// RouteDirect answers from the model's internal knowledge.
	RouteDirect Route = "direct"
)

// PathLabel returns the human-readable label recorded for a route.
func PathLabel(route Route) string {
	if route == RouteRAG {
		return "RAG (document search)"
	}
	return "Direct (internal knowledge)"
}

// Config holds the two cue keyword sets. The lists are policy, not a fixed
// rule set; callers may substitute domain-specific cues.
type Config struct {
	// RetrievalCues are phrases signaling the question is about loaded
	// documents.
	RetrievalCues []string

	// GeneralCues are phrases signaling a general-knowledge question.
	GeneralCues []string
}

// DefaultConfig returns the built-in cue lists.
func DefaultConfig() Config {
	return Config{
		RetrievalCues: []string{
			"document", "the text", "according to", "it says",
			"written", "mentioned", "details", "specifically",
			"the data", "source", "information about",
		},
		GeneralCues: []string{
			"what is", "what are", "define", "explain",
			"how does", "why", "when", "difference between",
			"advantages", "disadvantages",
		},
	}
}

// Router applies the cue sets to classify questions. Classification is a
// pure function of the question and corpus state; the only side effect is
// an optional trace log.
type Router struct {
	config Config
	logger log.Logger
}

// New creates a Router. Empty cue lists fall back to the defaults.
func New(config Config) *Router {
	defaults := DefaultConfig()
	if len(config.RetrievalCues) == 0 {
		config.RetrievalCues = defaults.RetrievalCues
	}
	if len(config.GeneralCues) == 0 {
		config.GeneralCues = defaults.GeneralCues
	}
	return &Router{
		config: config,
		logger: &log.NoOpLogger{},
	}
}

// SetLogger sets the trace logger.
func (r *Router) SetLogger(logger log.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Classify decides the route for a question. Precedence:
//
//  1. any retrieval cue matches, the route is rag
//  2. no general cue matches and a corpus is loaded, the route is rag
//  3. otherwise the route is direct
//
// Without a corpus rule 2 never fires, so ambiguous questions go direct
// rather than attempting retrieval against nothing.
func (r *Router) Classify(question string, hasCorpus bool) Route {
	lowered := strings.ToLower(question)

	needsRetrieval := containsAny(lowered, r.config.RetrievalCues)
	isGeneral := containsAny(lowered, r.config.GeneralCues)

	route := RouteDirect
	if needsRetrieval || (!isGeneral && hasCorpus) {
		route = RouteRAG
	}

	r.logger.Debug("router decision: %s (retrieval cue=%t, general cue=%t, corpus=%t)",
		route, needsRetrieval, isGeneral, hasCorpus)
	return route
}

func containsAny(lowered string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lowered, strings.ToLower(cue)) {
			return true
		}
	}
	return false
}
