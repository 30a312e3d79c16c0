// Package workflow wires the router, retrieval, quality control and the
// team coordinator into runnable orchestration graphs.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docuflow/docuflow/graph"
	"github.com/docuflow/docuflow/llm"
	"github.com/docuflow/docuflow/log"
	"github.com/docuflow/docuflow/rag"
	"github.com/docuflow/docuflow/router"
)

// DefaultRetrievalK is the number of candidate documents fetched before
// quality control.
const DefaultRetrievalK = 5

// NoRelevantContentMessage is the explicit result produced when retrieval
// yields no document above the relevance threshold.
const NoRelevantContentMessage = "No relevant content was found in the indexed documents for this question."

// GraphState is threaded through one query workflow execution.
type GraphState struct {
	Question string
	Tone     string
	Language string

	Route         router.Route
	RetrievedDocs []rag.SearchResult
	Generation    string
	PathTaken     string
}

// QueryWorkflow answers questions either through document retrieval or
// direct generation, chosen by the router. Service failures are encoded
// into the state as error strings; Run only fails on context cancellation
// or a broken graph declaration.
type QueryWorkflow struct {
	router    *router.Router
	store     rag.VectorStore
	filter    *rag.RelevanceFilter
	completer llm.Completer
	k         int
	logger    log.Logger
	runnable  *graph.Runnable[GraphState]
}

// NewQueryWorkflow assembles and compiles the query graph. The store may be
// nil when no corpus is loaded; retrieval is then never attempted.
func NewQueryWorkflow(rt *router.Router, store rag.VectorStore, filter *rag.RelevanceFilter, completer llm.Completer) (*QueryWorkflow, error) {
	w := &QueryWorkflow{
		router:    rt,
		store:     store,
		filter:    filter,
		completer: completer,
		k:         DefaultRetrievalK,
		logger:    &log.NoOpLogger{},
	}

	runnable, err := w.buildGraph().Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling query graph: %w", err)
	}
	w.runnable = runnable
	return w, nil
}

// SetLogger sets the trace logger.
func (w *QueryWorkflow) SetLogger(logger log.Logger) {
	if logger != nil {
		w.logger = logger
	}
}

// SetTopK overrides the number of retrieval candidates.
func (w *QueryWorkflow) SetTopK(k int) {
	if k > 0 {
		w.k = k
	}
}

// Graph exposes the declared graph, for visualization.
func (w *QueryWorkflow) Graph() *graph.StateGraph[GraphState] {
	return w.buildGraph()
}

// Run executes the workflow for one question.
func (w *QueryWorkflow) Run(ctx context.Context, state GraphState) (GraphState, error) {
	return w.runnable.Invoke(ctx, state)
}

// Ask is a convenience wrapper for plain questions.
func (w *QueryWorkflow) Ask(ctx context.Context, question string) (GraphState, error) {
	return w.Run(ctx, GraphState{Question: question})
}

func (w *QueryWorkflow) buildGraph() *graph.StateGraph[GraphState] {
	g := graph.NewStateGraph[GraphState]()
	g.SetLogger(w.logger)

	g.AddNode("router", "classify the question", w.routeNode)
	g.AddNode("retrieve", "fetch and filter documents", w.retrieveNode)
	g.AddNode("generate_rag", "generate from retrieved context", w.generateRAGNode)
	g.AddNode("generate_direct", "generate from internal knowledge", w.generateDirectNode)

	g.SetEntryPoint("router")
	g.AddConditionalEdge("router", func(ctx context.Context, state GraphState) string {
		return string(state.Route)
	}, map[string]string{
		string(router.RouteRAG):    "retrieve",
		string(router.RouteDirect): "generate_direct",
	})
	g.AddEdge("retrieve", "generate_rag")
	g.AddEdge("generate_rag", graph.END)
	g.AddEdge("generate_direct", graph.END)

	return g
}

func (w *QueryWorkflow) hasCorpus(ctx context.Context) bool {
	if w.store == nil {
		return false
	}
	count, err := w.store.Count(ctx)
	if err != nil {
		w.logger.Warn("corpus count failed: %v", err)
		return false
	}
	return count > 0
}

func (w *QueryWorkflow) routeNode(ctx context.Context, state GraphState) (GraphState, error) {
	state.Route = w.router.Classify(state.Question, w.hasCorpus(ctx))
	state.PathTaken = router.PathLabel(state.Route)
	w.logger.Info("router decision: %s", state.PathTaken)
	return state, nil
}

func (w *QueryWorkflow) retrieveNode(ctx context.Context, state GraphState) (GraphState, error) {
	if !w.hasCorpus(ctx) {
		// A retrieval cue can force the rag route with nothing indexed;
		// short-circuit instead of calling the retrieval service.
		state.RetrievedDocs = nil
		return state, nil
	}

	results, err := w.store.Search(ctx, state.Question, w.k)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyCorpus) {
			state.RetrievedDocs = nil
			return state, nil
		}
		w.logger.Warn("retrieval failed: %v", err)
		state.Generation = fmt.Sprintf("[ERROR] retrieval failed: %v", err)
		state.RetrievedDocs = nil
		return state, nil
	}

	state.RetrievedDocs = w.filter.Filter(results)
	return state, nil
}

func (w *QueryWorkflow) generateRAGNode(ctx context.Context, state GraphState) (GraphState, error) {
	if state.Generation != "" {
		// Retrieval already recorded a failure; leave it as the result.
		return state, nil
	}
	if len(state.RetrievedDocs) == 0 {
		state.Generation = NoRelevantContentMessage
		return state, nil
	}

	// Independent derived fields, joined into one prompt before the
	// single generation call.
	fields := promptFields{
		Context:  formatDocs(state.RetrievedDocs),
		Tone:     orDefault(state.Tone, "neutral"),
		Language: orDefault(state.Language, "English"),
		Question: state.Question,
	}
	system, user := assembleRAGPrompt(fields)

	generation, err := w.completer.Complete(ctx, system, user)
	if err != nil {
		state.Generation = fmt.Sprintf("[ERROR] generation failed: %v", err)
		return state, nil
	}
	state.Generation = generation
	return state, nil
}

func (w *QueryWorkflow) generateDirectNode(ctx context.Context, state GraphState) (GraphState, error) {
	system := fmt.Sprintf(
		"Use your general knowledge to answer. Be brief, at most 4-5 sentences.\n"+
			"Answer in the requested tone and language.\nTone: %s\nLanguage: %s",
		orDefault(state.Tone, "neutral"), orDefault(state.Language, "English"))

	generation, err := w.completer.Complete(ctx, system, "Question: "+state.Question)
	if err != nil {
		state.Generation = fmt.Sprintf("[ERROR] generation failed: %v", err)
		return state, nil
	}
	state.Generation = generation
	return state, nil
}

type promptFields struct {
	Context  string
	Tone     string
	Language string
	Question string
}

func assembleRAGPrompt(fields promptFields) (system, user string) {
	system = fmt.Sprintf(
		"You are an expert document aggregator. Answer using ONLY the "+
			"information present in the provided context.\n"+
			"If the context does not contain the answer, say so explicitly.\n\n"+
			"--- RETRIEVED CONTEXT ---\n%s\n--- END CONTEXT ---\n\n"+
			"Answer in the requested tone and language.\nTone: %s\nLanguage: %s",
		fields.Context, fields.Tone, fields.Language)
	user = "Question: " + fields.Question
	return system, user
}

func formatDocs(results []rag.SearchResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		source := r.Document.SourceFile()
		if source == "" {
			source = "unknown"
		}
		parts[i] = fmt.Sprintf("[Document %d - %s]\n%s", i+1, source, r.Document.Content)
	}
	return strings.Join(parts, "\n\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
