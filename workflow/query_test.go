package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuflow/docuflow/llm"
	"github.com/docuflow/docuflow/rag"
	"github.com/docuflow/docuflow/rag/store"
	"github.com/docuflow/docuflow/router"
)

func newQueryWorkflow(t *testing.T, vs rag.VectorStore, completer llm.Completer) *QueryWorkflow {
	t.Helper()
	w, err := NewQueryWorkflow(
		router.New(router.Config{}),
		vs,
		rag.NewRelevanceFilter(rag.DefaultRelevanceThreshold),
		completer,
	)
	require.NoError(t, err)
	return w
}

func catStore(t *testing.T) *store.InMemoryVectorStore {
	t.Helper()
	vs := store.NewInMemoryVectorStore(store.NewMockEmbedder(64))
	err := vs.Add(context.Background(), []rag.Document{{
		ID:       "chunk1",
		Content:  "Cats are mammals.",
		Metadata: map[string]any{"source_file": "animals.txt"},
	}})
	require.NoError(t, err)
	return vs
}

func TestQueryRAGRoute(t *testing.T) {
	completer := llm.NewScriptedCompleter("A cat is a mammal.")
	w := newQueryWorkflow(t, catStore(t), completer)

	state, err := w.Ask(context.Background(), "According to the document, what is a cat?")
	require.NoError(t, err)

	assert.Equal(t, router.RouteRAG, state.Route)
	assert.Equal(t, router.PathLabel(router.RouteRAG), state.PathTaken)
	require.Len(t, state.RetrievedDocs, 1)
	assert.Equal(t, "Cats are mammals.", state.RetrievedDocs[0].Document.Content)
	assert.Equal(t, "A cat is a mammal.", state.Generation)

	// The generation context carries the chunk text and its source tag.
	systems := completer.Systems()
	require.Len(t, systems, 1)
	assert.Contains(t, systems[0], "Cats are mammals.")
	assert.Contains(t, systems[0], "animals.txt")
}

func TestQueryDirectRouteEmptyCorpus(t *testing.T) {
	completer := llm.NewScriptedCompleter("Machine learning is a field of AI.")
	w := newQueryWorkflow(t, nil, completer)

	state, err := w.Ask(context.Background(), "What is machine learning?")
	require.NoError(t, err)

	assert.Equal(t, router.RouteDirect, state.Route)
	assert.Empty(t, state.RetrievedDocs)
	assert.Equal(t, "Machine learning is a field of AI.", state.Generation)
}

func TestQueryAmbiguousWithCorpusGoesRAG(t *testing.T) {
	completer := llm.NewScriptedCompleter("Answer from documents.")
	w := newQueryWorkflow(t, catStore(t), completer)

	state, err := w.Ask(context.Background(), "Tell me about cats.")
	require.NoError(t, err)
	assert.Equal(t, router.RouteRAG, state.Route)
}

func TestQueryRetrievalCueEmptyCorpusShortCircuits(t *testing.T) {
	completer := llm.NewScriptedCompleter("should never be used")
	vs := store.NewInMemoryVectorStore(store.NewMockEmbedder(64))
	w := newQueryWorkflow(t, vs, completer)

	state, err := w.Ask(context.Background(), "According to the document, what is a cat?")
	require.NoError(t, err)

	assert.Equal(t, router.RouteRAG, state.Route)
	assert.Empty(t, state.RetrievedDocs)
	assert.Equal(t, NoRelevantContentMessage, state.Generation)
	assert.Empty(t, completer.Calls())
}

func TestQueryNoDocumentAboveThreshold(t *testing.T) {
	completer := llm.NewScriptedCompleter("should never be used")
	vs := store.NewInMemoryVectorStore(store.NewMockEmbedder(64))
	require.NoError(t, vs.Add(context.Background(), []rag.Document{{
		ID:      "chunk1",
		Content: "The stock market closed higher today.",
	}}))
	w := newQueryWorkflow(t, vs, completer)

	state, err := w.Ask(context.Background(), "What does the document say about cats?")
	require.NoError(t, err)

	assert.Equal(t, router.RouteRAG, state.Route)
	assert.Empty(t, state.RetrievedDocs)
	assert.Equal(t, NoRelevantContentMessage, state.Generation)
}

func TestQueryGenerationFailureEncodedAsValue(t *testing.T) {
	completer := llm.NewFailingCompleter(errors.New("backend down"))
	w := newQueryWorkflow(t, catStore(t), completer)

	state, err := w.Ask(context.Background(), "According to the document, what is a cat?")
	require.NoError(t, err)
	assert.Contains(t, state.Generation, "[ERROR]")
	assert.Contains(t, state.Generation, "backend down")
}

func TestQueryToneAndLanguage(t *testing.T) {
	completer := llm.NewScriptedCompleter("Una risposta formale.")
	w := newQueryWorkflow(t, catStore(t), completer)

	_, err := w.Run(context.Background(), GraphState{
		Question: "What does the document say about cats?",
		Tone:     "formal",
		Language: "Italian",
	})
	require.NoError(t, err)

	systems := completer.Systems()
	require.Len(t, systems, 1)
	assert.Contains(t, systems[0], "Tone: formal")
	assert.Contains(t, systems[0], "Language: Italian")
}
