// Docuflow - A Routed RAG and Multi-Agent Analysis Toolkit in Go
//
// Docuflow answers questions over a local document corpus and runs numeric
// analyses through coordinated agent teams. A typed state graph routes each
// question between document retrieval and direct generation, a relevance
// filter keeps only sufficiently similar chunks, and round-robin agent teams
// debate analysis tasks until a termination marker or round budget stops them.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/docuflow/docuflow
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/docuflow/docuflow/llm"
//		"github.com/docuflow/docuflow/rag"
//		"github.com/docuflow/docuflow/rag/store"
//		"github.com/docuflow/docuflow/router"
//		"github.com/docuflow/docuflow/workflow"
//	)
//
//	func main() {
//		vs := store.NewInMemoryVectorStore(store.NewMockEmbedder(256))
//		completer := llm.NewOpenAICompleter("", "gpt-4o-mini")
//
//		qw, _ := workflow.NewQueryWorkflow(
//			router.New(router.Config{}),
//			vs,
//			rag.NewRelevanceFilter(rag.DefaultRelevanceThreshold),
//			completer,
//		)
//
//		state, _ := qw.Ask(context.Background(), "What is a cat?")
//		fmt.Println(state.PathTaken)
//		fmt.Println(state.Generation)
//	}
//
// # Packages
//
//   - graph: generic state graph engine with conditional edges and exporters
//   - router: keyword-cue question classifier (rag vs direct)
//   - rag: document contracts, relevance filter, ingestion; splitter, loader
//     and store subpackages
//   - team: agent team registry, transcript, round-robin coordinator
//   - workflow: the routed query workflow and the hybrid analysis workflow
//   - history: per-session Q&A history with sqlite, redis and postgres backends
//   - llm: the Completer interface with OpenAI and langchaingo adapters
//   - config: YAML plus environment configuration
package docuflow // import "github.com/docuflow/docuflow"
