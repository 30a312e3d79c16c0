// Command docuflow runs the document assistant from the terminal: it
// ingests a corpus directory, answers a question through the routed query
// workflow, and optionally runs the hybrid team analysis on a numeric
// dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kataras/golog"

	"github.com/docuflow/docuflow/config"
	"github.com/docuflow/docuflow/graph"
	"github.com/docuflow/docuflow/history"
	"github.com/docuflow/docuflow/llm"
	"github.com/docuflow/docuflow/log"
	"github.com/docuflow/docuflow/rag"
	"github.com/docuflow/docuflow/rag/loader"
	"github.com/docuflow/docuflow/rag/splitter"
	"github.com/docuflow/docuflow/rag/store"
	"github.com/docuflow/docuflow/router"
	"github.com/docuflow/docuflow/team"
	"github.com/docuflow/docuflow/workflow"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a YAML config file")
		question    = flag.String("question", "", "question to answer")
		tone        = flag.String("tone", "", "answer tone")
		language    = flag.String("language", "", "answer language")
		data        = flag.String("data", "", "comma-separated numeric dataset for analysis")
		request     = flag.String("request", "find outliers", "analysis request for the team")
		showGraph   = flag.Bool("graph", false, "print the query graph as Mermaid and exit")
		sessionID   = flag.String("session", "default", "history session identifier")
		showHistory = flag.Bool("history", false, "print the session history after answering")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	gl := golog.New()
	logger := log.NewGologLogger(gl)
	logger.SetLevel(parseLogLevel(cfg.LogLevel))
	log.SetDefaultLogger(logger)

	ctx := context.Background()

	vectorStore := store.NewInMemoryVectorStore(store.NewMockEmbedder(256))
	ingestor := rag.NewIngestor(splitter.NewTokenTextSplitter(cfg.ChunkSize, cfg.ChunkOverlap), vectorStore)
	ingestor.SetLogger(logger)
	registerLoaders(ingestor)

	if _, statErr := os.Stat(cfg.CorpusDir); statErr == nil {
		added, ingErr := ingestor.IngestDirectory(ctx, cfg.CorpusDir)
		if ingErr != nil {
			fatal(ingErr)
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf("indexed %d new chunks from %s", added, cfg.CorpusDir)))
	} else {
		fmt.Println(dimStyle.Render("corpus directory not found, running without documents"))
	}

	var opts []llm.OpenAIOption
	if cfg.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.BaseURL))
	}
	completer := llm.NewOpenAICompleter(cfg.APIKey, cfg.Model, opts...)

	filter := rag.NewRelevanceFilter(cfg.RelevanceThreshold)
	filter.SetLogger(logger)

	qw, err := workflow.NewQueryWorkflow(router.New(router.Config{}), vectorStore, filter, completer)
	if err != nil {
		fatal(err)
	}
	qw.SetLogger(logger)
	qw.SetTopK(cfg.TopK)

	if *showGraph {
		fmt.Println(graph.NewExporter(qw.Graph()).DrawMermaid())
		return
	}

	histStore := history.NewMemoryStore()

	if *question != "" {
		runQuestion(ctx, qw, histStore, *sessionID, *question, *tone, *language)
	}

	if *data != "" {
		runAnalysis(ctx, cfg, completer, *data, *request)
	}

	if *showHistory {
		printHistory(ctx, histStore, *sessionID)
	}

	if *question == "" && *data == "" {
		fmt.Println("nothing to do: pass -question and/or -data")
		flag.Usage()
	}
}

func registerLoaders(ingestor *rag.Ingestor) {
	ingestor.RegisterLoader(".txt", func(path string) rag.DocumentLoader { return loader.NewTextLoader(path) })
	ingestor.RegisterLoader(".md", func(path string) rag.DocumentLoader { return loader.NewTextLoader(path) })
	ingestor.RegisterLoader(".csv", func(path string) rag.DocumentLoader { return loader.NewCSVLoader(path) })
	ingestor.RegisterLoader(".html", func(path string) rag.DocumentLoader { return loader.NewHTMLLoader(path) })
	ingestor.RegisterLoader(".htm", func(path string) rag.DocumentLoader { return loader.NewHTMLLoader(path) })
}

func runQuestion(ctx context.Context, qw *workflow.QueryWorkflow, histStore history.Store, sessionID, question, tone, language string) {
	fmt.Println(titleStyle.Render("Question"))
	fmt.Println(question)

	state, err := qw.Run(ctx, workflow.GraphState{
		Question: question,
		Tone:     tone,
		Language: language,
	})
	if err != nil {
		fatal(err)
	}

	fmt.Println(labelStyle.Render("Path"), state.PathTaken)
	if len(state.RetrievedDocs) > 0 {
		fmt.Println(labelStyle.Render("Sources"))
		for _, r := range state.RetrievedDocs {
			fmt.Printf("  %s (score %.3f)\n", r.Document.SourceFile(), r.Score)
		}
	}
	fmt.Println(labelStyle.Render("Answer"))
	fmt.Println(state.Generation)

	rec := history.NewRecord(sessionID, question, state.Generation, string(state.Route), state.PathTaken)
	if err := histStore.Append(ctx, rec); err != nil {
		fmt.Println(errStyle.Render("history append failed: " + err.Error()))
	}
}

func runAnalysis(ctx context.Context, cfg config.Config, completer llm.Completer, data, request string) {
	values, err := parseData(data)
	if err != nil {
		fatal(err)
	}

	teamCfg, err := team.Lookup(cfg.Team)
	if err != nil {
		fatal(err)
	}
	teamCfg.MaxRounds = cfg.MaxRounds

	aw, err := workflow.NewAnalysisWorkflow(team.NewCoordinator(teamCfg, completer))
	if err != nil {
		fatal(err)
	}

	state, err := aw.Run(ctx, values, request)
	if err != nil {
		fatal(err)
	}

	fmt.Println(titleStyle.Render("Analysis Report"))
	fmt.Println(state.FinalReport)
}

func printHistory(ctx context.Context, histStore history.Store, sessionID string) {
	records, err := histStore.List(ctx, sessionID)
	if err != nil {
		fatal(err)
	}

	fmt.Println(titleStyle.Render("History"))
	for _, r := range records {
		fmt.Printf("%s %s\n", dimStyle.Render(r.CreatedAt.Format("15:04:05")), r.Question)
		fmt.Printf("  %s %s\n", dimStyle.Render(r.PathLabel), r.Answer)
	}
}

func parseData(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric value %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseLogLevel(level string) log.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return log.LogLevelDebug
	case "warn":
		return log.LogLevelWarn
	case "error":
		return log.LogLevelError
	case "none":
		return log.LogLevelNone
	default:
		return log.LogLevelInfo
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
	os.Exit(1)
}
