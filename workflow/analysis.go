package workflow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/docuflow/docuflow/graph"
	"github.com/docuflow/docuflow/log"
	"github.com/docuflow/docuflow/team"
)

// ErrMalformedInput is returned when the analysis input fails validation
// before any graph execution starts.
var ErrMalformedInput = errors.New("malformed input")

// Workflow step status markers.
const (
	StepOK   = "[OK]"
	StepFail = "[FAIL]"
)

// PreparedData is the derived summary of the raw dataset.
type PreparedData struct {
	Count       int
	Min         float64
	Max         float64
	Sum         float64
	SortedData  []float64
	DataPreview string
}

// AnalysisState is threaded through one hybrid analysis execution.
// WorkflowSteps is the append-only audit trail: one entry per node, in
// execution order, each prefixed with its status marker.
type AnalysisState struct {
	RawData         []float64
	AnalysisRequest string
	PreparedData    PreparedData
	TeamAnalysis    string
	FinalReport     string
	WorkflowSteps   []string
}

// AnalysisWorkflow runs the three-node hybrid graph: data preparation, a
// multi-agent team analysis embedded as a single node, and report
// generation. Node failures are encoded as state values so the report node
// always runs.
type AnalysisWorkflow struct {
	coordinator *team.Coordinator
	logger      log.Logger
	runnable    *graph.Runnable[AnalysisState]
}

// NewAnalysisWorkflow assembles and compiles the analysis graph around the
// given team coordinator.
func NewAnalysisWorkflow(coordinator *team.Coordinator) (*AnalysisWorkflow, error) {
	w := &AnalysisWorkflow{
		coordinator: coordinator,
		logger:      &log.NoOpLogger{},
	}

	runnable, err := w.buildGraph().Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling analysis graph: %w", err)
	}
	w.runnable = runnable
	return w, nil
}

// SetLogger sets the trace logger.
func (w *AnalysisWorkflow) SetLogger(logger log.Logger) {
	if logger != nil {
		w.logger = logger
	}
}

// Graph exposes the declared graph, for visualization.
func (w *AnalysisWorkflow) Graph() *graph.StateGraph[AnalysisState] {
	return w.buildGraph()
}

// Run validates the input and executes the graph. Validation failures are
// reported before any node runs and produce no partial state.
func (w *AnalysisWorkflow) Run(ctx context.Context, rawData []float64, request string) (AnalysisState, error) {
	if err := validateAnalysisInput(rawData); err != nil {
		return AnalysisState{}, err
	}

	return w.runnable.Invoke(ctx, AnalysisState{
		RawData:         rawData,
		AnalysisRequest: request,
	})
}

func validateAnalysisInput(rawData []float64) error {
	if len(rawData) == 0 {
		return fmt.Errorf("%w: no numeric data provided", ErrMalformedInput)
	}
	for i, v := range rawData {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value at index %d is not a finite number", ErrMalformedInput, i)
		}
	}
	return nil
}

func (w *AnalysisWorkflow) buildGraph() *graph.StateGraph[AnalysisState] {
	g := graph.NewStateGraph[AnalysisState]()
	g.SetLogger(w.logger)

	g.AddNode("prepare_data", "validate and summarize the dataset", w.prepareDataNode)
	g.AddNode("team_analysis", "run the multi-agent analysis", w.teamAnalysisNode)
	g.AddNode("final_report", "format the final report", w.finalReportNode)

	g.SetEntryPoint("prepare_data")
	g.AddEdge("prepare_data", "team_analysis")
	g.AddEdge("team_analysis", "final_report")
	g.AddEdge("final_report", graph.END)

	return g
}

func (w *AnalysisWorkflow) prepareDataNode(ctx context.Context, state AnalysisState) (AnalysisState, error) {
	sorted := make([]float64, len(state.RawData))
	copy(sorted, state.RawData)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range state.RawData {
		sum += v
	}

	state.PreparedData = PreparedData{
		Count:       len(state.RawData),
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Sum:         sum,
		SortedData:  sorted,
		DataPreview: dataPreview(state.RawData),
	}

	state.WorkflowSteps = append(state.WorkflowSteps, fmt.Sprintf(
		"%s Data Preparation: %d values processed (range: %.2f - %.2f)",
		StepOK, state.PreparedData.Count, state.PreparedData.Min, state.PreparedData.Max))

	w.logger.Info("prepared %d values, range %.2f - %.2f",
		state.PreparedData.Count, state.PreparedData.Min, state.PreparedData.Max)
	return state, nil
}

func (w *AnalysisWorkflow) teamAnalysisNode(ctx context.Context, state AnalysisState) (AnalysisState, error) {
	task := fmt.Sprintf(
		"Analyze this dataset.\n\nRequest: %s\n\n"+
			"Data summary:\n- Values: %d\n- Range: %.2f - %.2f\n- Sum: %.2f\n- Preview: %s",
		state.AnalysisRequest, state.PreparedData.Count,
		state.PreparedData.Min, state.PreparedData.Max,
		state.PreparedData.Sum, state.PreparedData.DataPreview)

	result, err := w.coordinator.Run(ctx, task)
	if err != nil {
		// Context cancellation aborts the graph; anything recoverable is
		// already encoded in the transcript by the coordinator.
		return state, err
	}

	if result.Summary == team.NoResultSentinel {
		state.TeamAnalysis = "[ERROR] the team completed without an extractable analysis"
		state.WorkflowSteps = append(state.WorkflowSteps, fmt.Sprintf(
			"%s Team Analysis: no extractable result after %d turns", StepFail, result.Turns))
		return state, nil
	}

	state.TeamAnalysis = result.Summary
	state.WorkflowSteps = append(state.WorkflowSteps, fmt.Sprintf(
		"%s Team Analysis: completed (%d turns, %s)", StepOK, result.Turns, result.Reason))
	return state, nil
}

func (w *AnalysisWorkflow) finalReportNode(ctx context.Context, state AnalysisState) (AnalysisState, error) {
	state.FinalReport = BuildReport(state)
	state.WorkflowSteps = append(state.WorkflowSteps, StepOK+" Final Report: generated")
	return state, nil
}

func dataPreview(data []float64) string {
	preview := data
	truncated := false
	if len(preview) > 5 {
		preview = preview[:5]
		truncated = true
	}

	parts := make([]string, len(preview))
	for i, v := range preview {
		parts[i] = fmt.Sprintf("%g", v)
	}

	s := "[" + strings.Join(parts, ", ") + "]"
	if truncated {
		s += "..."
	}
	return s
}
