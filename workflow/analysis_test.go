package workflow

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuflow/docuflow/llm"
	"github.com/docuflow/docuflow/team"
)

func newAnalysisWorkflow(t *testing.T, completer llm.Completer) *AnalysisWorkflow {
	t.Helper()
	cfg, err := team.Lookup(team.ResearchTeam)
	require.NoError(t, err)
	w, err := NewAnalysisWorkflow(team.NewCoordinator(cfg, completer))
	require.NoError(t, err)
	return w
}

func longAnalysis(s string) string {
	return s + strings.Repeat(" detail", 12)
}

func TestAnalysisEndToEnd(t *testing.T) {
	completer := llm.NewScriptedCompleter(
		longAnalysis("research findings on the dataset"),
		longAnalysis("the value 1000 is an outlier ANALYSIS_COMPLETE"),
	)
	w := newAnalysisWorkflow(t, completer)

	state, err := w.Run(context.Background(), []float64{10, 20, 30, 1000}, "find outliers")
	require.NoError(t, err)

	assert.Equal(t, 4, state.PreparedData.Count)
	assert.Equal(t, 10.0, state.PreparedData.Min)
	assert.Equal(t, 1000.0, state.PreparedData.Max)
	assert.Equal(t, 1060.0, state.PreparedData.Sum)
	assert.Equal(t, []float64{10, 20, 30, 1000}, state.PreparedData.SortedData)

	// Exactly three audit entries, in execution order, each with a marker.
	require.Len(t, state.WorkflowSteps, 3)
	assert.True(t, strings.HasPrefix(state.WorkflowSteps[0], StepOK+" Data Preparation"), state.WorkflowSteps[0])
	assert.True(t, strings.HasPrefix(state.WorkflowSteps[1], StepOK+" Team Analysis"), state.WorkflowSteps[1])
	assert.True(t, strings.HasPrefix(state.WorkflowSteps[2], StepOK+" Final Report"), state.WorkflowSteps[2])

	assert.Contains(t, state.TeamAnalysis, "outlier")
	assert.Contains(t, state.FinalReport, "# Data Analysis Report")
	assert.Contains(t, state.FinalReport, "find outliers")
	assert.Contains(t, state.FinalReport, "**Sum**: 1060.00")
}

func TestAnalysisSortedDataIsACopy(t *testing.T) {
	completer := llm.NewScriptedCompleter(longAnalysis("done ANALYSIS_COMPLETE"))
	w := newAnalysisWorkflow(t, completer)

	raw := []float64{3, 1, 2}
	state, err := w.Run(context.Background(), raw, "sort check")
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 1, 2}, state.RawData)
	assert.Equal(t, []float64{1, 2, 3}, state.PreparedData.SortedData)
}

func TestAnalysisMalformedInput(t *testing.T) {
	completer := llm.NewScriptedCompleter("unused")
	w := newAnalysisWorkflow(t, completer)

	_, err := w.Run(context.Background(), nil, "anything")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = w.Run(context.Background(), []float64{1, math.NaN()}, "anything")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = w.Run(context.Background(), []float64{math.Inf(1)}, "anything")
	assert.ErrorIs(t, err, ErrMalformedInput)

	// Validation fails fast: the completion backend is never called.
	assert.Empty(t, completer.Calls())
}

func TestAnalysisTeamFailureStillProducesReport(t *testing.T) {
	completer := llm.NewFailingCompleter(errors.New("backend down"))
	w := newAnalysisWorkflow(t, completer)

	state, err := w.Run(context.Background(), []float64{1, 2, 3}, "analyze")
	require.NoError(t, err)

	require.Len(t, state.WorkflowSteps, 3)
	assert.True(t, strings.HasPrefix(state.WorkflowSteps[1], StepFail+" Team Analysis"), state.WorkflowSteps[1])
	assert.Contains(t, state.TeamAnalysis, "[ERROR]")
	assert.NotEmpty(t, state.FinalReport)
	assert.Contains(t, state.FinalReport, "## Workflow Steps")
}

func TestDataPreview(t *testing.T) {
	assert.Equal(t, "[1, 2, 3]", dataPreview([]float64{1, 2, 3}))
	assert.Equal(t, "[1, 2, 3, 4, 5]...", dataPreview([]float64{1, 2, 3, 4, 5, 6}))
}

func TestBuildReportSections(t *testing.T) {
	report := BuildReport(AnalysisState{
		AnalysisRequest: "find trends",
		PreparedData:    PreparedData{Count: 2, Min: 1, Max: 2, Sum: 3},
		TeamAnalysis:    "upward trend",
		WorkflowSteps:   []string{StepOK + " Data Preparation: done"},
	})

	for _, section := range []string{
		"# Data Analysis Report",
		"## Analysis Request",
		"## Data Summary",
		"## Team Analysis",
		"## Workflow Steps",
		"find trends",
		"upward trend",
	} {
		assert.Contains(t, report, section)
	}
}

func TestRenderReportHTML(t *testing.T) {
	html := RenderReportHTML("# Title\n\n- **bold** item\n\n<script>alert(1)</script>")

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}
