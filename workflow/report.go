package workflow

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// BuildReport formats the final analysis report in markdown: the original
// request, the data summary, the team analysis and the workflow audit
// trail.
func BuildReport(state AnalysisState) string {
	var sections []string

	sections = append(sections, "# Data Analysis Report", "")

	sections = append(sections, "## Analysis Request", state.AnalysisRequest, "")

	sections = append(sections, "## Data Summary")
	sections = append(sections,
		fmt.Sprintf("- **Values**: %d", state.PreparedData.Count),
		fmt.Sprintf("- **Minimum**: %.2f", state.PreparedData.Min),
		fmt.Sprintf("- **Maximum**: %.2f", state.PreparedData.Max),
		fmt.Sprintf("- **Sum**: %.2f", state.PreparedData.Sum),
		"")

	sections = append(sections, "## Team Analysis", state.TeamAnalysis, "")

	sections = append(sections, "## Workflow Steps")
	for _, step := range state.WorkflowSteps {
		sections = append(sections, "- "+step)
	}

	return strings.Join(sections, "\n")
}

// RenderReportHTML converts a markdown report to sanitized HTML for the UI
// layer.
func RenderReportHTML(markdownReport string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(markdownReport))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.Render(doc, renderer)

	return string(bluemonday.UGCPolicy().SanitizeBytes(rendered))
}
