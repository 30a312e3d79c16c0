package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Exporter renders a declared graph in diagram formats for the UI layer.
type Exporter[S any] struct {
	graph *StateGraph[S]
}

// NewExporter creates a new graph exporter for the given graph
func NewExporter[S any](graph *StateGraph[S]) *Exporter[S] {
	return &Exporter[S]{graph: graph}
}

// DrawMermaid generates a Mermaid flowchart of the graph. Conditional
// branches are drawn as labeled dashed edges using their branch keys.
func (ge *Exporter[S]) DrawMermaid() string {
	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	if ge.graph.entryPoint != "" {
		sb.WriteString("    START([\"START\"])\n")
		sb.WriteString(fmt.Sprintf("    START --> %s\n", ge.graph.entryPoint))
	}

	nodeNames := make([]string, 0, len(ge.graph.nodes))
	for name := range ge.graph.nodes {
		nodeNames = append(nodeNames, name)
	}
	sort.Strings(nodeNames)

	for _, name := range nodeNames {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", name, name))
	}

	if ge.referencesEnd() {
		sb.WriteString("    END([\"END\"])\n")
	}

	for _, edge := range ge.graph.edges {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", edge.From, edge.To))
	}

	// Conditional branches, sorted by source then key for stable output
	condSources := make([]string, 0, len(ge.graph.conditionalEdges))
	for from := range ge.graph.conditionalEdges {
		condSources = append(condSources, from)
	}
	sort.Strings(condSources)

	for _, from := range condSources {
		ce := ge.graph.conditionalEdges[from]
		if len(ce.branches) == 0 {
			sb.WriteString(fmt.Sprintf("    %s -.-> |?| END\n", from))
			continue
		}
		keys := make([]string, 0, len(ce.branches))
		for key := range ce.branches {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sb.WriteString(fmt.Sprintf("    %s -.-> |%s| %s\n", from, key, ce.branches[key]))
		}
	}

	return sb.String()
}

// DrawDOT generates a DOT (Graphviz) representation of the graph
func (ge *Exporter[S]) DrawDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString("    rankdir=TD;\n")
	sb.WriteString("    node [shape=box];\n")

	if ge.graph.entryPoint != "" {
		sb.WriteString("    START [shape=ellipse];\n")
		sb.WriteString(fmt.Sprintf("    START -> %s;\n", ge.graph.entryPoint))
	}

	if ge.referencesEnd() {
		sb.WriteString("    END [shape=ellipse];\n")
	}

	for _, edge := range ge.graph.edges {
		sb.WriteString(fmt.Sprintf("    %s -> %s;\n", edge.From, edge.To))
	}

	condSources := make([]string, 0, len(ge.graph.conditionalEdges))
	for from := range ge.graph.conditionalEdges {
		condSources = append(condSources, from)
	}
	sort.Strings(condSources)

	for _, from := range condSources {
		ce := ge.graph.conditionalEdges[from]
		keys := make([]string, 0, len(ce.branches))
		for key := range ce.branches {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sb.WriteString(fmt.Sprintf("    %s -> %s [style=dashed, label=\"%s\"];\n", from, ce.branches[key], key))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func (ge *Exporter[S]) referencesEnd() bool {
	for _, edge := range ge.graph.edges {
		if edge.To == END {
			return true
		}
	}
	for _, ce := range ge.graph.conditionalEdges {
		for _, target := range ce.branches {
			if target == END {
				return true
			}
		}
	}
	return false
}
