package graph

import (
	"context"
	"fmt"

	"github.com/docuflow/docuflow/log"
)

// StateGraph represents a state-based graph with compile-time type safety.
// The type parameter S is the state record threaded through every node of
// one execution.
//
// Example usage:
//
//	type MyState struct {
//	    Count int
//	}
//
//	g := graph.NewStateGraph[MyState]()
//	g.AddNode("increment", "Increment counter", func(ctx context.Context, state MyState) (MyState, error) {
//	    state.Count++
//	    return state, nil
//	})
type StateGraph[S any] struct {
	// nodes maps node names to their corresponding Node objects
	nodes map[string]Node[S]

	// edges holds the unconditional transitions between nodes
	edges []Edge

	// conditionalEdges maps a "From" node to its branch decision
	conditionalEdges map[string]conditionalEdge[S]

	// entryPoint is the name of the entry point node in the graph
	entryPoint string

	logger log.Logger
}

// Node represents a node in the graph.
type Node[S any] struct {
	Name        string
	Description string
	Function    func(ctx context.Context, state S) (S, error)
}

// conditionalEdge pairs a decision function with its branch map. The decision
// function must be a pure read of the state; it returns a branch key which is
// resolved to a node name through the branch map. A nil branch map means the
// key already is the target node name.
type conditionalEdge[S any] struct {
	decide   func(ctx context.Context, state S) string
	branches map[string]string
}

// NewStateGraph creates a new instance of StateGraph.
func NewStateGraph[S any]() *StateGraph[S] {
	return &StateGraph[S]{
		nodes:            make(map[string]Node[S]),
		conditionalEdges: make(map[string]conditionalEdge[S]),
		logger:           &log.NoOpLogger{},
	}
}

// SetLogger sets the logger used for execution tracing.
func (g *StateGraph[S]) SetLogger(logger log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// AddNode adds a new node to the state graph with the given name, description
// and function.
func (g *StateGraph[S]) AddNode(name string, description string, fn func(ctx context.Context, state S) (S, error)) {
	g.nodes[name] = Node[S]{
		Name:        name,
		Description: description,
		Function:    fn,
	}
}

// AddEdge adds an unconditional edge between the "from" and "to" nodes.
func (g *StateGraph[S]) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{
		From: from,
		To:   to,
	})
}

// AddConditionalEdge adds a conditional edge where the target node is
// determined at runtime. The decision function returns a branch key that is
// resolved through the branch map; pass a nil map if the decision function
// returns node names directly.
//
// Example:
//
//	g.AddConditionalEdge("router", routeDecision, map[string]string{
//	    "rag":    "retrieve",
//	    "direct": "generate_direct",
//	})
func (g *StateGraph[S]) AddConditionalEdge(from string, decide func(ctx context.Context, state S) string, branches map[string]string) {
	g.conditionalEdges[from] = conditionalEdge[S]{
		decide:   decide,
		branches: branches,
	}
}

// SetEntryPoint sets the entry point node name for the state graph.
func (g *StateGraph[S]) SetEntryPoint(name string) {
	g.entryPoint = name
}

// Runnable represents a compiled state graph that can be invoked.
type Runnable[S any] struct {
	graph *StateGraph[S]
}

// Compile validates the graph structure and returns a Runnable instance.
// It verifies that the entry point exists and that every edge and every
// conditional branch targets a registered node or END.
func (g *StateGraph[S]) Compile() (*Runnable[S], error) {
	if g.entryPoint == "" {
		return nil, ErrEntryPointNotSet
	}
	if _, ok := g.nodes[g.entryPoint]; !ok {
		return nil, fmt.Errorf("%w: entry point %s", ErrNodeNotFound, g.entryPoint)
	}

	for _, edge := range g.edges {
		if _, ok := g.nodes[edge.From]; !ok {
			return nil, fmt.Errorf("%w: edge source %s", ErrNodeNotFound, edge.From)
		}
		if edge.To == END {
			continue
		}
		if _, ok := g.nodes[edge.To]; !ok {
			return nil, fmt.Errorf("%w: edge target %s", ErrNodeNotFound, edge.To)
		}
	}

	for from, ce := range g.conditionalEdges {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("%w: conditional edge source %s", ErrNodeNotFound, from)
		}
		for key, target := range ce.branches {
			if target == END {
				continue
			}
			if _, ok := g.nodes[target]; !ok {
				return nil, fmt.Errorf("%w: branch %q target %s", ErrNodeNotFound, key, target)
			}
		}
	}

	return &Runnable[S]{graph: g}, nil
}

// Invoke executes the compiled state graph with the given initial state.
// Execution is strictly sequential: one node at a time, following exactly one
// outgoing edge after each visit, until END is reached. A node error aborts
// the run and is returned to the caller with the zero state; node functions
// are expected to encode recoverable failures as state values instead.
func (r *Runnable[S]) Invoke(ctx context.Context, initialState S) (S, error) {
	state := initialState
	current := r.graph.entryPoint

	for current != END {
		if err := ctx.Err(); err != nil {
			var zero S
			return zero, err
		}

		node, ok := r.graph.nodes[current]
		if !ok {
			var zero S
			return zero, fmt.Errorf("%w: %s", ErrNodeNotFound, current)
		}

		r.graph.logger.Debug("visiting node %s", current)

		result, err := node.Function(ctx, state)
		if err != nil {
			var zero S
			return zero, fmt.Errorf("error in node %s: %w", current, err)
		}
		state = result

		next, err := r.nextNode(ctx, current, state)
		if err != nil {
			var zero S
			return zero, err
		}
		current = next
	}

	return state, nil
}

// nextNode resolves the single outgoing transition from the given node.
// Conditional edges take precedence over unconditional ones.
func (r *Runnable[S]) nextNode(ctx context.Context, current string, state S) (string, error) {
	if ce, ok := r.graph.conditionalEdges[current]; ok {
		key := ce.decide(ctx, state)
		if key == "" {
			return "", fmt.Errorf("conditional edge returned empty branch key from %s", current)
		}
		if ce.branches == nil {
			return key, nil
		}
		target, ok := ce.branches[key]
		if !ok {
			return "", fmt.Errorf("%w: %q from node %s", ErrUnknownBranch, key, current)
		}
		return target, nil
	}

	for _, edge := range r.graph.edges {
		if edge.From == current {
			return edge.To, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoOutgoingEdge, current)
}
