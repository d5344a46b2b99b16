package passes

import (
	"context"
	"log/slog"
	"sort"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// EvaluationOrderGraphPass chains the direct AST children of every node
// that has at least two into an EdgeEOG sequence ordered by start line —
// the canonical default sequence's "evaluation-order graph" step.
// Frontends record declarations and calls, not full statement bodies, so
// the evaluation order graph here links those nodes in source order, not
// every sub-expression within them.
type EvaluationOrderGraphPass struct{}

func (EvaluationOrderGraphPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{Name: "evaluationOrderGraph"}
}

func (EvaluationOrderGraphPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.evaluationOrderGraph")

	for _, parent := range pc.Graph.Nodes() {
		edges := pc.Graph.Out(parent.ID, graphmodel.EdgeAST)
		if len(edges) < 2 {
			continue
		}

		children := make([]*graphmodel.Node, 0, len(edges))
		for _, e := range edges {
			if n, ok := pc.Graph.Node(e.To); ok {
				children = append(children, n)
			}
		}
		sort.Slice(children, func(i, j int) bool {
			return children[i].Location.StartLine < children[j].Location.StartLine
		})

		for i := 0; i+1 < len(children); i++ {
			_ = pc.Graph.AddEdge(graphmodel.EdgeEOG, children[i].ID, children[i+1].ID, nil)
		}
	}
	return nil
}
