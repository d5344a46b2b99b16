package passes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// DataFlowGraphPass connects VariableDecl nodes to the CallExpr nodes in
// the same function whose source text references them, as an EdgeDFG
// edge — the canonical default pass sequence's "data-flow graph" step.
// Real data-flow analysis needs a control-flow-sensitive def/use walk
// the frontends here don't expose (they don't retain statement bodies);
// this pass builds the coarse, textual approximation that's genuinely
// exercisable from what the frontend does record, and leaves refinement
// to ControlFlowSensitiveDataFlowPass.
type DataFlowGraphPass struct{}

func (DataFlowGraphPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{
		Name:     "dataFlowGraph",
		SoftDeps: []string{"symbolResolver"},
	}
}

func (DataFlowGraphPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.dataFlowGraph")

	for _, fn := range pc.Graph.Nodes() {
		if fn.Kind != graphmodel.KindFunctionDecl && fn.Kind != graphmodel.KindMethodDecl {
			continue
		}
		children := pc.Graph.Out(fn.ID, graphmodel.EdgeAST)

		var vars, calls []*graphmodel.Node
		for _, e := range children {
			n, ok := pc.Graph.Node(e.To)
			if !ok {
				continue
			}
			switch n.Kind {
			case graphmodel.KindVariableDecl:
				vars = append(vars, n)
			case graphmodel.KindCallExpr:
				calls = append(calls, n)
			}
		}

		for _, v := range vars {
			if v.Name == "" {
				continue
			}
			for _, c := range calls {
				if strings.Contains(c.Code, v.Name) {
					_ = pc.Graph.AddEdge(graphmodel.EdgeDFG, v.ID, c.ID, nil)
				}
			}
		}
	}
	return nil
}

// ControlFlowSensitiveDataFlowPass refines DataFlowGraphPass's edges by
// setting a "crossUnit" property on every DFG edge: true when its two
// ends belong to different translation units (or either end has none),
// false when both lie in the same unit — the canonical sequence's
// "control-flow-sensitive data-flow" step, depending hard on the
// coarse pass that must have already produced the edges it refines.
type ControlFlowSensitiveDataFlowPass struct{}

func (ControlFlowSensitiveDataFlowPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{
		Name:     "controlFlowSensitiveDataFlow",
		HardDeps: []string{"dataFlowGraph"},
	}
}

func (ControlFlowSensitiveDataFlowPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.controlFlowSensitiveDataFlow")

	for _, n := range pc.Graph.Nodes() {
		for _, e := range pc.Graph.Out(n.ID, graphmodel.EdgeDFG) {
			target, ok := pc.Graph.Node(e.To)
			if !ok {
				continue
			}
			localTU := translationUnitOf(pc.Graph, n)
			targetTU := translationUnitOf(pc.Graph, target)
			crossUnit := localTU == nil || targetTU == nil || localTU.ID != targetTU.ID
			e.Properties = mergeProps(e.Properties, map[string]any{"crossUnit": crossUnit})
		}
	}
	return nil
}

func mergeProps(existing, additions map[string]any) map[string]any {
	if existing == nil {
		existing = make(map[string]any, len(additions))
	}
	for k, v := range additions {
		existing[k] = v
	}
	return existing
}
