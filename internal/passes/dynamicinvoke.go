package passes

import (
	"context"
	"log/slog"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// DynamicInvokeResolverPass handles call sites SymbolResolverPass left
// unresolved: virtual/interface dispatch where the callee can only be
// identified by matching the method name against every MethodDecl in the
// graph. A unique match is wired with EdgeInvokes carrying
// {"dynamic": true}; an ambiguous match is recorded as a
// ResolutionError-shaped diagnostic rather than failing the pass (§7:
// resolution failures are recorded, never fatal). A call with no
// candidate is left unwired and records nothing here.
type DynamicInvokeResolverPass struct{}

func (DynamicInvokeResolverPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{
		Name:     "dynamicInvokeResolver",
		HardDeps: []string{"symbolResolver"},
	}
}

func (DynamicInvokeResolverPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.dynamicInvokeResolver")

	methods := make(map[string][]*graphmodel.Node)
	for _, n := range pc.Graph.Nodes() {
		if n.Kind == graphmodel.KindMethodDecl && n.Name != "" {
			methods[n.Name] = append(methods[n.Name], n)
		}
	}

	for _, call := range pc.Graph.Nodes() {
		if call.Kind != graphmodel.KindCallExpr || call.Name == "" {
			continue
		}
		if len(pc.Graph.Out(call.ID, graphmodel.EdgeInvokes)) > 0 {
			continue // already resolved statically
		}

		candidates := methods[call.Name]
		switch len(candidates) {
		case 0:
			// Nothing to wire; symbolResolver already recorded the miss.
		case 1:
			_ = pc.Graph.AddEdge(graphmodel.EdgeInvokes, call.ID, candidates[0].ID, map[string]any{"dynamic": true})
		default:
			if pc.Diagnostics != nil {
				pc.Diagnostics.Record(passsched.Diagnostic{
					Severity: passsched.SeverityInfo,
					Pass:     "dynamicInvokeResolver",
					Subject:  call.Name,
					Message:  "multiple candidate methods for dynamic dispatch; left unresolved",
				})
			}
		}
	}
	return nil
}
