// Package passes holds the canonical default pass sequence (§4.D):
// type-hierarchy resolver, import resolver, symbol resolver, data-flow
// graph, dynamic-invoke resolver, evaluation-order graph, type resolver,
// control-flow-sensitive data-flow, filename mapper. Declaration order
// here is irrelevant — each pass's Descriptor carries the dependency
// metadata the Pass Scheduler actually orders by.
package passes

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// functionRegistry indexes Function/Method declarations by their Name
// (the simple name) for call resolution, the way the teacher's
// internal/pipeline/resolver.go FunctionRegistry does, adapted to read
// from the in-memory Graph instead of the SQLite store.
type functionRegistry struct {
	mu     sync.RWMutex
	byName map[string][]graphmodel.NodeID
}

func buildFunctionRegistry(g *graphmodel.Graph) *functionRegistry {
	r := &functionRegistry{byName: make(map[string][]graphmodel.NodeID)}
	for _, n := range g.Nodes() {
		if n.Kind == graphmodel.KindFunctionDecl || n.Kind == graphmodel.KindMethodDecl {
			if n.Name == "" {
				continue
			}
			r.byName[n.Name] = append(r.byName[n.Name], n.ID)
		}
	}
	return r
}

// resolve implements the teacher's prioritized strategy, trimmed to the
// two strategies that make sense without a persisted import map: an
// exact simple-name match, and — when ambiguous — a same-language
// preference over the calling node's own language.
func (r *functionRegistry) resolve(calleeName, language string, g *graphmodel.Graph) (graphmodel.NodeID, bool) {
	name := calleeName
	if idx := strings.LastIndex(calleeName, "."); idx >= 0 {
		name = calleeName[idx+1:]
	}

	r.mu.RLock()
	candidates := r.byName[name]
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return graphmodel.InvalidNodeID, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	for _, id := range candidates {
		if n, ok := g.Node(id); ok && n.Language == language {
			return id, true
		}
	}
	return graphmodel.InvalidNodeID, false
}

// SymbolResolverPass resolves CallExpr nodes to the declaration they
// invoke: a lexical scope lookup first, falling back to the project-wide
// functionRegistry (§4.D canonical pass "symbol resolver").
type SymbolResolverPass struct{}

func (SymbolResolverPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{
		Name:     "symbolResolver",
		SoftDeps: []string{"importResolver"},
	}
}

func (SymbolResolverPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.symbolResolver")
	registry := buildFunctionRegistry(pc.Graph)

	for _, call := range pc.Graph.Nodes() {
		if call.Kind != graphmodel.KindCallExpr {
			continue
		}
		calleeName := call.Name
		if calleeName == "" {
			continue
		}

		if scopeNode, ok := pc.Graph.Node(call.ScopeID); ok {
			if declID, found := pc.Scopes.Resolve(calleeName, scopeNode); found {
				_ = pc.Graph.AddEdge(graphmodel.EdgeInvokes, call.ID, declID, nil)
				continue
			}
		}

		if declID, found := registry.resolve(calleeName, call.Language, pc.Graph); found {
			_ = pc.Graph.AddEdge(graphmodel.EdgeInvokes, call.ID, declID, map[string]any{"strategy": "byName"})
			continue
		}

		if pc.Diagnostics != nil {
			pc.Diagnostics.Record(passsched.Diagnostic{
				Severity: passsched.SeverityWarning,
				Pass:     "symbolResolver",
				Subject:  calleeName,
				Message:  "no declaration found for call target",
			})
		}
	}
	return nil
}
