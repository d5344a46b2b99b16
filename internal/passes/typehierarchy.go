package passes

import (
	"context"
	"log/slog"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// TypeHierarchyResolverPass adds EXTENDS and IMPLEMENTS edges between
// RecordDecl nodes, reading the "baseClasses" and "interfaces" properties
// a frontend may have populated — grounded on the teacher's
// internal/pipeline/inherits.go (base_classes property -> INHERITS edge)
// and implements.go (method-set matching -> IMPLEMENTS edge), adapted to
// resolve by simple name against the in-memory graph instead of a
// registry keyed by qualified name over the SQLite store.
type TypeHierarchyResolverPass struct{}

func (TypeHierarchyResolverPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{Name: "typeHierarchyResolver"}
}

func (TypeHierarchyResolverPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.typeHierarchyResolver")

	records := make(map[string][]*graphmodel.Node)
	for _, n := range pc.Graph.Nodes() {
		if n.Kind == graphmodel.KindRecordDecl {
			records[n.Name] = append(records[n.Name], n)
		}
	}

	for _, n := range pc.Graph.Nodes() {
		if n.Kind != graphmodel.KindRecordDecl {
			continue
		}
		if bases, ok := n.Prop("baseClasses"); ok {
			linkNames(pc, records, n, bases, graphmodel.EdgeExtends)
		}
		if ifaces, ok := n.Prop("interfaces"); ok {
			linkNames(pc, records, n, ifaces, graphmodel.EdgeImplements)
		}
	}
	return nil
}

func linkNames(pc *passsched.Context, records map[string][]*graphmodel.Node, from *graphmodel.Node, raw any, kind graphmodel.EdgeKind) {
	names, ok := raw.([]string)
	if !ok {
		return
	}
	for _, name := range names {
		targets := records[name]
		if len(targets) == 0 {
			if pc.Diagnostics != nil {
				pc.Diagnostics.Record(passsched.Diagnostic{
					Severity: passsched.SeverityWarning,
					Pass:     "typeHierarchyResolver",
					Subject:  name,
					Message:  "base type or interface not found in this translation",
				})
			}
			continue
		}
		for _, target := range targets {
			if target.ID == from.ID {
				continue
			}
			_ = pc.Graph.AddEdge(kind, from.ID, target.ID, nil)
		}
	}
}
