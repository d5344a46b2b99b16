package passes

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/FFengIll/cpg/internal/fqn"
	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// FilenameMapperPass computes each TranslationUnit's qualified name from
// its file path via internal/fqn, and its top-level declarations'
// qualified names as "<unit qualified name>.<declaration name>". It
// appends one inferred Namespace node per unit and links it with
// EdgeMaps — the canonical default sequence's final "filename mapper"
// step, pinned last because every earlier pass may still add
// declarations whose names this pass needs to see.
type FilenameMapperPass struct {
	// Component names every unit's qualified-name root, e.g. "billing" in
	// "billing.service.order.Submit".
	Component string
}

func (p FilenameMapperPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{Name: "filenameMapper", ExecuteLast: true}
}

func (p FilenameMapperPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.filenameMapper")

	component := p.Component
	if component == "" {
		component = "module"
	}

	for _, tu := range pc.Graph.Nodes() {
		if tu.Kind != graphmodel.KindTranslationUnit {
			continue
		}
		relPath := tu.Location.File
		unitQN := fqn.UnitQualifiedName(component, filepath.ToSlash(relPath))
		tu.QualifiedName = unitQN

		namespace := pc.Graph.AppendInferred(graphmodel.KindNamespace, unitQN)
		namespace.QualifiedName = unitQN
		_ = pc.Graph.AddEdge(graphmodel.EdgeMaps, tu.ID, namespace.ID, nil)

		for _, e := range pc.Graph.Out(tu.ID, graphmodel.EdgeAST) {
			decl, ok := pc.Graph.Node(e.To)
			if !ok || decl.Name == "" {
				continue
			}
			decl.QualifiedName = fqn.QualifiedName(component, relPath, decl.Name)
		}
	}
	return nil
}
