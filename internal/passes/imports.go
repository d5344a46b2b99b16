package passes

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// ImportResolverPass resolves each ImportDecl's import path against the
// set of TranslationUnit file paths in this translation, adding an
// EdgeImports edge from the importing unit to the imported one when a
// match is found — the teacher's internal/pipeline/imports.go resolves
// the same shape of problem (import text -> module path) against the
// SQLite store; here it resolves against the in-memory unit set instead.
type ImportResolverPass struct{}

func (ImportResolverPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{
		Name:     "importResolver",
		SoftDeps: []string{"typeHierarchyResolver"},
	}
}

func (ImportResolverPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.importResolver")

	units := make(map[string]*graphmodel.Node)
	for _, n := range pc.Graph.Nodes() {
		if n.Kind == graphmodel.KindTranslationUnit {
			units[n.Location.File] = n
		}
	}

	for _, imp := range pc.Graph.Nodes() {
		if imp.Kind != graphmodel.KindImportDecl {
			continue
		}
		tu := translationUnitOf(pc.Graph, imp)
		if tu == nil {
			continue
		}

		path := importPath(imp)
		if path == "" {
			continue
		}

		target := matchUnit(units, path)
		if target == nil {
			if pc.Diagnostics != nil {
				pc.Diagnostics.Record(passsched.Diagnostic{
					Severity: passsched.SeverityWarning,
					Pass:     "importResolver",
					Subject:  path,
					Message:  "import path did not match any translation unit in this run",
				})
			}
			continue
		}
		_ = pc.Graph.AddEdge(graphmodel.EdgeImports, tu.ID, target.ID, nil)
	}
	return nil
}

func importPath(imp *graphmodel.Node) string {
	raw := imp.Code
	if raw == "" {
		raw = imp.Name
	}
	raw = strings.Trim(raw, `"' ;`)
	raw = strings.TrimPrefix(raw, "import ")
	return strings.TrimSpace(raw)
}

// matchUnit converts dotted/slashed import forms to a slash-separated
// path, takes its last segment, and returns the translation unit with the
// longest file path that contains that segment anywhere.
func matchUnit(units map[string]*graphmodel.Node, path string) *graphmodel.Node {
	candidate := strings.ReplaceAll(path, ".", "/")
	base := filepath.Base(candidate)

	var best *graphmodel.Node
	bestLen := -1
	for file, unit := range units {
		if strings.Contains(file, base) && len(file) > bestLen {
			best = unit
			bestLen = len(file)
		}
	}
	return best
}
