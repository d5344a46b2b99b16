package passes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// JavaClasspathImportResolverPass is Java's replacement for importResolver
// (wired through internal/language's per-language ReplacePasses), matching
// on package-qualified names instead of filesystem suffixes: Java import
// statements name a fully-qualified class ("com.acme.billing.Invoice"),
// which maps onto a unit's RecordDecl qualified name, not its file path.
// Declares the same dependency metadata as the pass it replaces so the
// scheduler treats it as a drop-in substitute.
type JavaClasspathImportResolverPass struct{}

func (JavaClasspathImportResolverPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{
		Name:     "javaClasspathImportResolver",
		SoftDeps: []string{"typeHierarchyResolver"},
	}
}

func (JavaClasspathImportResolverPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.javaClasspathImportResolver")

	records := make(map[string]*graphmodel.Node)
	for _, n := range pc.Graph.Nodes() {
		if n.Kind != graphmodel.KindRecordDecl || n.Name == "" {
			continue
		}
		records[n.Name] = n
		if pkg, ok := packageOf(pc.Graph, n); ok {
			records[pkg+"."+n.Name] = n
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

		fqcn := importPath(imp)
		if fqcn == "" || strings.HasSuffix(fqcn, "*") {
			continue
		}

		target, ok := records[fqcn]
		if !ok {
			simple := fqcn
			if idx := strings.LastIndex(fqcn, "."); idx >= 0 {
				simple = fqcn[idx+1:]
			}
			target, ok = records[simple]
		}
		if !ok {
			if pc.Diagnostics != nil {
				pc.Diagnostics.Record(passsched.Diagnostic{
					Severity: passsched.SeverityWarning,
					Pass:     "javaClasspathImportResolver",
					Subject:  fqcn,
					Message:  "no class on the classpath matched this import",
				})
			}
			continue
		}

		targetTU := translationUnitOf(pc.Graph, target)
		if targetTU == nil || targetTU.ID == tu.ID {
			continue
		}
		_ = pc.Graph.AddEdge(graphmodel.EdgeImports, tu.ID, targetTU.ID, nil)
	}
	return nil
}

// packageOf reports the Java package name for n's translation unit, read
// from the unit's "package" property if a frontend populated one.
func packageOf(g *graphmodel.Graph, n *graphmodel.Node) (string, bool) {
	tu := translationUnitOf(g, n)
	if tu == nil {
		return "", false
	}
	pkg, ok := tu.Prop("package")
	if !ok {
		return "", false
	}
	name, ok := pkg.(string)
	return name, ok && name != ""
}
