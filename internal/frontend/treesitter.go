package frontend

import (
	"context"
	"fmt"
	"os"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/parser"
	"github.com/FFengIll/cpg/internal/scope"
)

// TreeSitterFrontend is the generic frontend every concrete language wires
// up in internal/language: a grammar plus the NodeTypes table that maps
// that grammar's node kinds onto the graph taxonomy. It produces a
// TranslationUnit and the declarations/calls/imports reachable from it;
// deeper semantic edges (calls resolved to callees, types inferred, data
// flow) are the job of the passes in internal/passes, not the frontend.
type TreeSitterFrontend struct {
	Language string
	Grammar  parser.Grammar
	Types    NodeTypes
}

// NewTreeSitterFrontend returns a Factory that builds frontends sharing
// the grammar and node-type table above — each call returns a fresh,
// stateless frontend instance (the pooling lives in internal/parser).
func NewTreeSitterFrontend(language string, grammar parser.Grammar, types NodeTypes) Factory {
	return func() (Frontend, error) {
		return &TreeSitterFrontend{Language: language, Grammar: grammar, Types: types}, nil
	}
}

func (f *TreeSitterFrontend) Parse(ctx context.Context, file string, fctx *Context) (*graphmodel.Node, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	tree, err := parser.Parse(f.Grammar, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: empty tree", file)
	}

	tu := fctx.Graph.NewNode(graphmodel.KindTranslationUnit, file)
	tu.Language = f.Language
	tu.Location = graphmodel.SourceLocation{File: file}
	if fctx.CodeInNodes {
		tu.Code = string(source)
	}

	stack := fctx.Scopes.NewStack()
	w := &walker{f: f, fctx: fctx, source: source, file: file, stack: stack, tu: tu}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child != nil && f.Types.IsPackage(child.Kind()) {
			tu.SetProp("package", packageNameText(child, source))
			break
		}
	}

	w.walkChildren(root, tu, stack.Current())

	return tu, nil
}

func (f *TreeSitterFrontend) Cleanup() error { return nil }

type walker struct {
	f      *TreeSitterFrontend
	fctx   *Context
	source []byte
	file   string
	stack  *scope.Stack
	tu     *graphmodel.Node
}

func (w *walker) walkChildren(tsNode *tree_sitter.Node, parent *graphmodel.Node, currentScope *graphmodel.Node) {
	for i := uint(0); i < tsNode.NamedChildCount(); i++ {
		child := tsNode.NamedChild(i)
		if child != nil {
			w.visit(child, parent, currentScope)
		}
	}
}

func (w *walker) visit(tsNode *tree_sitter.Node, parent *graphmodel.Node, currentScope *graphmodel.Node) {
	types := w.f.Types
	kind := tsNode.Kind()

	switch {
	case types.IsFunction(kind):
		decl := w.newDecl(graphmodel.KindFunctionDecl, tsNode)
		if parent.Kind == graphmodel.KindRecordDecl {
			decl.Kind = graphmodel.KindMethodDecl
		}
		_ = w.fctx.Graph.AddEdge(graphmodel.EdgeAST, parent.ID, decl.ID, nil)
		if decl.Name != "" {
			w.fctx.Scopes.Declare(currentScope, decl.Name, decl.ID)
		}
		fnScope := w.stack.Enter(decl)
		w.walkChildren(tsNode, decl, fnScope)
		_ = w.stack.Leave(fnScope)

	case types.IsClass(kind):
		decl := w.newDecl(graphmodel.KindRecordDecl, tsNode)
		_ = w.fctx.Graph.AddEdge(graphmodel.EdgeAST, parent.ID, decl.ID, nil)
		if decl.Name != "" {
			w.fctx.Scopes.Declare(currentScope, decl.Name, decl.ID)
		}
		if bases := w.namedIdentifiers(tsNode, types.superclassField()); len(bases) > 0 {
			decl.SetProp("baseClasses", bases)
		}
		if ifaces := w.namedIdentifiers(tsNode, types.interfacesField()); len(ifaces) > 0 {
			decl.SetProp("interfaces", ifaces)
		}
		classScope := w.stack.Enter(decl)
		w.walkChildren(tsNode, decl, classScope)
		_ = w.stack.Leave(classScope)

	case types.IsField(kind):
		decl := w.newDecl(graphmodel.KindFieldDecl, tsNode)
		_ = w.fctx.Graph.AddEdge(graphmodel.EdgeAST, parent.ID, decl.ID, nil)
		if decl.Name != "" {
			w.fctx.Scopes.Declare(currentScope, decl.Name, decl.ID)
		}
		if typeName, ok := w.typeNameOf(tsNode); ok {
			decl.SetProp("typeName", typeName)
		}

	case types.IsImport(kind):
		// The Import Resolver pass adds the EdgeImports edge from this
		// TranslationUnit to the target once it resolves the import path;
		// the frontend only records the ImportDecl's AST position.
		decl := w.newDecl(graphmodel.KindImportDecl, tsNode)
		_ = w.fctx.Graph.AddEdge(graphmodel.EdgeAST, parent.ID, decl.ID, nil)

	case types.IsCall(kind):
		call := w.newDecl(graphmodel.KindCallExpr, tsNode)
		call.ScopeID = currentScope.ID
		_ = w.fctx.Graph.AddEdge(graphmodel.EdgeAST, parent.ID, call.ID, nil)
		w.walkChildren(tsNode, call, currentScope)

	case types.IsVariable(kind):
		decl := w.newDecl(graphmodel.KindVariableDecl, tsNode)
		decl.ScopeID = currentScope.ID
		_ = w.fctx.Graph.AddEdge(graphmodel.EdgeAST, parent.ID, decl.ID, nil)
		if decl.Name != "" {
			w.fctx.Scopes.Declare(currentScope, decl.Name, decl.ID)
		}
		if typeName, ok := w.typeNameOf(tsNode); ok {
			decl.SetProp("typeName", typeName)
		}
		w.walkChildren(tsNode, parent, currentScope)

	default:
		w.walkChildren(tsNode, parent, currentScope)
	}
}

func (w *walker) newDecl(kind graphmodel.Kind, tsNode *tree_sitter.Node) *graphmodel.Node {
	n := w.fctx.Graph.NewNode(kind, w.nodeName(tsNode))
	n.Language = w.f.Language
	start := tsNode.StartPosition()
	end := tsNode.EndPosition()
	n.Location = graphmodel.SourceLocation{
		File:        w.file,
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
	}
	if w.fctx.CodeInNodes {
		n.Code = parser.NodeText(tsNode, w.source)
	}
	return n
}

// typeNameOf reads a field/variable declaration's declared-type field and
// returns its source text trimmed of surrounding whitespace; reported
// through the TypeResolverPass's "typeName" property (§4.A type edges).
func (w *walker) typeNameOf(tsNode *tree_sitter.Node) (string, bool) {
	field := tsNode.ChildByFieldName(w.f.Types.typeField())
	if field == nil {
		return "", false
	}
	text := strings.TrimSpace(parser.NodeText(field, w.source))
	return text, text != ""
}

// namedIdentifiers collects every identifier-like leaf under the named
// field (e.g. a class's superclass or interfaces field), feeding
// TypeHierarchyResolverPass's "baseClasses"/"interfaces" properties. A
// single-type field (Java's "superclass") and a list field (Java's
// "interfaces", wrapping several type_identifier leaves) both reduce to
// the same flat name list.
func (w *walker) namedIdentifiers(tsNode *tree_sitter.Node, field string) []string {
	node := tsNode.ChildByFieldName(field)
	if node == nil {
		return nil
	}
	return collectIdentifiers(node, w.source)
}

func collectIdentifiers(n *tree_sitter.Node, source []byte) []string {
	if n == nil {
		return nil
	}
	if n.NamedChildCount() == 0 {
		if strings.Contains(n.Kind(), "identifier") {
			return []string{lastSegment(parser.NodeText(n, source))}
		}
		return nil
	}
	var out []string
	for i := uint(0); i < n.NamedChildCount(); i++ {
		out = append(out, collectIdentifiers(n.NamedChild(i), source)...)
	}
	return out
}

// packageNameText strips the "package"/"namespace" keyword and trailing
// punctuation from a package-declaration node's source text, leaving the
// dotted package name JavaClasspathImportResolverPass's packageOf reads.
func packageNameText(n *tree_sitter.Node, source []byte) string {
	text := parser.NodeText(n, source)
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSpace(fields[len(fields)-1])
}

func (w *walker) nodeName(tsNode *tree_sitter.Node) string {
	fields := []string{w.f.Types.nameField(), "function", "method"}
	for _, field := range fields {
		if nameNode := tsNode.ChildByFieldName(field); nameNode != nil {
			return lastSegment(parser.NodeText(nameNode, w.source))
		}
	}
	return ""
}

// lastSegment trims a callee expression like "pkg.Func" or "obj.method()"
// down to its terminal identifier, so CallExpr.Name is comparable against
// a FunctionDecl/MethodDecl's simple Name.
func lastSegment(text string) string {
	text = strings.TrimSuffix(text, "()")
	if idx := strings.LastIndexAny(text, ".:"); idx >= 0 {
		return text[idx+1:]
	}
	return text
}
