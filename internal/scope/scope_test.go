package scope

import (
	"testing"

	"github.com/FFengIll/cpg/internal/graphmodel"
)

func TestEnterLeaveStackDiscipline(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	stack := m.NewStack()

	fn := g.NewNode(graphmodel.KindFunctionDecl, "f")
	fnScope := stack.Enter(fn)
	if fnScope.ParentID != m.Root().ID {
		t.Fatalf("expected function scope's parent to be global scope")
	}

	if err := stack.Leave(fnScope); err != nil {
		t.Fatalf("Leave: %v", err)
	}
}

func TestLeaveNonTopScopeFails(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	stack := m.NewStack()

	outer := stack.Enter(g.NewNode(graphmodel.KindFunctionDecl, "outer"))
	stack.Enter(g.NewNode(graphmodel.KindBlockStmt, "inner"))

	if err := stack.Leave(outer); err == nil {
		t.Fatalf("expected error leaving a non-top scope")
	}
}

func TestResolveWalksAncestorChain(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	stack := m.NewStack()

	global := stack.Current()
	topLevelVar := g.NewNode(graphmodel.KindVariableDecl, "x")
	m.Declare(global, "x", topLevelVar.ID)

	fnScope := stack.Enter(g.NewNode(graphmodel.KindFunctionDecl, "f"))
	blockScope := stack.Enter(g.NewNode(graphmodel.KindBlockStmt, "body"))

	id, ok := m.Resolve("x", blockScope)
	if !ok || id != topLevelVar.ID {
		t.Fatalf("expected to resolve x from nested scope up to global, got id=%d ok=%v", id, ok)
	}

	id, ok = m.Resolve("nonexistent", blockScope)
	if ok {
		t.Fatalf("expected resolve miss, got id=%d", id)
	}

	_ = fnScope
}

func TestResolveInnermostShadowsOuter(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	stack := m.NewStack()

	global := stack.Current()
	outerDecl := g.NewNode(graphmodel.KindVariableDecl, "x")
	m.Declare(global, "x", outerDecl.ID)

	fnScope := stack.Enter(g.NewNode(graphmodel.KindFunctionDecl, "f"))
	innerDecl := g.NewNode(graphmodel.KindVariableDecl, "x")
	m.Declare(fnScope, "x", innerDecl.ID)

	id, ok := m.Resolve("x", fnScope)
	if !ok || id != innerDecl.ID {
		t.Fatalf("expected innermost declaration to shadow outer, got id=%d", id)
	}
}

func TestDeclareClashIsNonFatal(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	scope := m.Root()

	a := g.NewNode(graphmodel.KindVariableDecl, "x")
	b := g.NewNode(graphmodel.KindVariableDecl, "x")

	if clash := m.Declare(scope, "x", a.ID); clash {
		t.Fatalf("first declaration should not be a clash")
	}
	if clash := m.Declare(scope, "x", b.ID); !clash {
		t.Fatalf("second declaration of the same name should be reported as a clash")
	}
	if got := m.Clashes(scope); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected clashes [x], got %v", got)
	}
}

func TestCleanupDropsSymbolTables(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	decl := g.NewNode(graphmodel.KindVariableDecl, "x")
	m.Declare(m.Root(), "x", decl.ID)

	m.Cleanup()

	if _, ok := m.Resolve("x", m.Root()); ok {
		t.Fatalf("expected resolve to miss after Cleanup")
	}
	// The node arena is untouched by Cleanup.
	if _, ok := g.Node(decl.ID); !ok {
		t.Fatalf("expected node to survive Cleanup")
	}
}
