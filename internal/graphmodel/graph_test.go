package graphmodel

import "testing"

func TestNewNodeAssignsMonotonicIDs(t *testing.T) {
	g := NewGraph()
	a := g.NewNode(KindFunctionDecl, "main")
	b := g.NewNode(KindFunctionDecl, "helper")
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %d and %d", a.ID, b.ID)
	}
	if a.ID == InvalidNodeID || b.ID == InvalidNodeID {
		t.Fatalf("expected non-zero ids")
	}
}

func TestAddEdgeRejectsUnknownNodes(t *testing.T) {
	g := NewGraph()
	a := g.NewNode(KindTranslationUnit, "unit")
	if err := g.AddEdge(EdgeAST, a.ID, NodeID(999), nil); err == nil {
		t.Fatalf("expected error for unknown target node")
	}
}

func TestAddEdgeEnforcesSingleASTParent(t *testing.T) {
	g := NewGraph()
	unit := g.NewNode(KindTranslationUnit, "unit")
	other := g.NewNode(KindTranslationUnit, "other")
	fn := g.NewNode(KindFunctionDecl, "f")

	if err := g.AddEdge(EdgeAST, unit.ID, fn.ID, nil); err != nil {
		t.Fatalf("first AST edge should succeed: %v", err)
	}
	if err := g.AddEdge(EdgeAST, other.ID, fn.ID, nil); err == nil {
		t.Fatalf("expected error adding a second AST parent")
	}
	// Re-adding the same parent is accepted, not an error.
	if err := g.AddEdge(EdgeAST, unit.ID, fn.ID, nil); err != nil {
		t.Fatalf("re-adding the same AST parent should not error: %v", err)
	}
}

func TestNewNodePanicsAfterFreeze(t *testing.T) {
	g := NewGraph()
	g.Freeze()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic calling NewNode after Freeze")
		}
	}()
	g.NewNode(KindFunctionDecl, "late")
}

func TestAppendInferredWorksAfterFreeze(t *testing.T) {
	g := NewGraph()
	g.Freeze()
	n := g.AppendInferred(KindRecordDecl, "InferredType")
	if n.ID == InvalidNodeID {
		t.Fatalf("expected valid id for inferred node")
	}
}

func TestNodesOrderedByID(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 5; i++ {
		g.NewNode(KindVariableDecl, "v")
	}
	nodes := g.Nodes()
	for i := 1; i < len(nodes); i++ {
		if nodes[i-1].ID >= nodes[i].ID {
			t.Fatalf("nodes not strictly increasing at %d", i)
		}
	}
}

func TestOutInFiltering(t *testing.T) {
	g := NewGraph()
	a := g.NewNode(KindCallExpr, "call")
	b := g.NewNode(KindFunctionDecl, "callee")
	if err := g.AddEdge(EdgeInvokes, a.ID, b.ID, map[string]any{"argIndex": 0}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	out := g.Out(a.ID, EdgeInvokes)
	if len(out) != 1 {
		t.Fatalf("expected 1 outgoing INVOKES edge, got %d", len(out))
	}
	in := g.In(b.ID, EdgeInvokes)
	if len(in) != 1 {
		t.Fatalf("expected 1 incoming INVOKES edge, got %d", len(in))
	}
	if g.Out(a.ID, EdgeDFG) != nil {
		t.Fatalf("expected no DFG edges")
	}
}

func TestAllowsEdge(t *testing.T) {
	if !AllowsEdge(KindFunctionDecl, EdgeEOG) {
		t.Errorf("FunctionDecl should allow EOG edges")
	}
	if AllowsEdge(KindFunctionDecl, EdgeExtends) {
		t.Errorf("FunctionDecl should not allow EXTENDS edges")
	}
	if !AllowsEdge(KindLiteralExpr, EdgeDFG) {
		t.Errorf("undeclared kinds should default to allowing any edge")
	}
}
