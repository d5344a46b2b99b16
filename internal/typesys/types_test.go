package typesys

import (
	"testing"

	"github.com/FFengIll/cpg/internal/graphmodel"
)

func TestRegisterTypeDeduplicatesByStructuralKey(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)

	a := m.RegisterType(Descriptor{Language: "go", Name: "int"})
	b := m.RegisterType(Descriptor{Language: "go", Name: "int"})
	if a.ID != b.ID {
		t.Fatalf("expected structurally equal descriptors to canonicalize to one node")
	}
	if m.Count() != 1 {
		t.Fatalf("expected one canonical type, got %d", m.Count())
	}
}

func TestRegisterTypeDistinguishesLanguage(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)

	a := m.RegisterType(Descriptor{Language: "go", Name: "int"})
	b := m.RegisterType(Descriptor{Language: "c", Name: "int"})
	if a.ID == b.ID {
		t.Fatalf("expected int from different languages to canonicalize separately")
	}
}

func TestRegisterTypeDistinguishesTypeArgsAndModifiers(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)

	base := m.RegisterType(Descriptor{Language: "go", Name: "Vector"})
	generic := m.RegisterType(Descriptor{Language: "go", Name: "Vector", TypeArgs: []string{"int"}})
	pointer := m.RegisterType(Descriptor{Language: "go", Name: "Vector", IsPointer: true})
	array := m.RegisterType(Descriptor{Language: "go", Name: "Vector", IsArray: true, ArraySize: 4})

	ids := map[graphmodel.NodeID]bool{base.ID: true, generic.ID: true, pointer.ID: true, array.ID: true}
	if len(ids) != 4 {
		t.Fatalf("expected 4 distinct canonical types, got %d", len(ids))
	}
}

func TestLookupMissWithoutRegistration(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	if _, ok := m.Lookup(Descriptor{Language: "go", Name: "int"}); ok {
		t.Fatalf("expected lookup miss before registration")
	}
}

func TestCleanupClearsInterningTable(t *testing.T) {
	g := graphmodel.NewGraph()
	m := NewManager(g)
	first := m.RegisterType(Descriptor{Language: "go", Name: "int"})
	m.Cleanup()
	second := m.RegisterType(Descriptor{Language: "go", Name: "int"})
	if first.ID == second.ID {
		t.Fatalf("expected a fresh canonical node after Cleanup dropped the interning table")
	}
	if _, ok := g.Node(first.ID); !ok {
		t.Fatalf("expected the old type node to survive in the arena")
	}
}
