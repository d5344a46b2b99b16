// Package scope implements the Scope Manager half of §4.B: a
// translation-scoped symbol table service with stack discipline for
// entering/leaving lexical regions and ancestor-chain name resolution.
//
// The manager itself holds no global state — it is created fresh per
// Translation (per TranslationContext) and discarded at cleanup, following
// §9's "port as translation-scoped objects, passed explicitly … not as
// global state" guidance.
package scope

import (
	"fmt"
	"sync"

	"github.com/FFengIll/cpg/internal/graphmodel"
)

// Manager owns every Scope node created during one translation and the
// per-scope symbol tables. Safe for concurrent use: each lexical scope has
// its own lock, taken when declaring into that scope, and resolution takes
// shared locks up the ancestor chain (§5). Enter registers the new scope
// under a manager-level lock; Leave only pops the caller's own Stack.
type Manager struct {
	graph *graphmodel.Graph

	mu      sync.RWMutex
	entries map[graphmodel.NodeID]*entry
	root    *graphmodel.Node
}

type entry struct {
	mu      sync.RWMutex
	scope   *graphmodel.Node
	symbols map[string]graphmodel.NodeID
	clashes []string
}

// NewManager creates a Scope Manager backed by g, with a single global
// root scope already entered.
func NewManager(g *graphmodel.Graph) *Manager {
	m := &Manager{graph: g, entries: make(map[graphmodel.NodeID]*entry)}
	root := g.NewNode(graphmodel.KindScope, "<global>")
	m.entries[root.ID] = &entry{scope: root, symbols: make(map[string]graphmodel.NodeID)}
	m.root = root
	return m
}

// Root returns the global scope node.
func (m *Manager) Root() *graphmodel.Node { return m.root }

// NewStack returns a fresh ScopeStack rooted at the manager's global
// scope. Each frontend goroutine (one per file, under parallel frontends)
// uses its own stack so concurrent file parses don't corrupt each other's
// enter/leave discipline, while still declaring into the same shared
// symbol tables.
func (m *Manager) NewStack() *Stack {
	return &Stack{manager: m, chain: []graphmodel.NodeID{m.root.ID}}
}

// Stack tracks one traversal's currently-open lexical scopes. Not safe for
// concurrent use by multiple goroutines — create one Stack per goroutine
// via Manager.NewStack.
type Stack struct {
	manager *Manager
	chain   []graphmodel.NodeID
}

// Current returns the innermost open scope.
func (s *Stack) Current() *graphmodel.Node {
	top := s.chain[len(s.chain)-1]
	e, _ := s.manager.entry(top)
	return e.scope
}

// Enter creates a new child scope under the current one, owned by owner
// (the function/namespace/block declaration this scope belongs to), and
// pushes it onto the stack.
func (s *Stack) Enter(owner *graphmodel.Node) *graphmodel.Node {
	parentID := s.chain[len(s.chain)-1]
	scopeNode := s.manager.graph.NewNode(graphmodel.KindScope, owner.Name)
	scopeNode.ParentID = parentID
	if owner != nil {
		owner.ScopeID = parentID
	}

	s.manager.mu.Lock()
	s.manager.entries[scopeNode.ID] = &entry{scope: scopeNode, symbols: make(map[string]graphmodel.NodeID)}
	s.manager.mu.Unlock()

	_ = s.manager.graph.AddEdge(graphmodel.EdgeAST, parentID, scopeNode.ID, nil)
	s.chain = append(s.chain, scopeNode.ID)
	return scopeNode
}

// Leave pops the current scope. It is an InternalError (§7) to leave a
// scope that is not the top of the stack — this is invariant 3's acyclic,
// well-nested scope chain enforced at the API boundary rather than only
// checked after the fact.
func (s *Stack) Leave(scopeNode *graphmodel.Node) error {
	if len(s.chain) <= 1 {
		return fmt.Errorf("scope: cannot leave root scope")
	}
	top := s.chain[len(s.chain)-1]
	if top != scopeNode.ID {
		return fmt.Errorf("scope: leaving non-top scope %d (top is %d)", scopeNode.ID, top)
	}
	s.chain = s.chain[:len(s.chain)-1]
	return nil
}

// Declare registers name as resolving to declID within scope. Returns true
// if this redeclares an existing name in the same scope — a non-fatal
// clash that the caller should record as a diagnostic (§4.B "name clashes
// are non-fatal and recorded").
func (m *Manager) Declare(scopeNode *graphmodel.Node, name string, declID graphmodel.NodeID) bool {
	e, ok := m.entry(scopeNode.ID)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	_, clash := e.symbols[name]
	if clash {
		e.clashes = append(e.clashes, name)
	}
	e.symbols[name] = declID
	return clash
}

// Resolve returns the innermost declaration matching name visible from
// currentScope, walking the ancestor chain outward, or ok=false if none is
// found.
func (m *Manager) Resolve(name string, currentScope *graphmodel.Node) (graphmodel.NodeID, bool) {
	scopeID := currentScope.ID
	for {
		e, ok := m.entry(scopeID)
		if !ok {
			return graphmodel.InvalidNodeID, false
		}
		e.mu.RLock()
		id, found := e.symbols[name]
		parentID := e.scope.ParentID
		e.mu.RUnlock()
		if found {
			return id, true
		}
		if parentID == graphmodel.InvalidNodeID || parentID == scopeID {
			return graphmodel.InvalidNodeID, false
		}
		scopeID = parentID
	}
}

// Clashes returns the names that were redeclared within scopeNode, for
// diagnostic reporting.
func (m *Manager) Clashes(scopeNode *graphmodel.Node) []string {
	e, ok := m.entry(scopeNode.ID)
	if !ok {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.clashes))
	copy(out, e.clashes)
	return out
}

func (m *Manager) entry(id graphmodel.NodeID) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	return e, ok
}

// Cleanup drops every scope entry, releasing the symbol tables. The
// Graph's Scope nodes themselves are untouched — they persist in the
// result's node arena until the caller releases it (§5 Memory discipline).
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[graphmodel.NodeID]*entry)
}
