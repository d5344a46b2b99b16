// Package typesys implements the Type Manager half of §4.B: a
// translation-scoped, structurally-deduplicated type registry shared by
// every frontend and pass.
package typesys

import (
	"encoding/hex"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/FFengIll/cpg/internal/graphmodel"
)

// Descriptor is the structural shape a type is registered under. Two
// descriptors that hash to the same key are the same canonical type,
// regardless of which frontend or file produced them — this is what lets
// a Go frontend's "int" and a C frontend's "int" resolve to distinct
// canonical nodes while two occurrences of "map[string]int" from the same
// language collapse to one.
type Descriptor struct {
	Language   string
	Name       string
	TypeArgs   []string // canonicalized names of generic/template arguments
	IsPointer  bool
	IsArray    bool
	ArraySize  int // 0 when not statically known
}

// key returns the xxh3-hashed structural key for d (§4.B "de-duplicates by
// structural key"), following the teacher's content-hashing pattern in
// internal/pipeline/pipeline.go's fileHash (xxh3.New + hex.EncodeToString)
// but over the descriptor's structural fields instead of file bytes.
func (d Descriptor) key() string {
	h := xxh3.New()
	_, _ = h.WriteString(d.Language)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(d.Name)
	_, _ = h.WriteString("\x00")
	for _, arg := range d.TypeArgs {
		_, _ = h.WriteString(arg)
		_, _ = h.WriteString(",")
	}
	_, _ = h.WriteString("\x00")
	if d.IsPointer {
		_, _ = h.WriteString("*")
	}
	if d.IsArray {
		_, _ = h.WriteString("[")
		_, _ = h.WriteString(strconv.Itoa(d.ArraySize))
		_, _ = h.WriteString("]")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Manager interns Type nodes by structural key so that every reference to
// "the same" type across a translation resolves to one canonical node.
type Manager struct {
	graph *graphmodel.Graph

	mu    sync.RWMutex
	byKey map[string]graphmodel.NodeID
}

// NewManager creates an empty Type Manager backed by g.
func NewManager(g *graphmodel.Graph) *Manager {
	return &Manager{graph: g, byKey: make(map[string]graphmodel.NodeID)}
}

// RegisterType returns the canonical Type node for d, creating one on
// first sight and returning the existing one on every subsequent call with
// a structurally equal descriptor. registerType is linearizable: the
// lock is held across the check-then-create so two concurrent frontends
// registering the same descriptor never create two nodes.
func (m *Manager) RegisterType(d Descriptor) *graphmodel.Node {
	key := d.key()

	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byKey[key]; ok {
		n, _ := m.graph.Node(id)
		return n
	}

	n := m.graph.AppendInferred(graphmodel.KindType, d.Name)
	n.Language = d.Language
	n.SetProp("typeArgs", d.TypeArgs)
	n.SetProp("isPointer", d.IsPointer)
	n.SetProp("isArray", d.IsArray)
	if d.IsArray {
		n.SetProp("arraySize", d.ArraySize)
	}
	m.byKey[key] = n.ID
	return n
}

// Lookup returns the canonical Type node for d without creating one.
func (m *Manager) Lookup(d Descriptor) (*graphmodel.Node, bool) {
	m.mu.RLock()
	id, ok := m.byKey[d.key()]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return m.graph.Node(id)
}

// Count returns the number of distinct canonical types registered.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byKey)
}

// Cleanup drops the interning table. The canonical Type nodes themselves
// remain in the graph's node arena (§5 Memory discipline).
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKey = make(map[string]graphmodel.NodeID)
}
