package graphmodel

import "fmt"

// NodeID is a stable identity, unique within one translation's Graph.
type NodeID int64

// InvalidNodeID is the zero value; no real node ever carries it.
const InvalidNodeID NodeID = 0

// SourceLocation pins a node to the source text it was parsed from.
type SourceLocation struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.File, l.StartLine, l.StartColumn, l.EndLine, l.EndColumn)
}

// Node is one element of the code property graph. Edges are not embedded
// in Node — they live in the owning Graph's adjacency lists, keyed by
// identity, so that cyclic AST/DFG/EOG structures never require ownership
// cycles.
type Node struct {
	ID            NodeID
	Kind          Kind
	Name          string
	QualifiedName string
	Language      string
	Location      SourceLocation
	// Code holds the source snippet for this node when the owning
	// configuration has codeInNodes enabled; empty otherwise.
	Code string
	// ScopeID is the identity of the Scope node lexically enclosing this
	// node. The tree-sitter frontend sets it on CallExpr and VariableDecl
	// nodes, and scope.Stack.Enter sets it on every declaration that opens
	// a scope; it is zero elsewhere.
	ScopeID NodeID
	// ParentID is this node's single AST parent; InvalidNodeID for roots
	// (TranslationUnit nodes and the scope-tree root).
	ParentID NodeID
	// Properties carries kind-specific payload (branch conditions,
	// argument indices, inferred flags, …) the way a tagged-variant
	// payload would in a closed sum type.
	Properties map[string]any
}

// Prop returns a property value and whether it was set.
func (n *Node) Prop(key string) (any, bool) {
	if n.Properties == nil {
		return nil, false
	}
	v, ok := n.Properties[key]
	return v, ok
}

// SetProp sets a property, allocating the map on first use.
func (n *Node) SetProp(key string, value any) {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
}
