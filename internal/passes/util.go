package passes

import "github.com/FFengIll/cpg/internal/graphmodel"

// translationUnitOf walks n's AST-parent chain up to its owning
// TranslationUnit, or nil if n is unparented (or is itself a
// TranslationUnit with no further parent).
func translationUnitOf(g *graphmodel.Graph, n *graphmodel.Node) *graphmodel.Node {
	cur := n
	for cur != nil {
		if cur.Kind == graphmodel.KindTranslationUnit {
			return cur
		}
		if cur.ParentID == graphmodel.InvalidNodeID {
			return nil
		}
		next, ok := g.Node(cur.ParentID)
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}
