package passes

import (
	"context"
	"log/slog"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
	"github.com/FFengIll/cpg/internal/typesys"
)

// TypeResolverPass registers the declared type of every VariableDecl,
// FieldDecl, and ParamDecl into the shared Type Manager and links the
// declaration to its canonical Type node with EdgeUsesType — grounded on
// the teacher's internal/pipeline/usestype.go, which links declarations
// to a "Type" node by name; here the name is interned through typesys
// instead of looked up in the store.
type TypeResolverPass struct{}

func (TypeResolverPass) Descriptor() passsched.Descriptor {
	return passsched.Descriptor{Name: "typeResolver", ParallelSafe: true}
}

func (TypeResolverPass) Run(ctx context.Context, pc *passsched.Context) error {
	slog.Info("pass.typeResolver")

	for _, n := range pc.Graph.Nodes() {
		switch n.Kind {
		case graphmodel.KindVariableDecl, graphmodel.KindFieldDecl, graphmodel.KindParamDecl:
		default:
			continue
		}
		typeName, ok := n.Prop("typeName")
		name, isStr := typeName.(string)
		if !ok || !isStr || name == "" {
			continue
		}
		typeNode := pc.Types.RegisterType(typesys.Descriptor{Language: n.Language, Name: name})
		_ = pc.Graph.AddEdge(graphmodel.EdgeUsesType, n.ID, typeNode.ID, nil)
	}
	return nil
}
