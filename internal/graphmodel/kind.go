// Package graphmodel defines the node and edge taxonomy of the code
// property graph: identity, source locations, and the closed set of node
// and edge kinds every frontend and pass operates over.
package graphmodel

// Kind is a tag from the closed node-kind taxonomy (§3 DATA MODEL).
type Kind string

const (
	KindTranslationUnit Kind = "TranslationUnit"
	KindNamespace       Kind = "NamespaceDecl"
	KindFunctionDecl    Kind = "FunctionDecl"
	KindMethodDecl      Kind = "MethodDecl"
	KindVariableDecl    Kind = "VariableDecl"
	KindParamDecl       Kind = "ParamDecl"
	KindFieldDecl       Kind = "FieldDecl"
	KindRecordDecl      Kind = "RecordDecl" // class/struct/interface/enum
	KindImportDecl      Kind = "ImportDecl"
	KindCallExpr        Kind = "CallExpr"
	KindLiteralExpr     Kind = "LiteralExpr"
	KindReferenceExpr   Kind = "ReferenceExpr"
	KindAssignExpr      Kind = "AssignExpr"
	KindBinaryExpr      Kind = "BinaryExpr"
	KindBlockStmt       Kind = "BlockStmt"
	KindIfStmt          Kind = "IfStmt"
	KindLoopStmt        Kind = "LoopStmt"
	KindReturnStmt      Kind = "ReturnStmt"
	KindThrowStmt       Kind = "ThrowStmt"
	KindType            Kind = "Type"
	KindScope           Kind = "Scope"
)

// EdgeKind is a tag from the closed edge-kind taxonomy.
type EdgeKind string

const (
	EdgeAST         EdgeKind = "AST"         // structural containment
	EdgeEOG         EdgeKind = "EOG"         // evaluation-order
	EdgeDFG         EdgeKind = "DFG"         // data-flow
	EdgeInvokes     EdgeKind = "INVOKES"     // call -> callee declaration
	EdgeUsesType    EdgeKind = "USES_TYPE"   // declaration/expression -> type
	EdgeTypeOf      EdgeKind = "TYPE_OF"     // expression -> its inferred type
	EdgeExtends     EdgeKind = "EXTENDS"     // type hierarchy
	EdgeImplements  EdgeKind = "IMPLEMENTS"  // type hierarchy
	EdgeImports     EdgeKind = "IMPORTS"     // translation unit -> imported unit/decl
	EdgeDeclares    EdgeKind = "DECLARES"    // scope -> declaration owned by it
	EdgeRefersTo    EdgeKind = "REFERS_TO"   // reference expr -> declaration
	EdgeMaps        EdgeKind = "MAPS_TO"     // filename mapper: unit -> logical path
)

// allowedOutgoing declares, per kind, which outgoing edge kinds a node of
// that kind may carry. Not enforced at construction (nodes are built
// incrementally by frontends and passes); AllowsEdge exposes it, and tests
// assert the taxonomy through it.
var allowedOutgoing = map[Kind][]EdgeKind{
	KindTranslationUnit: {EdgeAST, EdgeImports, EdgeMaps},
	KindFunctionDecl:    {EdgeAST, EdgeEOG, EdgeDFG, EdgeUsesType, EdgeDeclares},
	KindMethodDecl:      {EdgeAST, EdgeEOG, EdgeDFG, EdgeUsesType, EdgeDeclares, EdgeImplements},
	KindVariableDecl:    {EdgeAST, EdgeDFG, EdgeUsesType},
	KindFieldDecl:       {EdgeAST, EdgeUsesType},
	KindRecordDecl:      {EdgeAST, EdgeExtends, EdgeImplements, EdgeDeclares},
	KindCallExpr:        {EdgeAST, EdgeEOG, EdgeDFG, EdgeInvokes},
	KindReferenceExpr:   {EdgeAST, EdgeEOG, EdgeDFG, EdgeRefersTo, EdgeTypeOf},
	KindScope:           {EdgeDeclares},
}

// AllowsEdge reports whether a node of kind k may carry an outgoing edge of
// kind e. Kinds with no declared entry allow every edge kind (the taxonomy
// is advisory for leaf/expression kinds not listed above).
func AllowsEdge(k Kind, e EdgeKind) bool {
	allowed, declared := allowedOutgoing[k]
	if !declared {
		return true
	}
	for _, a := range allowed {
		if a == e {
			return true
		}
	}
	return false
}
