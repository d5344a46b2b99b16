package frontend

// NodeTypes maps the tree-sitter grammar's own node kinds onto the closed
// graph taxonomy (§3). Each concrete language in internal/language builds
// one of these from its grammar's documented node kinds — the table
// itself is the direct descendant of the teacher's per-language
// LanguageSpec (internal/lang/*.go), trimmed to the fields the generic
// tree-sitter frontend actually walks.
type NodeTypes struct {
	FunctionNodeTypes []string
	ClassNodeTypes    []string
	FieldNodeTypes    []string
	ImportNodeTypes   []string
	CallNodeTypes     []string
	VariableNodeTypes []string

	// PackageNodeTypes are the grammar's package/namespace-declaration
	// node kinds, scanned for at the top of a translation unit so the
	// frontend can populate the unit's "package" property (consumed by
	// JavaClasspathImportResolverPass's packageOf lookup).
	PackageNodeTypes []string

	// NameField is the tree-sitter field name carrying a declaration's
	// identifier (almost always "name"; a handful of grammars differ).
	NameField string
	// TypeField is the field name carrying a field/variable declaration's
	// declared type (almost always "type").
	TypeField string
	// SuperclassField is the field name carrying a class's base type
	// (almost always "superclass"; Python's grammar calls it
	// "superclasses").
	SuperclassField string
	// InterfacesField is the field name carrying a class's implemented
	// interface list (almost always "interfaces").
	InterfacesField string
}

func (n NodeTypes) has(set []string, kind string) bool {
	for _, s := range set {
		if s == kind {
			return true
		}
	}
	return false
}

func (n NodeTypes) IsFunction(kind string) bool { return n.has(n.FunctionNodeTypes, kind) }
func (n NodeTypes) IsClass(kind string) bool    { return n.has(n.ClassNodeTypes, kind) }
func (n NodeTypes) IsField(kind string) bool    { return n.has(n.FieldNodeTypes, kind) }
func (n NodeTypes) IsImport(kind string) bool   { return n.has(n.ImportNodeTypes, kind) }
func (n NodeTypes) IsCall(kind string) bool     { return n.has(n.CallNodeTypes, kind) }
func (n NodeTypes) IsVariable(kind string) bool { return n.has(n.VariableNodeTypes, kind) }
func (n NodeTypes) IsPackage(kind string) bool  { return n.has(n.PackageNodeTypes, kind) }

func (n NodeTypes) nameField() string {
	if n.NameField == "" {
		return "name"
	}
	return n.NameField
}

func (n NodeTypes) typeField() string {
	if n.TypeField == "" {
		return "type"
	}
	return n.TypeField
}

func (n NodeTypes) superclassField() string {
	if n.SuperclassField == "" {
		return "superclass"
	}
	return n.SuperclassField
}

func (n NodeTypes) interfacesField() string {
	if n.InterfacesField == "" {
		return "interfaces"
	}
	return n.InterfacesField
}
