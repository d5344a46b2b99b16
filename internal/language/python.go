package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func pythonLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"class_definition"},
		ImportNodeTypes:   []string{"import_statement", "import_from_statement"},
		CallNodeTypes:     []string{"call"},
		VariableNodeTypes: []string{"assignment", "augmented_assignment"},
		// tree-sitter-python names the base-class field "superclasses",
		// not the generic default "superclass".
		SuperclassField: "superclasses",
	}
	return &Language{
		Name:               "python",
		DisplayName:        "Python",
		FileExtensions:     []string{".py"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("python", parser.Python, types),
	}
}
