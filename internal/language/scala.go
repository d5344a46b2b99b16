package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func scalaLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"function_definition", "function_declaration"},
		ClassNodeTypes: []string{
			"class_definition",
			"object_definition",
			"trait_definition",
		},
		ImportNodeTypes: []string{"import_declaration"},
		CallNodeTypes: []string{
			"call_expression",
			"generic_function",
			"infix_expression",
		},
		VariableNodeTypes: []string{"val_definition", "var_definition"},
	}
	return &Language{
		Name:               "scala",
		DisplayName:        "Scala",
		FileExtensions:     []string{".scala", ".sc"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("scala", parser.Scala, types),
	}
}
