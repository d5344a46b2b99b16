package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func kotlinLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{
			"function_declaration",
			"secondary_constructor",
			"anonymous_function",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"object_declaration",
			"companion_object",
		},
		ImportNodeTypes:   []string{"import"},
		CallNodeTypes:     []string{"call_expression", "navigation_expression"},
		VariableNodeTypes: []string{"property_declaration"},
	}
	return &Language{
		Name:               "kotlin",
		DisplayName:        "Kotlin",
		FileExtensions:     []string{".kt", ".kts"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("kotlin", parser.Kotlin, types),
	}
}
