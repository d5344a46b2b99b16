package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func javascriptLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
		},
		ClassNodeTypes:    []string{"class_declaration", "class"},
		ImportNodeTypes:   []string{"import_statement"},
		CallNodeTypes:     []string{"call_expression"},
		VariableNodeTypes: []string{"lexical_declaration", "variable_declaration"},
	}
	return &Language{
		Name:               "javascript",
		DisplayName:        "JavaScript",
		FileExtensions:     []string{".js", ".jsx"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("javascript", parser.JavaScript, types),
	}
}
