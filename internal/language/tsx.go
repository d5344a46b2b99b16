package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func tsxLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
			"function_signature",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"class",
			"abstract_class_declaration",
			"enum_declaration",
			"interface_declaration",
			"type_alias_declaration",
			"internal_module",
		},
		ImportNodeTypes:   []string{"import_statement"},
		CallNodeTypes:     []string{"call_expression"},
		VariableNodeTypes: []string{"lexical_declaration", "variable_declaration"},
	}
	return &Language{
		Name:               "tsx",
		DisplayName:        "TSX",
		FileExtensions:     []string{".tsx"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("tsx", parser.TSX, types),
	}
}
