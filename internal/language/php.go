package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func phpLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{
			"function_static_declaration",
			"anonymous_function",
			"function_definition",
			"arrow_function",
			"method_declaration",
		},
		ClassNodeTypes: []string{
			"trait_declaration",
			"enum_declaration",
			"interface_declaration",
			"class_declaration",
		},
		CallNodeTypes: []string{
			"member_call_expression",
			"scoped_call_expression",
			"function_call_expression",
			"nullsafe_member_call_expression",
		},
		VariableNodeTypes: []string{"expression_statement"},
	}
	return &Language{
		Name:               "php",
		DisplayName:        "PHP",
		FileExtensions:     []string{".php"},
		NamespaceSeparator: "\\",
		Factory:            frontend.NewTreeSitterFrontend("php", parser.PHP, types),
	}
}
