package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func csharpLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{
			"destructor_declaration",
			"local_function_statement",
			"constructor_declaration",
			"anonymous_method_expression",
			"lambda_expression",
			"method_declaration",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"struct_declaration",
			"enum_declaration",
			"interface_declaration",
		},
		ImportNodeTypes:   []string{"using_directive"},
		CallNodeTypes:     []string{"invocation_expression"},
		VariableNodeTypes: []string{"local_declaration_statement", "field_declaration"},
	}
	return &Language{
		Name:               "c-sharp",
		DisplayName:        "C#",
		FileExtensions:     []string{".cs"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("c-sharp", parser.CSharp, types),
	}
}
