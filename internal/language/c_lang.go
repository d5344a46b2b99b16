package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func cLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"struct_specifier", "enum_specifier", "union_specifier"},
		FieldNodeTypes:    []string{"field_declaration"},
		ImportNodeTypes:   []string{"preproc_include"},
		CallNodeTypes:     []string{"call_expression"},
		VariableNodeTypes: []string{"declaration"},
	}
	return &Language{
		Name:               "c",
		DisplayName:        "C",
		FileExtensions:     []string{".c"},
		NamespaceSeparator: "::",
		Factory:            frontend.NewTreeSitterFrontend("c", parser.C, types),
	}
}
