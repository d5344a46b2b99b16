package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func cppLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"function_definition", "template_declaration", "lambda_expression"},
		ClassNodeTypes: []string{
			"class_specifier",
			"struct_specifier",
			"union_specifier",
			"enum_specifier",
		},
		FieldNodeTypes:    []string{"field_declaration"},
		ImportNodeTypes:   []string{"preproc_include"},
		CallNodeTypes:     []string{"call_expression", "new_expression", "delete_expression"},
		VariableNodeTypes: []string{"declaration"},
	}
	return &Language{
		Name:               "cpp",
		DisplayName:        "C++",
		FileExtensions:     []string{".cpp", ".h", ".hpp", ".cc", ".cxx", ".hxx", ".hh", ".ixx", ".cppm", ".ccm"},
		NamespaceSeparator: "::",
		Factory:            frontend.NewTreeSitterFrontend("cpp", parser.CPP, types),
	}
}
