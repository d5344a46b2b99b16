package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func goLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"function_declaration", "method_declaration"},
		ClassNodeTypes:    []string{"type_spec", "type_alias"},
		ImportNodeTypes:   []string{"import_declaration"},
		CallNodeTypes:     []string{"call_expression"},
		VariableNodeTypes: []string{"var_spec", "const_spec", "short_var_declaration"},
	}
	return &Language{
		Name:               "go",
		DisplayName:        "Go",
		FileExtensions:     []string{".go"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("go", parser.Go, types),
	}
}
