package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func rustLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"function_item", "function_signature_item", "closure_expression"},
		ClassNodeTypes: []string{
			"struct_item",
			"enum_item",
			"union_item",
			"trait_item",
			"impl_item",
			"type_item",
		},
		ImportNodeTypes:   []string{"use_declaration", "extern_crate_declaration"},
		CallNodeTypes:     []string{"call_expression", "macro_invocation"},
		VariableNodeTypes: []string{"let_declaration"},
	}
	return &Language{
		Name:               "rust",
		DisplayName:        "Rust",
		FileExtensions:     []string{".rs"},
		NamespaceSeparator: "::",
		Factory:            frontend.NewTreeSitterFrontend("rust", parser.Rust, types),
	}
}
