package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func luaLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"function_declaration", "function_definition"},
		CallNodeTypes:     []string{"function_call"},
		VariableNodeTypes: []string{"assignment_statement", "local_variable_declaration"},
	}
	return &Language{
		Name:               "lua",
		DisplayName:        "Lua",
		FileExtensions:     []string{".lua"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("lua", parser.Lua, types),
	}
}
