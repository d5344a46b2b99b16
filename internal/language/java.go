package language

import (
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/parser"
)

func javaLanguage() *Language {
	types := frontend.NodeTypes{
		FunctionNodeTypes: []string{"method_declaration", "constructor_declaration"},
		ClassNodeTypes: []string{
			"class_declaration",
			"interface_declaration",
			"enum_declaration",
			"annotation_type_declaration",
			"record_declaration",
		},
		FieldNodeTypes:   []string{"field_declaration"},
		ImportNodeTypes:  []string{"import_declaration"},
		CallNodeTypes:    []string{"method_invocation"},
		PackageNodeTypes: []string{"package_declaration"},
	}
	return &Language{
		Name:               "java",
		DisplayName:        "Java",
		FileExtensions:     []string{".java"},
		NamespaceSeparator: ".",
		Factory:            frontend.NewTreeSitterFrontend("java", parser.Java, types),
		// Java's imports are classpath-resolved, not path-resolved — the
		// generic import resolver pass is replaced per §4.D step 2.
		ReplacePasses: map[string]string{"importResolver": "javaClasspathImportResolver"},
	}
}
