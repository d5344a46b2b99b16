// Package fqn derives a TranslationUnit's or declaration's QualifiedName
// from its file path, the way FilenameMapperPass needs for every
// TranslationUnit and the declarations hanging off it.
package fqn

import (
	"path/filepath"
	"strings"
)

// QualifiedName joins component, relPath's path segments (extension and
// package-entry-point markers stripped), and name with ".", giving the
// dotted form a TranslationUnit or declaration's QualifiedName field
// carries — e.g. component "billing", relPath "service/order.go", name
// "Submit" yields "billing.service.order.Submit".
func QualifiedName(component, relPath, name string) string {
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath))
	parts := strings.Split(filepath.ToSlash(relPath), "/")

	// Package entry points (Python's __init__, JS/TS's index) name the
	// enclosing directory, not a segment of their own.
	if len(parts) > 0 && (parts[len(parts)-1] == "__init__" || parts[len(parts)-1] == "index") {
		parts = parts[:len(parts)-1]
	}

	all := append([]string{component}, parts...)
	if name != "" {
		all = append(all, name)
	}
	return strings.Join(all, ".")
}

// UnitQualifiedName is QualifiedName with no declaration name appended —
// the QualifiedName a TranslationUnit itself carries.
func UnitQualifiedName(component, relPath string) string {
	return QualifiedName(component, relPath, "")
}

// NamespaceQualifiedName is the QualifiedName for a directory treated as a
// Namespace node, rather than a single file's TranslationUnit.
func NamespaceQualifiedName(component, relDir string) string {
	parts := strings.Split(filepath.ToSlash(relDir), "/")
	all := append([]string{component}, parts...)
	return strings.Join(all, ".")
}
