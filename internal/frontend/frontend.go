// Package frontend defines the language-frontend contract (§6 "Frontend
// contract") and a generic tree-sitter-backed implementation shared by
// every concrete language registered in internal/language.
package frontend

import (
	"context"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/scope"
	"github.com/FFengIll/cpg/internal/typesys"
)

// Context is the slice of translation-scoped state a frontend needs to
// parse one file: the shared graph arena and the Scope/Type managers.
// It is deliberately narrower than the full TranslationContext (which
// also carries the active TranslationConfiguration and TranslationResult)
// so this package has no dependency on the config/translate packages —
// the Translation Manager builds one Context per translation from the
// real TranslationContext, and the Frontend Runner passes it to every
// Parse call.
type Context struct {
	Graph  *graphmodel.Graph
	Scopes *scope.Manager
	Types  *typesys.Manager

	// CodeInNodes mirrors the configuration flag of the same name: when
	// set, frontends should populate Node.Code with the source snippet.
	CodeInNodes bool
}

// Frontend is a language-specific parser producing initial graph nodes
// from one source file (§6 "Frontend contract").
type Frontend interface {
	// Parse parses file and returns its TranslationUnit node, or an error
	// (wrapped as *cpgerr.ParseError by the caller) on failure.
	Parse(ctx context.Context, file string, fctx *Context) (*graphmodel.Node, error)
	// Cleanup is invoked once for every frontend instance the runner
	// created, when the Frontend Runner's Run returns — at the end of the
	// parsing phase, before any pass runs — including when Run returns an
	// error.
	Cleanup() error
}

// Factory constructs a fresh Frontend instance. The Frontend Runner
// invokes each language's factory once per Run and uses that single
// instance for all of the language's files, across every software
// component.
type Factory func() (Frontend, error)
