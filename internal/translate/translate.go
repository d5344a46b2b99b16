// Package translate implements the Translation Manager (§4.H): the
// public entry point that wires the Frontend Runner and Pass Runner
// together into one `translate()` call, owning the per-translation
// Result, ScopeManager, and TypeManager the rest of the core operates
// over.
package translate

import (
	"github.com/FFengIll/cpg/internal/config"
	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
	"github.com/FFengIll/cpg/internal/scope"
	"github.com/FFengIll/cpg/internal/typesys"
)

// Result is the top-level graph handle returned by a translation: the
// owning graph, the translation-unit nodes parsed into it, the scope
// tree root, and every diagnostic accumulated along the way (§3
// "TranslationResult").
type Result struct {
	Graph       *graphmodel.Graph
	Units       []*graphmodel.Node
	ScopeRoot   *graphmodel.Node
	Diagnostics []passsched.Diagnostic
}

// Context is the per-translation bag the Translation Manager builds the
// frontend and pass contexts from: the active configuration, the
// Scope/Type managers, and the in-progress Result (§3
// "TranslationContext"). Its lifetime equals one Translate call.
type Context struct {
	Config *config.Configuration
	Scopes *scope.Manager
	Types  *typesys.Manager
	Result *Result
}
