// Package passsched implements the Pass Scheduler (§4.E): it takes the
// set of passes a TranslationConfiguration selected and orders them into
// execution groups, honoring hard/soft dependencies and the
// executeFirst/executeLast/executeBefore markers, injecting missing hard
// dependencies from a catalog, and rejecting ambiguous or cyclic
// configurations as a *cpgerr.ConfigurationError rather than panicking —
// this is a build-time (Configuration.Build()) failure mode, not a
// runtime one.
package passsched

import (
	"context"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/scope"
	"github.com/FFengIll/cpg/internal/typesys"
)

// Context is the state a Pass's Run method operates over: the frozen
// graph, the Scope and Type managers that survived parsing, a Config map,
// and the diagnostics sink. The Translation Manager builds one Context
// for all passes and leaves Config nil; Configuration.PassConfig is not
// copied into it.
type Context struct {
	Graph       *graphmodel.Graph
	Scopes      *scope.Manager
	Types       *typesys.Manager
	Config      map[string]any
	Diagnostics *Diagnostics
}

// Descriptor is a pass's static scheduling metadata (§9: "pass metadata
// lives in a static descriptor struct, not discovered via reflection").
type Descriptor struct {
	Name string

	// HardDeps are pass names that must run, and run in an earlier group,
	// before this pass. A hard dependency missing from the selected set is
	// injected from the scheduler's catalog; if the catalog doesn't know
	// it either, Build() fails with a ConfigurationError.
	HardDeps []string

	// SoftDeps order this pass after the named passes only when they are
	// already present in the selected set — never injected.
	SoftDeps []string

	// ExecuteBefore lists passes that must run strictly after this one.
	ExecuteBefore []string

	// ExecuteFirst pins this pass to its own leading group. At most one
	// selected pass may set this.
	ExecuteFirst bool
	// ExecuteLast pins this pass to its own trailing group. At most one
	// selected pass may set this.
	ExecuteLast bool

	// ParallelSafe opts this pass in to running concurrently with the rest
	// of its group when the Pass Runner's useParallelPasses flag is set
	// (Open Question resolution — see DESIGN.md). Passes that mutate
	// shared, non-internally-synchronized state must leave this false.
	ParallelSafe bool
}

// Pass is one unit of graph enrichment run after parsing (§4.E).
type Pass interface {
	Descriptor() Descriptor
	Run(ctx context.Context, pc *Context) error
}
