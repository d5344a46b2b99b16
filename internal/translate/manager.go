package translate

import (
	"context"
	"errors"

	"github.com/FFengIll/cpg/internal/config"
	"github.com/FFengIll/cpg/internal/cpgerr"
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
	"github.com/FFengIll/cpg/internal/runner"
	"github.com/FFengIll/cpg/internal/scope"
	"github.com/FFengIll/cpg/internal/typesys"
)

// State is a translation's lifecycle stage (§4.H "state machine of a
// translation"). Transitions are monotonic: Failed and Cancelled are
// terminal, and a Manager's State never moves backward.
type State string

const (
	StateIdle       State = "idle"
	StateParsing    State = "parsing"
	StatePassing    State = "passing"
	StateFinalizing State = "finalizing"
	StateDone       State = "done"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

// Manager is the public entry point (§6 "TranslationManager.builder()…
// build()" / "manager.translate()"): one Manager drives exactly one
// translation and is not reused across calls.
type Manager struct {
	cfg   *config.Configuration
	state State
}

// Builder assembles a Manager the way §6 requires.
type Builder struct {
	cfg *config.Configuration
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Config sets the configuration the built Manager will translate with.
func (b *Builder) Config(cfg *config.Configuration) *Builder {
	b.cfg = cfg
	return b
}

// Build validates §4.H step 1 ("non-empty source list, at least one
// language registered") and returns a ready-to-run Manager.
func (b *Builder) Build() (*Manager, error) {
	if b.cfg == nil {
		return nil, cpgerr.NewConfigurationError("translate", "no configuration supplied to the translation manager builder")
	}
	if len(b.cfg.Components) == 0 && b.cfg.TopLevelDirectory == "" {
		return nil, cpgerr.NewConfigurationError("translate", "configuration declares no software components or top-level directory to translate")
	}
	if b.cfg.Languages == nil || len(b.cfg.Languages.All()) == 0 {
		return nil, cpgerr.NewConfigurationError("translate", "configuration has no registered language")
	}
	return &Manager{cfg: b.cfg, state: StateIdle}, nil
}

// State returns the manager's current lifecycle stage.
func (m *Manager) State() State { return m.state }

// Translate builds a Manager from cfg and runs it — the one-shot
// convenience form of Builder().Config(cfg).Build() followed by
// manager.Translate(ctx).
func Translate(ctx context.Context, cfg *config.Configuration) (*Result, error) {
	m, err := NewBuilder().Config(cfg).Build()
	if err != nil {
		return nil, err
	}
	return m.Translate(ctx)
}

// Translate runs §4.H's six steps: it creates the per-translation
// Result/ScopeManager/TypeManager/Context, drives the Frontend Runner
// then the Pass Runner, tears down interning state unless
// disableCleanup is set, and returns the accumulated Result together
// with every diagnostic recorded along the way.
//
// A Manager that has already reached Done, Failed, or Cancelled refuses
// to run again — per §4.H, "a Failed or Cancelled translation may not be
// resumed."
func (m *Manager) Translate(ctx context.Context) (*Result, error) {
	if m.state != StateIdle {
		return nil, cpgerr.NewConfigurationError("translate", "manager in state %q cannot be restarted", m.state)
	}

	cfg := m.cfg
	graph := graphmodel.NewGraph()
	scopes := scope.NewManager(graph)
	types := typesys.NewManager(graph)
	diagnostics := passsched.NewDiagnostics()

	result := &Result{Graph: graph, ScopeRoot: scopes.Root()}
	tctx := &Context{Config: cfg, Scopes: scopes, Types: types, Result: result}

	m.state = StateParsing
	fctx := &frontend.Context{Graph: graph, Scopes: tctx.Scopes, Types: tctx.Types, CodeInNodes: cfg.Flags.CodeInNodes}
	frontendResult, err := (runner.FrontendRunner{}).Run(ctx, cfg, fctx, diagnostics)
	if err != nil {
		return nil, m.fail(err)
	}
	result.Units = frontendResult.Units
	graph.Freeze()

	m.state = StatePassing
	pc := &passsched.Context{Graph: graph, Scopes: tctx.Scopes, Types: tctx.Types, Diagnostics: diagnostics}
	if err := (runner.PassRunner{}).Run(ctx, cfg.DefaultSchedule, pc, cfg.Flags.UseParallelPasses); err != nil {
		return nil, m.fail(err)
	}

	m.state = StateFinalizing
	if !cfg.Flags.DisableCleanup {
		scopes.Cleanup()
		types.Cleanup()
	}

	result.Diagnostics = diagnostics.All()
	m.state = StateDone
	return result, nil
}

func (m *Manager) fail(err error) error {
	var cancelled *cpgerr.Cancelled
	if errors.As(err, &cancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		m.state = StateCancelled
		return err
	}
	m.state = StateFailed
	return err
}
