// Package config implements the Translation Configuration (§4.D): an
// immutable configuration object built exclusively through Builder's
// fluent API, matching §6's "Configuration file / environment: none at
// the core level" — there is no YAML/env surface here, unlike the
// teacher's internal/httplink.LinkerConfig, which does read a
// .cgrconfig file. That surface belongs one layer up, outside the core.
package config

import (
	"github.com/FFengIll/cpg/internal/language"
	"github.com/FFengIll/cpg/internal/passsched"
)

// Component is one software component: a name and its ordered member
// file list (§3 "software-components mapping (component name → ordered
// file list)"). A slice, not a map, because file order within a
// component is significant to the Frontend Runner's deterministic merge.
type Component struct {
	Name  string
	Files []string
}

// Flags holds every boolean toggle §3 names on TranslationConfiguration.
type Flags struct {
	DebugParser           bool
	FailOnError           bool
	CodeInNodes           bool
	ProcessAnnotations    bool
	UseUnityBuild         bool
	UseParallelFrontends  bool
	UseParallelPasses     bool
	MatchCommentsToNodes  bool
	AddIncludesToGraph    bool
	DisableCleanup        bool
}

// InferenceConfiguration controls the Scope & Type Manager's behavior
// when a lookup or registerType call encounters a name or type it cannot
// resolve from the parsed graph alone (§4.B "unknown types trigger
// inference when enabled").
type InferenceConfiguration struct {
	InferRecords         bool
	InferFunctions       bool
	InferVariables       bool
	GuessCastExpressions bool
}

// Configuration is the frozen result of Builder.Build(). Every field is
// read-only after construction; there is no setter on this type.
type Configuration struct {
	SymbolMacros       map[string]string
	Components         []Component
	TopLevelDirectory  string
	IncludePaths       []string
	IncludeWhitelist   []string
	IncludeBlocklist   []string
	LoadIncludes       bool

	// Languages is the Language Registry this configuration resolves
	// extensions against.
	Languages *language.Registry

	// PassConfig holds the per-pass configuration maps set through
	// Builder.PassConfig, keyed by pass name. The Translation Manager does
	// not copy them into passsched.Context.Config, so passes run with a nil
	// Config.
	PassConfig map[string]map[string]any

	// PassReplacements records, for diagnostics and tests, the effective
	// old-pass -> new-pass substitution applied per language during
	// Build() step 2.
	PassReplacements map[string]map[string]string // language name -> old pass name -> new pass name

	// DefaultSchedule is the pass schedule built from the selected pass
	// set with no per-language replacement applied — used for every
	// language that declares none.
	DefaultSchedule *passsched.Schedule

	// LanguageSchedules holds, for each language that declares at least
	// one ReplacePasses entry, the schedule built with that
	// language's replacements substituted in. Passes operate over the
	// whole merged graph (§4.G), not per file, so a language with no
	// entry here always runs DefaultSchedule.
	LanguageSchedules map[string]*passsched.Schedule

	Flags     Flags
	Inference InferenceConfiguration
}

// ScheduleFor returns the pass schedule that should run when this
// configuration is used to translate files of the given language name,
// falling back to DefaultSchedule when that language declared no pass
// replacement.
func (c *Configuration) ScheduleFor(languageName string) *passsched.Schedule {
	if s, ok := c.LanguageSchedules[languageName]; ok {
		return s
	}
	return c.DefaultSchedule
}
