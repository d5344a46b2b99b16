package config

import (
	"sort"

	"github.com/FFengIll/cpg/internal/cpgerr"
	"github.com/FFengIll/cpg/internal/language"
	"github.com/FFengIll/cpg/internal/passsched"
)

// Builder accumulates pass selections, replacement rules, languages,
// flags, and include lists, the way the teacher's config objects are
// assembled field-by-field before use — except here the accumulation is
// exposed as a fluent chain terminating in Build(), since §4.D requires
// TranslationConfiguration to be "constructed only through a builder"
// rather than built by field assignment.
type Builder struct {
	symbolMacros     map[string]string
	components       []Component
	topLevelDir      string
	includePaths     []string
	includeWhitelist []string
	includeBlocklist []string
	loadIncludes     bool

	languages *language.Registry

	passes         []passsched.Pass
	seededDefaults bool
	catalog        map[string]passsched.Pass

	passConfig map[string]map[string]any
	flags      Flags
	inference  InferenceConfiguration
}

// NewBuilder returns an empty Builder. Callers seed it with
// DefaultPasses (or their own bespoke passes, one Pass call each), a
// Language Registry, and any flags before calling Build.
func NewBuilder() *Builder {
	return &Builder{
		symbolMacros: make(map[string]string),
		passConfig:   make(map[string]map[string]any),
	}
}

func (b *Builder) TopLevelDirectory(dir string) *Builder {
	b.topLevelDir = dir
	return b
}

func (b *Builder) SymbolMacro(key, value string) *Builder {
	b.symbolMacros[key] = value
	return b
}

func (b *Builder) Component(name string, files []string) *Builder {
	b.components = append(b.components, Component{Name: name, Files: files})
	return b
}

func (b *Builder) IncludePath(path string) *Builder {
	b.includePaths = append(b.includePaths, path)
	return b
}

func (b *Builder) IncludeWhitelist(patterns ...string) *Builder {
	b.includeWhitelist = append(b.includeWhitelist, patterns...)
	return b
}

func (b *Builder) IncludeBlocklist(patterns ...string) *Builder {
	b.includeBlocklist = append(b.includeBlocklist, patterns...)
	return b
}

func (b *Builder) LoadIncludes(load bool) *Builder {
	b.loadIncludes = load
	return b
}

// Languages sets the registry this configuration resolves extensions
// against and reads per-language ExtraPasses/ReplacePasses metadata from.
func (b *Builder) Languages(r *language.Registry) *Builder {
	b.languages = r
	return b
}

// Catalog supplies the pass lookup table used both for hard-dependency
// injection (passed through to passsched.Build) and for resolving
// language ExtraPasses/ReplacePasses by name.
func (b *Builder) Catalog(catalog map[string]passsched.Pass) *Builder {
	b.catalog = catalog
	return b
}

// Pass adds one pass to the selected set.
func (b *Builder) Pass(p passsched.Pass) *Builder {
	b.passes = append(b.passes, p)
	return b
}

// DefaultPasses seeds the selected set with passes and marks the builder
// as seeded with the canonical default pass set — the condition §4.D
// step 1 gates frontend-declared extra-pass injection on ("this prevents
// opinionated additions to bespoke pipelines").
func (b *Builder) DefaultPasses(passes []passsched.Pass) *Builder {
	b.passes = append(b.passes, passes...)
	b.seededDefaults = true
	return b
}

func (b *Builder) PassConfig(passName string, cfg map[string]any) *Builder {
	b.passConfig[passName] = cfg
	return b
}

func (b *Builder) Flags(f Flags) *Builder {
	b.flags = f
	return b
}

func (b *Builder) Inference(inf InferenceConfiguration) *Builder {
	b.inference = inf
	return b
}

// Build performs §4.D's four steps and returns an immutable
// Configuration, or a *cpgerr.ConfigurationError if the pass set cannot
// be scheduled.
func (b *Builder) Build() (*Configuration, error) {
	selected := make(map[string]passsched.Pass, len(b.passes))
	for _, p := range b.passes {
		selected[p.Descriptor().Name] = p
	}

	languages := b.languages
	if languages == nil {
		languages = language.NewRegistry()
	}

	// Step 1: frontend-declared extra passes, only when seeded with
	// DefaultPasses.
	if b.seededDefaults {
		for _, lang := range languages.All() {
			for _, extra := range lang.ExtraPasses {
				if _, ok := selected[extra]; ok {
					continue
				}
				p, ok := b.catalog[extra]
				if !ok {
					return nil, cpgerr.NewConfigurationError("config",
						"language %q declares extra pass %q, which is not present in the pass catalog", lang.Name, extra)
				}
				selected[extra] = p
			}
		}
	}

	baseList := passListOf(selected)
	defaultSchedule, err := passsched.Build(baseList, b.catalog)
	if err != nil {
		return nil, err
	}

	// Step 2: per-language replace-pass rules, rewiring dependencies
	// declared on the replaced class to target the replacement (§4.D's
	// closing note, and test scenario 6).
	languageSchedules := make(map[string]*passsched.Schedule)
	replacements := make(map[string]map[string]string)
	for _, lang := range languages.All() {
		if len(lang.ReplacePasses) == 0 {
			continue
		}
		langSelected, rename, err := applyReplacements(selected, lang.ReplacePasses, b.catalog)
		if err != nil {
			return nil, err
		}
		sched, err := passsched.Build(passListOf(langSelected), b.catalog)
		if err != nil {
			return nil, err
		}
		languageSchedules[lang.Name] = sched
		replacements[lang.Name] = rename
	}

	return &Configuration{
		SymbolMacros:      copyStringMap(b.symbolMacros),
		Components:        append([]Component(nil), b.components...),
		TopLevelDirectory: b.topLevelDir,
		IncludePaths:      append([]string(nil), b.includePaths...),
		IncludeWhitelist:  append([]string(nil), b.includeWhitelist...),
		IncludeBlocklist:  append([]string(nil), b.includeBlocklist...),
		LoadIncludes:      b.loadIncludes,
		Languages:         languages,
		PassConfig:        copyPassConfig(b.passConfig),
		PassReplacements:  replacements,
		DefaultSchedule:   defaultSchedule,
		LanguageSchedules: languageSchedules,
		Flags:             b.flags,
		Inference:         b.inference,
	}, nil
}

func passListOf(selected map[string]passsched.Pass) []passsched.Pass {
	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]passsched.Pass, 0, len(names))
	for _, name := range names {
		out = append(out, selected[name])
	}
	return out
}

// applyReplacements swaps each old-named pass in selected for its
// replacement pulled from catalog, and rewrites every remaining pass's
// HardDeps/SoftDeps/ExecuteBefore entries that named an old pass to name
// its replacement instead, so dependents resolve against the substitute
// exactly as §4.D's closing note requires.
func applyReplacements(selected map[string]passsched.Pass, rules map[string]string, catalog map[string]passsched.Pass) (map[string]passsched.Pass, map[string]string, error) {
	rename := make(map[string]string, len(rules))
	out := make(map[string]passsched.Pass, len(selected))
	for name, p := range selected {
		out[name] = p
	}

	for old, replacement := range rules {
		if _, present := out[old]; !present {
			continue // nothing selected under that name for this language to replace
		}
		newPass, ok := catalog[replacement]
		if !ok {
			return nil, nil, cpgerr.NewConfigurationError("config",
				"replacement pass %q is not present in the pass catalog", replacement)
		}
		delete(out, old)
		out[replacement] = newPass
		rename[old] = replacement
	}

	if len(rename) == 0 {
		return out, rename, nil
	}
	for name, p := range out {
		out[name] = rewireDeps(p, rename)
	}
	return out, rename, nil
}

// rewireDeps wraps p so its Descriptor's dependency name lists reflect
// rename, leaving every other field (and Run) untouched. No-op if p's
// descriptor names nothing in rename.
func rewireDeps(p passsched.Pass, rename map[string]string) passsched.Pass {
	d := p.Descriptor()
	changed := false
	d.HardDeps, changed = renameAll(d.HardDeps, rename, changed)
	d.SoftDeps, changed = renameAll(d.SoftDeps, rename, changed)
	d.ExecuteBefore, changed = renameAll(d.ExecuteBefore, rename, changed)
	if !changed {
		return p
	}
	return &rewiredPass{Pass: p, descriptor: d}
}

func renameAll(names []string, rename map[string]string, changed bool) ([]string, bool) {
	if len(names) == 0 {
		return names, changed
	}
	out := make([]string, len(names))
	for i, n := range names {
		if repl, ok := rename[n]; ok {
			out[i] = repl
			changed = true
		} else {
			out[i] = n
		}
	}
	return out, changed
}

type rewiredPass struct {
	passsched.Pass
	descriptor passsched.Descriptor
}

func (r *rewiredPass) Descriptor() passsched.Descriptor { return r.descriptor }

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyPassConfig(m map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(m))
	for k, v := range m {
		cfg := make(map[string]any, len(v))
		for ck, cv := range v {
			cfg[ck] = cv
		}
		out[k] = cfg
	}
	return out
}
