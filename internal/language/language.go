// Package language implements the Language Registry (§2 component C):
// the mapping from file extension to frontend factory, plus per-language
// capability flags the Translation Configuration and Pass Scheduler read
// when seeding default passes.
//
// internal/lang's package-level init()-time registry is replaced here by
// an explicit, instance-owned Registry (§9: "translation-scoped, not
// global, state") that a Translation Manager builds once and threads
// through its TranslationConfiguration.
package language

import (
	"sort"
	"strings"
	"sync"

	"github.com/FFengIll/cpg/internal/frontend"
)

// Language is one registered programming language: its file extensions,
// its frontend factory, and the pass-configuration annotations a
// TranslationConfiguration Builder reads when seeded with default passes
// (§4.D "frontend-declared extra passes").
type Language struct {
	// Name is the stable, string key frontends/configuration refer to this
	// language by (RegisterByName/UnregisterByName) — stable across
	// releases even if the Language value's fields change.
	Name string

	DisplayName         string
	FileExtensions       []string
	NamespaceSeparator   string
	Factory              frontend.Factory

	// ExtraPasses lists pass names this language wants added to the
	// default pipeline when a Configuration Builder was seeded with
	// defaultPasses (§4.D step 1).
	ExtraPasses []string

	// ReplacePasses maps a default pass name to the name of the pass this
	// language replaces it with (§4.D step 2), e.g. Java's import resolver
	// needing classpath-aware resolution a generic resolver can't do.
	ReplacePasses map[string]string
}

// Registry owns the set of currently-registered languages and resolves a
// file extension to one of them.
//
// Extension conflicts — two languages both claiming ".h", say — are
// resolved by longest-extension-match first (a more specific suffix wins
// over a shorter one already registered for a different language), and by
// later-registered-wins when two languages claim the identical extension
// string at the same specificity.
type Registry struct {
	mu        sync.RWMutex
	byName    map[string]*Language
	byExt     map[string][]*Language // insertion order per extension; last wins on exact tie
	registered []string              // insertion order, for RegisterByName stability
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Language),
		byExt:  make(map[string][]*Language),
	}
}

// RegisterLanguage adds l, indexing it by name and by every extension it
// declares. Registering a Name that already exists replaces it in byName
// but still appends to byExt — RegisterByName/UnregisterByName is the
// supported way to swap a language's frontend out cleanly.
func (r *Registry) RegisterLanguage(l *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[l.Name] = l
	r.registered = append(r.registered, l.Name)
	for _, ext := range l.FileExtensions {
		ext = strings.ToLower(ext)
		r.byExt[ext] = append(r.byExt[ext], l)
	}
}

// UnregisterLanguage removes every registration sharing l's Name from both
// indexes (it delegates to UnregisterByName).
func (r *Registry) UnregisterLanguage(l *Language) {
	r.UnregisterByName(l.Name)
}

// RegisterByName sets l.Name to name and registers l under that string
// key (NewDefaultRegistry registers every built-in language this way).
// Registering a name again makes the new Language the ByName entry.
func (r *Registry) RegisterByName(name string, l *Language) {
	l.Name = name
	r.RegisterLanguage(l)
}

// UnregisterByName removes every registration — byName and every byExt
// slot — for the language with the given name.
func (r *Registry) UnregisterByName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byName, name)
	for ext, langs := range r.byExt {
		filtered := langs[:0]
		for _, l := range langs {
			if l.Name != name {
				filtered = append(filtered, l)
			}
		}
		if len(filtered) == 0 {
			delete(r.byExt, ext)
		} else {
			r.byExt[ext] = filtered
		}
	}
}

// ByName returns the language registered under name.
func (r *Registry) ByName(name string) (*Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byName[name]
	return l, ok
}

// ByExtension resolves the extension of path (e.g. ".go", ".test.ts") to a
// Language, applying longest-suffix-match across every extension any
// registered language declared, and last-registered-wins among languages
// tied on the same extension string.
func (r *Registry) ByExtension(path string) (*Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lower := strings.ToLower(path)

	var candidates []string
	for ext := range r.byExt {
		if strings.HasSuffix(lower, ext) {
			candidates = append(candidates, ext)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	sort.Slice(candidates, func(i, j int) bool { return len(candidates[i]) > len(candidates[j]) })
	longest := candidates[0]

	langs := r.byExt[longest]
	if len(langs) == 0 {
		return nil, false
	}
	return langs[len(langs)-1], true
}

// All returns every registered language, in registration order.
func (r *Registry) All() []*Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Language, 0, len(r.byName))
	seen := make(map[string]bool)
	for _, name := range r.registered {
		if seen[name] {
			continue
		}
		if l, ok := r.byName[name]; ok {
			out = append(out, l)
			seen[name] = true
		}
	}
	return out
}
