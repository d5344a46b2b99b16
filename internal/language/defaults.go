package language

// Defaults returns the 14 built-in languages this module ships a
// tree-sitter-backed frontend for.
func Defaults() []*Language {
	return []*Language{
		goLanguage(),
		pythonLanguage(),
		javascriptLanguage(),
		typescriptLanguage(),
		tsxLanguage(),
		javaLanguage(),
		cLanguage(),
		cppLanguage(),
		rustLanguage(),
		csharpLanguage(),
		phpLanguage(),
		luaLanguage(),
		scalaLanguage(),
		kotlinLanguage(),
	}
}

// NewDefaultRegistry returns a Registry pre-populated with Defaults, in
// the order above — the order RegisterLanguage calls run in, which
// matters only for last-registered-wins extension conflicts (none exist
// among the defaults today).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, l := range Defaults() {
		r.RegisterByName(l.Name, l)
	}
	return r
}
