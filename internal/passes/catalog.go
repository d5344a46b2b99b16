package passes

import "github.com/FFengIll/cpg/internal/passsched"

// DefaultPasses returns the canonical default pass sequence (§4.D) in
// declaration order. Declaration order here is documentation only — the
// Pass Scheduler determines actual execution order from each pass's
// Descriptor, not from this slice's position.
func DefaultPasses() []passsched.Pass {
	return []passsched.Pass{
		TypeHierarchyResolverPass{},
		ImportResolverPass{},
		SymbolResolverPass{},
		DataFlowGraphPass{},
		DynamicInvokeResolverPass{},
		EvaluationOrderGraphPass{},
		TypeResolverPass{},
		ControlFlowSensitiveDataFlowPass{},
		FilenameMapperPass{},
	}
}

// DefaultCatalog indexes every pass this package ships, including
// per-language replacements like JavaClasspathImportResolverPass that
// never appear in DefaultPasses, by Descriptor().Name. Callers — the
// Translation Configuration builder and the Pass Scheduler's hard-
// dependency injection — look passes up here by name rather than
// importing concrete types directly.
func DefaultCatalog() map[string]passsched.Pass {
	catalog := make(map[string]passsched.Pass)
	all := append(DefaultPasses(), JavaClasspathImportResolverPass{})
	for _, p := range all {
		catalog[p.Descriptor().Name] = p
	}
	return catalog
}
