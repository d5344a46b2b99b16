package passsched

import (
	"sort"
	"sync"

	"github.com/FFengIll/cpg/internal/cpgerr"
)

// depNode is one pass in the scheduler's dependency graph, tracking both
// its deps and its dependents — a dependency edge u -> v
// means v must run in a group no earlier than the one u finished in.
type depNode struct {
	name       string
	deps       map[string]*depNode
	dependents map[string]*depNode
}

type depGraph struct {
	mutex sync.Mutex
	nodes map[string]*depNode
}

func newDepGraph() *depGraph {
	return &depGraph{nodes: make(map[string]*depNode)}
}

func (g *depGraph) addNode(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = &depNode{name: name, deps: make(map[string]*depNode), dependents: make(map[string]*depNode)}
}

func (g *depGraph) addEdge(fromID, toID string) {
	if fromID == toID {
		return
	}
	from, to := g.nodes[fromID], g.nodes[toID]
	if from == nil || to == nil {
		return
	}
	to.deps[fromID] = from
	from.dependents[toID] = to
}

// detectCycle runs the classic permanent/temporary DFS used for acyclicity
// checks; it returns the first pass name found inside a cycle, or "" if
// the graph is acyclic.
func (g *depGraph) detectCycle() string {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var cycleAt string
	var visit func(n *depNode) bool
	visit = func(n *depNode) bool {
		if permanent[n.name] {
			return false
		}
		if temporary[n.name] {
			cycleAt = n.name
			return true
		}
		temporary[n.name] = true
		for _, dependent := range n.dependents {
			if visit(dependent) {
				return true
			}
		}
		delete(temporary, n.name)
		permanent[n.name] = true
		return false
	}

	names := g.sortedNames()
	for _, name := range names {
		if !permanent[name] {
			if visit(g.nodes[name]) {
				return cycleAt
			}
		}
	}
	return ""
}

func (g *depGraph) sortedNames() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schedule is the ordered result of Build: a sequence of groups, each a
// set of passes with no dependency between them, to be dispatched in
// order by the Pass Runner (§4.G) — and, within a group, either serially
// or concurrently depending on useParallelPasses and each pass's
// ParallelSafe flag.
type Schedule struct {
	Groups [][]Pass
}

// Build orders selected into execution groups. catalog supplies passes by
// name that selected doesn't already include but might need transitively
// injected as hard dependencies (§4.E "missing-hard-dep injection").
func Build(selected []Pass, catalog map[string]Pass) (*Schedule, error) {
	included := make(map[string]Pass, len(selected))
	for _, p := range selected {
		included[p.Descriptor().Name] = p
	}

	for _, p := range included {
		d := p.Descriptor()
		for _, dep := range d.HardDeps {
			if dep == d.Name {
				return nil, cpgerr.NewConfigurationError("passsched", "pass %q declares a hard dependency on itself", d.Name)
			}
		}
		for _, dep := range d.SoftDeps {
			if dep == d.Name {
				return nil, cpgerr.NewConfigurationError("passsched", "pass %q declares a soft dependency on itself", d.Name)
			}
		}
		for _, before := range d.ExecuteBefore {
			if before == d.Name {
				return nil, cpgerr.NewConfigurationError("passsched", "pass %q declares executeBefore itself", d.Name)
			}
		}
	}

	// Transitive fixpoint: keep pulling missing hard deps from the catalog
	// until no pass's hard-dep list names something absent from included.
	for {
		added := false
		for _, p := range snapshot(included) {
			for _, dep := range p.Descriptor().HardDeps {
				if _, ok := included[dep]; ok {
					continue
				}
				catalogPass, ok := catalog[dep]
				if !ok {
					return nil, cpgerr.NewConfigurationError("passsched",
						"pass %q declares hard dependency %q, which is neither selected nor present in the pass catalog",
						p.Descriptor().Name, dep)
				}
				included[dep] = catalogPass
				added = true
			}
		}
		if !added {
			break
		}
	}

	var first, last Pass
	for _, p := range included {
		d := p.Descriptor()
		if d.ExecuteFirst {
			if first != nil {
				return nil, cpgerr.NewConfigurationError("passsched",
					"too many first passes: both %q and %q claim executeFirst", first.Descriptor().Name, d.Name)
			}
			first = p
		}
		if d.ExecuteLast {
			if last != nil {
				return nil, cpgerr.NewConfigurationError("passsched",
					"too many last passes: both %q and %q claim executeLast", last.Descriptor().Name, d.Name)
			}
			last = p
		}
	}

	middle := make(map[string]Pass, len(included))
	for name, p := range included {
		if first != nil && name == first.Descriptor().Name {
			continue
		}
		if last != nil && name == last.Descriptor().Name {
			continue
		}
		middle[name] = p
	}

	if last != nil {
		for _, p := range middle {
			for _, dep := range p.Descriptor().HardDeps {
				if dep == last.Descriptor().Name {
					return nil, cpgerr.NewConfigurationError("passsched",
						"pass %q hard-depends on %q, which is pinned executeLast", p.Descriptor().Name, dep)
				}
			}
		}
	}

	groups, err := topoGroups(middle)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{}
	if first != nil {
		schedule.Groups = append(schedule.Groups, []Pass{first})
	}
	schedule.Groups = append(schedule.Groups, groups...)
	if last != nil {
		schedule.Groups = append(schedule.Groups, []Pass{last})
	}
	return schedule, nil
}

func topoGroups(passes map[string]Pass) ([][]Pass, error) {
	g := newDepGraph()
	for name := range passes {
		g.addNode(name)
	}
	for name, p := range passes {
		d := p.Descriptor()
		for _, dep := range d.HardDeps {
			if _, ok := passes[dep]; ok {
				g.addEdge(dep, name)
			}
		}
		for _, dep := range d.SoftDeps {
			if _, ok := passes[dep]; ok {
				g.addEdge(dep, name)
			}
		}
		for _, before := range d.ExecuteBefore {
			if _, ok := passes[before]; ok {
				g.addEdge(name, before)
			}
		}
	}

	if cycleAt := g.detectCycle(); cycleAt != "" {
		return nil, cpgerr.NewConfigurationError("passsched", "failed to satisfy ordering requirements: cycle involves pass %q", cycleAt)
	}

	indegree := make(map[string]int, len(g.nodes))
	for name, n := range g.nodes {
		indegree[name] = len(n.deps)
	}

	var groups [][]Pass
	remaining := len(g.nodes)
	for remaining > 0 {
		var ready []string
		for name, deg := range indegree {
			if deg == 0 {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			// detectCycle above should have caught this; defensive fallback.
			return nil, cpgerr.NewConfigurationError("passsched", "unable to schedule remaining passes: dependency cycle")
		}
		sort.Strings(ready)

		group := make([]Pass, 0, len(ready))
		for _, name := range ready {
			group = append(group, passes[name])
			delete(indegree, name)
			for dependentName := range g.nodes[name].dependents {
				if _, stillPending := indegree[dependentName]; stillPending {
					indegree[dependentName]--
				}
			}
		}
		groups = append(groups, group)
		remaining -= len(ready)
	}
	return groups, nil
}

func snapshot(m map[string]Pass) []Pass {
	out := make([]Pass, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}
