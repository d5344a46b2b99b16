package passsched

import (
	"context"
	"errors"
	"testing"

	"github.com/FFengIll/cpg/internal/cpgerr"
)

type fakePass struct {
	desc Descriptor
}

func (f fakePass) Descriptor() Descriptor                      { return f.desc }
func (f fakePass) Run(ctx context.Context, pc *Context) error { return nil }

func namesOf(group []Pass) []string {
	out := make([]string, len(group))
	for i, p := range group {
		out[i] = p.Descriptor().Name
	}
	return out
}

func TestBuildMinimalSchedule(t *testing.T) {
	a := fakePass{Descriptor{Name: "a"}}
	b := fakePass{Descriptor{Name: "b", HardDeps: []string{"a"}}}

	sched, err := Build([]Pass{a, b}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(sched.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(sched.Groups), sched.Groups)
	}
	if got := namesOf(sched.Groups[0]); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected group 0 = [a], got %v", got)
	}
	if got := namesOf(sched.Groups[1]); len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected group 1 = [b], got %v", got)
	}
}

func TestBuildInjectsMissingHardDependency(t *testing.T) {
	b := fakePass{Descriptor{Name: "b", HardDeps: []string{"a"}}}
	a := fakePass{Descriptor{Name: "a"}}
	catalog := map[string]Pass{"a": a}

	sched, err := Build([]Pass{b}, catalog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(sched.Groups) != 2 {
		t.Fatalf("expected injected dependency to produce 2 groups, got %d", len(sched.Groups))
	}
	if got := namesOf(sched.Groups[0]); got[0] != "a" {
		t.Fatalf("expected injected pass 'a' scheduled first, got %v", got)
	}
}

func TestBuildMissingHardDependencyWithoutCatalogFails(t *testing.T) {
	b := fakePass{Descriptor{Name: "b", HardDeps: []string{"a"}}}
	_, err := Build([]Pass{b}, nil)
	if err == nil {
		t.Fatalf("expected a ConfigurationError for an unresolvable hard dependency")
	}
	var cfgErr *cpgerr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *cpgerr.ConfigurationError, got %T", err)
	}
}

func TestBuildDetectsCycle(t *testing.T) {
	a := fakePass{Descriptor{Name: "a", HardDeps: []string{"b"}}}
	b := fakePass{Descriptor{Name: "b", HardDeps: []string{"a"}}}

	_, err := Build([]Pass{a, b}, nil)
	if err == nil {
		t.Fatalf("expected a cycle error")
	}
	var cfgErr *cpgerr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *cpgerr.ConfigurationError, got %T", err)
	}
}

func TestBuildRejectsSelfHardDependency(t *testing.T) {
	a := fakePass{Descriptor{Name: "a", HardDeps: []string{"a"}}}

	_, err := Build([]Pass{a}, nil)
	if err == nil {
		t.Fatalf("expected a ConfigurationError for a self hard dependency")
	}
	var cfgErr *cpgerr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *cpgerr.ConfigurationError, got %T", err)
	}
}

func TestBuildRejectsTwoExecuteFirstPasses(t *testing.T) {
	a := fakePass{Descriptor{Name: "a", ExecuteFirst: true}}
	b := fakePass{Descriptor{Name: "b", ExecuteFirst: true}}

	_, err := Build([]Pass{a, b}, nil)
	if err == nil {
		t.Fatalf("expected ambiguous executeFirst error")
	}
}

func TestBuildRejectsHardDepOnExecuteLastPass(t *testing.T) {
	last := fakePass{Descriptor{Name: "last", ExecuteLast: true}}
	dependent := fakePass{Descriptor{Name: "dependent", HardDeps: []string{"last"}}}

	_, err := Build([]Pass{last, dependent}, nil)
	if err == nil {
		t.Fatalf("expected an error: dependent cannot run before the executeLast pass")
	}
}

func TestBuildGroupsIndependentPassesTogether(t *testing.T) {
	a := fakePass{Descriptor{Name: "a"}}
	b := fakePass{Descriptor{Name: "b"}}
	c := fakePass{Descriptor{Name: "c", HardDeps: []string{"a", "b"}}}

	sched, err := Build([]Pass{a, b, c}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(sched.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(sched.Groups))
	}
	first := namesOf(sched.Groups[0])
	if len(first) != 2 {
		t.Fatalf("expected a and b in the same parallel group, got %v", first)
	}
}

func TestBuildHonorsExecuteFirstAndExecuteLast(t *testing.T) {
	first := fakePass{Descriptor{Name: "first", ExecuteFirst: true}}
	mid := fakePass{Descriptor{Name: "mid"}}
	last := fakePass{Descriptor{Name: "last", ExecuteLast: true}}

	sched, err := Build([]Pass{first, mid, last}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(sched.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(sched.Groups))
	}
	if namesOf(sched.Groups[0])[0] != "first" {
		t.Fatalf("expected first group to be the executeFirst pass")
	}
	if namesOf(sched.Groups[2])[0] != "last" {
		t.Fatalf("expected last group to be the executeLast pass")
	}
}
