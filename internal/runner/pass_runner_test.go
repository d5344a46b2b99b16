package runner

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
	"github.com/FFengIll/cpg/internal/scope"
	"github.com/FFengIll/cpg/internal/typesys"
)

type recordingPass struct {
	desc passsched.Descriptor
	fn   func(ctx context.Context, pc *passsched.Context) error
	log  *[]string
	mu   *sync.Mutex
}

func (p recordingPass) Descriptor() passsched.Descriptor { return p.desc }

func (p recordingPass) Run(ctx context.Context, pc *passsched.Context) error {
	if p.fn != nil {
		if err := p.fn(ctx, pc); err != nil {
			return err
		}
	}
	p.mu.Lock()
	*p.log = append(*p.log, p.desc.Name)
	p.mu.Unlock()
	return nil
}

func newTestPassContext() *passsched.Context {
	g := graphmodel.NewGraph()
	return &passsched.Context{
		Graph:       g,
		Scopes:      scope.NewManager(g),
		Types:       typesys.NewManager(g),
		Diagnostics: passsched.NewDiagnostics(),
	}
}

func TestPassRunnerExecutesGroupsInOrder(t *testing.T) {
	var mu sync.Mutex
	var log []string

	a := recordingPass{desc: passsched.Descriptor{Name: "a"}, log: &log, mu: &mu}
	b := recordingPass{desc: passsched.Descriptor{Name: "b"}, log: &log, mu: &mu}
	schedule := &passsched.Schedule{Groups: [][]passsched.Pass{{a}, {b}}}

	if err := (PassRunner{}).Run(context.Background(), schedule, newTestPassContext(), false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Fatalf("expected serial order [a b], got %v", log)
	}
}

func TestPassRunnerRunsParallelSafeGroupConcurrently(t *testing.T) {
	var mu sync.Mutex
	var log []string

	a := recordingPass{desc: passsched.Descriptor{Name: "a", ParallelSafe: true}, log: &log, mu: &mu}
	b := recordingPass{desc: passsched.Descriptor{Name: "b", ParallelSafe: true}, log: &log, mu: &mu}
	schedule := &passsched.Schedule{Groups: [][]passsched.Pass{{a, b}}}

	if err := (PassRunner{}).Run(context.Background(), schedule, newTestPassContext(), true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("expected both passes to run, got %v", log)
	}
}

func TestPassRunnerFallsBackToSerialWhenAnyPassUnsafe(t *testing.T) {
	var mu sync.Mutex
	var log []string

	a := recordingPass{desc: passsched.Descriptor{Name: "a", ParallelSafe: true}, log: &log, mu: &mu}
	b := recordingPass{desc: passsched.Descriptor{Name: "b", ParallelSafe: false}, log: &log, mu: &mu}
	schedule := &passsched.Schedule{Groups: [][]passsched.Pass{{a, b}}}

	if err := (PassRunner{}).Run(context.Background(), schedule, newTestPassContext(), true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("expected both passes to still run serially, got %v", log)
	}
}

func TestPassRunnerStopsOnFirstError(t *testing.T) {
	var mu sync.Mutex
	var log []string

	boom := fmt.Errorf("boom")
	a := recordingPass{desc: passsched.Descriptor{Name: "a"}, log: &log, mu: &mu,
		fn: func(ctx context.Context, pc *passsched.Context) error { return boom }}
	b := recordingPass{desc: passsched.Descriptor{Name: "b"}, log: &log, mu: &mu}
	schedule := &passsched.Schedule{Groups: [][]passsched.Pass{{a}, {b}}}

	err := (PassRunner{}).Run(context.Background(), schedule, newTestPassContext(), false)
	if err != boom {
		t.Fatalf("expected the first pass's error to propagate, got %v", err)
	}
	if len(log) != 0 {
		t.Fatalf("expected the second group to never run, got %v", log)
	}
}

func TestPassRunnerHonorsCancellationBetweenGroups(t *testing.T) {
	var mu sync.Mutex
	var log []string

	ctx, cancel := context.WithCancel(context.Background())
	a := recordingPass{desc: passsched.Descriptor{Name: "a"}, log: &log, mu: &mu,
		fn: func(ctx context.Context, pc *passsched.Context) error { cancel(); return nil }}
	b := recordingPass{desc: passsched.Descriptor{Name: "b"}, log: &log, mu: &mu}
	schedule := &passsched.Schedule{Groups: [][]passsched.Pass{{a}, {b}}}

	err := (PassRunner{}).Run(ctx, schedule, newTestPassContext(), false)
	if err == nil {
		t.Fatalf("expected a cancellation error")
	}
	if len(log) != 1 {
		t.Fatalf("expected only the first group to run before cancellation, got %v", log)
	}
}
