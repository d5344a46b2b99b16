package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/FFengIll/cpg/internal/config"
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/language"
	"github.com/FFengIll/cpg/internal/passsched"
)

type fakeFrontend struct {
	mu      sync.Mutex
	parsed  []string
	cleaned bool
	failOn  map[string]bool
}

func (f *fakeFrontend) Parse(ctx context.Context, file string, fctx *frontend.Context) (*graphmodel.Node, error) {
	f.mu.Lock()
	f.parsed = append(f.parsed, file)
	fail := f.failOn != nil && f.failOn[file]
	f.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("boom parsing %s", file)
	}
	tu := fctx.Graph.NewNode(graphmodel.KindTranslationUnit, filepath.Base(file))
	tu.Location.File = file
	return tu, nil
}

func (f *fakeFrontend) Cleanup() error {
	f.mu.Lock()
	f.cleaned = true
	f.mu.Unlock()
	return nil
}

func newTestContextAndRegistry(name, ext string, fe *fakeFrontend) (*frontend.Context, *language.Registry) {
	g := graphmodel.NewGraph()
	registry := language.NewRegistry()
	registry.RegisterByName(name, &language.Language{
		FileExtensions: []string{ext},
		Factory:        func() (frontend.Frontend, error) { return fe, nil },
	})
	return &frontend.Context{Graph: g}, registry
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile %s: %v", path, err)
	}
	return path
}

func TestFrontendRunnerParsesDiscoveredFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.fk", "a")
	writeFile(t, dir, "b.fk", "b")

	fe := &fakeFrontend{}
	fctx, registry := newTestContextAndRegistry("fake", ".fk", fe)

	cfg, err := config.NewBuilder().TopLevelDirectory(dir).Languages(registry).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	result, err := FrontendRunner{}.Run(context.Background(), cfg, fctx, passsched.NewDiagnostics())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(result.Units))
	}
	if !fe.cleaned {
		t.Fatalf("expected Cleanup to be called")
	}
}

func TestFrontendRunnerPreservesDeterministicOrderUnderParallelism(t *testing.T) {
	dir := t.TempDir()
	var names []string
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("f%02d.fk", i)
		writeFile(t, dir, name, "x")
		names = append(names, name)
	}
	sort.Strings(names)

	fe := &fakeFrontend{}
	fctx, registry := newTestContextAndRegistry("fake", ".fk", fe)

	cfg, err := config.NewBuilder().TopLevelDirectory(dir).Languages(registry).
		Flags(config.Flags{UseParallelFrontends: true}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	result, err := FrontendRunner{}.Run(context.Background(), cfg, fctx, passsched.NewDiagnostics())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Units) != len(names) {
		t.Fatalf("expected %d units, got %d", len(names), len(result.Units))
	}
	for i, tu := range result.Units {
		if tu.Name != names[i] {
			t.Fatalf("expected deterministic input order at index %d: want %q, got %q", i, names[i], tu.Name)
		}
	}
}

func TestFrontendRunnerSkipsFilesWithNoRegisteredLanguage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.fk", "a")
	writeFile(t, dir, "b.unknown", "b")

	fe := &fakeFrontend{}
	fctx, registry := newTestContextAndRegistry("fake", ".fk", fe)

	cfg, err := config.NewBuilder().TopLevelDirectory(dir).Languages(registry).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	diags := passsched.NewDiagnostics()
	result, err := FrontendRunner{}.Run(context.Background(), cfg, fctx, diags)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Units) != 1 {
		t.Fatalf("expected only the .fk file to be parsed, got %d units", len(result.Units))
	}
	if len(diags.All()) == 0 {
		t.Fatalf("expected a diagnostic recorded for the unrecognized file")
	}
}

func TestFrontendRunnerFailOnErrorAbortsOnUnrecognizedLanguage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.unknown", "a")

	fe := &fakeFrontend{}
	fctx, registry := newTestContextAndRegistry("fake", ".fk", fe)

	cfg, err := config.NewBuilder().TopLevelDirectory(dir).Languages(registry).
		Flags(config.Flags{FailOnError: true}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, err = FrontendRunner{}.Run(context.Background(), cfg, fctx, passsched.NewDiagnostics())
	if err == nil {
		t.Fatalf("expected failOnError to surface the unrecognized-language file as an error")
	}
}

func TestFrontendRunnerRecordsParseErrorsWithoutFailOnError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.fk", "x")
	bad := writeFile(t, dir, "bad.fk", "x")

	fe := &fakeFrontend{failOn: map[string]bool{bad: true}}
	fctx, registry := newTestContextAndRegistry("fake", ".fk", fe)

	cfg, err := config.NewBuilder().TopLevelDirectory(dir).Languages(registry).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	diags := passsched.NewDiagnostics()
	result, err := FrontendRunner{}.Run(context.Background(), cfg, fctx, diags)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Units) != 1 || result.Units[0].Location.File != good {
		t.Fatalf("expected only the successfully-parsed file in the result, got %v", result.Units)
	}
	if len(diags.All()) == 0 {
		t.Fatalf("expected the parse error to be recorded as a diagnostic")
	}
}

func TestFrontendRunnerMergesUnityBuildFilesInSameDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", "int a() { return 0; }\n")
	writeFile(t, dir, "b.c", "int b() { return 1; }\n")

	fe := &fakeFrontend{}
	fctx, registry := newTestContextAndRegistry("c", ".c", fe)

	cfg, err := config.NewBuilder().TopLevelDirectory(dir).Languages(registry).
		Flags(config.Flags{UseUnityBuild: true}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	result, err := FrontendRunner{}.Run(context.Background(), cfg, fctx, passsched.NewDiagnostics())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Units) != 1 {
		t.Fatalf("expected the two same-directory C files merged into one unit, got %d", len(result.Units))
	}
	fe.mu.Lock()
	parseCalls := len(fe.parsed)
	fe.mu.Unlock()
	if parseCalls != 1 {
		t.Fatalf("expected exactly one Parse call for the merged unit, got %d", parseCalls)
	}
}
