// Package runner implements the Frontend Runner (§4.F) and Pass Runner
// (§4.G): the two phases the Translation Manager drives in sequence.
// Both use errgroup rather than any bespoke worker-pool type; file
// dispatch follows the teacher's internal/pipeline idiom in full
// (SetLimit(runtime.NumCPU()), results written into a pre-sized indexed
// slice so completion order never leaks into output order).
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/FFengIll/cpg/internal/config"
	"github.com/FFengIll/cpg/internal/cpgerr"
	"github.com/FFengIll/cpg/internal/discover"
	"github.com/FFengIll/cpg/internal/frontend"
	"github.com/FFengIll/cpg/internal/graphmodel"
	"github.com/FFengIll/cpg/internal/passsched"
)

// FrontendRunner drives each registered language's frontend over the
// files its configuration's components resolve to, merging every
// resulting TranslationUnit into one deterministically-ordered list.
type FrontendRunner struct{}

// Result is the Frontend Runner's output: the TranslationUnit nodes it
// produced, ordered by input file position rather than completion order
// (§5 "the merge into TranslationResult appends translation units in a
// deterministic order derived from the input file list").
type Result struct {
	Units []*graphmodel.Node
}

type fileTask struct {
	seq         int
	path        string
	relPath     string
	language    string
	cleanupTemp bool
	unitName    string // overrides the TU's Location.File/Name when set (unity-merged files)
}

// Run executes §4.F's five steps against cfg, appending every parsed
// node into fctx.Graph (frontends write directly into the shared graph;
// there is no separate subgraph object to splice in).
func (FrontendRunner) Run(ctx context.Context, cfg *config.Configuration, fctx *frontend.Context, diagnostics *passsched.Diagnostics) (*Result, error) {
	tasks, err := expandComponents(ctx, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &cpgerr.Cancelled{Phase: "discovery"}
		}
		return nil, err
	}
	tasks = filterIncludePatterns(tasks, cfg.IncludeWhitelist, cfg.IncludeBlocklist)

	tasks, err = resolveLanguages(tasks, cfg, diagnostics)
	if err != nil {
		return nil, err
	}

	if cfg.Flags.UseUnityBuild {
		var mergeErr error
		tasks, mergeErr = mergeUnityBuild(tasks)
		if mergeErr != nil {
			return nil, mergeErr
		}
	}

	grouped := make(map[string][]int) // language name -> task indices
	for i, t := range tasks {
		grouped[t.language] = append(grouped[t.language], i)
	}

	frontends := make(map[string]frontend.Frontend, len(grouped))
	defer func() {
		for _, fe := range frontends {
			_ = fe.Cleanup()
		}
	}()
	for langName := range grouped {
		lang, ok := cfg.Languages.ByName(langName)
		if !ok {
			return nil, cpgerr.NewConfigurationError("runner", "no language registered under %q", langName)
		}
		fe, err := lang.Factory()
		if err != nil {
			return nil, fmt.Errorf("instantiate frontend for %q: %w", langName, err)
		}
		frontends[langName] = fe
	}

	results := make([]*graphmodel.Node, len(tasks))
	parseErrs := make([]error, len(tasks))

	parseOne := func(i int) error {
		if err := ctx.Err(); err != nil {
			return &cpgerr.Cancelled{Phase: "parsing"}
		}
		task := tasks[i]
		tu, err := frontends[task.language].Parse(ctx, task.path, fctx)
		if err != nil {
			parseErrs[i] = err
			return nil
		}
		finalizeUnit(tu, task)
		results[i] = tu
		return nil
	}

	if cfg.Flags.UseParallelFrontends {
		g := new(errgroup.Group)
		g.SetLimit(runtime.NumCPU())
		for i := range tasks {
			i := i
			g.Go(func() error { return parseOne(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range tasks {
			if err := parseOne(i); err != nil {
				return nil, err
			}
		}
	}

	for i, perr := range parseErrs {
		if perr == nil {
			continue
		}
		pe := &cpgerr.ParseError{File: tasks[i].path, Err: perr}
		if cfg.Flags.FailOnError {
			return nil, pe
		}
		if diagnostics != nil {
			diagnostics.Record(passsched.Diagnostic{
				Severity: passsched.SeverityWarning,
				Pass:     "frontendRunner",
				Subject:  tasks[i].relPath,
				Message:  pe.Error(),
			})
		}
	}

	units := make([]*graphmodel.Node, 0, len(results))
	for _, tu := range results {
		if tu != nil {
			units = append(units, tu)
		}
	}
	return &Result{Units: units}, nil
}

// expandComponents walks every configured component's entries (files and
// directories alike — directories are expanded via internal/discover),
// in component insertion order, assigning each resulting file a stable
// sequence number.
func expandComponents(ctx context.Context, cfg *config.Configuration) ([]fileTask, error) {
	components := cfg.Components
	if len(components) == 0 && cfg.TopLevelDirectory != "" {
		components = []config.Component{{Name: "default", Files: []string{cfg.TopLevelDirectory}}}
	}

	var tasks []fileTask
	seq := 0
	for _, comp := range components {
		for _, entry := range comp.Files {
			info, err := os.Stat(entry)
			if err != nil {
				continue // nonexistent entries are skipped, not fatal
			}
			if !info.IsDir() {
				tasks = append(tasks, fileTask{seq: seq, path: entry, relPath: entry})
				seq++
				continue
			}
			found, err := discover.Discover(ctx, entry, nil)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				tasks = append(tasks, fileTask{seq: seq, path: f.Path, relPath: f.RelPath})
				seq++
			}
		}
	}
	return tasks, nil
}

func filterIncludePatterns(tasks []fileTask, whitelist, blocklist []string) []fileTask {
	if len(whitelist) == 0 && len(blocklist) == 0 {
		return tasks
	}
	out := make([]fileTask, 0, len(tasks))
	for _, t := range tasks {
		if len(whitelist) > 0 && !matchesAnyPattern(t.relPath, whitelist) {
			continue
		}
		if matchesAnyPattern(t.relPath, blocklist) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, p := range patterns {
		if matched, _ := filepath.Match(p, base); matched {
			return true
		}
		if matched, _ := filepath.Match(p, relPath); matched {
			return true
		}
	}
	return false
}

// resolveLanguages partitions files by their matched Language (§3
// invariant 5: "each input file maps to exactly one language or is
// rejected"), recording a diagnostic and dropping the file when no
// language claims its extension, unless failOnError is set.
func resolveLanguages(tasks []fileTask, cfg *config.Configuration, diagnostics *passsched.Diagnostics) ([]fileTask, error) {
	out := make([]fileTask, 0, len(tasks))
	for _, t := range tasks {
		lang, ok := cfg.Languages.ByExtension(t.path)
		if !ok {
			if cfg.Flags.FailOnError {
				return nil, cpgerr.NewConfigurationError("runner", "no language registered for file %q", t.path)
			}
			if diagnostics != nil {
				diagnostics.Record(passsched.Diagnostic{
					Severity: passsched.SeverityInfo,
					Pass:     "frontendRunner",
					Subject:  t.relPath,
					Message:  "no registered language matched this file's extension; skipped",
				})
			}
			continue
		}
		t.language = lang.Name
		out = append(out, t)
	}
	return out, nil
}

// mergeUnityBuild concatenates C/C++ files sharing a directory into one
// temporary translation unit per directory (§4.F "apply unity-build
// merging for C/C++ when enabled (concatenate logical translation units
// sharing headers)"), preserving each group's lowest sequence number so
// the merged unit sorts where its first constituent file would have.
func mergeUnityBuild(tasks []fileTask) ([]fileTask, error) {
	groups := make(map[string][]fileTask)
	var order []fileTask
	for _, t := range tasks {
		if !isUnityLanguage(t.language) {
			order = append(order, t)
			continue
		}
		key := t.language + ":" + filepath.Dir(t.relPath)
		groups[key] = append(groups[key], t)
	}

	for key, group := range groups {
		if len(group) == 1 {
			order = append(order, group[0])
			continue
		}
		merged, err := writeUnityFile(group)
		if err != nil {
			return nil, err
		}
		order = append(order, merged)
		_ = key
	}

	sort.Slice(order, func(i, j int) bool { return order[i].seq < order[j].seq })
	return order, nil
}

func isUnityLanguage(name string) bool {
	return name == "c" || name == "cpp"
}

func writeUnityFile(group []fileTask) (fileTask, error) {
	sort.Slice(group, func(i, j int) bool { return group[i].seq < group[j].seq })

	var b strings.Builder
	var relPaths []string
	for _, t := range group {
		content, err := os.ReadFile(t.path)
		if err != nil {
			return fileTask{}, fmt.Errorf("unity build: read %s: %w", t.path, err)
		}
		fmt.Fprintf(&b, "// amalgamated: %s\n", t.relPath)
		b.Write(content)
		b.WriteByte('\n')
		relPaths = append(relPaths, t.relPath)
	}

	tmp, err := os.CreateTemp("", "cpg-unity-*"+filepath.Ext(group[0].path))
	if err != nil {
		return fileTask{}, fmt.Errorf("unity build: create temp file: %w", err)
	}
	defer tmp.Close()
	if _, err := tmp.WriteString(b.String()); err != nil {
		return fileTask{}, fmt.Errorf("unity build: write temp file: %w", err)
	}

	unitName := filepath.Dir(group[0].relPath) + "/" + strings.Join(relPaths, "+")
	return fileTask{
		seq:         group[0].seq,
		path:        tmp.Name(),
		relPath:     unitName,
		language:    group[0].language,
		cleanupTemp: true,
		unitName:    unitName,
	}, nil
}

func finalizeUnit(tu *graphmodel.Node, task fileTask) {
	if task.cleanupTemp {
		defer os.Remove(task.path)
	}
	if task.unitName != "" {
		tu.Name = task.unitName
		tu.Location.File = task.unitName
	}
}
