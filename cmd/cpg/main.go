// Command cpg is a minimal driver over the programmatic API: point it at
// a directory and it runs one translation with the default pass
// pipeline, reporting the resulting unit count and any diagnostics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/FFengIll/cpg/internal/config"
	"github.com/FFengIll/cpg/internal/language"
	"github.com/FFengIll/cpg/internal/passes"
	"github.com/FFengIll/cpg/internal/translate"
)

func main() {
	dir := flag.String("dir", ".", "top-level directory to translate")
	failOnError := flag.Bool("fail-on-error", false, "abort the translation on the first parse error")
	parallelFrontends := flag.Bool("parallel-frontends", true, "parse files across a worker pool")
	parallelPasses := flag.Bool("parallel-passes", false, "run parallel-safe passes within a group concurrently")
	codeInNodes := flag.Bool("code-in-nodes", false, "populate Node.Code with source snippets")
	flag.Parse()

	langs := language.NewDefaultRegistry()
	cfg, err := config.NewBuilder().
		TopLevelDirectory(*dir).
		Languages(langs).
		DefaultPasses(passes.DefaultPasses()).
		Catalog(passes.DefaultCatalog()).
		Flags(config.Flags{
			FailOnError:          *failOnError,
			UseParallelFrontends: *parallelFrontends,
			UseParallelPasses:    *parallelPasses,
			CodeInNodes:          *codeInNodes,
		}).
		Build()
	if err != nil {
		slog.Error("build configuration", "err", err)
		os.Exit(1)
	}

	result, err := translate.Translate(context.Background(), cfg)
	if err != nil {
		slog.Error("translate", "err", err)
		os.Exit(1)
	}

	fmt.Printf("translated %d units, %d nodes, %d diagnostics\n",
		len(result.Units), len(result.Graph.Nodes()), len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		fmt.Printf("  [%s] %s: %s (%s)\n", d.Severity, d.Pass, d.Message, d.Subject)
	}
}
