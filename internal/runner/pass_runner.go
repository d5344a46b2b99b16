package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/FFengIll/cpg/internal/cpgerr"
	"github.com/FFengIll/cpg/internal/passsched"
)

// PassRunner executes a Schedule's groups in order, dispatching each
// group's passes concurrently when parallel execution is both requested
// and safe for every pass in that group (§4.G, Open Question (b)).
type PassRunner struct{}

// Run walks schedule.Groups in order, checking ctx between groups for
// cooperative cancellation. Within a group, passes run concurrently via
// errgroup.Group, mirroring the teacher's internal/pipeline dispatch
// idiom, only when useParallelPasses is set and every pass in the group
// opted in via Descriptor().ParallelSafe; otherwise the group runs
// serially, checking ctx before each pass.
func (PassRunner) Run(ctx context.Context, schedule *passsched.Schedule, pc *passsched.Context, useParallelPasses bool) error {
	for _, group := range schedule.Groups {
		if err := ctx.Err(); err != nil {
			return &cpgerr.Cancelled{Phase: "passing"}
		}

		if useParallelPasses && allParallelSafe(group) {
			g := new(errgroup.Group)
			for _, p := range group {
				p := p
				g.Go(func() error { return p.Run(ctx, pc) })
			}
			if err := g.Wait(); err != nil {
				return err
			}
			continue
		}

		for _, p := range group {
			if err := ctx.Err(); err != nil {
				return &cpgerr.Cancelled{Phase: "passing"}
			}
			if err := p.Run(ctx, pc); err != nil {
				return err
			}
		}
	}
	return nil
}

func allParallelSafe(group []passsched.Pass) bool {
	for _, p := range group {
		if !p.Descriptor().ParallelSafe {
			return false
		}
	}
	return true
}
