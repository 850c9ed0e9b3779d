package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/twelvedata/twelvedata"
)

// sequentialThreshold is the bar count below which Apply does not fan out.
const sequentialThreshold = 512

// Apply returns the bars that match f, preserving their order. Large inputs
// are evaluated in parallel chunks.
func Apply(ctx context.Context, f Filter, bars []twelvedata.Bar) ([]twelvedata.Bar, error) {
	if len(bars) < sequentialThreshold {
		return applySequential(f, bars), nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(bars) + workers - 1) / workers
	keep := make([]bool, len(bars))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(bars); start += chunk {
		end := min(start+chunk, len(bars))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				keep[i] = f.Evaluate(bars[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]twelvedata.Bar, 0, len(bars))
	for i, ok := range keep {
		if ok {
			out = append(out, bars[i])
		}
	}
	return out, nil
}

func applySequential(f Filter, bars []twelvedata.Bar) []twelvedata.Bar {
	out := make([]twelvedata.Bar, 0, len(bars))
	for _, bar := range bars {
		if f.Evaluate(bar) {
			out = append(out, bar)
		}
	}
	return out
}

// CompileFilter compiles expression with a fresh uncached compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}
