package cmd

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// symbolResult is the outcome of one symbol in a multi-symbol fetch.
type symbolResult[T any] struct {
	Symbol string
	Value  T
	Err    error
}

// fetchAll fetches every symbol with at most limit calls in flight. A failed
// symbol does not cancel the others. Results keep the order of symbols.
func fetchAll[T any](ctx context.Context, symbols []string, limit int, fetch func(context.Context, string) (T, error)) []symbolResult[T] {
	results := make([]symbolResult[T], len(symbols))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, symbol := range symbols {
		g.Go(func() error {
			value, err := fetch(ctx, symbol)
			results[i] = symbolResult[T]{Symbol: symbol, Value: value, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// failures logs every failed symbol and returns an error when any failed.
func failures[T any](results []symbolResult[T]) error {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error().
				Err(r.Err).
				Str("symbol", r.Symbol).
				Msg("Request failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d symbols failed", failed, len(results))
	}
	return nil
}

func concurrency() int {
	if cfg == nil {
		return 1
	}
	return cfg.Concurrency
}
