// Package portfolio values independent CDS trades in parallel. Each valuation
// is pure and shares its curves read-only, so the batch is a straightforward
// bounded fan-out over trades.
package portfolio

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/meenmo/credlib/cds"
)

// Result is the valuation outcome for one trade in the batch.
type Result struct {
	TradeID string
	Legs    cds.LegPV
}

// ValueAll prices every trade and returns results in input order.
//
// concurrency bounds the number of simultaneous valuations; values <= 0 leave
// the fan-out unbounded. The first failing trade cancels the batch and its
// error is returned wrapped with the trade ID.
func ValueAll(ctx context.Context, trades []*cds.Trade, concurrency int) ([]Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	results := make([]Result, len(trades))
	for i, trade := range trades {
		if trade == nil {
			return nil, fmt.Errorf("portfolio.ValueAll: %w: trade %d is nil", cds.ErrMissingInput, i)
		}
		i, trade := i, trade
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			legs, err := trade.PresentValueByLeg()
			if err != nil {
				return fmt.Errorf("trade %s: %w", trade.ID, err)
			}
			results[i] = Result{TradeID: trade.ID, Legs: legs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("portfolio.ValueAll: %w", err)
	}
	return results, nil
}

// TotalPV sums the signed present values of a batch result.
func TotalPV(results []Result) float64 {
	total := 0.0
	for _, r := range results {
		total += r.Legs.PresentValue
	}
	return total
}
