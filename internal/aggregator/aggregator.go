package aggregator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

// PriceFetcher retrieves one price for a (ticker, day) pair.
type PriceFetcher interface {
	Fetch(ctx context.Context, ticker models.Ticker, day models.TradingDay) (models.PricePoint, error)
}

// Aggregator fans PriceFetcher calls out over a ticker x day grid and folds
// the results back into a PriceTable.
type Aggregator struct {
	fetcher PriceFetcher
	limit   int
}

// New creates an Aggregator. limit caps the number of in-flight fetches;
// limit <= 0 issues every fetch of a batch at once.
func New(fetcher PriceFetcher, limit int) *Aggregator {
	return &Aggregator{fetcher: fetcher, limit: limit}
}

// Aggregate fetches every (ticker, day) pair concurrently.
//
// Behavior:
//   - Issues len(tickers) x len(days) fetches; each writes only its own slot.
//   - The first failure cancels the remaining fetches and the whole call fails;
//     no partial table is ever returned.
//   - Result order follows the tickers and days given, never completion order.
//
// Returns a *models.ValidationError when tickers or days is empty.
func (a *Aggregator) Aggregate(ctx context.Context, tickers []models.Ticker, days []models.TradingDay) (*models.PriceTable, error) {
	if len(tickers) == 0 {
		return nil, &models.ValidationError{Field: "tickers", Reason: "at least one ticker is required"}
	}
	if len(days) == 0 {
		return nil, &models.ValidationError{Field: "days", Reason: "at least one trading day is required"}
	}

	log := logger.FromContext(ctx)
	start := time.Now()

	slots := make([][]float64, len(tickers))
	for i := range slots {
		slots[i] = make([]float64, len(days))
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.limit > 0 {
		g.SetLimit(a.limit)
	}

	for ti, ticker := range tickers {
		for di, day := range days {
			g.Go(func() error {
				pp, err := a.fetcher.Fetch(gctx, ticker, day)
				if err != nil {
					return fmt.Errorf("fetch %s@%s: %w", ticker, day, err)
				}
				slots[ti][di] = pp.Price
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).
			Int("tickers", len(tickers)).
			Int("days", len(days)).
			Dur("elapsed", time.Since(start)).
			Msg("price aggregation failed")
		return nil, err
	}

	table := &models.PriceTable{
		Days:    append([]models.TradingDay(nil), days...),
		Tickers: append([]models.Ticker(nil), tickers...),
		Prices:  make(map[models.Ticker][]float64, len(tickers)),
	}
	for ti, ticker := range tickers {
		table.Prices[ticker] = slots[ti]
	}

	log.Debug().
		Int("fetches", len(tickers)*len(days)).
		Int("limit", a.limit).
		Dur("elapsed", time.Since(start)).
		Msg("prices aggregated")
	return table, nil
}
