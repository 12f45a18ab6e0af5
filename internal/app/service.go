package app

import (
	"github.com/guttosm/stockcharts/config"
	"github.com/guttosm/stockcharts/internal/aggregator"
	"github.com/guttosm/stockcharts/internal/calendar"
	"github.com/guttosm/stockcharts/internal/polygon"
	"github.com/guttosm/stockcharts/internal/presenter"
	"github.com/guttosm/stockcharts/internal/service"
)

// NewStocksService builds the price pipeline shared by the API and print modes.
//
// Wiring:
//   - calendar.Clock resolves "today" in the market timezone, honoring LIVE_QUOTE_DATE.
//   - polygon.Client uses a dedicated HTTP client; the live day goes to last-trade
//     only when INCLUDE_LIVE_QUOTE is set.
//   - aggregator.Aggregator fans fetches out, capped by FETCH_CONCURRENCY.
//   - presenter.Formatter shapes chart and metrics payloads.
//
// The returned cleanup closes idle upstream connections.
func NewStocksService(cfg config.Config) (service.StocksService, func()) {
	clock := calendar.Clock{
		Location: cfg.Stocks.Location,
		Override: cfg.Stocks.LiveQuoteDate,
	}

	httpClient := polygon.NewHTTPClient(cfg.Polygon.Timeout)
	opts := []polygon.Option{
		polygon.WithBaseURL(cfg.Polygon.BaseURL),
		polygon.WithHTTPClient(httpClient),
	}
	// Without the live slot every day is historical and served by open-close.
	if cfg.Stocks.IncludeLiveQuote {
		opts = append(opts, polygon.WithLiveDay(clock.LiveDay))
	}
	client := polygon.NewClient(cfg.Polygon.APIKey, opts...)

	agg := aggregator.New(client, cfg.Polygon.Concurrency)
	formatter := presenter.New(cfg.Stocks.CellWidth, cfg.Stocks.Delimiter, cfg.Stocks.Fill)

	svc := service.NewStocksService(cfg.Stocks, agg, formatter, clock)
	return svc, httpClient.CloseIdleConnections
}
