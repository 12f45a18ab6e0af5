package models

import "fmt"

// DayLayout is the layout used for every TradingDay (YYYY-MM-DD).
const DayLayout = "2006-01-02"

// Ticker is the exchange symbol of a tradable security (e.g., "GOOG").
type Ticker string

// TradingDay is a calendar date in YYYY-MM-DD form, produced by the calendar package.
type TradingDay string

// Company maps a human-readable company name to its ticker and chart color.
//
// The list of companies is fixed at startup and its order drives the
// order of datasets and rows in every payload.
type Company struct {
	Name   string
	Symbol Ticker
	Color  string
}

// PricePoint is a single price observation for a (ticker, day) pair.
//
// Fields:
//   - Ticker: symbol the price belongs to.
//   - Day: trading day of the observation.
//   - Price: closing price, or last-trade price when Live is true.
//   - Live: true when the price came from the last-trade endpoint.
type PricePoint struct {
	Ticker Ticker
	Day    TradingDay
	Price  float64
	Live   bool
}

// PriceTable holds one price series per ticker, aligned with a shared day list.
//
// Days are ordered oldest to newest; Tickers keeps the caller-supplied order.
type PriceTable struct {
	Days    []TradingDay
	Tickers []Ticker
	Prices  map[Ticker][]float64
}

// Series returns the price series of a ticker (nil if absent).
func (t *PriceTable) Series(ticker Ticker) []float64 {
	if t == nil {
		return nil
	}
	return t.Prices[ticker]
}

// Validate checks that every ticker has exactly one price per day.
func (t *PriceTable) Validate() error {
	if t == nil {
		return &ValidationError{Field: "table", Reason: "nil price table"}
	}
	for _, tk := range t.Tickers {
		series, ok := t.Prices[tk]
		if !ok {
			return &ValidationError{Field: "table", Reason: fmt.Sprintf("missing series for %s", tk)}
		}
		if len(series) != len(t.Days) {
			return &ValidationError{
				Field:  "table",
				Reason: fmt.Sprintf("series for %s has %d prices, want %d", tk, len(series), len(t.Days)),
			}
		}
	}
	return nil
}

// MetricsRow holds derived metrics for one ticker as fractions (0.21 == 21%).
//
// AnnualizedVolatility is NaN when fewer than two daily returns are available.
type MetricsRow struct {
	TotalReturn          float64
	AnnualizedReturn     float64
	AnnualizedVolatility float64
}
