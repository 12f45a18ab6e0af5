package metrics

import (
	"math"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

const (
	// DaysPerYear annualizes the total return over a calendar year.
	DaysPerYear = 365
	// TradingDaysPerYear annualizes daily volatility.
	TradingDaysPerYear = 261
)

// Compute derives a MetricsRow per ticker of table.
//
// window is the business-day window the table was built for and drives the
// return annualization exponent (365 / window). Tickers with an empty series
// are skipped. Volatility is NaN when fewer than two daily returns exist.
func Compute(table *models.PriceTable, window int) map[models.Ticker]models.MetricsRow {
	out := make(map[models.Ticker]models.MetricsRow, len(table.Tickers))
	for _, tk := range table.Tickers {
		series := table.Series(tk)
		if len(series) == 0 {
			continue
		}
		total := TotalReturn(series)
		out[tk] = models.MetricsRow{
			TotalReturn:          total,
			AnnualizedReturn:     AnnualizedReturn(total, window),
			AnnualizedVolatility: AnnualizedVolatility(series),
		}
	}
	return out
}

// TotalReturn is (last - first) / first.
func TotalReturn(prices []float64) float64 {
	first, last := prices[0], prices[len(prices)-1]
	return (last - first) / first
}

// AnnualizedReturn is (1 + total)^(365/window) - 1. A non-positive window yields NaN.
func AnnualizedReturn(total float64, window int) float64 {
	if window <= 0 {
		return math.NaN()
	}
	return math.Pow(1+total, float64(DaysPerYear)/float64(window)) - 1
}

// DailyReturns returns (p[i] - p[i-1]) / p[i-1] for i >= 1.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, (prices[i]-prices[i-1])/prices[i-1])
	}
	return out
}

// AnnualizedVolatility is the sample standard deviation of the daily returns
// scaled by sqrt(261).
func AnnualizedVolatility(prices []float64) float64 {
	return SampleStdDev(DailyReturns(prices)) * math.Sqrt(TradingDaysPerYear)
}

// SampleStdDev uses the n-1 divisor; fewer than two values yield NaN.
func SampleStdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return math.NaN()
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
