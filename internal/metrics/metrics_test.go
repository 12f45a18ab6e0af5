package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

const eps = 1e-9

func TestCompute_SyntheticSeries(t *testing.T) {
	table := &models.PriceTable{
		Days:    []models.TradingDay{"2025-09-11", "2025-09-12", "2025-09-15"},
		Tickers: []models.Ticker{"GOOG"},
		Prices:  map[models.Ticker][]float64{"GOOG": {100, 110, 121}},
	}

	rows := Compute(table, 2)
	require.Contains(t, rows, models.Ticker("GOOG"))
	row := rows["GOOG"]

	assert.InDelta(t, 0.21, row.TotalReturn, eps)
	assert.InDelta(t, math.Pow(1.21, 365.0/2)-1, row.AnnualizedReturn, math.Pow(1.21, 365.0/2)*eps)
	assert.InDelta(t, 0, row.AnnualizedVolatility, eps)
}

func TestDailyReturns(t *testing.T) {
	got := DailyReturns([]float64{100, 110, 121})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.10, got[0], eps)
	assert.InDelta(t, 0.10, got[1], eps)

	assert.Nil(t, DailyReturns([]float64{100}))
}

func TestVolatility_KnownValue(t *testing.T) {
	// returns: +10%, -10%  -> mean 0, sample stdev = sqrt(0.02)
	prices := []float64{100, 110, 99}
	want := math.Sqrt(0.02) * math.Sqrt(261)
	assert.InDelta(t, want, AnnualizedVolatility(prices), 1e-9)
}

func TestVolatility_UndefinedForShortSeries(t *testing.T) {
	assert.True(t, math.IsNaN(AnnualizedVolatility([]float64{100})))
	assert.True(t, math.IsNaN(AnnualizedVolatility([]float64{100, 101})))
}

func TestCompute_SingleDay(t *testing.T) {
	table := &models.PriceTable{
		Days:    []models.TradingDay{"2025-09-15"},
		Tickers: []models.Ticker{"MSFT"},
		Prices:  map[models.Ticker][]float64{"MSFT": {500}},
	}
	row := Compute(table, 1)["MSFT"]
	assert.Zero(t, row.TotalReturn)
	assert.Zero(t, row.AnnualizedReturn)
	assert.True(t, math.IsNaN(row.AnnualizedVolatility))
}

func TestAnnualizedReturn_InvalidWindow(t *testing.T) {
	assert.True(t, math.IsNaN(AnnualizedReturn(0.1, 0)))
}
