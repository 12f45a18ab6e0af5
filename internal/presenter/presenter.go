package presenter

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/domain/models"
)

const (
	// DefaultCellWidth is the display width of every metrics table cell.
	DefaultCellWidth = 22
	// DefaultDelimiter separates metrics table cells.
	DefaultDelimiter = "| "

	chartPrecision   = 3
	percentPrecision = 2
	notAvailable     = "n/a"
)

// MetricsHeader is the first row of the metrics payload.
var MetricsHeader = []string{"Company", "Total return", "Annualized return", "Annualized volatility"}

// Formatter reshapes price tables into the chart and metrics payloads.
type Formatter struct {
	CellWidth int
	Delimiter string
	Fill      bool
}

// New returns a Formatter; a non-positive width falls back to DefaultCellWidth.
// The delimiter is used as given, so "" joins cells with no separator.
func New(cellWidth int, delimiter string, fill bool) *Formatter {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	return &Formatter{CellWidth: cellWidth, Delimiter: delimiter, Fill: fill}
}

// Chart builds the chart payload, one dataset per company in the given order,
// labelled with the ticker.
// Each series is indexed to 100 at its first price and rounded to 3 decimals.
func (f *Formatter) Chart(companies []models.Company, table *models.PriceTable) (dto.ChartPayload, error) {
	labels := make([]string, len(table.Days))
	for i, d := range table.Days {
		labels[i] = string(d)
	}

	datasets := make([]dto.Dataset, 0, len(companies))
	for _, c := range companies {
		data, err := normalize(table.Series(c.Symbol))
		if err != nil {
			return dto.ChartPayload{}, fmt.Errorf("chart %s: %w", c.Symbol, err)
		}
		datasets = append(datasets, dto.Dataset{
			Label:       string(c.Symbol),
			Data:        data,
			BorderColor: c.Color,
			Fill:        f.Fill,
		})
	}
	return dto.ChartPayload{Labels: labels, Datasets: datasets}, nil
}

// normalize rescales prices so the first one is exactly 100.
func normalize(prices []float64) ([]float64, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("empty price series")
	}
	first := prices[0]
	if first == 0 || math.IsNaN(first) || math.IsInf(first, 0) {
		return nil, fmt.Errorf("cannot index series to base price %v", first)
	}

	out := make([]float64, len(prices))
	for i, p := range prices {
		v := 100 * (p / first)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite price %v at index %d", p, i)
		}
		out[i], _ = decimal.NewFromFloat(v).Round(chartPrecision).Float64()
	}
	return out, nil
}

// Metrics builds the metrics payload: header row first, then one row per
// company in the given order. Companies without a metrics row are skipped.
func (f *Formatter) Metrics(companies []models.Company, rows map[models.Ticker]models.MetricsRow) dto.MetricsPayload {
	lines := make([]string, 0, len(companies)+1)
	lines = append(lines, f.row(MetricsHeader...))

	for _, c := range companies {
		r, ok := rows[c.Symbol]
		if !ok {
			continue
		}
		lines = append(lines, f.row(
			c.Name,
			Percent(r.TotalReturn),
			Percent(r.AnnualizedReturn),
			Percent(r.AnnualizedVolatility),
		))
	}
	return dto.MetricsPayload{Metrics: lines}
}

func (f *Formatter) row(cells ...string) string {
	fitted := make([]string, len(cells))
	for i, c := range cells {
		fitted[i] = fit(c, f.CellWidth)
	}
	return strings.Join(fitted, f.Delimiter)
}

// fit left-justifies s in a cell of width runes, truncating when longer.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// Percent renders a fraction as a percentage with 2 decimals and a trailing " %".
// Non-finite values render as "n/a".
func Percent(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return notAvailable
	}
	return decimal.NewFromFloat(fraction).Shift(2).StringFixed(percentPrecision) + " %"
}
