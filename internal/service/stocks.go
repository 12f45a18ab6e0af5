package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/stockcharts/config"
	"github.com/guttosm/stockcharts/internal/calendar"
	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/metrics"
	"github.com/guttosm/stockcharts/internal/presenter"
)

// StocksService builds the chart and metrics payloads for a set of companies.
// An empty names slice selects every configured company.
type StocksService interface {
	Chart(ctx context.Context, names []string) (dto.ChartPayload, error)
	Metrics(ctx context.Context, names []string) (dto.MetricsPayload, error)
}

// PriceAggregator fetches a full ticker x day grid; see aggregator.Aggregator.
type PriceAggregator interface {
	Aggregate(ctx context.Context, tickers []models.Ticker, days []models.TradingDay) (*models.PriceTable, error)
}

type stocksService struct {
	cfg       config.StocksConfig
	agg       PriceAggregator
	formatter *presenter.Formatter
	clock     calendar.Clock
}

// NewStocksService wires the pipeline: calendar -> aggregator -> metrics -> presenter.
func NewStocksService(cfg config.StocksConfig, agg PriceAggregator, formatter *presenter.Formatter, clock calendar.Clock) StocksService {
	return &stocksService{cfg: cfg, agg: agg, formatter: formatter, clock: clock}
}

func (s *stocksService) Chart(ctx context.Context, names []string) (dto.ChartPayload, error) {
	companies, table, err := s.load(ctx, names)
	if err != nil {
		return dto.ChartPayload{}, err
	}
	payload, err := s.formatter.Chart(companies, table)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("chart formatting failed")
		return dto.ChartPayload{}, err
	}
	return payload, nil
}

func (s *stocksService) Metrics(ctx context.Context, names []string) (dto.MetricsPayload, error) {
	companies, table, err := s.load(ctx, names)
	if err != nil {
		return dto.MetricsPayload{}, err
	}
	rows := metrics.Compute(table, s.cfg.Window)
	return s.formatter.Metrics(companies, rows), nil
}

// load resolves companies, computes the day list and fetches the price table.
func (s *stocksService) load(ctx context.Context, names []string) ([]models.Company, *models.PriceTable, error) {
	log := logger.FromContext(ctx)

	companies, err := s.resolve(names)
	if err != nil {
		log.Warn().Err(err).Strs("names", names).Msg("company lookup failed")
		return nil, nil, err
	}

	days, err := s.days()
	if err != nil {
		log.Error().Err(err).Int("window", s.cfg.Window).Msg("business day calculation failed")
		return nil, nil, err
	}

	tickers := make([]models.Ticker, len(companies))
	for i, c := range companies {
		tickers[i] = c.Symbol
	}

	table, err := s.agg.Aggregate(ctx, tickers, days)
	if err != nil {
		log.Error().Err(err).
			Str("tickers", joinTickers(tickers)).
			Str("first_day", string(days[0])).
			Str("last_day", string(days[len(days)-1])).
			Msg("price aggregation failed")
		return nil, nil, fmt.Errorf("aggregate prices: %w", err)
	}
	if err := table.Validate(); err != nil {
		log.Error().Err(err).Msg("malformed price table")
		return nil, nil, err
	}
	return companies, table, nil
}

// days returns the business-day window, with the live day appended when the
// live quote is enabled. The live day must fall after the last window day so
// the list stays strictly increasing.
func (s *stocksService) days() ([]models.TradingDay, error) {
	days, err := calendar.BusinessDays(s.cfg.Window, s.clock.Today(), s.cfg.IncludeLiveQuote)
	if err != nil {
		return nil, err
	}
	if !s.cfg.IncludeLiveQuote {
		return days, nil
	}

	live := s.clock.LiveDay()
	if last := days[len(days)-2]; live <= last {
		return nil, &models.ValidationError{
			Field:  "live_quote_date",
			Reason: fmt.Sprintf("live day %s must be after the last window day %s", live, last),
		}
	}
	days[len(days)-1] = live
	return days, nil
}

// resolve maps names (case-insensitive, by company name or ticker) to
// configured companies, keeping configuration order. No HTTP call is made for
// a request that names an unknown company.
func (s *stocksService) resolve(names []string) ([]models.Company, error) {
	if len(names) == 0 {
		return s.cfg.Companies, nil
	}

	wanted := make(map[int]struct{}, len(names))
	var unknown []string
	for _, n := range names {
		idx := s.lookup(n)
		if idx < 0 {
			unknown = append(unknown, n)
			continue
		}
		wanted[idx] = struct{}{}
	}
	if len(unknown) > 0 {
		return nil, &models.UnknownTickerError{Names: unknown}
	}

	out := make([]models.Company, 0, len(wanted))
	for i, c := range s.cfg.Companies {
		if _, ok := wanted[i]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stocksService) lookup(name string) int {
	name = strings.TrimSpace(name)
	for i, c := range s.cfg.Companies {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(string(c.Symbol), name) {
			return i
		}
	}
	return -1
}

func joinTickers(tickers []models.Ticker) string {
	parts := make([]string, len(tickers))
	for i, t := range tickers {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
