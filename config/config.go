package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // market timezone must resolve on minimal images

	"github.com/spf13/viper"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is built once at startup by LoadConfig and passed by value to every
// constructor; no package reads the environment on its own.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	POLYGON_API_KEY=xxxx
//	STOCKS_COMPANIES=Google:GOOG,Amazon:AMZN,Microsoft:MSFT
//	STOCKS_COLORS=#8e5ea2,#3cba9f,#e8c3b9
//	STOCKS_WINDOW=10
//	CHART_FILL=false
//	INCLUDE_LIVE_QUOTE=false
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	Polygon PolygonConfig // Upstream market-data provider
	Stocks  StocksConfig  // Tickers, window and presentation options
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Requests allowed per client IP per minute
}

// PolygonConfig defines how the Polygon API is reached.
//
// Fields:
//   - APIKey: secret sent as the apiKey query parameter.
//   - BaseURL: API root, defaults to https://api.polygon.io.
//   - Timeout: end-to-end timeout of a single HTTP call.
//   - Concurrency: max in-flight fetches per batch (0 = whole batch at once).
type PolygonConfig struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Concurrency int
}

// StocksConfig describes the fixed ticker table and how payloads are shaped.
type StocksConfig struct {
	Companies        []models.Company
	Window           int
	Fill             bool
	IncludeLiveQuote bool
	LiveQuoteDate    models.TradingDay // replaces "today" as the live day when set
	Location         *time.Location
	CellWidth        int
	Delimiter        string
}

// LoadConfig builds a Config from defaults, an optional .env file and the
// environment.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Returns a *models.ConfigurationError listing every invalid or missing value.
func LoadConfig() (Config, error) {
	v := viper.New()

	// Default values
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	v.SetDefault("POLYGON_BASE_URL", "https://api.polygon.io")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("FETCH_CONCURRENCY", 0)

	v.SetDefault("STOCKS_COMPANIES", "Google:GOOG,Amazon:AMZN,Microsoft:MSFT")
	v.SetDefault("STOCKS_COLORS", "#8e5ea2,#3cba9f,#e8c3b9")
	v.SetDefault("STOCKS_WINDOW", 10)
	v.SetDefault("CHART_FILL", false)
	v.SetDefault("INCLUDE_LIVE_QUOTE", false)
	v.SetDefault("LIVE_QUOTE_DATE", "")
	v.SetDefault("MARKET_TIMEZONE", "America/New_York")
	v.SetDefault("METRICS_CELL_WIDTH", 22)
	v.SetDefault("METRICS_DELIMITER", "| ")

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	_ = v.ReadInConfig() // ignore error if no .env

	// An empty METRICS_DELIMITER is meaningful (no separator).
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var problems []string

	companies, err := parseCompanies(v.GetString("STOCKS_COMPANIES"), v.GetString("STOCKS_COLORS"))
	if err != nil {
		problems = append(problems, err.Error())
	}

	loc, err := time.LoadLocation(v.GetString("MARKET_TIMEZONE"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("MARKET_TIMEZONE: %v", err))
	}

	cfg := Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Polygon: PolygonConfig{
			APIKey:      v.GetString("POLYGON_API_KEY"),
			BaseURL:     v.GetString("POLYGON_BASE_URL"),
			Timeout:     v.GetDuration("HTTP_TIMEOUT"),
			Concurrency: v.GetInt("FETCH_CONCURRENCY"),
		},
		Stocks: StocksConfig{
			Companies:        companies,
			Window:           v.GetInt("STOCKS_WINDOW"),
			Fill:             v.GetBool("CHART_FILL"),
			IncludeLiveQuote: v.GetBool("INCLUDE_LIVE_QUOTE"),
			LiveQuoteDate:    models.TradingDay(strings.TrimSpace(v.GetString("LIVE_QUOTE_DATE"))),
			Location:         loc,
			CellWidth:        v.GetInt("METRICS_CELL_WIDTH"),
			Delimiter:        v.GetString("METRICS_DELIMITER"),
		},
	}

	problems = append(problems, validateConfig(cfg)...)
	if len(problems) > 0 {
		return Config{}, &models.ConfigurationError{Problems: problems}
	}
	return cfg, nil
}

// validateConfig returns one message per invalid or missing field.
func validateConfig(cfg Config) []string {
	var problems []string

	if cfg.Server.Port == "" {
		problems = append(problems, "SERVER_PORT is required")
	}
	if cfg.Server.RateLimitPerMinute <= 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be positive")
	}
	if cfg.Polygon.APIKey == "" {
		problems = append(problems, "POLYGON_API_KEY is required")
	}
	if cfg.Polygon.BaseURL == "" {
		problems = append(problems, "POLYGON_BASE_URL is required")
	}
	if cfg.Polygon.Timeout <= 0 {
		problems = append(problems, "HTTP_TIMEOUT must be positive")
	}
	if cfg.Polygon.Concurrency < 0 {
		problems = append(problems, "FETCH_CONCURRENCY must not be negative")
	}
	if cfg.Stocks.Window <= 0 {
		problems = append(problems, "STOCKS_WINDOW must be a positive number of business days")
	}
	if cfg.Stocks.CellWidth <= 0 {
		problems = append(problems, "METRICS_CELL_WIDTH must be positive")
	}
	if d := cfg.Stocks.LiveQuoteDate; d != "" {
		if _, err := time.Parse(models.DayLayout, string(d)); err != nil {
			problems = append(problems, fmt.Sprintf("LIVE_QUOTE_DATE %q is not YYYY-MM-DD", d))
		}
	}
	return problems
}

// parseCompanies turns "Name:SYMBOL,..." plus a matching color list into the
// ordered company table.
func parseCompanies(rawCompanies, rawColors string) ([]models.Company, error) {
	entries := splitList(rawCompanies)
	colors := splitList(rawColors)

	if len(entries) == 0 {
		return nil, fmt.Errorf("STOCKS_COMPANIES must list at least one company")
	}
	if len(entries) != len(colors) {
		return nil, fmt.Errorf("numbers of companies (%d) and colors (%d) do not match", len(entries), len(colors))
	}

	seenNames := make(map[string]struct{}, len(entries))
	seenSymbols := make(map[models.Ticker]struct{}, len(entries))
	out := make([]models.Company, 0, len(entries))

	for i, e := range entries {
		name, symbol, ok := strings.Cut(e, ":")
		name = strings.TrimSpace(name)
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if !ok || name == "" || symbol == "" {
			return nil, fmt.Errorf("STOCKS_COMPANIES entry %q must look like Name:SYMBOL", e)
		}
		key := strings.ToLower(name)
		if _, dup := seenNames[key]; dup {
			return nil, fmt.Errorf("duplicate company %q", name)
		}
		if _, dup := seenSymbols[models.Ticker(symbol)]; dup {
			return nil, fmt.Errorf("duplicate ticker %q", symbol)
		}
		seenNames[key] = struct{}{}
		seenSymbols[models.Ticker(symbol)] = struct{}{}

		out = append(out, models.Company{Name: name, Symbol: models.Ticker(symbol), Color: colors[i]})
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
