package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

const (
	// DefaultBaseURL is the public Polygon REST endpoint.
	DefaultBaseURL = "https://api.polygon.io"

	opLastTrade = "last-trade"
	opOpenClose = "open-close"

	maxBodyBytes = 1 << 20
)

// HTTPClient describes the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches single prices from the Polygon REST API.
//
// It is safe for concurrent use; every call is an independent HTTP request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	liveDay    func() models.TradingDay
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests and proxies).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLiveDay sets the function deciding which day is served by the last-trade endpoint.
func WithLiveDay(fn func() models.TradingDay) Option {
	return func(c *Client) {
		c.liveDay = fn
	}
}

// NewClient creates a Client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type lastTradeResponse struct {
	Status  string `json:"status"`
	Results *struct {
		Price *float64 `json:"p"`
	} `json:"results"`
}

type openCloseResponse struct {
	Status string   `json:"status"`
	Close  *float64 `json:"close"`
}

// Fetch returns the price of ticker on day.
//
// When day is the live day the last-trade price is used, otherwise the
// adjusted closing price of that day. Any failure is a *models.UpstreamError.
func (c *Client) Fetch(ctx context.Context, ticker models.Ticker, day models.TradingDay) (models.PricePoint, error) {
	live := c.liveDay != nil && day == c.liveDay()

	var (
		price float64
		err   error
	)
	if live {
		price, err = c.LastTrade(ctx, ticker)
	} else {
		price, err = c.OpenClose(ctx, ticker, day)
	}
	if err != nil {
		var ue *models.UpstreamError
		if errors.As(err, &ue) {
			ue.Day = day
		}
		return models.PricePoint{}, err
	}

	return models.PricePoint{Ticker: ticker, Day: day, Price: price, Live: live}, nil
}

// LastTrade returns the most recent trade price of ticker (results.p).
func (c *Client) LastTrade(ctx context.Context, ticker models.Ticker) (float64, error) {
	path := "/v2/last/trade/" + url.PathEscape(string(ticker))

	var body lastTradeResponse
	if err := c.get(ctx, opLastTrade, ticker, "", path, nil, &body); err != nil {
		return 0, err
	}
	if body.Results == nil || body.Results.Price == nil {
		return 0, c.fail(ctx, &models.UpstreamError{
			Op: opLastTrade, Ticker: ticker, URL: c.baseURL + path,
			Err: fmt.Errorf("response has no results.p (status %q)", body.Status),
		})
	}
	return *body.Results.Price, nil
}

// OpenClose returns the adjusted closing price of ticker on day.
func (c *Client) OpenClose(ctx context.Context, ticker models.Ticker, day models.TradingDay) (float64, error) {
	path := fmt.Sprintf("/v1/open-close/%s/%s", url.PathEscape(string(ticker)), url.PathEscape(string(day)))
	query := url.Values{"adjusted": {"true"}}

	var body openCloseResponse
	if err := c.get(ctx, opOpenClose, ticker, day, path, query, &body); err != nil {
		return 0, err
	}
	if body.Close == nil {
		return 0, c.fail(ctx, &models.UpstreamError{
			Op: opOpenClose, Ticker: ticker, Day: day, URL: c.baseURL + path + "?" + query.Encode(),
			Err: fmt.Errorf("response has no close (status %q)", body.Status),
		})
	}
	return *body.Close, nil
}

// get performs a GET and decodes a 2xx JSON body into out.
// The logged and returned URL never carries the API key.
func (c *Client) get(ctx context.Context, op string, ticker models.Ticker, day models.TradingDay, path string, query url.Values, out any) error {
	public := url.Values{}
	for k, v := range query {
		public[k] = v
	}
	redacted := c.baseURL + path
	if len(public) > 0 {
		redacted += "?" + public.Encode()
	}

	signed := url.Values{}
	for k, v := range public {
		signed[k] = v
	}
	signed.Set("apiKey", c.apiKey)

	newErr := func(status int, err error) error {
		return c.fail(ctx, &models.UpstreamError{Op: op, Ticker: ticker, Day: day, URL: redacted, Status: status, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+signed.Encode(), http.NoBody)
	if err != nil {
		return newErr(0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL; drop it so the key never leaks.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return newErr(0, fmt.Errorf("performing request: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return newErr(res.StatusCode, fmt.Errorf("unexpected status %s: %s", res.Status, strings.TrimSpace(string(snippet))))
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(out); err != nil {
		return newErr(res.StatusCode, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

func (c *Client) fail(ctx context.Context, err *models.UpstreamError) error {
	logger.FromContext(ctx).Error().
		Str("op", err.Op).
		Str("ticker", string(err.Ticker)).
		Str("day", string(err.Day)).
		Str("url", err.URL).
		Int("status", err.Status).
		Err(err.Err).
		Msg("upstream request failed")
	return err
}
