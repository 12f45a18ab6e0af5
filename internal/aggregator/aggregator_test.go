package aggregator

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

// fakeFetcher returns a price derived from the (ticker, day) position and
// can delay or fail specific pairs.
type fakeFetcher struct {
	prices map[models.Ticker]map[models.TradingDay]float64
	delay  func(models.Ticker, models.TradingDay) time.Duration
	fail   map[models.TradingDay]error

	calls    atomic.Int32
	inflight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, ticker models.Ticker, day models.TradingDay) (models.PricePoint, error) {
	f.calls.Add(1)
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		cur := f.maxSeen.Load()
		if n <= cur || f.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}

	if f.delay != nil {
		select {
		case <-time.After(f.delay(ticker, day)):
		case <-ctx.Done():
			return models.PricePoint{}, ctx.Err()
		}
	}
	if err, ok := f.fail[day]; ok {
		return models.PricePoint{}, err
	}
	return models.PricePoint{Ticker: ticker, Day: day, Price: f.prices[ticker][day]}, nil
}

var (
	testTickers = []models.Ticker{"GOOG", "AMZN", "MSFT"}
	testDays    = []models.TradingDay{"2025-09-10", "2025-09-11", "2025-09-12", "2025-09-15"}
)

func gridPrices() map[models.Ticker]map[models.TradingDay]float64 {
	out := map[models.Ticker]map[models.TradingDay]float64{}
	for ti, tk := range testTickers {
		out[tk] = map[models.TradingDay]float64{}
		for di, d := range testDays {
			out[tk][d] = float64(100*(ti+1) + di)
		}
	}
	return out
}

func TestAggregate_OrderStableUnderReversedCompletion(t *testing.T) {
	// Later days finish first: delay inversely proportional to day index.
	f := &fakeFetcher{
		prices: gridPrices(),
		delay: func(_ models.Ticker, d models.TradingDay) time.Duration {
			for i, day := range testDays {
				if day == d {
					return time.Duration(len(testDays)-i) * 15 * time.Millisecond
				}
			}
			return 0
		},
	}

	table, err := New(f, 0).Aggregate(context.Background(), testTickers, testDays)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("malformed table: %v", err)
	}
	if !reflect.DeepEqual(table.Days, testDays) || !reflect.DeepEqual(table.Tickers, testTickers) {
		t.Fatalf("ordering changed: days=%v tickers=%v", table.Days, table.Tickers)
	}
	want := map[models.Ticker][]float64{
		"GOOG": {100, 101, 102, 103},
		"AMZN": {200, 201, 202, 203},
		"MSFT": {300, 301, 302, 303},
	}
	if !reflect.DeepEqual(table.Prices, want) {
		t.Fatalf("got %v want %v", table.Prices, want)
	}
	if got := int(f.calls.Load()); got != len(testTickers)*len(testDays) {
		t.Fatalf("want %d fetches got %d", len(testTickers)*len(testDays), got)
	}
}

func TestAggregate_AllOrNothing(t *testing.T) {
	boom := errors.New("status 503")
	f := &fakeFetcher{
		prices: gridPrices(),
		fail:   map[models.TradingDay]error{"2025-09-12": boom},
	}

	table, err := New(f, 0).Aggregate(context.Background(), testTickers, testDays)
	if err == nil {
		t.Fatalf("expected error")
	}
	if table != nil {
		t.Fatalf("expected no partial table, got %+v", table)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestAggregate_RespectsLimit(t *testing.T) {
	f := &fakeFetcher{
		prices: gridPrices(),
		delay:  func(models.Ticker, models.TradingDay) time.Duration { return 5 * time.Millisecond },
	}

	if _, err := New(f, 2).Aggregate(context.Background(), testTickers, testDays); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := f.maxSeen.Load(); got > 2 {
		t.Fatalf("limit exceeded: %d fetches in flight", got)
	}
}

func TestAggregate_FullyConcurrentByDefault(t *testing.T) {
	total := len(testTickers) * len(testDays)
	var wg sync.WaitGroup
	wg.Add(total)
	release := make(chan struct{})

	// Every fetch waits until all of them have started; this only
	// completes when the whole batch is in flight at once.
	f := &blockingFetcher{started: &wg, release: release}
	go func() {
		wg.Wait()
		close(release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := New(f, 0).Aggregate(ctx, testTickers, testDays); err != nil {
		t.Fatalf("batch was not issued concurrently: %v", err)
	}
}

type blockingFetcher struct {
	started *sync.WaitGroup
	release chan struct{}
}

func (b *blockingFetcher) Fetch(ctx context.Context, ticker models.Ticker, day models.TradingDay) (models.PricePoint, error) {
	b.started.Done()
	select {
	case <-b.release:
		return models.PricePoint{Ticker: ticker, Day: day, Price: 1}, nil
	case <-ctx.Done():
		return models.PricePoint{}, ctx.Err()
	}
}

func TestAggregate_Validation(t *testing.T) {
	a := New(&fakeFetcher{}, 0)
	cases := []struct {
		name    string
		tickers []models.Ticker
		days    []models.TradingDay
	}{
		{"no tickers", nil, testDays},
		{"no days", testTickers, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Aggregate(context.Background(), tc.tickers, tc.days)
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}
