package collector

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"TrendSentry/internal/model"
)

// Collector wraps a Fetcher with request pacing so batch scans do not
// hammer the upstream data source.
type Collector struct {
	fetcher Fetcher
	limiter *rate.Limiter
}

// New builds a Collector. interval is the minimum spacing between
// upstream requests; zero or negative disables pacing.
func New(fetcher Fetcher, interval time.Duration) *Collector {
	lim := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		lim = rate.NewLimiter(rate.Every(interval), 1)
	}
	return &Collector{fetcher: fetcher, limiter: lim}
}

func (c *Collector) Name() string { return c.fetcher.Name() }

// FetchSeries fetches count bars of the given interval for one symbol.
func (c *Collector) FetchSeries(ctx context.Context, symbol string, market model.Market, interval model.Interval, count int) (*model.Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	bars, err := c.fetcher.FetchBars(symbol, market, interval, count)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s bars for %s: %w", market, interval, symbol, err)
	}
	return &model.Series{
		Symbol:    symbol,
		Market:    market,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// CurrentPrice fetches the latest traded price for one symbol.
func (c *Collector) CurrentPrice(ctx context.Context, symbol string, market model.Market) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	price, err := c.fetcher.FetchCurrentPrice(symbol, market)
	if err != nil {
		return 0, fmt.Errorf("fetch current price for %s: %w", symbol, err)
	}
	return price, nil
}
