package collector

import "TrendSentry/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchBars(symbol string, market model.Market, interval model.Interval, count int) ([]model.OHLCV, error)
	FetchCurrentPrice(symbol string, market model.Market) (float64, error)
	Name() string
}
