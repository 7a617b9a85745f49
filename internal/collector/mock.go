package collector

import (
	"time"

	"TrendSentry/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[model.Interval][]model.OHLCV
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ string, _ model.Market, interval model.Interval, count int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[interval]; ok {
		return bars, nil
	}
	return GenerateBars(m.Price, count, interval), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string, _ model.Market) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Price, nil
}

// GenerateBars builds a gently rising synthetic series around basePrice.
func GenerateBars(basePrice float64, count int, interval model.Interval) []model.OHLCV {
	step := 7 * 24 * time.Hour
	switch interval {
	case model.IntervalDaily:
		step = 24 * time.Hour
	case model.IntervalMonthly:
		step = 30 * 24 * time.Hour
	}
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().Add(-time.Duration(count-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
