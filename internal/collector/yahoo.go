package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TrendSentry/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbols to Yahoo tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string, market model.Market) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return market.NormalizeSymbol(symbol)
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []yahooQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooQuote holds the parallel OHLCV arrays of a chart result.
type yahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// deref maps a missing quote entry to NaN. A hole in the series must stay a
// hole: zero would read as a real price downstream.
func deref(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func (f *YahooFetcher) fetchChart(ticker, interval, rng string) ([]model.OHLCV, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(ticker), interval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data returned")
	}
	bars := quoteBars(result.Timestamp, result.Indicators.Quote[0])
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// quoteBars converts the parallel quote arrays into bars. Yahoo sometimes
// returns ragged arrays, so indexing is bounded by the shortest one.
func quoteBars(timestamps []int64, q yahooQuote) []model.OHLCV {
	n := len(timestamps)
	for _, arr := range [][]*float64{q.Open, q.High, q.Low, q.Close, q.Volume} {
		if len(arr) < n {
			n = len(arr)
		}
	}
	bars := make([]model.OHLCV, 0, n)
	for i := 0; i < n; i++ {
		// Fully null entries are non-trading periods and are dropped;
		// partially null entries stay as NaN holes for the indicators.
		if q.Open[i] == nil && q.High[i] == nil && q.Low[i] == nil && q.Close[i] == nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(timestamps[i], 0),
			Open:   deref(q.Open[i]),
			High:   deref(q.High[i]),
			Low:    deref(q.Low[i]),
			Close:  deref(q.Close[i]),
			Volume: deref(q.Volume[i]),
		})
	}
	return bars
}

// rangeFor picks the smallest Yahoo range string covering count bars of the
// given interval.
func rangeFor(interval model.Interval, count int) string {
	switch interval {
	case model.IntervalMonthly:
		if count <= 24 {
			return "2y"
		}
		return "5y"
	case model.IntervalWeekly:
		if count <= 26 {
			return "6mo"
		}
		if count <= 52 {
			return "1y"
		}
		return "2y"
	default: // daily
		switch {
		case count <= 30:
			return "1mo"
		case count <= 90:
			return "3mo"
		case count <= 180:
			return "6mo"
		case count <= 365:
			return "1y"
		}
		return "2y"
	}
}

// FetchBars fetches up to count trailing bars at the given interval.
func (f *YahooFetcher) FetchBars(symbol string, market model.Market, interval model.Interval, count int) ([]model.OHLCV, error) {
	bars, err := f.fetchChart(f.yahooSymbol(symbol, market), string(interval), rangeFor(interval, count))
	if err != nil {
		return nil, err
	}
	if len(bars) > count {
		bars = bars[len(bars)-count:]
	}
	return bars, nil
}

// FetchCurrentPrice returns the latest traded price.
func (f *YahooFetcher) FetchCurrentPrice(symbol string, market model.Market) (float64, error) {
	bars, err := f.fetchChart(f.yahooSymbol(symbol, market), "1d", "5d")
	if err != nil {
		return 0, err
	}
	for i := len(bars) - 1; i >= 0; i-- {
		if !math.IsNaN(bars[i].Close) {
			return bars[i].Close, nil
		}
	}
	return 0, fmt.Errorf("yahoo: no price data for %s", symbol)
}
