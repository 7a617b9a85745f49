package model

import "strings"

// Market tags which exchange a symbol trades on. The tag selects the
// currency/display policy so rule evaluation stays market-agnostic.
type Market string

const (
	MarketUS Market = "US"
	MarketHK Market = "HK"
)

// CurrencySymbol returns the price prefix used in reports.
func (m Market) CurrencySymbol() string {
	if m == MarketHK {
		return "HK$"
	}
	return "$"
}

// Name returns the human-readable market name.
func (m Market) Name() string {
	if m == MarketHK {
		return "Hong Kong"
	}
	return "US"
}

// NormalizeSymbol converts a symbol to the form the data source expects.
// HK codes gain a .HK suffix; US symbols pass through upper-cased.
func (m Market) NormalizeSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if m == MarketHK && !strings.HasSuffix(symbol, ".HK") {
		return symbol + ".HK"
	}
	return symbol
}

// DisplaySymbol strips data-source suffixes for report display.
func (m Market) DisplaySymbol(symbol string) string {
	if m == MarketHK {
		symbol = strings.TrimSuffix(strings.TrimSuffix(symbol, ".HK"), ".hk")
	}
	return symbol
}

// DetectMarket infers the market from a bare symbol: four pure digits
// means an HK board lot code, anything else is treated as US.
func DetectMarket(symbol string) Market {
	symbol = strings.TrimSpace(symbol)
	if len(symbol) == 4 && isAllDigits(symbol) {
		return MarketHK
	}
	return MarketUS
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
