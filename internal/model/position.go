package model

import "time"

// Position is one discrete purchase lot loaded from the holdings store.
// The same symbol may appear in multiple lots; each is evaluated on its own.
type Position struct {
	Symbol        string  `json:"symbol"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"` // YYYY-MM-DD
	Quantity      float64 `json:"quantity,omitempty"`
}

// HoldingDays returns whole days since purchase, or -1 when the date
// does not parse.
func (p Position) HoldingDays(now time.Time) int {
	d, err := time.Parse("2006-01-02", p.PurchaseDate)
	if err != nil {
		return -1
	}
	return int(now.Sub(d).Hours() / 24)
}
