package position

import (
	"os"
	"path/filepath"
	"testing"

	"TrendSentry/internal/model"
)

func TestLoad_MissingFile(t *testing.T) {
	lots := Load(filepath.Join(t.TempDir(), "nope.json"))
	if len(lots) != 0 {
		t.Errorf("missing file should load as empty, got %d lots", len(lots))
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	lots := Load(path)
	if len(lots) != 0 {
		t.Errorf("malformed file should load as empty, got %d lots", len(lots))
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	if lots := Load(""); len(lots) != 0 {
		t.Errorf("empty path should load as empty, got %d lots", len(lots))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.json")
	in := []model.Position{
		{Symbol: "AAPL", PurchasePrice: 150, PurchaseDate: "2026-01-15", Quantity: 10},
		{Symbol: "AAPL", PurchasePrice: 142.5, PurchaseDate: "2026-03-02", Quantity: 5},
		{Symbol: "0700", PurchasePrice: 310, PurchaseDate: "2026-02-01"},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := Load(path)
	if len(out) != len(in) {
		t.Fatalf("expected %d lots, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("lot %d: expected %+v, got %+v", i, in[i], out[i])
		}
	}
}

func TestLoad_RecordsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.json")
	raw := `{"records":[{"symbol":"MSFT","purchase_price":410.5,"purchase_date":"2026-05-01","quantity":3}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	lots := Load(path)
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	if lots[0].Symbol != "MSFT" || lots[0].PurchasePrice != 410.5 || lots[0].Quantity != 3 {
		t.Errorf("unexpected lot: %+v", lots[0])
	}
}
