package report

import (
	"strings"
	"testing"

	"TrendSentry/internal/model"
)

func TestFormatChecklist_Currency(t *testing.T) {
	us := &model.AnalysisResult{
		Symbol: "AAPL", Market: model.MarketUS,
		Snapshot: model.IndicatorSnapshot{Close: 150.25},
		Verdicts: []model.RuleVerdict{{ID: "rule_1", Name: "10-week MA above 20-week MA", Passed: true}},
	}
	out := FormatChecklist(us)
	if !strings.Contains(out, "Current price: $150.25") {
		t.Errorf("expected $ prefix for US symbol:\n%s", out)
	}
	if !strings.Contains(out, "PASS") {
		t.Error("expected a PASS mark for a passed rule")
	}

	hk := &model.AnalysisResult{
		Symbol: "0700", Market: model.MarketHK,
		Snapshot: model.IndicatorSnapshot{Close: 310.4},
		Verdicts: []model.RuleVerdict{{ID: "rule_1", Name: "10-week MA above 20-week MA", Passed: false}},
	}
	out = FormatChecklist(hk)
	if !strings.Contains(out, "Current price: HK$310.40") {
		t.Errorf("expected HK$ prefix for HK symbol:\n%s", out)
	}
	if !strings.Contains(out, "FAIL") {
		t.Error("expected a FAIL mark for a failed rule")
	}
}

func TestFormatScanSummary_Totals(t *testing.T) {
	results := []*model.AnalysisResult{
		result("A", 10, 0, true),
		result("B", 9, 1, true),
		result("C", 9, 2, true),
		result("D", 8, 3, true),
		result("E", 7, 4, true),
		result("F", 7, 5, true),
		result("G", 3, 6, false),
	}
	rep := Aggregate(results, []string{"H"}, 6, 5)
	out := FormatScanSummary(rep)

	if !strings.Contains(out, "Symbols evaluated: 7") {
		t.Errorf("expected evaluated total:\n%s", out)
	}
	if !strings.Contains(out, "Actionable (>= 6 rules): 6") {
		t.Errorf("expected true actionable total of 6:\n%s", out)
	}
	if !strings.Contains(out, "top 5 of 6") {
		t.Errorf("expected display cap note:\n%s", out)
	}
	if !strings.Contains(out, "Failed: 1 (H)") {
		t.Errorf("expected failed symbols listed:\n%s", out)
	}
	// Capped symbol F must not get a detail block.
	if strings.Contains(out, "Symbol: F ") {
		t.Errorf("sixth actionable symbol should be capped out of detail blocks:\n%s", out)
	}
}

func TestFormatSellSignal_NoCross(t *testing.T) {
	sig := &model.SellSignal{
		Symbol: "TSLA", Market: model.MarketUS,
		CurrentPrice: 250, Reason: "no death cross found",
	}
	out := FormatSellSignal(sig)
	if !strings.Contains(out, "none found") {
		t.Errorf("expected explicit no-cross wording:\n%s", out)
	}
	if !strings.Contains(out, "not triggered") {
		t.Errorf("no cross must read as not triggered:\n%s", out)
	}
}

func TestFormatStopLoss_PerLot(t *testing.T) {
	checks := []model.StopLossCheck{
		{
			Position:     model.Position{Symbol: "AAPL", PurchasePrice: 150, PurchaseDate: "2026-01-15", Quantity: 10},
			Market:       model.MarketUS,
			CurrentPrice: 138,
			DropPct:      8.0,
			ThresholdPct: 7.0,
			LossAmount:   120,
			Triggered:    true,
		},
		{
			Position:     model.Position{Symbol: "AAPL", PurchasePrice: 140, PurchaseDate: "2026-03-01", Quantity: 10},
			Market:       model.MarketUS,
			CurrentPrice: 138,
			DropPct:      1.43,
			ThresholdPct: 7.0,
			LossAmount:   20,
			Triggered:    false,
		},
	}
	out := FormatStopLoss(checks)
	if !strings.Contains(out, "TRIGGERED") || !strings.Contains(out, "not triggered") {
		t.Errorf("each lot should carry its own verdict:\n%s", out)
	}
	if !strings.Contains(out, "Unrealized loss: $120.00") {
		t.Errorf("expected loss amount for the triggered lot:\n%s", out)
	}
}
